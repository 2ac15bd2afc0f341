package entities

import (
	"fmt"
)

var ErrBadRequest = fmt.Errorf("bad request")
var ErrBadResponse = fmt.Errorf("bad response")
var ErrInternal = fmt.Errorf("internal error")
var ErrInvalidEntityData = fmt.Errorf("invalid entity data")
var ErrNotFound = fmt.Errorf("not found")
var ErrRequest = fmt.Errorf("request error")

type myError struct {
	msg    string
	target error
}

func (m myError) Error() string        { return m.msg }
func (m myError) Is(target error) bool { return target == m.target }

func NewBadRequestError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrBadRequest,
	}
}

func NewInternalError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrInternal,
	}
}

func NewInvalidEntityDataError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrInvalidEntityData,
	}
}

func NewNotFoundError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrNotFound,
	}
}
