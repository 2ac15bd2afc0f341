package entities

import (
	"slices"
	"time"
)

const (
	TypePerson string = "person"
	TypeCat    string = "cat"
	TypeDog    string = "dog"

	EyeColorBrown string = "brown"
	EyeColorBlue  string = "blue"
	EyeColorGreen string = "green"
)

// DefaultTypes returns a fresh copy of the known entity types
func DefaultTypes() []string {
	return []string{TypePerson, TypeCat, TypeDog}
}

// DefaultEyeColors returns a fresh copy of the known eye colors
func DefaultEyeColors() []string {
	return []string{EyeColorBrown, EyeColorBlue, EyeColorGreen}
}

// Entity is a single record as returned by the entity registry
type Entity struct {
	ID          int64      `json:"id,string"`
	Type        string     `json:"type"`
	DateOfBirth string     `json:"date_of_birth"`
	EyeColor    string     `json:"eye_color"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Filters restricts a read of entities. A nil slice or an empty date
// string means that the dimension is not restricted.
type Filters struct {
	Types     []string `json:"types,omitempty"`
	EyeColors []string `json:"eyeColors,omitempty"`
	DateFrom  string   `json:"dateFrom,omitempty"`
	DateTo    string   `json:"dateTo,omitempty"`
}

func (f Filters) IsEmpty() bool {
	return f.Types == nil && f.EyeColors == nil && f.DateFrom == "" && f.DateTo == ""
}

// FormData holds the user editable fields of an entity
type FormData struct {
	Type        string
	DateOfBirth string
	EyeColor    string
}

func (fd FormData) IsValid() bool {
	return fd.Type != "" && fd.DateOfBirth != "" && fd.EyeColor != ""
}

func (fd FormData) Validate() error {
	if !fd.IsValid() {
		return NewInvalidEntityDataError("invalid entity data")
	}
	return nil
}

// Fields holds the optional fields of an update. A nil field keeps the stored value.
type Fields struct {
	Type        *string
	DateOfBirth *string
	EyeColor    *string
}

func (fd FormData) Fields() Fields {
	return Fields{
		Type:        &fd.Type,
		DateOfBirth: &fd.DateOfBirth,
		EyeColor:    &fd.EyeColor,
	}
}

func ToFormData(e Entity) FormData {
	return FormData{
		Type:        e.Type,
		DateOfBirth: e.DateOfBirth,
		EyeColor:    e.EyeColor,
	}
}

type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const (
	MessageDeleted  string = "Entity deleted successfully."
	MessageNotFound string = "Entity not found."
)

func NewDeleteResult(deleted bool) DeleteResult {
	if deleted {
		return DeleteResult{Success: true, Message: MessageDeleted}
	}
	return DeleteResult{Success: false, Message: MessageNotFound}
}

// Enumerations lists the values that are known for the closed entity fields
type Enumerations struct {
	Types     []string `yaml:"types"`
	EyeColors []string `yaml:"eyeColors"`
}

func DefaultEnumerations() Enumerations {
	return Enumerations{
		Types:     DefaultTypes(),
		EyeColors: DefaultEyeColors(),
	}
}

func (e Enumerations) IsKnownType(t string) bool {
	return slices.Contains(e.Types, t)
}

func (e Enumerations) IsKnownEyeColor(c string) bool {
	return slices.Contains(e.EyeColors, c)
}
