package database

import (
	"fmt"
	"regexp"
	"time"
)

type DateFormat int

const (
	IsoDate DateFormat = iota
	EuropeanDate
)

const (
	isoLayout      string = "2006-01-02"
	europeanLayout string = "2/1/2006"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DetectDateFormat decides how a stored date of birth should be read. Text that
// looks like YYYY-MM-DD is an IsoDate, everything else is treated as DD/MM/YYYY.
func DetectDateFormat(s string) DateFormat {
	if isoDatePattern.MatchString(s) {
		return IsoDate
	}
	return EuropeanDate
}

// ParseStoredDate parses a date of birth in whichever of the two supported
// formats it was stored in.
func ParseStoredDate(s string) (time.Time, error) {
	layout := isoLayout
	if DetectDateFormat(s) == EuropeanDate {
		layout = europeanLayout
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date of birth %q: %w", s, err)
	}

	return t, nil
}

// ParseBound parses a filter bound, which is always given as YYYY-MM-DD
func ParseBound(s string) (time.Time, error) {
	return time.Parse(isoLayout, s)
}

// NormalizeDate returns the YYYY-MM-DD form of a stored date of birth and
// whether it differs from what was stored.
func NormalizeDate(s string) (string, bool, error) {
	t, err := ParseStoredDate(s)
	if err != nil {
		return "", false, err
	}

	iso := t.Format(isoLayout)
	return iso, iso != s, nil
}
