package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/diwise/entity-registry/pkg/entities"
)

type dimension int

const (
	dimensionType dimension = iota
	dimensionEyeColor
	dimensionDateOfBirth
)

var columns = map[dimension]string{
	dimensionType:        "type",
	dimensionEyeColor:    "eye_color",
	dimensionDateOfBirth: "date_of_birth",
}

type operator int

const (
	opIn operator = iota
	opOnOrAfter
	opOnOrBefore
)

type clause struct {
	dim    dimension
	op     operator
	values []string
	bound  time.Time
}

// Query is a read of the entity table restricted by a set of clauses that
// are combined with AND. Set membership clauses are rendered into SQL while
// date range clauses are evaluated per row, since stored dates of birth may
// be in either of two text formats.
type Query struct {
	clauses []clause
}

// NewQuery translates a filter specification into a query. Dimensions that
// are absent from the filters contribute no clause.
func NewQuery(f entities.Filters) (*Query, error) {
	q := &Query{}

	if f.Types != nil {
		q.clauses = append(q.clauses, clause{dim: dimensionType, op: opIn, values: f.Types})
	}

	if f.EyeColors != nil {
		q.clauses = append(q.clauses, clause{dim: dimensionEyeColor, op: opIn, values: f.EyeColors})
	}

	if f.DateFrom != "" {
		from, err := ParseBound(f.DateFrom)
		if err != nil {
			return nil, entities.NewBadRequestError(fmt.Sprintf("dateFrom %q is not a YYYY-MM-DD date", f.DateFrom))
		}
		q.clauses = append(q.clauses, clause{dim: dimensionDateOfBirth, op: opOnOrAfter, bound: from})
	}

	if f.DateTo != "" {
		to, err := ParseBound(f.DateTo)
		if err != nil {
			return nil, entities.NewBadRequestError(fmt.Sprintf("dateTo %q is not a YYYY-MM-DD date", f.DateTo))
		}
		q.clauses = append(q.clauses, clause{dim: dimensionDateOfBirth, op: opOnOrBefore, bound: to})
	}

	return q, nil
}

// SQL renders the query in the parameter syntax of the given dialect
func (q *Query) SQL(d Dialect) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT " + selectColumns + " FROM " + tableName)

	args := []any{}
	conditions := []string{}

	for _, c := range q.clauses {
		if c.op != opIn {
			continue
		}

		if len(c.values) == 0 {
			// an explicit empty set allows nothing
			conditions = append(conditions, "1 = 0")
			continue
		}

		placeholders := make([]string, 0, len(c.values))
		for _, v := range c.values {
			args = append(args, v)
			placeholders = append(placeholders, d.Placeholder(len(args)))
		}

		conditions = append(conditions, fmt.Sprintf("%s IN (%s)", columns[c.dim], strings.Join(placeholders, ", ")))
	}

	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	sb.WriteString(" ORDER BY id")

	return sb.String(), args
}

// HasDateRange reports whether rows must be checked with MatchesDateRange
func (q *Query) HasDateRange() bool {
	for _, c := range q.clauses {
		if c.dim == dimensionDateOfBirth {
			return true
		}
	}
	return false
}

// MatchesDateRange checks a stored date of birth against the date clauses.
// A date that cannot be parsed never matches a date restriction.
func (q *Query) MatchesDateRange(dateOfBirth string) (bool, error) {
	if !q.HasDateRange() {
		return true, nil
	}

	dob, err := ParseStoredDate(dateOfBirth)
	if err != nil {
		return false, err
	}

	for _, c := range q.clauses {
		switch c.op {
		case opOnOrAfter:
			if dob.Before(c.bound) {
				return false, nil
			}
		case opOnOrBefore:
			if dob.After(c.bound) {
				return false, nil
			}
		}
	}

	return true, nil
}
