// Package query translates raw request query parameters into a structured
// filter/sort/projection/pagination specification for a collection read.
//
// The translator only builds the specification; executing the read and
// handling its errors stay with the caller.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Reserved keys are stripped from the parameter map before filtering.
const (
	keyPage   = "page"
	keySort   = "sort"
	keyLimit  = "limit"
	keyFields = "fields"
)

// Client-input errors. Handlers map these to 400 responses.
var (
	// ErrUnknownField is returned when a filter, sort or projection key is
	// not in the caller's schema. Field names end up in SQL, so anything
	// outside the allow-list is rejected rather than passed through.
	ErrUnknownField = errors.New("unknown field in query")

	// ErrUnknownOperator is returned for operators outside gte/gt/lte/lt.
	ErrUnknownOperator = errors.New("unknown filter operator")

	// ErrBadValue is returned when a filter value cannot be coerced to the
	// field's declared kind.
	ErrBadValue = errors.New("invalid filter value")

	// ErrBadPagination is returned for non-numeric page or limit values.
	ErrBadPagination = errors.New("page and limit must be numeric")
)

// IsClientError reports whether err is a malformed-request translation
// failure, as opposed to an execution failure in the underlying read.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnknownField) ||
		errors.Is(err, ErrUnknownOperator) ||
		errors.Is(err, ErrBadValue) ||
		errors.Is(err, ErrBadPagination)
}

// Kind declares how a field's raw string values are coerced.
type Kind int

const (
	String Kind = iota
	Number
	Bool
)

// Field maps an exposed query name onto a database column.
type Field struct {
	Column string
	Kind   Kind
}

// Schema is the set of fields a collection exposes to querying.
type Schema map[string]Field

// Defaults supplies the caller's fallback ordering and page window.
type Defaults struct {
	// Sort is a comma-separated sort expression, e.g. "-created_at".
	Sort string
	// Limit is the record cap applied when the request names none.
	Limit int
}

// Filter is one field/operator/value predicate.
type Filter struct {
	Column string
	Op     string // SQL comparison: =, >, >=, <, <=
	Value  any
}

// Sort is one ordering key.
type Sort struct {
	Column string
	Desc   bool
}

// Spec is a fully translated, not-yet-executed read specification.
type Spec struct {
	Filters []Filter
	Sorts   []Sort
	Columns []string // empty means all columns
	Offset  int
	Limit   int
}

var operators = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
}

// Parse translates raw query parameters against the collection's schema.
// Filter, sort, projection and pagination are independent clauses; the
// result is the same regardless of the order they appear in the request.
func Parse(values url.Values, schema Schema, defaults Defaults) (*Spec, error) {
	spec := &Spec{}

	if err := parseFilters(spec, values, schema); err != nil {
		return nil, err
	}
	if err := parseSort(spec, values.Get(keySort), defaults.Sort, schema); err != nil {
		return nil, err
	}
	if err := parseProjection(spec, values.Get(keyFields), schema); err != nil {
		return nil, err
	}
	if err := parsePagination(spec, values.Get(keyPage), values.Get(keyLimit), defaults.Limit); err != nil {
		return nil, err
	}

	return spec, nil
}

func parseFilters(spec *Spec, values url.Values, schema Schema) error {
	for key, vals := range values {
		if key == keyPage || key == keySort || key == keyLimit || key == keyFields {
			continue
		}
		if len(vals) == 0 {
			continue
		}

		name, op := splitOperator(key)
		sqlOp := "="
		if op != "" {
			translated, ok := operators[op]
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownOperator, op)
			}
			sqlOp = translated
		}

		field, ok := schema[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}

		value, err := coerce(vals[0], field.Kind)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrBadValue, name, vals[0])
		}

		spec.Filters = append(spec.Filters, Filter{
			Column: field.Column,
			Op:     sqlOp,
			Value:  value,
		})
	}
	return nil
}

// splitOperator unpacks "price[gte]" into ("price", "gte").
// A bare key comes back with an empty operator.
func splitOperator(key string) (name, op string) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}

func coerce(raw string, kind Kind) (any, error) {
	switch kind {
	case Number:
		return strconv.ParseFloat(raw, 64)
	case Bool:
		return strconv.ParseBool(raw)
	default:
		return raw, nil
	}
}

func parseSort(spec *Spec, raw, fallback string, schema Schema) error {
	expr := strings.TrimSpace(raw)
	if expr == "" {
		expr = fallback
	}
	if expr == "" {
		return nil
	}

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")

		field, ok := schema[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		spec.Sorts = append(spec.Sorts, Sort{Column: field.Column, Desc: desc})
	}
	return nil
}

func parseProjection(spec *Spec, raw string, schema Schema) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field, ok := schema[part]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, part)
		}
		spec.Columns = append(spec.Columns, field.Column)
	}
	return nil
}

func parsePagination(spec *Spec, rawPage, rawLimit string, defaultLimit int) error {
	page := 1
	limit := defaultLimit

	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		if err != nil {
			return fmt.Errorf("%w: page=%q", ErrBadPagination, rawPage)
		}
		if n >= 1 {
			page = n
		}
	}
	if rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil {
			return fmt.Errorf("%w: limit=%q", ErrBadPagination, rawLimit)
		}
		if n >= 1 {
			limit = n
		}
	}

	spec.Offset = (page - 1) * limit
	spec.Limit = limit
	return nil
}

// Scope returns a gorm scope applying every clause of the specification.
// Column names originate from the schema allow-list, never from request
// input, so interpolating them is safe.
func (s *Spec) Scope() func(tx *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		for _, f := range s.Filters {
			tx = tx.Where(fmt.Sprintf("%s %s ?", f.Column, f.Op), f.Value)
		}
		if len(s.Columns) > 0 {
			tx = tx.Select(s.Columns)
		}
		for _, so := range s.Sorts {
			tx = tx.Order(clause.OrderByColumn{
				Column: clause.Column{Name: so.Column},
				Desc:   so.Desc,
			})
		}
		if s.Limit > 0 {
			tx = tx.Limit(s.Limit)
		}
		if s.Offset > 0 {
			tx = tx.Offset(s.Offset)
		}
		return tx
	}
}
