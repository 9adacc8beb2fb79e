package sqlclause

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Filters holds already-coerced search values keyed by application field name.
// An absent key, or a nil value, is an inactive filter.
type Filters map[string]any

// Get returns the active value of field.
func (f Filters) Get(field string) (any, bool) {
	v, ok := f[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// FilterRule declares one optional predicate of an entity search.
//
// ColumnExpr and Operator are declared by the entity and are never taken from
// the request. Transform, when set, rewrites the bound value (see Substring).
type FilterRule struct {
	Field      string
	ColumnExpr string
	Operator   string
	Transform  func(any) any
}

// RangeRule pairs a minimum and maximum filter over the same quantity.
type RangeRule struct {
	Min string
	Max string
}

// Substring wraps v in % wildcards for LIKE/ILIKE matching.
func Substring(v any) any {
	return "%" + fmt.Sprint(v) + "%"
}

// Const returns a Transform that always binds value, for rules whose filter
// only switches the predicate on (e.g. hasEquity=true => equity > 0).
func Const(value any) func(any) any {
	return func(any) any { return value }
}

// BuildFilterClause renders the body of a WHERE clause from the active filters.
//
// Rules are applied in the order they are declared, never in the order of the
// filters map, so the same set of active filters always yields the same text
// and numbering. Ranges are validated before anything is built. When no rule
// fires the result is an empty Clause with an empty, non-nil Values slice.
func BuildFilterClause(filters Filters, rules []FilterRule, ranges ...RangeRule) (Clause, error) {
	for _, r := range ranges {
		if err := checkRange(filters, r); err != nil {
			return Clause{}, err
		}
	}

	predicates := make([]string, 0, len(rules))
	values := make([]any, 0, len(rules))
	for _, rule := range rules {
		v, ok := filters.Get(rule.Field)
		if !ok {
			continue
		}
		if rule.Transform != nil {
			v = rule.Transform(v)
		}
		values = append(values, v)
		predicates = append(predicates, rule.ColumnExpr+" "+rule.Operator+" "+Placeholder(len(values)))
	}

	return Clause{
		Fragment: strings.Join(predicates, " AND "),
		Values:   values,
	}, nil
}

func checkRange(filters Filters, r RangeRule) error {
	lo, hasLo := filters.Get(r.Min)
	hi, hasHi := filters.Get(r.Max)
	if !hasLo || !hasHi {
		return nil
	}

	lower, err := cast.ToFloat64E(lo)
	if err != nil {
		return &ClauseError{Kind: ErrRangeInvalid, Field: r.Min, Message: r.Min + " must be numeric"}
	}
	upper, err := cast.ToFloat64E(hi)
	if err != nil {
		return &ClauseError{Kind: ErrRangeInvalid, Field: r.Max, Message: r.Max + " must be numeric"}
	}

	if lower > upper {
		return &ClauseError{
			Kind:    ErrRangeInvalid,
			Field:   r.Min,
			Message: fmt.Sprintf("%s cannot be greater than %s", r.Min, r.Max),
		}
	}
	return nil
}
