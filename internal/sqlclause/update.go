package sqlclause

import (
	"sort"
	"strings"
)

// Assignment is one field of a partial update.
type Assignment struct {
	Field string
	Value any
}

// UpdateData is an ordered partial-update payload. Its order defines the
// placeholder order of the SET clause.
type UpdateData []Assignment

// Set appends an assignment and returns the extended payload.
func (d UpdateData) Set(field string, value any) UpdateData {
	return append(d, Assignment{Field: field, Value: value})
}

// UpdateDataFromMap converts an unordered map into UpdateData sorted by field
// name, so the resulting statement text is stable across calls.
func UpdateDataFromMap(m map[string]any) UpdateData {
	fields := make([]string, 0, len(m))
	for field := range m {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	data := make(UpdateData, 0, len(fields))
	for _, field := range fields {
		data = append(data, Assignment{Field: field, Value: m[field]})
	}
	return data
}

// BuildUpdateClause renders the body of a SET clause for a partial update.
//
//	BuildUpdateClause(UpdateData{{"firstName", "Aliya"}, {"age", 32}}, ColumnMap{"firstName": "first_name"})
//	  => `"first_name"=$1, "age"=$2`, ["Aliya", 32]
//
// An assignment whose field resolves to an empty column name is rejected with
// ErrInvalidArgument. Placeholders start at $1. A caller appending more conditions uses
// Clause.NextPlaceholder for the next index.
func BuildUpdateClause(data UpdateData, columns ColumnMap) (Clause, error) {
	if len(data) == 0 {
		return Clause{}, &ClauseError{Kind: ErrInvalidArgument, Message: "No data"}
	}

	sets := make([]string, 0, len(data))
	values := make([]any, 0, len(data))
	for i, a := range data {
		column := columns.Column(a.Field)
		if column == "" {
			return Clause{}, &ClauseError{Kind: ErrInvalidArgument, Field: a.Field, Message: "Update field has no column name"}
		}
		sets = append(sets, QuoteIdentifier(column)+"="+Placeholder(i+1))
		values = append(values, a.Value)
	}

	return Clause{
		Fragment: strings.Join(sets, ", "),
		Values:   values,
	}, nil
}
