package sqlclause

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placeholderRe = regexp.MustCompile(`\$\d+`)

func TestBuildUpdateClause(t *testing.T) {
	t.Run("two fields", func(t *testing.T) {
		clause, err := BuildUpdateClause(
			UpdateData{}.Set("username", "testuser").Set("first_name", "Chung"),
			ColumnMap{"username": "username", "first_name": "first_name"},
		)
		require.NoError(t, err)
		assert.Equal(t, `"username"=$1, "first_name"=$2`, clause.Fragment)
		assert.Equal(t, []any{"testuser", "Chung"}, clause.Values)
	})

	t.Run("one field", func(t *testing.T) {
		clause, err := BuildUpdateClause(UpdateData{{Field: "username", Value: "testuser"}}, ColumnMap{"username": "username"})
		require.NoError(t, err)
		assert.Equal(t, `"username"=$1`, clause.Fragment)
		assert.Equal(t, []any{"testuser"}, clause.Values)
	})

	t.Run("maps columns and falls back to field name", func(t *testing.T) {
		clause, err := BuildUpdateClause(
			UpdateData{}.Set("name", "Acme").Set("numEmployees", 40).Set("logoUrl", "http://a.png"),
			ColumnMap{"numEmployees": "num_employees", "logoUrl": "logo_url"},
		)
		require.NoError(t, err)
		assert.Equal(t, `"name"=$1, "num_employees"=$2, "logo_url"=$3`, clause.Fragment)
		assert.Equal(t, []any{"Acme", 40, "http://a.png"}, clause.Values)
	})

	t.Run("nil column map", func(t *testing.T) {
		clause, err := BuildUpdateClause(UpdateData{}.Set("title", "Engineer"), nil)
		require.NoError(t, err)
		assert.Equal(t, `"title"=$1`, clause.Fragment)
	})

	t.Run("empty data", func(t *testing.T) {
		for _, data := range []UpdateData{nil, {}} {
			clause, err := BuildUpdateClause(data, ColumnMap{"a": "b"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
			assert.Empty(t, clause.Fragment)
			assert.Empty(t, clause.Values)
		}
	})

	t.Run("empty field name", func(t *testing.T) {
		clause, err := BuildUpdateClause(UpdateData{}.Set("name", "Acme").Set("", 1), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
		assert.Empty(t, clause.Fragment)
	})

	t.Run("placeholder count matches values", func(t *testing.T) {
		data := UpdateData{}
		for _, f := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
			data = data.Set(f, f)
		}
		clause, err := BuildUpdateClause(data, nil)
		require.NoError(t, err)

		found := placeholderRe.FindAllString(clause.Fragment, -1)
		require.Len(t, found, len(clause.Values))
		for i, p := range found {
			assert.Equal(t, Placeholder(i+1), p)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		data := UpdateData{}.Set("firstName", "A").Set("email", "a@b.co")
		cols := ColumnMap{"firstName": "first_name"}
		first, err := BuildUpdateClause(data, cols)
		require.NoError(t, err)
		second, err := BuildUpdateClause(data, cols)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestUpdateDataFromMap(t *testing.T) {
	data := UpdateDataFromMap(map[string]any{"logoUrl": "x", "description": "d", "name": "n"})
	require.Len(t, data, 3)
	assert.Equal(t, "description", data[0].Field)
	assert.Equal(t, "logoUrl", data[1].Field)
	assert.Equal(t, "name", data[2].Field)
}

var companyRules = []FilterRule{
	{Field: "minEmployees", ColumnExpr: "num_employees", Operator: ">="},
	{Field: "maxEmployees", ColumnExpr: "num_employees", Operator: "<="},
	{Field: "name", ColumnExpr: "name", Operator: "ILIKE", Transform: Substring},
}

var employeeRange = RangeRule{Min: "minEmployees", Max: "maxEmployees"}

func TestBuildFilterClause(t *testing.T) {
	t.Run("no active filters", func(t *testing.T) {
		for _, filters := range []Filters{nil, {}, {"unknown": 3}, {"minEmployees": nil}} {
			clause, err := BuildFilterClause(filters, companyRules, employeeRange)
			require.NoError(t, err)
			assert.True(t, clause.IsEmpty())
			assert.Equal(t, "", clause.Fragment)
			assert.NotNil(t, clause.Values)
			assert.Empty(t, clause.Values)
		}
	})

	t.Run("min only", func(t *testing.T) {
		clause, err := BuildFilterClause(Filters{"minEmployees": 5}, companyRules, employeeRange)
		require.NoError(t, err)
		assert.Equal(t, "num_employees >= $1", clause.Fragment)
		assert.Equal(t, []any{5}, clause.Values)
	})

	t.Run("min and max", func(t *testing.T) {
		clause, err := BuildFilterClause(Filters{"maxEmployees": 10, "minEmployees": 5}, companyRules, employeeRange)
		require.NoError(t, err)
		assert.Equal(t, "num_employees >= $1 AND num_employees <= $2", clause.Fragment)
		assert.Equal(t, []any{5, 10}, clause.Values)
	})

	t.Run("max and name renumber", func(t *testing.T) {
		clause, err := BuildFilterClause(Filters{"name": "net", "maxEmployees": 10}, companyRules, employeeRange)
		require.NoError(t, err)
		assert.Equal(t, "num_employees <= $1 AND name ILIKE $2", clause.Fragment)
		assert.Equal(t, []any{10, "%net%"}, clause.Values)
	})

	t.Run("equal bounds are valid", func(t *testing.T) {
		clause, err := BuildFilterClause(Filters{"minEmployees": 7, "maxEmployees": 7}, companyRules, employeeRange)
		require.NoError(t, err)
		assert.Equal(t, []any{7, 7}, clause.Values)
	})

	t.Run("min greater than max", func(t *testing.T) {
		clause, err := BuildFilterClause(Filters{"minEmployees": 10, "maxEmployees": 5, "name": "x"}, companyRules, employeeRange)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrRangeInvalid))
		assert.Empty(t, clause.Fragment)
		assert.Empty(t, clause.Values)

		var clauseErr *ClauseError
		require.True(t, errors.As(err, &clauseErr))
		assert.Equal(t, "minEmployees", clauseErr.Field)
	})

	t.Run("range check needs both bounds", func(t *testing.T) {
		_, err := BuildFilterClause(Filters{"minEmployees": 1000}, companyRules, employeeRange)
		assert.NoError(t, err)
	})

	t.Run("non numeric bound", func(t *testing.T) {
		_, err := BuildFilterClause(Filters{"minEmployees": "lots", "maxEmployees": 5}, companyRules, employeeRange)
		assert.True(t, errors.Is(err, ErrRangeInvalid))
	})

	t.Run("const transform", func(t *testing.T) {
		rules := []FilterRule{
			{Field: "title", ColumnExpr: "title", Operator: "ILIKE", Transform: Substring},
			{Field: "minSalary", ColumnExpr: "salary", Operator: ">="},
			{Field: "hasEquity", ColumnExpr: "equity", Operator: ">", Transform: Const(0)},
		}
		clause, err := BuildFilterClause(Filters{"hasEquity": true, "minSalary": 50000}, rules)
		require.NoError(t, err)
		assert.Equal(t, "salary >= $1 AND equity > $2", clause.Fragment)
		assert.Equal(t, []any{50000, 0}, clause.Values)
	})

	t.Run("idempotent", func(t *testing.T) {
		filters := Filters{"name": "a", "minEmployees": 1, "maxEmployees": 2}
		first, err := BuildFilterClause(filters, companyRules, employeeRange)
		require.NoError(t, err)
		second, err := BuildFilterClause(filters, companyRules, employeeRange)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "num_employees", `"num_employees"`},
		{"mixed case", "logoUrl", `"logoUrl"`},
		{"embedded quote", `a"b`, `"a""b"`},
		{"injection attempt", `x"=1; DROP TABLE users; --`, `"x""=1; DROP TABLE users; --"`},
		{"nul byte", "a\x00b", `"ab"`},
		{"qualified", "c.handle", `"c"."handle"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteIdentifier(tt.in))
		})
	}
}

func TestClauseHelpers(t *testing.T) {
	clause := Clause{Fragment: `"name"=$1, "description"=$2`, Values: []any{"n", "d"}}
	assert.Equal(t, "$3", clause.NextPlaceholder())
	assert.Equal(t, []any{"n", "d", "acme"}, clause.Args("acme"))
	assert.Equal(t, []any{"n", "d"}, clause.Values)
}
