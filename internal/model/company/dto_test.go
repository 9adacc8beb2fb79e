package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/jobly/internal/sqlclause"
)

func TestSearchCompaniesQuery_Filters(t *testing.T) {
	q := &SearchCompaniesQuery{MinEmployees: "5", Name: "net"}
	require.NoError(t, q.Validate())

	filters, err := q.Filters()
	require.NoError(t, err)
	assert.Equal(t, sqlclause.Filters{"minEmployees": 5, "name": "net"}, filters)

	// the query keeps its raw text
	assert.Equal(t, "5", q.MinEmployees)
}

func TestSearchCompaniesQuery_LeadingZeros(t *testing.T) {
	tests := []struct {
		name  string
		query SearchCompaniesQuery
		want  sqlclause.Filters
	}{
		{
			name:  "decimal not octal",
			query: SearchCompaniesQuery{MinEmployees: "010"},
			want:  sqlclause.Filters{"minEmployees": 10},
		},
		{
			name:  "eight and nine digits",
			query: SearchCompaniesQuery{MinEmployees: "09", MaxEmployees: "08"},
			want:  sqlclause.Filters{"minEmployees": 9, "maxEmployees": 8},
		},
		{
			name:  "zero",
			query: SearchCompaniesQuery{MaxEmployees: "000"},
			want:  sqlclause.Filters{"maxEmployees": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.query.Validate())
			got, err := tt.query.Filters()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchCompaniesQuery_Overflow(t *testing.T) {
	q := &SearchCompaniesQuery{MinEmployees: "99999999999999999999999"}
	require.NoError(t, q.Validate())

	_, err := q.Filters()
	assert.ErrorContains(t, err, "minEmployees")
}

func TestSearchCompaniesQuery_Empty(t *testing.T) {
	filters, err := (&SearchCompaniesQuery{}).Filters()
	require.NoError(t, err)
	assert.Empty(t, filters)
}

func TestSearchCompaniesQuery_RejectsNonNumeric(t *testing.T) {
	assert.Error(t, (&SearchCompaniesQuery{MaxEmployees: "lots"}).Validate())
	assert.Error(t, (&SearchCompaniesQuery{MinEmployees: "-1"}).Validate())
}

func TestUpdateCompanyPayload_UpdateData(t *testing.T) {
	name := "Acme"
	employees := 40
	p := &UpdateCompanyPayload{Handle: "acme", Name: &name, NumEmployees: &employees}

	assert.Equal(t, sqlclause.UpdateData{
		{Field: "name", Value: "Acme"},
		{Field: "numEmployees", Value: 40},
	}, p.UpdateData())

	assert.Empty(t, (&UpdateCompanyPayload{Handle: "acme"}).UpdateData())
}

func TestCreateCompanyPayload_Validate(t *testing.T) {
	valid := &CreateCompanyPayload{Handle: "acme-co", Name: "Acme", Description: "Anvils"}
	assert.NoError(t, valid.Validate())

	upper := &CreateCompanyPayload{Handle: "Acme", Name: "Acme", Description: "Anvils"}
	assert.Error(t, upper.Validate())

	negative := -1
	bad := &CreateCompanyPayload{Handle: "acme", Name: "Acme", Description: "Anvils", NumEmployees: &negative}
	assert.Error(t, bad.Validate())
}
