package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/model/company"
	"github.com/deppfellow/jobly/internal/sqlclause"
)

var companyCols = []string{"handle", "name", "description", "num_employees", "logo_url"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func TestCompanyRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCompanyRepository(db)

	employees := 10
	payload := &company.CreateCompanyPayload{
		Handle:       "acme",
		Name:         "Acme",
		Description:  "Anvils",
		NumEmployees: &employees,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM companies WHERE handle = $1`)).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO companies (handle, name, description, num_employees, logo_url)`)).
		WithArgs("acme", "Acme", "Anvils", 10, nil).
		WillReturnRows(sqlmock.NewRows(companyCols).AddRow("acme", "Acme", "Anvils", 10, nil))

	c, err := repo.Create(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "acme", c.Handle)
	require.NotNil(t, c.NumEmployees)
	assert.Equal(t, 10, *c.NumEmployees)
	assert.Nil(t, c.LogoURL)
}

func TestCompanyRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCompanyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM companies WHERE handle = $1`)).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	_, err := repo.Create(context.Background(), &company.CreateCompanyPayload{Handle: "acme"})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Duplicate company: acme", httpErr.Message)
}

func TestCompanyRepository_FindAll(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewCompanyRepository(db)

		mock.ExpectQuery(`FROM companies ORDER BY name$`).
			WillReturnRows(sqlmock.NewRows(companyCols).
				AddRow("acme", "Acme", "Anvils", 10, nil).
				AddRow("bolt", "Bolt", "Bolts", nil, "http://bolt.example/logo.png"))

		companies, err := repo.FindAll(context.Background(), sqlclause.Filters{})
		require.NoError(t, err)
		require.Len(t, companies, 2)
		assert.Nil(t, companies[1].NumEmployees)
		require.NotNil(t, companies[1].LogoURL)
	})

	t.Run("all filters", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewCompanyRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(
			`FROM companies WHERE num_employees >= $1 AND num_employees <= $2 AND name ILIKE $3 ORDER BY name`)).
			WithArgs(5, 50, "%net%").
			WillReturnRows(sqlmock.NewRows(companyCols))

		companies, err := repo.FindAll(context.Background(), sqlclause.Filters{
			"name":         "net",
			"maxEmployees": 50,
			"minEmployees": 5,
		})
		require.NoError(t, err)
		assert.Empty(t, companies)
		assert.NotNil(t, companies)
	})

	t.Run("invalid range never queries", func(t *testing.T) {
		db, _ := newMock(t)
		repo := NewCompanyRepository(db)

		_, err := repo.FindAll(context.Background(), sqlclause.Filters{"minEmployees": 10, "maxEmployees": 2})
		assert.ErrorIs(t, err, sqlclause.ErrRangeInvalid)
	})
}

func TestCompanyRepository_Get(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCompanyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM companies WHERE handle = $1`)).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows(companyCols).AddRow("acme", "Acme", "Anvils", 10, nil))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM jobs`)).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "salary", "equity"}).
			AddRow(1, "Engineer", 100000, "0.05").
			AddRow(2, "Intern", nil, nil))

	detail, err := repo.Get(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, detail.Jobs, 2)
	assert.Equal(t, "Engineer", detail.Jobs[0].Title)
	assert.True(t, detail.Jobs[0].Equity.Valid)
	assert.Equal(t, "0.05", detail.Jobs[0].Equity.Decimal.String())
	assert.False(t, detail.Jobs[1].Equity.Valid)
	assert.Nil(t, detail.Jobs[1].Salary)
}

func TestCompanyRepository_GetMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCompanyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM companies WHERE handle = $1`)).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Contains(t, err.Error(), "table:companies:")
}

func TestCompanyRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCompanyRepository(db)

	data := sqlclause.UpdateData{}.Set("name", "Acme Inc").Set("numEmployees", 12)

	mock.ExpectQuery(regexp.QuoteMeta(
		`UPDATE companies SET "name"=$1, "num_employees"=$2 WHERE handle = $3 RETURNING`)).
		WithArgs("Acme Inc", 12, "acme").
		WillReturnRows(sqlmock.NewRows(companyCols).AddRow("acme", "Acme Inc", "Anvils", 12, nil))

	c, err := repo.Update(context.Background(), "acme", data)
	require.NoError(t, err)
	assert.Equal(t, "Acme Inc", c.Name)
}

func TestCompanyRepository_UpdateNoData(t *testing.T) {
	db, _ := newMock(t)
	repo := NewCompanyRepository(db)

	_, err := repo.Update(context.Background(), "acme", nil)
	assert.ErrorIs(t, err, sqlclause.ErrInvalidArgument)
}

func TestCompanyRepository_Remove(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCompanyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM companies WHERE handle = $1 RETURNING handle`)).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"handle"}).AddRow("acme"))
	require.NoError(t, repo.Remove(context.Background(), "acme"))

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM companies`)).
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"handle"}))
	err := repo.Remove(context.Background(), "gone")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
