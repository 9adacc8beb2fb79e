package service

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/jobly/internal/model/user"
	"github.com/deppfellow/jobly/internal/repository"
)

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) EnqueueWelcomeEmail(_ context.Context, to, _, _ string) error {
	m.sent = append(m.sent, to)
	return m.err
}

// bcryptArg matches a bcrypt hash of password.
type bcryptArg struct{ password string }

func (a bcryptArg) Match(v driver.Value) bool {
	hash, ok := v.(string)
	return ok && bcrypt.CompareHashAndPassword([]byte(hash), []byte(a.password)) == nil
}

var userCols = []string{"username", "first_name", "last_name", "email", "is_admin"}

func registerPayload() *user.RegisterPayload {
	return &user.RegisterPayload{
		Username:  "aliya",
		Password:  "password1",
		FirstName: "Aliya",
		LastName:  "Khan",
		Email:     "aliya@example.com",
	}
}

func expectCreate(mock sqlmock.Sqlmock, isAdmin bool) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM users WHERE username = $1`)).
		WithArgs("aliya").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("aliya", bcryptArg{"password1"}, "Aliya", "Khan", "aliya@example.com", isAdmin).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("aliya", "Aliya", "Khan", "aliya@example.com", isAdmin))
}

func TestUserService_Register(t *testing.T) {
	db, mock := newMockDB(t)
	auth := NewAuthService(testAuthConfig, nil)
	mailer := &fakeMailer{}
	svc := NewUserService(repository.NewUserRepository(db), auth, mailer)

	expectCreate(mock, false)

	res, err := svc.Register(context.Background(), registerPayload())
	require.NoError(t, err)

	claims, err := auth.ParseToken(res.Token)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, []string{"aliya@example.com"}, mailer.sent)
}

func TestUserService_RegisterSurvivesQueueFailure(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(repository.NewUserRepository(db), NewAuthService(testAuthConfig, nil),
		&fakeMailer{err: errors.New("redis down")})

	expectCreate(mock, false)

	res, err := svc.Register(context.Background(), registerPayload())
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestUserService_CreateAdmin(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(repository.NewUserRepository(db), NewAuthService(testAuthConfig, nil), nil)

	expectCreate(mock, true)

	res, err := svc.Create(context.Background(), &user.CreateUserPayload{RegisterPayload: *registerPayload(), IsAdmin: true})
	require.NoError(t, err)
	assert.True(t, res.User.IsAdmin)
	assert.NotEmpty(t, res.Token)
}

func TestUserService_UpdateHashesPassword(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(repository.NewUserRepository(db), NewAuthService(testAuthConfig, nil), nil)

	lastName := "Khan-Smith"
	password := "newpassword"

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET "last_name"=$1, "password"=$2 WHERE username = $3`)).
		WithArgs("Khan-Smith", bcryptArg{"newpassword"}, "aliya").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("aliya", "Aliya", "Khan-Smith", "aliya@example.com", false))

	res, err := svc.Update(context.Background(), &user.UpdateUserPayload{
		Username: "aliya",
		LastName: &lastName,
		Password: &password,
	})
	require.NoError(t, err)
	assert.Equal(t, "Khan-Smith", res.User.LastName)
}
