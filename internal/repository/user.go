package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/model/user"
	"github.com/deppfellow/jobly/internal/sqlclause"
)

var userColumns = sqlclause.ColumnMap{
	"firstName": "first_name",
	"lastName":  "last_name",
	"isAdmin":   "is_admin",
}

const userReturning = `username, first_name, last_name, email, is_admin`

// NewUser is a user ready to be stored; Password is already hashed.
type NewUser struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	if err := row.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u NewUser) (*user.User, error) {
	duplicate, err := exists(ctx, r.db, `SELECT 1 FROM users WHERE username = $1`, u.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username=%s: %w", u.Username, err)
	}
	if duplicate {
		return nil, errs.NewBadRequestError(
			fmt.Sprintf("Duplicate username: %s", u.Username), true, errs.Code("DUPLICATE_USERNAME"), nil, nil)
	}

	stmt := `
		INSERT INTO users (username, password, first_name, last_name, email, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userReturning

	created, err := scanUser(r.db.QueryRowContext(ctx, stmt,
		u.Username,
		u.Password,
		u.FirstName,
		u.LastName,
		u.Email,
		u.IsAdmin,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert user username=%s: %w", u.Username, err)
	}

	return created, nil
}

// GetCredentials returns a user together with their password hash.
func (r *UserRepository) GetCredentials(ctx context.Context, username string) (*user.User, string, error) {
	var (
		u    user.User
		hash string
	)
	err := r.db.QueryRowContext(ctx, `SELECT `+userReturning+`, password FROM users WHERE username = $1`, username).
		Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin, &hash)
	if err != nil {
		return nil, "", notFound("users", err)
	}
	return &u, hash, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userReturning+` FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}

	return users, rows.Err()
}

// Get returns a user and the ids of the jobs they applied to.
func (r *UserRepository) Get(ctx context.Context, username string) (*user.Detail, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userReturning+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, notFound("users", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT job_id FROM applications WHERE username = $1 ORDER BY job_id`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get applications for username=%s: %w", username, err)
	}
	defer rows.Close()

	detail := &user.Detail{User: *u, Jobs: []int{}}
	for rows.Next() {
		var jobID int
		if err := rows.Scan(&jobID); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		detail.Jobs = append(detail.Jobs, jobID)
	}

	return detail, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, username string, data sqlclause.UpdateData) (*user.User, error) {
	set, err := sqlclause.BuildUpdateClause(data, userColumns)
	if err != nil {
		return nil, err
	}

	stmt := `UPDATE users SET ` + set.Fragment +
		` WHERE username = ` + set.NextPlaceholder() +
		` RETURNING ` + userReturning

	u, err := scanUser(r.db.QueryRowContext(ctx, stmt, set.Args(username)...))
	if err != nil {
		return nil, notFound("users", err)
	}
	return u, nil
}

func (r *UserRepository) Remove(ctx context.Context, username string) error {
	var deleted string
	err := r.db.QueryRowContext(ctx, `DELETE FROM users WHERE username = $1 RETURNING username`, username).Scan(&deleted)
	if err != nil {
		return notFound("users", err)
	}
	return nil
}

// ApplyToJob records that username applied to jobID. Both must exist.
func (r *UserRepository) ApplyToJob(ctx context.Context, username string, jobID int) error {
	var found int
	if err := r.db.QueryRowContext(ctx, `SELECT id FROM jobs WHERE id = $1`, jobID).Scan(&found); err != nil {
		return notFound("jobs", err)
	}

	var name string
	if err := r.db.QueryRowContext(ctx, `SELECT username FROM users WHERE username = $1`, username).Scan(&name); err != nil {
		return notFound("users", err)
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO applications (job_id, username) VALUES ($1, $2)`, jobID, username); err != nil {
		return fmt.Errorf("failed to apply username=%s to job id=%d: %w", username, jobID, err)
	}

	return nil
}
