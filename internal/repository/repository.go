// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
// Dynamic SET and WHERE bodies come from the sqlclause package; every value
// reaches the database as a bind argument.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is the part of *sql.DB (and *sql.Tx) the repositories use.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// notFound tags a missing-row error with its table so the error handler can
// name the entity ("table:companies:..." -> "Company not found").
func notFound(table string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("table:%s:%w", table, err)
	}
	return err
}

// exists reports whether query returns at least one row.
func exists(ctx context.Context, db DBTX, query string, args ...any) (bool, error) {
	var found int
	err := db.QueryRowContext(ctx, query, args...).Scan(&found)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, err
	default:
		return true, nil
	}
}

func whereClause(fragment string) string {
	if fragment == "" {
		return ""
	}
	return " WHERE " + fragment
}
