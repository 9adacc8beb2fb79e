// Package sqlclause builds dynamic SQL fragments for partial updates and
// optional search filters.
//
// Every function in this package is pure: it receives plain values, returns a
// freshly allocated Clause and never touches the database, the network or a
// logger. Callers embed the returned fragment into a larger parameterized
// statement and pass Values as the bind arguments, in the same position.
package sqlclause

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ColumnMap translates an application field name (e.g. "numEmployees") into
// its storage column name (e.g. "num_employees").
//
// Fields missing from the map use their own name unchanged.
type ColumnMap map[string]string

// Column resolves the storage column for field.
func (m ColumnMap) Column(field string) string {
	if column, ok := m[field]; ok && column != "" {
		return column
	}
	return field
}

// Clause is a SQL fragment plus its ordered bind values.
//
// The number of positional placeholders in Fragment always equals
// len(Values) and placeholder $i binds Values[i-1].
type Clause struct {
	Fragment string
	Values   []any
}

// IsEmpty reports whether the clause has no fragment at all.
// An empty filter clause means "no WHERE clause", not an error.
func (c Clause) IsEmpty() bool {
	return c.Fragment == ""
}

// NextPlaceholder returns the placeholder that follows this clause, e.g. "$3"
// for a clause holding two values. Used to append trailing conditions such as
// `WHERE handle = $3`.
func (c Clause) NextPlaceholder() string {
	return Placeholder(len(c.Values) + 1)
}

// Args returns the clause values followed by extra, as a new slice.
func (c Clause) Args(extra ...any) []any {
	args := make([]any, 0, len(c.Values)+len(extra))
	args = append(args, c.Values...)
	return append(args, extra...)
}

// Placeholder renders the 1-based positional parameter marker.
func Placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// QuoteIdentifier wraps name in SQL-standard double quotes.
//
// Embedded double quotes are escaped by doubling them and NUL bytes are
// dropped, so a name can never terminate the identifier early. Dotted names
// ("c.handle") are quoted per part. name must not be empty: the result would
// be the zero-length identifier `""`, which Postgres rejects.
func QuoteIdentifier(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}
