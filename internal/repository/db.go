package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned by updates and deletes that matched no row.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// DB is the subset of *pgxpool.Pool the repositories use; pgxmock satisfies it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// conditions accumulates WHERE clauses with positional arguments.
type conditions struct {
	clauses []string
	args    []interface{}
}

// add appends a clause; expr must contain a single %d for the placeholder number.
func (c *conditions) add(expr string, arg interface{}) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, fmt.Sprintf(expr, len(c.args)))
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the clause plus the full argument list.
func (c *conditions) page(limit, offset int) (string, []interface{}) {
	args := append(append([]interface{}{}, c.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(c.args)+1, len(c.args)+2), args
}

func (c *conditions) count(ctx context.Context, db DB, from string) (int, error) {
	var total int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) "+from+c.where(), c.args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// setter accumulates SET assignments for partial updates.
type setter struct {
	sets []string
	args []interface{}
}

func (s *setter) set(column string, value interface{}) {
	s.args = append(s.args, value)
	s.sets = append(s.sets, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

func (s *setter) empty() bool { return len(s.sets) == 0 }

// clause returns "SET a = $1, b = $2" and the placeholder number for the trailing id.
func (s *setter) clause() (string, int) {
	return "SET " + strings.Join(s.sets, ", "), len(s.args) + 1
}
