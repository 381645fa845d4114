package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a row does not exist for the given
// identifier. Services translate it into their own not-found errors.
var ErrNotFound = errors.New("record not found")

// DB is the subset of pgxpool.Pool the repositories need. Narrowing the
// dependency lets pgxmock stand in for the pool in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
