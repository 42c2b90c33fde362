package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Querier is the read-only subset of pool operations the workout service
// uses. Both *pgxpool.Pool and pgxmock pools satisfy this interface; the
// service never executes mutating statements.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
