package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the query surface repositories run against. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so the same repository code serves
// pooled queries, transactions, and pgxmock in tests.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxStarter is a Database that can open transactions (the pool, not a tx).
type TxStarter interface {
	Database
	Begin(ctx context.Context) (pgx.Tx, error)
}
