package db

import (
	"context"
	"database/sql"
)

// DBTX is the query surface the planner repositories depend on. Both *sql.DB
// and *sql.Tx satisfy it, so the same repository type serves standalone reads
// and the transactional writes run through UnitOfWork.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
