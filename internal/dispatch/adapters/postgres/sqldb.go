package postgres

import (
	"context"
	"database/sql"
)

// sqlDB narrows a shared *sql.DB pool to the exec-only DB surface.
type sqlDB struct {
	pool *sql.DB
}

func NewSQLDB(pool *sql.DB) DB {
	return &sqlDB{pool: pool}
}

func (s *sqlDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.pool.ExecContext(ctx, query, args...)
}
