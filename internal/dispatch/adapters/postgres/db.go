package postgres

import (
	"context"
	"database/sql"
)

// DB is the write-only surface the history repository needs: inserts and
// retention deletes both go through ExecContext.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
