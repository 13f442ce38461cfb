package postgres

import (
	"context"
	"time"

	"notification-dispatch-service/internal/history/core/domain"
	"notification-dispatch-service/internal/history/core/ports"
)

type HistoryReader struct {
	db DB
}

func NewHistoryReader(db DB) *HistoryReader {
	return &HistoryReader{db: db}
}

var _ ports.HistoryReaderPort = (*HistoryReader)(nil)

func (r *HistoryReader) QueryHistory(ctx context.Context, f ports.HistoryFilter) ([]domain.HistoryEntry, error) {
	fromTime := time.Unix(f.From, 0).UTC()
	toTime := time.Unix(f.To, 0).UTC()

	query := `
SELECT
    id,
    event_id,
    endpoint_id,
    status,
    success,
    invocation_time_ms,
    created_at
FROM notification_history
WHERE created_at BETWEEN $1 AND $2`
	args := []any{fromTime, toTime}

	if f.OnlyFailures {
		query += `
  AND success = FALSE`
	}

	query += `
ORDER BY created_at DESC
LIMIT $3`
	args = append(args, f.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.ID, &e.EventID, &e.EndpointID, &e.Status, &e.Success, &e.InvocationTimeMs, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
