package postgres

import (
	"context"
	"encoding/json"
	"time"

	"notification-dispatch-service/internal/dispatch/core/domain"
	"notification-dispatch-service/internal/dispatch/core/ports"
)

type HistoryRepository struct {
	db DB
}

func NewHistoryRepository(db DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

var _ ports.HistoryRepositoryPort = (*HistoryRepository)(nil)

// SQL templates
const insertHistorySQL = `
INSERT INTO notification_history (
    id,
    event_id,
    endpoint_id,
    status,
    success,
    invocation_time_ms,
    details,
    created_at
) VALUES (
    $1, $2, $3, $4,
    $5, $6, $7, $8
);
`

const deleteHistorySQL = `
DELETE FROM notification_history
WHERE created_at < $1;
`

func (r *HistoryRepository) Insert(ctx context.Context, record *domain.HistoryRecord) error {
	detailsJSON, err := json.Marshal(record.Details)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, insertHistorySQL,
		record.ID,
		record.EventID,
		record.EndpointID,
		record.Status,
		record.Success,
		record.InvocationTime.Milliseconds(),
		detailsJSON,
		record.CreatedAt,
	)
	return err
}

func (r *HistoryRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteHistorySQL, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
