package postgres

import (
	"context"

	"notification-dispatch-service/internal/recipients/core/ports"
)

type SubscriberRepository struct {
	db DB
}

func NewSubscriberRepository(db DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

var _ ports.SubscriberRepositoryPort = (*SubscriberRepository)(nil)

// SQL template
const listSubscribersSQL = `
SELECT username
FROM email_subscriptions
WHERE event_type = $1
ORDER BY username;
`

func (r *SubscriberRepository) ListSubscribers(ctx context.Context, eventType string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, listSubscribersSQL, eventType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subscribers []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		subscribers = append(subscribers, username)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subscribers, nil
}
