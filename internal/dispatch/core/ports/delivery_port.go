package ports

import (
	"context"

	"notification-dispatch-service/internal/dispatch/core/domain"
)

type DeliveryPort interface {
	// Send issues the delivery request and returns the resulting history
	// record. When persistHistory is set the record is persisted before being
	// returned; the record itself is passed through unchanged.
	Send(ctx context.Context, event domain.Event, endpoint domain.Endpoint, payload domain.DeliveryPayload, persistHistory bool) (*domain.HistoryRecord, error)
}
