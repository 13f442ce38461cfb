package ports

import (
	"context"
	"time"

	"notification-dispatch-service/internal/dispatch/core/domain"
)

type HistoryRepositoryPort interface {
	Insert(ctx context.Context, record *domain.HistoryRecord) error

	// DeleteCreatedBefore removes history rows created before the cutoff and
	// reports how many were deleted.
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
