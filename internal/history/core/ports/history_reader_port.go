package ports

import (
	"context"

	"notification-dispatch-service/internal/history/core/domain"
)

type HistoryFilter struct {
	From         int64 // unix second
	To           int64 // unix second
	OnlyFailures bool
	Limit        int
}

type HistoryReaderPort interface {
	QueryHistory(ctx context.Context, f HistoryFilter) ([]domain.HistoryEntry, error)
}
