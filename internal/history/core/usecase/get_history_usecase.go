package usecase

import (
	"context"
	"errors"

	"notification-dispatch-service/internal/history/core/domain"
	"notification-dispatch-service/internal/history/core/ports"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrInvalidLimit     = errors.New("invalid limit")
)

const (
	defaultLimit = 50
	maxLimit     = 1000
)

type GetHistoryInput struct {
	From         int64
	To           int64
	OnlyFailures bool
	Limit        int
}

type GetHistoryUseCase struct {
	reader ports.HistoryReaderPort
}

func NewGetHistoryUseCase(reader ports.HistoryReaderPort) *GetHistoryUseCase {
	return &GetHistoryUseCase{reader: reader}
}

func (uc *GetHistoryUseCase) Execute(ctx context.Context, in GetHistoryInput) ([]domain.HistoryEntry, error) {
	if in.From <= 0 || in.To <= 0 || in.From > in.To {
		return nil, ErrInvalidTimeRange
	}

	limit := in.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 0 || limit > maxLimit {
		return nil, ErrInvalidLimit
	}

	filter := ports.HistoryFilter{
		From:         in.From,
		To:           in.To,
		OnlyFailures: in.OnlyFailures,
		Limit:        limit,
	}

	entries, err := uc.reader.QueryHistory(ctx, filter)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
