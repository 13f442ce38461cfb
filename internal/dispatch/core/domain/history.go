package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryRecord is the outcome artifact of one delivery attempt.
type HistoryRecord struct {
	ID             uuid.UUID
	EventID        uuid.UUID
	EndpointID     uuid.UUID
	Status         int
	Success        bool
	InvocationTime time.Duration
	Details        map[string]any
	CreatedAt      time.Time
}
