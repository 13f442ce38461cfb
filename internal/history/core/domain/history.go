package domain

import "time"

// HistoryEntry is the read-side view of one recorded delivery attempt.
type HistoryEntry struct {
	ID               string
	EventID          string
	EndpointID       string
	Status           int64
	Success          bool
	InvocationTimeMs int64
	CreatedAt        time.Time
}
