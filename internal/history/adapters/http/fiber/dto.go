package fiber

import "time"

type HistoryEntryDTO struct {
	ID               string    `json:"id"`
	EventID          string    `json:"event_id"`
	EndpointID       string    `json:"endpoint_id"`
	Status           int64     `json:"status"`
	Success          bool      `json:"success"`
	InvocationTimeMs int64     `json:"invocation_time_ms"`
	CreatedAt        time.Time `json:"created_at"`
}

type HistoryResponse struct {
	From    int64             `json:"from"`
	To      int64             `json:"to"`
	Entries []HistoryEntryDTO `json:"entries"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_time_range"`
	Message string `json:"message,omitempty"`
}
