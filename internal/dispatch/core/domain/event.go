package domain

import "github.com/google/uuid"

// Event is the triggering occurrence for one dispatch. Bundle and
// Application classify the event taxonomy and are consumed for metrics
// tagging only; Payload is what the templates render against.
type Event struct {
	ID          uuid.UUID
	EventType   string
	Bundle      string
	Application string
	Payload     map[string]any
}

// Endpoint identifies the delivery target configuration on whose behalf the
// dispatch runs. It ends up referenced by the history record.
type Endpoint struct {
	ID   uuid.UUID
	Name string
}
