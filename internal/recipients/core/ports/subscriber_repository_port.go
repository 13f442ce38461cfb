package ports

import "context"

type SubscriberRepositoryPort interface {
	// ListSubscribers returns the usernames that opted into notifications for
	// the given event type.
	ListSubscribers(ctx context.Context, eventType string) ([]string, error)
}
