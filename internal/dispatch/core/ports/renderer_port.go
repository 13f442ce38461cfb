package ports

import "notification-dispatch-service/internal/dispatch/core/domain"

type RendererPort interface {
	// Render evaluates the template against the event payload.
	Render(event domain.Event, template string) (string, error)
}
