package ports

import (
	"context"
	"time"

	"notification-dispatch-service/internal/dispatch/core/domain"
)

type DispatchMetricsPort interface {
	// RecordDispatch records the wall-clock duration of one dispatch attempt,
	// tagged by event taxonomy and outcome. Implementations must be safe for
	// concurrent use.
	RecordDispatch(ctx context.Context, elapsed time.Duration, bundle, application string, outcome domain.Outcome)
}
