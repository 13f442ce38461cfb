package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notification-dispatch-service/internal/dispatch/core/domain"
	"notification-dispatch-service/internal/dispatch/core/ports"
	recipients "notification-dispatch-service/internal/recipients/core/domain"

	"github.com/rs/zerolog"
)

var ErrRenderFailed = errors.New("template rendering failed")

// classificationSentinel tags metric samples for events that carry no
// structured taxonomy.
const classificationSentinel = "NA"

type DispatchNotificationUseCase struct {
	renderer       ports.RendererPort
	delivery       ports.DeliveryPort
	metrics        ports.DispatchMetricsPort
	addressByEmail bool
	log            zerolog.Logger
}

func NewDispatchNotificationUseCase(
	renderer ports.RendererPort,
	delivery ports.DeliveryPort,
	metrics ports.DispatchMetricsPort,
	addressByEmail bool,
	log zerolog.Logger,
) *DispatchNotificationUseCase {
	return &DispatchNotificationUseCase{
		renderer:       renderer,
		delivery:       delivery,
		metrics:        metrics,
		addressByEmail: addressByEmail,
		log:            log,
	}
}

type DispatchInput struct {
	Users           map[string]recipients.User
	Event           domain.Event
	SubjectTemplate string
	BodyTemplate    string
	PersistHistory  bool
	Endpoint        domain.Endpoint
}

type DispatchResult struct {
	Outcome domain.Outcome
	History *domain.HistoryRecord
}

// Execute runs one dispatch attempt.
//
// An empty recipient set short-circuits before any rendering, delivery or
// metric sample. A render failure aborts the dispatch and propagates with
// zero delivery calls. A delivery failure is logged and absorbed so that one
// failing notification never aborts a batch of independent dispatches.
//
// Every attempt that reaches rendering is timed until delivery resolves,
// failure paths included, and recorded against the event's bundle and
// application tags.
func (uc *DispatchNotificationUseCase) Execute(ctx context.Context, in DispatchInput) (DispatchResult, error) {
	if len(in.Users) == 0 {
		uc.log.Debug().
			Str("event_id", in.Event.ID.String()).
			Msg("no recipients for this notification")
		return DispatchResult{Outcome: domain.OutcomeSuppressedNoRecipients}, nil
	}

	bundle := in.Event.Bundle
	if bundle == "" {
		bundle = classificationSentinel
	}
	application := in.Event.Application
	if application == "" {
		application = classificationSentinel
	}

	outcome := domain.OutcomeDelivered
	start := time.Now()
	defer func() {
		uc.metrics.RecordDispatch(ctx, time.Since(start), bundle, application, outcome)
	}()

	subject, err := uc.render(in.Event, in.SubjectTemplate)
	if err != nil {
		outcome = domain.OutcomeRenderFailed
		return DispatchResult{Outcome: outcome}, err
	}
	body, err := uc.render(in.Event, in.BodyTemplate)
	if err != nil {
		outcome = domain.OutcomeRenderFailed
		return DispatchResult{Outcome: outcome}, err
	}

	mode := domain.AddressByUsername
	if uc.addressByEmail {
		mode = domain.AddressByEmail
	}
	payload := domain.NewDeliveryPayload(mode, in.Users, subject, body)

	history, err := uc.delivery.Send(ctx, in.Event, in.Endpoint, payload, in.PersistHistory)
	if err != nil {
		outcome = domain.OutcomeSuppressedDeliveryFailure
		uc.log.Error().
			Err(err).
			Str("event_id", in.Event.ID.String()).
			Str("event_type", in.Event.EventType).
			Msg("notification delivery failed")
		return DispatchResult{Outcome: outcome, History: history}, nil
	}

	return DispatchResult{Outcome: outcome, History: history}, nil
}

func (uc *DispatchNotificationUseCase) render(event domain.Event, template string) (string, error) {
	rendered, err := uc.renderer.Render(event, template)
	if err != nil {
		uc.log.Warn().
			Err(err).
			Str("event_id", event.ID.String()).
			Str("event_type", event.EventType).
			Msg("unable to render template")
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return rendered, nil
}
