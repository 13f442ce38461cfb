package usecase

import (
	"context"

	"notification-dispatch-service/internal/dispatch/core/domain"
	recipients "notification-dispatch-service/internal/recipients/core/domain"
	recipientports "notification-dispatch-service/internal/recipients/core/ports"
)

type RecipientResolver interface {
	Execute(ctx context.Context, settings recipients.RecipientSettings) (map[string]recipients.User, error)
}

type RecipientFilter interface {
	Execute(settings recipients.RecipientSettings, subscribers map[string]struct{}, users map[string]recipients.User) map[string]recipients.User
}

type Dispatcher interface {
	Execute(ctx context.Context, in DispatchInput) (DispatchResult, error)
}

// SendNotificationUseCase drives the full pipeline for one event: resolve the
// candidate audience against the directory, narrow it with allow-list and
// subscription policies, then dispatch.
type SendNotificationUseCase struct {
	resolver    RecipientResolver
	filter      RecipientFilter
	dispatcher  Dispatcher
	subscribers recipientports.SubscriberRepositoryPort
}

func NewSendNotificationUseCase(
	resolver RecipientResolver,
	filter RecipientFilter,
	dispatcher Dispatcher,
	subscribers recipientports.SubscriberRepositoryPort,
) *SendNotificationUseCase {
	return &SendNotificationUseCase{
		resolver:    resolver,
		filter:      filter,
		dispatcher:  dispatcher,
		subscribers: subscribers,
	}
}

type SendNotificationInput struct {
	Event           domain.Event
	Settings        recipients.RecipientSettings
	SubjectTemplate string
	BodyTemplate    string
	PersistHistory  bool
	Endpoint        domain.Endpoint
}

// Execute returns the dispatch result. Resolution-time errors abort the whole
// operation; dispatch-time delivery errors are absorbed downstream and show
// up as a suppressed outcome instead.
func (uc *SendNotificationUseCase) Execute(ctx context.Context, in SendNotificationInput) (DispatchResult, error) {
	candidates, err := uc.resolver.Execute(ctx, in.Settings)
	if err != nil {
		return DispatchResult{}, err
	}

	// The subscriber set is irrelevant when preferences are overridden, so
	// skip the lookup entirely in that case.
	subscribers := map[string]struct{}{}
	if !in.Settings.IgnoreUserPreferences {
		names, err := uc.subscribers.ListSubscribers(ctx, in.Event.EventType)
		if err != nil {
			return DispatchResult{}, err
		}
		subscribers = make(map[string]struct{}, len(names))
		for _, name := range names {
			subscribers[name] = struct{}{}
		}
	}

	filtered := uc.filter.Execute(in.Settings, subscribers, candidates)

	return uc.dispatcher.Execute(ctx, DispatchInput{
		Users:           filtered,
		Event:           in.Event,
		SubjectTemplate: in.SubjectTemplate,
		BodyTemplate:    in.BodyTemplate,
		PersistHistory:  in.PersistHistory,
		Endpoint:        in.Endpoint,
	})
}
