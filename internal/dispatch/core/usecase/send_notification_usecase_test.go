package usecase_test

import (
	"context"
	"errors"
	"testing"

	"notification-dispatch-service/internal/dispatch/core/domain"
	"notification-dispatch-service/internal/dispatch/core/usecase"
	recipients "notification-dispatch-service/internal/recipients/core/domain"

	"github.com/google/uuid"
)

// Fake resolver implementing RecipientResolver
type fakeResolver struct {
	ResolveFn    func(ctx context.Context, settings recipients.RecipientSettings) (map[string]recipients.User, error)
	lastSettings recipients.RecipientSettings
}

func (f *fakeResolver) Execute(ctx context.Context, settings recipients.RecipientSettings) (map[string]recipients.User, error) {
	f.lastSettings = settings
	if f.ResolveFn != nil {
		return f.ResolveFn(ctx, settings)
	}
	return twoRecipients(), nil
}

// Fake filter implementing RecipientFilter
type fakeFilter struct {
	FilterFn        func(settings recipients.RecipientSettings, subscribers map[string]struct{}, users map[string]recipients.User) map[string]recipients.User
	lastSubscribers map[string]struct{}
	lastUsers       map[string]recipients.User
}

func (f *fakeFilter) Execute(settings recipients.RecipientSettings, subscribers map[string]struct{}, users map[string]recipients.User) map[string]recipients.User {
	f.lastSubscribers = subscribers
	f.lastUsers = users
	if f.FilterFn != nil {
		return f.FilterFn(settings, subscribers, users)
	}
	return users
}

// Fake dispatcher implementing Dispatcher
type fakeDispatcher struct {
	DispatchFn func(ctx context.Context, in usecase.DispatchInput) (usecase.DispatchResult, error)
	calls      int
	lastInput  usecase.DispatchInput
}

func (f *fakeDispatcher) Execute(ctx context.Context, in usecase.DispatchInput) (usecase.DispatchResult, error) {
	f.calls++
	f.lastInput = in
	if f.DispatchFn != nil {
		return f.DispatchFn(ctx, in)
	}
	return usecase.DispatchResult{Outcome: domain.OutcomeDelivered}, nil
}

// Fake subscriber repository implementing SubscriberRepositoryPort
type fakeSubscriberRepo struct {
	ListFn        func(ctx context.Context, eventType string) ([]string, error)
	calls         int
	lastEventType string
}

func (f *fakeSubscriberRepo) ListSubscribers(ctx context.Context, eventType string) ([]string, error) {
	f.calls++
	f.lastEventType = eventType
	if f.ListFn != nil {
		return f.ListFn(ctx, eventType)
	}
	return nil, nil
}

func sendInput() usecase.SendNotificationInput {
	return usecase.SendNotificationInput{
		Event:           domain.Event{ID: uuid.New(), EventType: "policy-triggered"},
		Settings:        recipients.RecipientSettings{},
		SubjectTemplate: "subject-tpl",
		BodyTemplate:    "body-tpl",
		PersistHistory:  true,
		Endpoint:        domain.Endpoint{ID: uuid.New(), Name: "email"},
	}
}

// ------------------------------------------------------------
// PIPELINE WIRING
// ------------------------------------------------------------
func TestSendNotification_Pipeline(t *testing.T) {
	resolver := &fakeResolver{}
	filter := &fakeFilter{
		FilterFn: func(settings recipients.RecipientSettings, subscribers map[string]struct{}, users map[string]recipients.User) map[string]recipients.User {
			return map[string]recipients.User{"foouser": users["foouser"]}
		},
	}
	dispatcher := &fakeDispatcher{}
	subscribers := &fakeSubscriberRepo{
		ListFn: func(ctx context.Context, eventType string) ([]string, error) {
			return []string{"foouser"}, nil
		},
	}

	uc := usecase.NewSendNotificationUseCase(resolver, filter, dispatcher, subscribers)

	in := sendInput()
	result, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != domain.OutcomeDelivered {
		t.Fatalf("expected delivered, got %s", result.Outcome)
	}

	if subscribers.lastEventType != "policy-triggered" {
		t.Fatalf("expected subscriber lookup for the event type, got %q", subscribers.lastEventType)
	}
	if _, ok := filter.lastSubscribers["foouser"]; !ok {
		t.Fatalf("expected subscriber set forwarded to the filter")
	}
	if len(filter.lastUsers) != 2 {
		t.Fatalf("expected resolved candidates forwarded to the filter, got %d", len(filter.lastUsers))
	}
	if dispatcher.calls != 1 {
		t.Fatalf("expected 1 dispatch, got %d", dispatcher.calls)
	}
	if len(dispatcher.lastInput.Users) != 1 {
		t.Fatalf("expected filtered set forwarded to the dispatcher, got %d users", len(dispatcher.lastInput.Users))
	}
	if dispatcher.lastInput.SubjectTemplate != in.SubjectTemplate || !dispatcher.lastInput.PersistHistory {
		t.Fatalf("expected dispatch input fields forwarded, got %+v", dispatcher.lastInput)
	}
}

// ------------------------------------------------------------
// IGNORED PREFERENCES SKIP THE SUBSCRIBER LOOKUP
// ------------------------------------------------------------
func TestSendNotification_IgnorePreferencesSkipsLookup(t *testing.T) {
	subscribers := &fakeSubscriberRepo{}

	uc := usecase.NewSendNotificationUseCase(&fakeResolver{}, &fakeFilter{}, &fakeDispatcher{}, subscribers)

	in := sendInput()
	in.Settings.IgnoreUserPreferences = true

	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subscribers.calls != 0 {
		t.Fatalf("expected no subscriber lookup, got %d calls", subscribers.calls)
	}
}

// ------------------------------------------------------------
// RESOLVER ERROR ABORTS
// ------------------------------------------------------------
func TestSendNotification_ResolverError(t *testing.T) {
	resolver := &fakeResolver{
		ResolveFn: func(ctx context.Context, settings recipients.RecipientSettings) (map[string]recipients.User, error) {
			return nil, errors.New("directory down")
		},
	}
	dispatcher := &fakeDispatcher{}

	uc := usecase.NewSendNotificationUseCase(resolver, &fakeFilter{}, dispatcher, &fakeSubscriberRepo{})

	_, err := uc.Execute(context.Background(), sendInput())
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if dispatcher.calls != 0 {
		t.Fatalf("expected no dispatch after a resolution error, got %d", dispatcher.calls)
	}
}

// ------------------------------------------------------------
// SUBSCRIBER REPOSITORY ERROR ABORTS
// ------------------------------------------------------------
func TestSendNotification_SubscriberRepoError(t *testing.T) {
	subscribers := &fakeSubscriberRepo{
		ListFn: func(ctx context.Context, eventType string) ([]string, error) {
			return nil, errors.New("db failure")
		},
	}
	dispatcher := &fakeDispatcher{}

	uc := usecase.NewSendNotificationUseCase(&fakeResolver{}, &fakeFilter{}, dispatcher, subscribers)

	_, err := uc.Execute(context.Background(), sendInput())
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if dispatcher.calls != 0 {
		t.Fatalf("expected no dispatch after a subscriber lookup error, got %d", dispatcher.calls)
	}
}
