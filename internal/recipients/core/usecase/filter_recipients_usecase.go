package usecase

import "notification-dispatch-service/internal/recipients/core/domain"

// FilterRecipientsUseCase narrows a resolved candidate set using the explicit
// username allow-list and the event-type subscriber set.
type FilterRecipientsUseCase struct{}

func NewFilterRecipientsUseCase() *FilterRecipientsUseCase {
	return &FilterRecipientsUseCase{}
}

// Execute is pure. The users argument may alias a directory response cache
// shared across dispatches, so the result is always a freshly allocated map
// and the input is never mutated.
//
// Both narrowing steps are set intersections, so their order only matters
// for efficiency. The result may be empty.
func (uc *FilterRecipientsUseCase) Execute(settings domain.RecipientSettings, subscribers map[string]struct{}, users map[string]domain.User) map[string]domain.User {
	filtered := make(map[string]domain.User, len(users))
	for username, u := range users {
		filtered[username] = u
	}

	// Candidates outside the explicit allow-list are dropped. An empty list
	// means every candidate stays in.
	if len(settings.Users) > 0 {
		allowed := make(map[string]struct{}, len(settings.Users))
		for _, username := range settings.Users {
			allowed[username] = struct{}{}
		}
		for username := range filtered {
			if _, ok := allowed[username]; !ok {
				delete(filtered, username)
			}
		}
	}

	// Unless preferences are overridden, only subscribers of the event type
	// are notified.
	if !settings.IgnoreUserPreferences {
		for username := range filtered {
			if _, ok := subscribers[username]; !ok {
				delete(filtered, username)
			}
		}
	}

	return filtered
}
