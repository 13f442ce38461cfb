package usecase

import (
	"context"
	"errors"

	"notification-dispatch-service/internal/recipients/core/domain"
	"notification-dispatch-service/internal/recipients/core/ports"
)

var ErrInvalidPageSize = errors.New("page size must be positive")

type ResolveRecipientsUseCase struct {
	directory ports.DirectoryPort
	pageSize  int
}

func NewResolveRecipientsUseCase(directory ports.DirectoryPort, pageSize int) *ResolveRecipientsUseCase {
	return &ResolveRecipientsUseCase{directory: directory, pageSize: pageSize}
}

// Execute walks every page of the directory query selected by the settings
// and returns the accumulated candidate set keyed by username.
//
// The continuation condition re-reads the total count from the latest page.
// Concurrent upstream writes may legitimately change that count between
// pages; the drift is accepted as-is, not reconciled.
//
// Any page error aborts the whole resolution; no partial set is returned.
func (uc *ResolveRecipientsUseCase) Execute(ctx context.Context, settings domain.RecipientSettings) (map[string]domain.User, error) {
	if uc.pageSize <= 0 {
		return nil, ErrInvalidPageSize
	}

	users := make(map[string]domain.User)

	offset := 0
	for {
		page, err := uc.fetchPage(ctx, settings, offset)
		if err != nil {
			return nil, err
		}

		for _, u := range page.Elements {
			users[u.Username] = u
		}

		offset += uc.pageSize
		if offset >= page.ElementsCount {
			break
		}
	}

	// The org-wide query narrows to admins upstream; group membership has no
	// such query parameter, so narrow the accumulated set here.
	if settings.GroupID != nil && settings.OnlyAdmins {
		for username, u := range users {
			if !u.Admin {
				delete(users, username)
			}
		}
	}

	return users, nil
}

func (uc *ResolveRecipientsUseCase) fetchPage(ctx context.Context, settings domain.RecipientSettings, offset int) (*domain.Page, error) {
	if settings.GroupID != nil {
		return uc.directory.FetchGroupPage(ctx, *settings.GroupID, offset, uc.pageSize)
	}
	return uc.directory.FetchUsersPage(ctx, settings.OnlyAdmins, offset, uc.pageSize)
}
