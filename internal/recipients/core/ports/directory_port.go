package ports

import (
	"context"
	"errors"

	"notification-dispatch-service/internal/recipients/core/domain"

	"github.com/google/uuid"
)

var (
	// ErrDirectoryUnavailable wraps transport failures and non-2xx replies
	// from the directory service. Retries are a transport concern and do not
	// happen behind this port.
	ErrDirectoryUnavailable = errors.New("directory service unavailable")

	// ErrMalformedResponse marks a directory page that could not be parsed.
	ErrMalformedResponse = errors.New("malformed directory response")
)

type DirectoryPort interface {
	// FetchUsersPage returns one page of the organization-wide user listing.
	FetchUsersPage(ctx context.Context, adminsOnly bool, offset, limit int) (*domain.Page, error)

	// FetchGroupPage returns one page of the members of the given group.
	FetchGroupPage(ctx context.Context, groupID uuid.UUID, offset, limit int) (*domain.Page, error)
}
