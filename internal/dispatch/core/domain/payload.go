package domain

import (
	"sort"

	recipients "notification-dispatch-service/internal/recipients/core/domain"
)

// AddressMode selects how delivery recipients are addressed.
type AddressMode string

const (
	// AddressByEmail puts raw email addresses on the BCC list.
	AddressByEmail AddressMode = "email"

	// AddressByUsername puts usernames on the BCC list, leaving address
	// resolution to the delivery channel.
	AddressByUsername AddressMode = "username"
)

const BodyTypeHTML = "html"

// DeliveryPayload is the shaped outbound message. Recipients always ride as
// blind carbon copy so they cannot discover each other.
type DeliveryPayload struct {
	Mode     AddressMode
	Subject  string
	Body     string
	BodyType string
	BCC      []string
}

// NewDeliveryPayload shapes the payload once, at dispatch start, for the
// given addressing mode. The BCC list is sorted so the wire body is stable.
func NewDeliveryPayload(mode AddressMode, users map[string]recipients.User, subject, body string) DeliveryPayload {
	bcc := make([]string, 0, len(users))
	for _, u := range users {
		if mode == AddressByEmail {
			bcc = append(bcc, u.Email)
		} else {
			bcc = append(bcc, u.Username)
		}
	}
	sort.Strings(bcc)

	return DeliveryPayload{
		Mode:     mode,
		Subject:  subject,
		Body:     body,
		BodyType: BodyTypeHTML,
		BCC:      bcc,
	}
}
