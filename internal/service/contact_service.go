package service

import (
	"context"

	"github.com/contactdesk/backend/internal/model"
)

// ContactService defines the business logic around contact form submissions
// and the admin dashboard's view of them.
type ContactService interface {
	// Submit stores a new contact and fires a best-effort confirmation email
	// to the submitter. A confirmation failure is logged, not returned: the
	// submission itself succeeded. contact.ID and CreatedAt are populated by
	// the implementation.
	Submit(ctx context.Context, contact *model.Contact) error

	// ListWithSendStates returns contacts newest-first, each joined with its
	// send history and the derived per-template send state.
	ListWithSendStates(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactOverview, error)

	// Get returns one contact by ID.
	Get(ctx context.Context, id string) (*model.Contact, error)

	// Emails returns the send history for one contact, newest-first.
	Emails(ctx context.Context, contactID string) ([]*model.EmailLog, error)
}
