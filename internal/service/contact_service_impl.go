package service

import (
	"context"
	"log/slog"

	"github.com/contactdesk/backend/internal/mail"
	"github.com/contactdesk/backend/internal/model"
	"github.com/contactdesk/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	contactRepo repository.ContactRepository
	logRepo     repository.EmailLogRepository
	mailer      mail.Mailer
}

// NewContactService creates a ContactService backed by the given
// repositories. mailer is used for the submitter confirmation email and may
// be nil to disable confirmations (local development without an API key).
func NewContactService(contactRepo repository.ContactRepository, logRepo repository.EmailLogRepository, mailer mail.Mailer) ContactService {
	return &contactServiceImpl{contactRepo: contactRepo, logRepo: logRepo, mailer: mailer}
}

// Submit stores the contact, then sends the confirmation email. The
// confirmation is best-effort: it is not tracked in the send log and its
// failure does not fail the submission.
func (s *contactServiceImpl) Submit(ctx context.Context, contact *model.Contact) error {
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return err
	}

	if s.mailer == nil {
		return nil
	}
	rendered, err := mail.RenderConfirmation(contact.Name)
	if err != nil {
		slog.Warn("confirmation render failed", "contact_id", contact.ID, "error", err)
		return nil
	}
	if _, err := s.mailer.Send(ctx, &mail.Message{
		To:      []string{contact.Email},
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
	}); err != nil {
		slog.Warn("confirmation send failed", "contact_id", contact.ID, "error", err)
	}
	return nil
}

// ListWithSendStates joins contacts with their send logs in two queries and
// derives the per-template send state for each contact.
func (s *contactServiceImpl) ListWithSendStates(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactOverview, error) {
	contacts, err := s.contactRepo.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(contacts))
	for i, c := range contacts {
		ids[i] = c.ID
	}
	logsByContact, err := s.logRepo.ListByContactIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	overviews := make([]*model.ContactOverview, len(contacts))
	for i, c := range contacts {
		logs := logsByContact[c.ID]
		if logs == nil {
			logs = []*model.EmailLog{}
		}
		overviews[i] = &model.ContactOverview{
			Contact:       c,
			SentTemplates: model.DeriveSendStates(logs),
			Emails:        logs,
		}
	}
	return overviews, nil
}

// Get returns one contact by ID.
func (s *contactServiceImpl) Get(ctx context.Context, id string) (*model.Contact, error) {
	return s.contactRepo.FindByID(ctx, id)
}

// Emails returns the send history for one contact.
func (s *contactServiceImpl) Emails(ctx context.Context, contactID string) ([]*model.EmailLog, error) {
	return s.logRepo.ListByContact(ctx, contactID)
}
