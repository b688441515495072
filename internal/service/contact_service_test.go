package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/contactdesk/backend/internal/mail"
	"github.com/contactdesk/backend/internal/model"
)

// ---------------------------------------------------------------------------
// mockContactRepository is an in-memory stub for testing
// ---------------------------------------------------------------------------

type mockContactRepository struct {
	saveFunc     func(ctx context.Context, contact *model.Contact) error
	listFunc     func(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error)
	findByIDFunc func(ctx context.Context, id string) (*model.Contact, error)
}

func (m *mockContactRepository) Save(ctx context.Context, contact *model.Contact) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, contact)
	}
	return nil
}

func (m *mockContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockContactRepository) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

// ---------------------------------------------------------------------------
// Submit tests
// ---------------------------------------------------------------------------

func TestContactService_Submit_SavesAndConfirms(t *testing.T) {
	var saved *model.Contact
	repo := &mockContactRepository{
		saveFunc: func(ctx context.Context, contact *model.Contact) error {
			saved = contact
			contact.ID = "c1"
			return nil
		},
	}
	mailer := &mockMailer{}
	svc := NewContactService(repo, &mockEmailLogRepository{}, mailer)

	contact := &model.Contact{Name: "Ada", Email: "ada@x.com", Message: "Hello"}
	if err := svc.Submit(context.Background(), contact); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved == nil {
		t.Fatal("expected Save to be called")
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 confirmation email, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.To[0] != "ada@x.com" {
		t.Errorf("expected confirmation to=ada@x.com, got %q", msg.To[0])
	}
	if msg.Subject != "We received your message!" {
		t.Errorf("unexpected confirmation subject %q", msg.Subject)
	}
}

// TestContactService_Submit_ConfirmationFailureIgnored verifies a failed
// confirmation send does not fail the submission.
func TestContactService_Submit_ConfirmationFailureIgnored(t *testing.T) {
	mailer := &mockMailer{
		sendFunc: func(ctx context.Context, msg *mail.Message) (string, error) {
			return "", errors.New("provider down")
		},
	}
	svc := NewContactService(&mockContactRepository{}, &mockEmailLogRepository{}, mailer)

	contact := &model.Contact{Name: "Ada", Email: "ada@x.com", Message: "Hello"}
	if err := svc.Submit(context.Background(), contact); err != nil {
		t.Errorf("expected submission to succeed despite confirmation failure, got %v", err)
	}
}

// TestContactService_Submit_NilMailer verifies confirmations are skipped
// when no mailer is configured.
func TestContactService_Submit_NilMailer(t *testing.T) {
	svc := NewContactService(&mockContactRepository{}, &mockEmailLogRepository{}, nil)

	contact := &model.Contact{Name: "Ada", Email: "ada@x.com", Message: "Hello"}
	if err := svc.Submit(context.Background(), contact); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestContactService_Submit_RepositoryError propagates save errors and
// skips the confirmation email.
func TestContactService_Submit_RepositoryError(t *testing.T) {
	repo := &mockContactRepository{
		saveFunc: func(ctx context.Context, contact *model.Contact) error {
			return errors.New("db write failed")
		},
	}
	mailer := &mockMailer{}
	svc := NewContactService(repo, &mockEmailLogRepository{}, mailer)

	err := svc.Submit(context.Background(), &model.Contact{Name: "Ada", Email: "a@b.c", Message: "Hi"})
	if err == nil {
		t.Error("expected error from repository, got nil")
	}
	if len(mailer.sent) != 0 {
		t.Error("confirmation must not be sent when the save fails")
	}
}

// ---------------------------------------------------------------------------
// ListWithSendStates tests
// ---------------------------------------------------------------------------

func TestContactService_ListWithSendStates_JoinsLogs(t *testing.T) {
	now := time.Now().UTC()
	contacts := []*model.Contact{
		{ID: "c2", Name: "Grace", Email: "grace@x.com", Message: "Hey", CreatedAt: now},
		{ID: "c1", Name: "Ada", Email: "ada@x.com", Message: "Hello", CreatedAt: now.Add(-time.Hour)},
	}
	thanksLog := &model.EmailLog{
		ID: "l1", ContactID: "c1", TemplateName: model.TemplateThanks,
		Content: "<p>thanks</p>", SentAt: now,
	}
	repo := &mockContactRepository{
		listFunc: func(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error) {
			return contacts, nil
		},
	}
	logRepo := &mockEmailLogRepository{
		listByContactIDsFunc: func(ctx context.Context, ids []string) (map[string][]*model.EmailLog, error) {
			if len(ids) != 2 || ids[0] != "c2" || ids[1] != "c1" {
				t.Errorf("expected batch lookup for [c2 c1], got %v", ids)
			}
			return map[string][]*model.EmailLog{"c1": {thanksLog}}, nil
		},
	}
	svc := NewContactService(repo, logRepo, nil)

	overviews, err := svc.ListWithSendStates(context.Background(), model.ContactListOptions{Limit: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overviews) != 2 {
		t.Fatalf("expected 2 overviews, got %d", len(overviews))
	}

	// Fresh contact: everything enabled, empty history.
	grace := overviews[0]
	for _, name := range model.NamedTemplates {
		if grace.SentTemplates[name].Sent {
			t.Errorf("expected %q enabled for fresh contact", name)
		}
	}
	if grace.Emails == nil || len(grace.Emails) != 0 {
		t.Errorf("expected empty (non-nil) history for fresh contact, got %v", grace.Emails)
	}

	// Contacted contact: thanks disabled with the sent record surfaced.
	ada := overviews[1]
	thanks := ada.SentTemplates[model.TemplateThanks]
	if !thanks.Sent {
		t.Error("expected thanks marked sent for contacted contact")
	}
	if thanks.Content != "<p>thanks</p>" {
		t.Errorf("expected sent content surfaced, got %q", thanks.Content)
	}
	if ada.SentTemplates[model.TemplateImprove].Sent || ada.SentTemplates[model.TemplateQuestions].Sent {
		t.Error("expected improve and questions to remain enabled")
	}
	if len(ada.Emails) != 1 {
		t.Errorf("expected 1 history entry, got %d", len(ada.Emails))
	}
}

// TestContactService_ListWithSendStates_RepositoryError propagates errors.
func TestContactService_ListWithSendStates_RepositoryError(t *testing.T) {
	repo := &mockContactRepository{
		listFunc: func(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error) {
			return nil, errors.New("db read failed")
		},
	}
	svc := NewContactService(repo, &mockEmailLogRepository{}, nil)

	if _, err := svc.ListWithSendStates(context.Background(), model.ContactListOptions{}); err == nil {
		t.Error("expected error from repository, got nil")
	}
}

func TestContactService_Emails_Forwards(t *testing.T) {
	want := []*model.EmailLog{{ID: "l1", ContactID: "c1", TemplateName: model.TemplateCustom}}
	logRepo := &mockEmailLogRepository{
		listByContactFunc: func(ctx context.Context, contactID string) ([]*model.EmailLog, error) {
			if contactID != "c1" {
				t.Errorf("expected contact_id=c1, got %q", contactID)
			}
			return want, nil
		},
	}
	svc := NewContactService(&mockContactRepository{}, logRepo, nil)

	got, err := svc.Emails(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "l1" {
		t.Errorf("expected %v, got %v", want, got)
	}
}
