package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/contactdesk/backend/internal/mail"
	"github.com/contactdesk/backend/internal/model"
	"github.com/contactdesk/backend/internal/repository"
	"github.com/google/uuid"
)

// dispatchServiceImpl is the production implementation of DispatchService.
type dispatchServiceImpl struct {
	mailer    mail.Mailer
	logRepo   repository.EmailLogRepository
	refDomain string
}

// NewDispatchService creates a DispatchService that sends through the given
// mailer and records sends in the given repository. refDomain is used for
// the X-Entity-Ref-ID dedup header on every send.
func NewDispatchService(mailer mail.Mailer, logRepo repository.EmailLogRepository, refDomain string) DispatchService {
	return &dispatchServiceImpl{mailer: mailer, logRepo: logRepo, refDomain: refDomain}
}

// Dispatch renders the requested template, sends it via the provider and
// appends a send-log entry on provider success.
func (s *dispatchServiceImpl) Dispatch(ctx context.Context, req DispatchRequest) (*model.EmailLog, error) {
	if s.mailer == nil {
		return nil, errors.New("mail delivery is not configured")
	}

	var rendered mail.Rendered
	var err error

	switch {
	case req.Template == model.TemplateCustom:
		if strings.TrimSpace(req.Content) == "" {
			return nil, ErrEmptyContent
		}
		rendered, err = mail.RenderCustom(req.ContactName, req.Content)
	case model.IsNamedTemplate(req.Template):
		rendered, err = mail.RenderNamed(req.Template, req.ContactName)
	default:
		return nil, fmt.Errorf("%w: %q", mail.ErrUnknownTemplate, req.Template)
	}
	if err != nil {
		return nil, err
	}

	msg := &mail.Message{
		To:      []string{req.ContactEmail},
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Headers: map[string]string{
			"X-Entity-Ref-ID": uuid.NewString() + "@" + s.refDomain,
		},
	}
	if _, err := s.mailer.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("dispatch %s to contact %s: %w", req.Template, req.ContactID, err)
	}

	entry := &model.EmailLog{
		ContactID:    req.ContactID,
		TemplateName: req.Template,
		Content:      rendered.HTML,
	}
	if err := s.logRepo.Insert(ctx, entry); err != nil {
		// The email is already out. Surface a distinct error so callers can
		// tell this apart from a failed send; the dashboard will keep
		// offering the template until a later send is recorded.
		slog.Error("send log insert failed after provider success",
			"contact_id", req.ContactID, "template", req.Template, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNotRecorded, err)
	}
	return entry, nil
}
