package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// ResendMailer sends emails through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer creates a ResendMailer with the given API key and default
// from address ("Name <addr@domain>" form).
func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

var _ Mailer = (*ResendMailer)(nil)

// Send sends one email via Resend and returns the Resend message ID.
func (m *ResendMailer) Send(ctx context.Context, msg *Message) (string, error) {
	from := msg.From
	if from == "" {
		from = m.from
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if len(msg.Headers) > 0 {
		params.Headers = msg.Headers
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		slog.Error("resend send failed", "error", err, "to", msg.To, "subject", msg.Subject)
		return "", fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("email sent", "message_id", sent.Id, "to", msg.To, "subject", msg.Subject)
	return sent.Id, nil
}
