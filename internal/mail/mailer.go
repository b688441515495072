package mail

import "context"

// Message is one outbound transactional email.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
	Headers map[string]string
}

// Mailer sends a single transactional email and returns the provider's
// message ID. Implementations do not retry; callers decide what a failed
// send means.
type Mailer interface {
	Send(ctx context.Context, msg *Message) (string, error)
}
