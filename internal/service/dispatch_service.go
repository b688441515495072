package service

import (
	"context"
	"errors"

	"github.com/contactdesk/backend/internal/model"
)

// ErrEmptyContent is returned when a custom dispatch carries no usable body.
var ErrEmptyContent = errors.New("custom content must not be empty")

// ErrNotRecorded is returned when the provider accepted the email but the
// send-log insert failed afterwards. The email is physically out while the
// dashboard will still offer the template; there is no compensating action.
var ErrNotRecorded = errors.New("email sent but not recorded in send log")

// DispatchRequest describes one outbound admin email.
// Content is only consulted when Template is "custom".
type DispatchRequest struct {
	ContactID    string
	ContactName  string
	ContactEmail string
	Template     string
	Content      string
}

// DispatchService renders, sends and logs one outreach email as a single
// logical operation. The provider call and the log insert are sequential
// side effects with no distributed transaction around them.
type DispatchService interface {
	// Dispatch sends the email and, on provider success, appends a send-log
	// entry. It returns the created entry. On provider failure no entry is
	// written and the template stays available for retry. When only the
	// insert fails the error wraps ErrNotRecorded.
	Dispatch(ctx context.Context, req DispatchRequest) (*model.EmailLog, error)
}
