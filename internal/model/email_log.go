package model

import "time"

// Template name values recorded in email_logs.
const (
	TemplateThanks    = "thanks"
	TemplateImprove   = "improve"
	TemplateQuestions = "questions"
	TemplateCustom    = "custom"
)

// NamedTemplates lists the fixed outreach templates in display order.
// "custom" is deliberately excluded: custom sends carry operator-authored
// content and are never disabled on the dashboard.
var NamedTemplates = []string{TemplateThanks, TemplateImprove, TemplateQuestions}

// IsNamedTemplate reports whether name is one of the fixed outreach templates.
func IsNamedTemplate(name string) bool {
	switch name {
	case TemplateThanks, TemplateImprove, TemplateQuestions:
		return true
	}
	return false
}

// EmailLog is one row of the append-only send history. A row is written
// only after the provider accepted the email; rows are never updated.
type EmailLog struct {
	ID           string    `json:"id"`
	ContactID    string    `json:"contact_id"`
	TemplateName string    `json:"template_name"`
	Content      string    `json:"content"`
	SentAt       time.Time `json:"sent_at"`
}

// SendState is the dashboard's per-template view of a contact's history.
// When Sent is true, SentAt and Content come from the most recent matching
// log entry.
type SendState struct {
	Sent    bool       `json:"sent"`
	SentAt  *time.Time `json:"sent_at,omitempty"`
	Content string     `json:"content,omitempty"`
}

// DeriveSendStates computes the per-template send state for one contact
// from its log entries. The result always contains every named template.
// Entries need not be pre-sorted; when the same template was sent more
// than once the entry with the latest SentAt wins.
func DeriveSendStates(logs []*EmailLog) map[string]SendState {
	states := make(map[string]SendState, len(NamedTemplates))
	for _, name := range NamedTemplates {
		states[name] = SendState{}
	}
	for _, entry := range logs {
		if !IsNamedTemplate(entry.TemplateName) {
			continue
		}
		current := states[entry.TemplateName]
		if current.Sent && !entry.SentAt.After(*current.SentAt) {
			continue
		}
		sentAt := entry.SentAt
		states[entry.TemplateName] = SendState{
			Sent:    true,
			SentAt:  &sentAt,
			Content: entry.Content,
		}
	}
	return states
}
