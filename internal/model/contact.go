package model

import "time"

// Contact represents one submission from the public contact form.
// Contacts are created once and never updated or deleted by this service.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactListOptions carries pagination parameters for listing contacts.
type ContactListOptions struct {
	Limit  int
	Offset int
}

// ContactOverview is a Contact joined with its outreach history, as shown
// on the admin dashboard. SentTemplates always contains an entry for each
// named template key.
type ContactOverview struct {
	*Contact
	SentTemplates map[string]SendState `json:"sent_templates"`
	Emails        []*EmailLog          `json:"emails"`
}
