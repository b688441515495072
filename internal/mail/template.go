package mail

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/contactdesk/backend/internal/model"
)

// ErrUnknownTemplate is returned when a template key is not in the catalog.
var ErrUnknownTemplate = errors.New("unknown template")

// Rendered is a fully rendered email ready to hand to a Mailer.
type Rendered struct {
	Subject string
	HTML    string
}

// Subjects for the catalog templates and the two non-catalog cases.
const (
	subjectThanks       = "Thank you for signing up!"
	subjectImprove      = "Help us improve our product"
	subjectQuestions    = "How is everything going?"
	subjectCustom       = "A message from our team"
	subjectConfirmation = "We received your message!"
)

// layout wraps every outbound email in the shared inline-styled shell.
var layout = template.Must(template.New("layout").Parse(`<html>
<body style="background-color:#ffffff;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;">
<div style="margin:0 auto;padding:20px 0 48px;width:580px;">
<h1 style="color:#1a1a1a;font-size:24px;font-weight:bold;margin:40px 0;padding:0;">{{.Heading}}</h1>
{{range .Paragraphs}}<p style="color:#4a5568;font-size:16px;line-height:24px;margin:24px 0;">{{.}}</p>
{{end}}<p style="color:#4a5568;font-size:16px;line-height:24px;margin:32px 0 0;border-top:1px solid #e2e8f0;padding-top:32px;">{{.Signature}}</p>
</div>
</body>
</html>`))

type layoutData struct {
	Heading    string
	Paragraphs []template.HTML
	Signature  template.HTML
}

// catalogEntry holds the static copy for one named template. Body paragraphs
// are written as safe HTML fragments; the contact name is escaped before
// interpolation.
type catalogEntry struct {
	subject    string
	heading    func(name string) string
	paragraphs []string
	signature  string
}

var catalog = map[string]catalogEntry{
	model.TemplateThanks: {
		subject: subjectThanks,
		heading: func(name string) string { return fmt.Sprintf("Thank you for signing up, %s!", name) },
		paragraphs: []string{
			"We're thrilled to have you as part of our community. We look forward to helping you achieve great things with our product.",
		},
		signature: "Best regards,<br>The Team",
	},
	model.TemplateImprove: {
		subject: subjectImprove,
		heading: func(name string) string { return fmt.Sprintf("Hello %s,", name) },
		paragraphs: []string{
			"We hope you're enjoying our product. We're constantly working to make it better, and your feedback would be invaluable.",
			"Could you take a moment to let us know:",
			"&bull; What features do you find most useful?<br>&bull; What could we improve?<br>&bull; What features would you like to see added?",
			"Simply reply to this email with your thoughts. We read and consider all feedback carefully.",
		},
		signature: "Thank you for your help!<br>The Team",
	},
	model.TemplateQuestions: {
		subject: subjectQuestions,
		heading: func(name string) string { return fmt.Sprintf("Hi %s,", name) },
		paragraphs: []string{
			"I wanted to check in and see how you're doing with our product. Are you finding everything you need?",
			"If you have any questions or need help with anything, please don't hesitate to reply to this email. We're here to help!",
		},
		signature: "Best regards,<br>The Team",
	},
}

// RenderNamed renders one of the catalog templates for the given contact
// name. Unknown keys (including "custom") return ErrUnknownTemplate.
func RenderNamed(key, contactName string) (Rendered, error) {
	entry, ok := catalog[key]
	if !ok {
		return Rendered{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, key)
	}

	data := layoutData{
		Heading:   entry.heading(contactName),
		Signature: template.HTML(entry.signature),
	}
	for _, p := range entry.paragraphs {
		data.Paragraphs = append(data.Paragraphs, template.HTML(p))
	}
	return render(entry.subject, data)
}

// RenderCustom renders operator-authored body text under the fixed custom
// subject. The body is escaped; blank lines split paragraphs.
func RenderCustom(contactName, body string) (Rendered, error) {
	data := layoutData{
		Heading:   fmt.Sprintf("Hi %s,", contactName),
		Signature: template.HTML("Best regards,<br>The Team"),
	}
	for _, p := range strings.Split(body, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		escaped := template.HTMLEscapeString(p)
		escaped = strings.ReplaceAll(escaped, "\n", "<br>")
		data.Paragraphs = append(data.Paragraphs, template.HTML(escaped))
	}
	return render(subjectCustom, data)
}

// RenderConfirmation renders the confirmation email sent to a submitter
// right after their form submission.
func RenderConfirmation(contactName string) (Rendered, error) {
	data := layoutData{
		Heading: fmt.Sprintf("Thank you for reaching out, %s!", contactName),
		Paragraphs: []template.HTML{
			"We've received your message and appreciate you taking the time to contact us. Our team will review your inquiry and get back to you as soon as possible.",
		},
		Signature: template.HTML("Best regards,<br>The Team"),
	}
	return render(subjectConfirmation, data)
}

func render(subject string, data layoutData) (Rendered, error) {
	var buf bytes.Buffer
	if err := layout.Execute(&buf, data); err != nil {
		return Rendered{}, fmt.Errorf("render email: %w", err)
	}
	return Rendered{Subject: subject, HTML: buf.String()}, nil
}
