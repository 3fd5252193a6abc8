package campaign

import (
	"context"
	"strings"
)

// EmailMessage is a single outbound email
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// EmailSender dispatches a single email. Implementations must be safe
// for concurrent use; bulk sends call Send from multiple goroutines.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// RenderTemplate substitutes the supported placeholders in campaign
// text. Unknown placeholders are left as-is.
func RenderTemplate(text, name, company string) string {
	r := strings.NewReplacer(
		"{{name}}", name,
		"{{company}}", company,
	)
	return r.Replace(text)
}
