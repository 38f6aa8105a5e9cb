package mailer

import "context"

// Address is a display name plus email.
type Address struct {
	Name  string
	Email string
}

// Mailer sends transactional email. Callers treat delivery as
// best-effort: a send failure is logged and never fails the operation
// that triggered it.
type Mailer interface {
	Send(ctx context.Context, to Address, subject, plainText, html string) error
}
