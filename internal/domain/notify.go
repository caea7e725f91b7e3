package domain

import "context"

// Notifier posts an operational message to an external sink (e.g. a Telegram
// chat). Best-effort: callers dispatch after the primary operation commits and
// must never fail the operation on a notifier error.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}
