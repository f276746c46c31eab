package ports

import (
	"context"

	"github.com/peoplehub/recognition-system/internal/core/domain"
)

// Email is one outbound message handed to the mail delivery worker.
type Email struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// Mailer sends a single email synchronously.
type Mailer interface {
	Send(email Email) error
}

// EmailQueue accepts emails for asynchronous delivery with per-recipient
// ordering.
type EmailQueue interface {
	Enqueue(email Email)
}

// Notifier records an in-app notification and hands the email copy to the
// delivery workers. The returned error covers the notification row only:
// email delivery is asynchronous and its failures are logged and counted,
// never surfaced to the request.
type Notifier interface {
	Notify(ctx context.Context, user *domain.User, title, message, notifType string) error
}
