package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/peoplehub/recognition-system/internal/core/domain"
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

// Dispatcher persists in-app notifications and hands the email copy to the
// delivery workers. The notification row is written synchronously; email
// delivery is asynchronous and its failures never fail the request.
type Dispatcher struct {
	repo  ports.NotificationRepository
	queue ports.EmailQueue
	log   zerolog.Logger
}

func NewDispatcher(repo ports.NotificationRepository, queue ports.EmailQueue, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{repo: repo, queue: queue, log: log}
}

// Notify records the notification and enqueues the email. Users without an
// email address get the in-app notification only.
func (d *Dispatcher) Notify(ctx context.Context, user *domain.User, title, message, notifType string) error {
	if title == "" {
		title = "Notification"
	}

	if err := d.repo.Create(ctx, &domain.Notification{
		UserID:    user.ID,
		Title:     title,
		Message:   message,
		Type:      notifType,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	if user.Email == "" {
		d.log.Debug().Str("user_id", user.ID).Msg("no email address, in-app notification only")
		return nil
	}

	d.queue.Enqueue(ports.Email{
		To:      user.Email,
		ToName:  user.DisplayName(),
		Subject: title,
		Body:    message,
	})
	return nil
}
