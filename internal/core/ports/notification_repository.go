package ports

import (
	"context"

	"github.com/peoplehub/recognition-system/internal/core/domain"
)

// NotificationRepository defines persistence operations for in-app
// notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	// MarkRead flips is_read for a notification owned by userID, returning
	// domain.ErrNotificationNotFound when the id does not belong to them.
	MarkRead(ctx context.Context, id, userID string) error
}
