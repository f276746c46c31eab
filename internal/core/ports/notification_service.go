package ports

import (
	"context"

	"github.com/peoplehub/recognition-system/internal/core/domain"
)

// NotificationService implements the in-app notification inbox.
type NotificationService interface {
	List(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}
