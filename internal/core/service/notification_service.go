package service

import (
	"context"

	"github.com/peoplehub/recognition-system/internal/core/domain"
	"github.com/peoplehub/recognition-system/internal/core/ports"
)

type notificationService struct {
	repo ports.NotificationRepository
}

// NewNotificationService returns the inbox NotificationService.
func NewNotificationService(repo ports.NotificationRepository) ports.NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}
