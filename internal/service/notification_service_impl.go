package service

import (
	"context"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/repository"
)

const defaultNotificationLimit = 100

type notificationService struct {
	notifications repository.NotificationRepo
}

func NewNotificationService(notifications repository.NotificationRepo) NotificationService {
	return &notificationService{notifications: notifications}
}

func (s *notificationService) List(ctx context.Context, userID string, f repository.NotificationFilter) ([]*domain.Notification, error) {
	if f.Limit <= 0 {
		f.Limit = defaultNotificationLimit
	}
	return s.notifications.ListForUser(ctx, userID, f)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.notifications.MarkRead(ctx, notificationID, userID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

func (s *notificationService) UnreadCounts(ctx context.Context, userID string) (domain.UnreadCounts, error) {
	return s.notifications.UnreadCounts(ctx, userID)
}
