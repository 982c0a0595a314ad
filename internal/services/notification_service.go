package services

import (
	"context"

	"github.com/ecovibe/community/backend/internal/models"
	"github.com/ecovibe/community/backend/internal/repositories"
	"github.com/sirupsen/logrus"
)

// A recipient sees at most this many notifications in one listing.
const notificationListLimit = 50

// NotificationService owns the fan-out side of social actions: emitting notifications
// and letting recipients read and acknowledge them.
type NotificationService struct {
	notifications repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// Emit records a notification addressed to recipientID. Self-notifications are a
// no-op. Emission is a secondary side effect of a like/comment/share: a store failure
// here is logged and swallowed so it can never fail the primary operation.
func (s *NotificationService) Emit(ctx context.Context, n *models.Notification) {
	if n.RecipientID == n.SenderID {
		return
	}

	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"type":         n.Type,
			"recipient_id": n.RecipientID,
		}).Warn("notification emit failed")
	}
}

// ListNotifications returns the principal's most recent notifications (newest first,
// capped) together with the unread count.
func (s *NotificationService) ListNotifications(ctx context.Context, p models.Principal) ([]models.Notification, int64, error) {
	notifications, err := s.notifications.GetByRecipient(ctx, p.ID, notificationListLimit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.notifications.CountUnread(ctx, p.ID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

// MarkRead marks one of the principal's notifications as read. A notification that
// does not exist and one addressed to someone else are indistinguishable to the
// caller: both are ErrNotFound.
func (s *NotificationService) MarkRead(ctx context.Context, p models.Principal, id string) error {
	return s.notifications.MarkRead(ctx, id, p.ID)
}

// MarkAllRead marks all of the principal's unread notifications as read and returns
// how many were flipped.
func (s *NotificationService) MarkAllRead(ctx context.Context, p models.Principal) (int64, error) {
	return s.notifications.MarkAllRead(ctx, p.ID)
}
