package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/job-portal/internal/model"
	"github.com/iliyamo/job-portal/internal/repository"
	"github.com/iliyamo/job-portal/internal/utils"
)

// Notifier is what other services use to leave a message for a user.
type Notifier interface {
	Send(ctx context.Context, userID uint64, message string) (*model.Notification, error)
}

// NotificationService is the recipient scoped notification store.
type NotificationService struct {
	store NotificationStore
	log   *logrus.Logger
}

func NewNotificationService(store NotificationStore, log *logrus.Logger) *NotificationService {
	return &NotificationService{store: store, log: orDiscard(log)}
}

// Send stores an unread message for userID.
func (s *NotificationService) Send(ctx context.Context, userID uint64, message string) (*model.Notification, error) {
	const op = "NotificationService.Send"

	if err := requireID(op, "user", userID); err != nil {
		return nil, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, utils.InvalidInput(op, "Message is required")
	}
	n := &model.Notification{UserID: userID, Message: message}
	if err := s.store.Create(ctx, n); err != nil {
		return nil, utils.Internal(op, "failed to store notification", err)
	}
	return n, nil
}

// List returns the caller's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, id model.Identity) ([]*model.Notification, error) {
	const op = "NotificationService.List"

	if id.ID == 0 {
		return nil, utils.Unauthenticated(op, "authentication required")
	}
	list, err := s.store.ListByUser(ctx, id.ID)
	if err != nil {
		return nil, utils.Internal(op, "failed to list notifications", err)
	}
	return list, nil
}

func (s *NotificationService) owned(ctx context.Context, op string, id model.Identity, nid uint64) error {
	if err := requireID(op, "notification", nid); err != nil {
		return err
	}
	n, err := s.store.GetByID(ctx, nid)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return utils.NotFound(op, "Notification not found")
		}
		return utils.Internal(op, "failed to load notification", err)
	}
	if n.UserID != id.ID {
		return utils.Forbidden(op, "You can only manage your own notifications")
	}
	return nil
}

// MarkRead flags one of the caller's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, id model.Identity, nid uint64) (*model.Notification, error) {
	const op = "NotificationService.MarkRead"

	if err := s.owned(ctx, op, id, nid); err != nil {
		return nil, err
	}
	n, err := s.store.MarkRead(ctx, nid)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return nil, utils.NotFound(op, "Notification not found")
		}
		return nil, utils.Internal(op, "failed to update notification", err)
	}
	return n, nil
}

// Delete removes one of the caller's notifications.
func (s *NotificationService) Delete(ctx context.Context, id model.Identity, nid uint64) error {
	const op = "NotificationService.Delete"

	if err := s.owned(ctx, op, id, nid); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, nid); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return utils.NotFound(op, "Notification not found")
		}
		return utils.Internal(op, "failed to delete notification", err)
	}
	return nil
}
