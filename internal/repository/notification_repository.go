package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/job-portal/internal/model"
)

const notificationColumns = "id, user_id, message, status, created_at, updated_at"

// NotificationRepo stores per-user notifications.
type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func scanNotification(s rowScanner) (*model.Notification, error) {
	var n model.Notification
	if err := s.Scan(&n.ID, &n.UserID, &n.Message, &n.Status, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create stores an unread notification for n.UserID.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO notifications (user_id, message, status) VALUES (?, ?, ?)",
		n.UserID, n.Message, model.NotificationUnread)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*n = *stored
	return nil
}

// GetByID fetches one notification.
func (r *NotificationRepo) GetByID(ctx context.Context, id uint64) (*model.Notification, error) {
	n, err := scanNotification(r.db.QueryRowContext(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotificationNotFound
	}
	return n, err
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flags a notification as read and returns it.
func (r *NotificationRepo) MarkRead(ctx context.Context, id uint64) (*model.Notification, error) {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET status = ? WHERE id = ?", model.NotificationRead, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a notification.
func (r *NotificationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM notifications WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
