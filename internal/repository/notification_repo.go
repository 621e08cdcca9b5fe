package repository

import (
	"context"
	"fmt"

	"car_rental/internal/model"
	"car_rental/internal/utils"

	"github.com/jackc/pgx/v5"
)

// NotificationRepository defines operations for notification data
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool, p utils.Pagination) ([]model.Notification, int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type notificationRepository struct {
	db DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db DB) NotificationRepository {
	return &notificationRepository{db: db}
}

const notificationColumns = `id, user_id, type, title, message, is_read, inquiry_id, booking_id, created_at`

func scanNotification(row pgx.Row, n *model.Notification) error {
	return row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.InquiryID, &n.BookingID, &n.CreatedAt)
}

// Create inserts a single notification row
func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	sql := `INSERT INTO notifications (id, user_id, type, title, message, is_read, inquiry_id, booking_id, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, sql, n.ID, n.UserID, string(n.Type), n.Title, n.Message, n.IsRead, n.InquiryID, n.BookingID, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListByUser returns one page of a recipient's notifications, newest first
func (r *notificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, p utils.Pagination) ([]model.Notification, int, error) {
	var conds conditions
	conds.add("user_id = $%d", userID)
	if unreadOnly {
		conds.add("is_read = $%d", false)
	}

	total, err := conds.count(ctx, r.db, "FROM notifications")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	limit, args := conds.page(p.Limit, p.Offset())
	sql := `SELECT ` + notificationColumns + ` FROM notifications` + conds.where() + ` ORDER BY created_at DESC` + limit
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := scanNotification(rows, &n); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating notification rows: %w", err)
	}
	return notifications, total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead flags one notification as read; the recipient must match
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
