package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"car_rental/internal/logger"
	"car_rental/internal/metrics"
	"car_rental/internal/model"
	"car_rental/internal/repository"
	"car_rental/internal/utils"

	"github.com/google/uuid"
)

// NotificationService writes workflow notifications and serves them back to recipients.
type NotificationService interface {
	NotifyAdmins(ctx context.Context, draft model.NotificationDraft) int
	NotifyUser(ctx context.Context, userID string, draft model.NotificationDraft) int
	List(ctx context.Context, userID string, unreadOnly bool, p utils.Pagination) (utils.PageResult[model.Notification], error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type notificationService struct {
	repo     repository.NotificationRepository
	profiles repository.ProfileRepository
	log      logger.ILogger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo repository.NotificationRepository, profiles repository.ProfileRepository, log logger.ILogger) NotificationService {
	return &notificationService{repo: repo, profiles: profiles, log: log}
}

// NotifyAdmins writes one notification per admin profile and returns how many were written.
// Failures are logged and never returned.
func (s *notificationService) NotifyAdmins(ctx context.Context, draft model.NotificationDraft) int {
	admins, err := s.profiles.FindByRole(ctx, model.RoleAdmin)
	if err != nil {
		s.log.Error("failed to load admin recipients",
			logger.String("type", string(draft.Type)), logger.Error(err))
		metrics.NotificationsFailed.WithLabelValues(string(draft.Type)).Inc()
		return 0
	}
	recipients := make([]string, 0, len(admins))
	for _, a := range admins {
		recipients = append(recipients, a.ID)
	}
	return s.notify(ctx, recipients, draft)
}

// NotifyUser writes a single notification for userID.
func (s *notificationService) NotifyUser(ctx context.Context, userID string, draft model.NotificationDraft) int {
	return s.notify(ctx, []string{userID}, draft)
}

func (s *notificationService) notify(ctx context.Context, recipients []string, draft model.NotificationDraft) int {
	written := 0
	for _, userID := range recipients {
		n := &model.Notification{
			ID:        uuid.NewString(),
			UserID:    userID,
			Type:      draft.Type,
			Title:     draft.Title,
			Message:   draft.Message,
			InquiryID: draft.InquiryID,
			BookingID: draft.BookingID,
			CreatedAt: time.Now(),
		}
		if err := s.repo.Create(ctx, n); err != nil {
			s.log.Error("failed to write notification",
				logger.String("recipient", userID),
				logger.String("type", string(draft.Type)),
				logger.Error(err))
			metrics.NotificationsFailed.WithLabelValues(string(draft.Type)).Inc()
			continue
		}
		metrics.NotificationsWritten.WithLabelValues(string(draft.Type)).Inc()
		written++
	}
	return written
}

func (s *notificationService) List(ctx context.Context, userID string, unreadOnly bool, p utils.Pagination) (utils.PageResult[model.Notification], error) {
	items, total, err := s.repo.ListByUser(ctx, userID, unreadOnly, p)
	if err != nil {
		return utils.PageResult[model.Notification]{}, fmt.Errorf("failed to list notifications: %w", err)
	}
	return utils.NewPageResult(items, total, p), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead only touches the caller's own notification; anything else is ErrNotFound
func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return n, nil
}
