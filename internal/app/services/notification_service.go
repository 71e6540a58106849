package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/metrics"
)

// NotificationListLimit caps the notification dropdown
const NotificationListLimit = 50

// LiveNotification is the payload pushed over the websocket
type LiveNotification struct {
	Type         string              `json:"type"`
	Notification models.Notification `json:"notification"`
}

// NotificationService stores notifications and pushes them to online users
type NotificationService struct {
	repo    NotificationRepository
	pusher  Pusher
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo NotificationRepository, pusher Pusher, m *metrics.Metrics, logger zerolog.Logger) *NotificationService {
	if pusher == nil {
		pusher = noopPusher{}
	}
	return &NotificationService{
		repo:    repo,
		pusher:  pusher,
		metrics: m,
		logger:  logger,
	}
}

func (s *NotificationService) push(kind string, notifications []models.Notification) {
	for _, n := range notifications {
		s.pusher.SendToUser(n.UserID, LiveNotification{Type: "notification", Notification: n})
	}
	s.metrics.NotificationsSent(kind, len(notifications))
}

// NotifyUser stores a notification for one user and pushes it live.
func (s *NotificationService) NotifyUser(ctx context.Context, userID int64, clubID *int64, message string) error {
	n := &models.Notification{UserID: userID, ClubID: clubID, Message: message}
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	s.push("direct", []models.Notification{*n})
	return nil
}

// NotifyFollowers fans a new-event message out to every follower of a club.
func (s *NotificationService) NotifyFollowers(ctx context.Context, clubID int64, eventID *int64, message string) (int, error) {
	created, err := s.repo.CreateForFollowers(ctx, clubID, eventID, message)
	if err != nil {
		return 0, fmt.Errorf("error notifying followers: %w", err)
	}
	s.push("event", created)
	s.logger.Info().Int64("clubID", clubID).Int("recipients", len(created)).Msg("Followers notified")
	return len(created), nil
}

// Broadcast notifies every non-deleted user.
func (s *NotificationService) Broadcast(ctx context.Context, message string) (int64, error) {
	created, err := s.repo.CreateForAllUsers(ctx, message)
	if err != nil {
		return 0, fmt.Errorf("error broadcasting notification: %w", err)
	}
	s.push("announcement", created)
	return int64(len(created)), nil
}

// List returns the caller's latest notifications, unread first.
func (s *NotificationService) List(ctx context.Context, userID int64) (*dto.NotificationListResponse, error) {
	items, unread, err := s.repo.ListByUser(ctx, userID, NotificationListLimit)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	if items == nil {
		items = []models.Notification{}
	}
	return &dto.NotificationListResponse{Notifications: items, UnreadCount: unread}, nil
}

// MarkRead marks one of the caller's notifications read.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks every unread notification of the caller read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return n, nil
}
