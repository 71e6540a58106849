package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/db"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
)

const notificationColumns = `id, user_id, club_id, event_id, message, is_read, created_at`

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db db.DBTX
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(pool db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: pool}
}

func collectNotifications(rows pgx.Rows) ([]models.Notification, error) {
	defer rows.Close()

	out := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.ClubID, &n.EventID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Create inserts a single notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO notifications (user_id, club_id, event_id, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_read, created_at`,
		n.UserID, n.ClubID, n.EventID, n.Message,
	).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

// CreateForFollowers notifies every active follower of clubID and returns the
// inserted rows.
func (r *NotificationRepository) CreateForFollowers(ctx context.Context, clubID int64, eventID *int64, message string) ([]models.Notification, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO notifications (user_id, club_id, event_id, message)
		SELECT f.user_id, f.club_id, $2, $3
		FROM club_followers f
		JOIN users u ON u.id = f.user_id AND u.is_deleted = FALSE
		WHERE f.club_id = $1 AND f.is_deleted = FALSE
		RETURNING `+notificationColumns, clubID, eventID, message)
	if err != nil {
		return nil, fmt.Errorf("error notifying followers: %w", err)
	}
	return collectNotifications(rows)
}

// CreateForAllUsers notifies every non-banned user and returns the inserted rows.
func (r *NotificationRepository) CreateForAllUsers(ctx context.Context, message string) ([]models.Notification, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO notifications (user_id, message)
		SELECT id, $1 FROM users WHERE is_deleted = FALSE
		RETURNING `+notificationColumns, message)
	if err != nil {
		return nil, fmt.Errorf("error broadcasting notification: %w", err)
	}
	return collectNotifications(rows)
}

// ListByUser returns a user's notifications, unread first then newest, and
// the unread count.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Notification, int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE user_id = $1 AND is_deleted = FALSE
		ORDER BY is_read ASC, created_at DESC, id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	list, err := collectNotifications(rows)
	if err != nil {
		return nil, 0, err
	}

	var unread int64
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE AND is_deleted = FALSE`,
		userID).Scan(&unread)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return list, unread, nil
}

// MarkRead marks one of userID's notifications read
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE`, id, userID)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of userID read and returns how
// many changed.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE, updated_at = NOW()
		WHERE user_id = $1 AND is_read = FALSE AND is_deleted = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}
