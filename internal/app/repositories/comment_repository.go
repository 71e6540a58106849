package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/db"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
	"github.com/yigit/campusclubs/internal/pkg/dberrors"
)

// CommentRepository handles database operations for event comments
type CommentRepository struct {
	db db.DBTX
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(pool db.DBTX) *CommentRepository {
	return &CommentRepository{db: pool}
}

// Create inserts a comment and fills its ID and timestamp
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO event_comments (event_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		comment.EventID, comment.UserID, comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrEventNotFound
		}
		return fmt.Errorf("error creating comment: %w", err)
	}
	return nil
}

// ListByEvent returns an event's comments with their authors, newest first.
// Authors that were removed come back without a profile.
func (r *CommentRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.Comment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT cm.id, cm.event_id, cm.user_id, cm.content, cm.created_at,
			u.first_name, u.last_name, u.department, u.profile_image
		FROM event_comments cm
		LEFT JOIN users u ON u.id = cm.user_id
		WHERE cm.event_id = $1 AND cm.is_deleted = FALSE
		ORDER BY cm.created_at DESC, cm.id DESC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		var first, last *string
		var department, photo *string
		if err := rows.Scan(&c.ID, &c.EventID, &c.UserID, &c.Content, &c.CreatedAt, &first, &last, &department, &photo); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		if first != nil {
			c.Author = &models.User{
				ID:           c.UserID,
				FirstName:    *first,
				LastName:     models.StringValue(last),
				Department:   department,
				ProfileImage: photo,
			}
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// ListByUser returns a page of a user's comments with event titles, newest first
func (r *CommentRepository) ListByUser(ctx context.Context, userID int64, page, limit int) ([]models.Comment, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM event_comments cm
		JOIN events e ON e.id = cm.event_id AND e.is_deleted = FALSE
		WHERE cm.user_id = $1 AND cm.is_deleted = FALSE`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting comments: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT cm.id, cm.event_id, cm.user_id, cm.content, cm.created_at, e.title
		FROM event_comments cm
		JOIN events e ON e.id = cm.event_id AND e.is_deleted = FALSE
		WHERE cm.user_id = $1 AND cm.is_deleted = FALSE
		ORDER BY cm.created_at DESC, cm.id DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset(page, limit))
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.EventID, &c.UserID, &c.Content, &c.CreatedAt, &c.EventTitle); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}
	return comments, total, nil
}

// SoftDelete marks a comment deleted
func (r *CommentRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE event_comments SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}
