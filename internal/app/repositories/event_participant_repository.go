package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/db"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
)

// EventParticipantRepository handles database operations for event participants
type EventParticipantRepository struct {
	db db.DBTX
}

// NewEventParticipantRepository creates a new EventParticipantRepository
func NewEventParticipantRepository(pool db.DBTX) *EventParticipantRepository {
	return &EventParticipantRepository{db: pool}
}

// Join adds userID as a going participant. The event row is locked so
// concurrent joins cannot exceed capacity.
func (r *EventParticipantRepository) Join(ctx context.Context, eventID, userID int64) error {
	return db.RunInTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var capacity int
		err := tx.QueryRow(ctx, `SELECT capacity FROM events WHERE id = $1 AND is_deleted = FALSE FOR UPDATE`, eventID).Scan(&capacity)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrEventNotFound
			}
			return fmt.Errorf("error locking event: %w", err)
		}

		var joined bool
		var going int
		err = tx.QueryRow(ctx, `
			SELECT
				EXISTS(SELECT 1 FROM event_participants WHERE event_id = $1 AND user_id = $2 AND is_deleted = FALSE),
				(SELECT COUNT(*) FROM event_participants WHERE event_id = $1 AND status = 'going' AND is_deleted = FALSE)`,
			eventID, userID).Scan(&joined, &going)
		if err != nil {
			return fmt.Errorf("error reading participation: %w", err)
		}
		if joined {
			return apperrors.NewBadRequestError("You have already joined this event")
		}
		if going >= capacity {
			return apperrors.NewBadRequestError("Event is full")
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO event_participants (event_id, user_id, status)
			VALUES ($1, $2, $3)
			ON CONFLICT (event_id, user_id) DO UPDATE
				SET is_deleted = FALSE, deleted_at = NULL, status = EXCLUDED.status,
				    created_at = NOW(), updated_at = NOW()`,
			eventID, userID, models.ParticipationGoing)
		if err != nil {
			return fmt.Errorf("error joining event: %w", err)
		}
		return nil
	})
}

// Leave soft-deletes the participation. It returns false when there was none.
func (r *EventParticipantRepository) Leave(ctx context.Context, eventID, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE event_participants SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
		WHERE event_id = $1 AND user_id = $2 AND is_deleted = FALSE`, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("error leaving event: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// IsJoined checks if a user participates in an event
func (r *EventParticipantRepository) IsJoined(ctx context.Context, eventID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM event_participants WHERE event_id = $1 AND user_id = $2 AND is_deleted = FALSE)`,
		eventID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return exists, nil
}

// List returns the participants of an event with their profiles
func (r *EventParticipantRepository) List(ctx context.Context, eventID int64) ([]models.EventParticipant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ep.id, ep.event_id, ep.user_id, ep.status, ep.created_at, `+userColumns+`
		FROM event_participants ep
		JOIN users u ON u.id = ep.user_id
		WHERE ep.event_id = $1 AND ep.is_deleted = FALSE
		ORDER BY ep.created_at ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	participants := []models.EventParticipant{}
	for rows.Next() {
		var p models.EventParticipant
		var u models.User
		if err := rows.Scan(
			&p.ID, &p.EventID, &p.UserID, &p.Status, &p.JoinedAt,
			&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Department, &u.Gender,
			&u.ProfileImage, &u.Bio, &u.Interests, &u.Role, &u.CreatedAt, &u.UpdatedAt, &u.IsDeleted, &u.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		p.User = &u
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// History returns the events userID is going to, newest first
func (r *EventParticipantRepository) History(ctx context.Context, userID int64) ([]models.UserEventHistory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.title, e.event_date, c.id, c.name, e.image_url, ep.created_at
		FROM event_participants ep
		JOIN events e ON e.id = ep.event_id AND e.is_deleted = FALSE
		JOIN clubs c ON c.id = e.club_id
		WHERE ep.user_id = $1 AND ep.status = $2 AND ep.is_deleted = FALSE
		ORDER BY e.event_date DESC`, userID, models.ParticipationGoing)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	history := []models.UserEventHistory{}
	for rows.Next() {
		var h models.UserEventHistory
		if err := rows.Scan(&h.EventID, &h.Title, &h.Date, &h.ClubID, &h.ClubName, &h.ImageURL, &h.JoinedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
