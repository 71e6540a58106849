package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/db"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
	"github.com/yigit/campusclubs/internal/pkg/dberrors"
)

var eventColumns = []string{
	"e.id", "e.club_id", "e.title", "e.description", "e.image_url", "e.event_date", "e.end_time",
	"e.location", "e.capacity", "e.created_by", "e.created_at", "e.updated_at",
	"c.name AS club_name",
	"(SELECT COUNT(*) FROM event_participants ep WHERE ep.event_id = e.id AND ep.status = 'going' AND ep.is_deleted = FALSE) AS participant_count",
}

// EventRepository handles database operations for events
type EventRepository struct {
	db db.DBTX
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(pool db.DBTX) *EventRepository {
	return &EventRepository{db: pool}
}

func selectEvents(extra ...string) squirrel.SelectBuilder {
	return psql.Select(append(append([]string{}, eventColumns...), extra...)...).
		From("events e").
		Join("clubs c ON c.id = e.club_id").
		Where(squirrel.Eq{"e.is_deleted": false})
}

func scanEvent(row rowScanner, extra ...any) (*models.Event, error) {
	var e models.Event
	dest := []any{
		&e.ID, &e.ClubID, &e.Title, &e.Description, &e.ImageURL, &e.EventDate, &e.EndTime,
		&e.Location, &e.Capacity, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
		&e.ClubName, &e.ParticipantCount,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) queryPage(ctx context.Context, q squirrel.SelectBuilder) ([]models.Event, int64, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	var total int64
	for rows.Next() {
		e, err := scanEvent(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}
	return events, total, nil
}

func applyEventFilter(q squirrel.SelectBuilder, filter models.EventFilter) squirrel.SelectBuilder {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"e.title": pattern},
			squirrel.ILike{"e.description": pattern},
		})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"e.event_date": *filter.From})
	}
	if filter.ClubID != 0 {
		q = q.Where(squirrel.Eq{"e.club_id": filter.ClubID})
	}
	return q
}

// List returns a page of upcoming-first events of active clubs
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter, page, limit int) ([]models.Event, int64, error) {
	q := selectEvents("COUNT(*) OVER() AS total_count").
		Where(squirrel.Eq{"c.is_deleted": false, "c.status": models.ClubStatusActive})
	q = applyEventFilter(q, filter).
		OrderBy("e.event_date ASC", "e.id ASC").
		Limit(uint64(limit)).
		Offset(offset(page, limit))

	events, total, err := r.queryPage(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	if len(events) == 0 && page > 1 {
		total, err = r.count(ctx, applyEventFilter(
			psql.Select("COUNT(*)").From("events e").Join("clubs c ON c.id = e.club_id").
				Where(squirrel.Eq{"e.is_deleted": false, "c.is_deleted": false, "c.status": models.ClubStatusActive}),
			filter))
	}
	return events, total, err
}

// ListByClub returns a page of a club's events, newest first
func (r *EventRepository) ListByClub(ctx context.Context, clubID int64, page, limit int) ([]models.Event, int64, error) {
	q := selectEvents("COUNT(*) OVER() AS total_count").
		Where(squirrel.Eq{"e.club_id": clubID}).
		OrderBy("e.event_date DESC", "e.id DESC").
		Limit(uint64(limit)).
		Offset(offset(page, limit))

	events, total, err := r.queryPage(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	if len(events) == 0 && page > 1 {
		total, err = r.count(ctx, psql.Select("COUNT(*)").From("events e").
			Where(squirrel.Eq{"e.is_deleted": false, "e.club_id": clubID}))
	}
	return events, total, err
}

func (r *EventRepository) count(ctx context.Context, q squirrel.SelectBuilder) (int64, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}
	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting events: %w", err)
	}
	return n, nil
}

// GetByID retrieves a non-deleted event
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	sql, args, err := selectEvents().Where(squirrel.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error getting event %d: %w", id, err)
	}
	return event, nil
}

// Create inserts an event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO events (club_id, title, description, image_url, event_date, end_time, location, capacity, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		event.ClubID, event.Title, event.Description, event.ImageURL, event.EventDate, event.EndTime,
		event.Location, event.Capacity, event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrClubNotFound
		}
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of update
func (r *EventRepository) Update(ctx context.Context, id int64, update models.EventUpdate) (*models.Event, error) {
	q := psql.Update("events").Set("updated_at", squirrel.Expr("NOW()"))
	if update.Title != nil {
		q = q.Set("title", *update.Title)
	}
	if update.Description != nil {
		q = q.Set("description", *update.Description)
	}
	if update.ImageURL != nil {
		q = q.Set("image_url", *update.ImageURL)
	}
	if update.EventDate != nil {
		q = q.Set("event_date", *update.EventDate)
	}
	if update.EndTime != nil {
		q = q.Set("end_time", *update.EndTime)
	}
	if update.Location != nil {
		q = q.Set("location", *update.Location)
	}
	if update.Capacity != nil {
		q = q.Set("capacity", *update.Capacity)
	}

	sql, args, err := q.Where(squirrel.Eq{"id": id, "is_deleted": false}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error updating event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrEventNotFound
	}
	return r.GetByID(ctx, id)
}

// SoftDelete marks an event deleted
func (r *EventRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE events SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}
