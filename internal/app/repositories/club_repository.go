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

var clubColumns = []string{
	"c.id", "c.name", "c.description", "c.image_url", "c.bg_style", "c.status",
	"c.president_id", "c.created_by", "c.created_at", "c.updated_at",
	"(SELECT COUNT(*) FROM club_followers f WHERE f.club_id = c.id AND f.is_deleted = FALSE) AS follower_count",
	"COALESCE(TRIM(p.first_name || ' ' || p.last_name), '') AS president_name",
	"COALESCE(p.email, '') AS president_email",
}

// ClubRepository handles database operations for clubs
type ClubRepository struct {
	db db.DBTX
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(pool db.DBTX) *ClubRepository {
	return &ClubRepository{db: pool}
}

func selectClubs(extra ...string) squirrel.SelectBuilder {
	return psql.Select(append(append([]string{}, clubColumns...), extra...)...).
		From("clubs c").
		LeftJoin("users p ON p.id = c.president_id").
		Where(squirrel.Eq{"c.is_deleted": false})
}

func scanClub(row rowScanner, extra ...any) (*models.Club, error) {
	var c models.Club
	dest := []any{
		&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.BgStyle, &c.Status,
		&c.PresidentID, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		&c.FollowerCount, &c.PresidentName, &c.PresidentEmail,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClubRepository) queryClubs(ctx context.Context, q squirrel.SelectBuilder) ([]models.Club, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	clubs := []models.Club{}
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		clubs = append(clubs, *c)
	}
	return clubs, rows.Err()
}

// ListActive returns a page of active clubs, newest first
func (r *ClubRepository) ListActive(ctx context.Context, page, limit int) ([]models.Club, int64, error) {
	sql, args, err := selectClubs().
		Where(squirrel.Eq{"c.status": models.ClubStatusActive}).
		OrderBy("c.created_at DESC", "c.id DESC").
		Limit(uint64(limit)).
		Offset(offset(page, limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	clubs := []models.Club{}
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		clubs = append(clubs, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	total, err := r.CountByStatus(ctx, models.ClubStatusActive)
	if err != nil {
		return nil, 0, err
	}
	return clubs, total, nil
}

// GetByID retrieves a non-deleted club
func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	sql, args, err := selectClubs().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	club, err := scanClub(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClubNotFound
		}
		return nil, fmt.Errorf("error getting club %d: %w", id, err)
	}
	return club, nil
}

// Create inserts a club
func (r *ClubRepository) Create(ctx context.Context, club *models.Club) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO clubs (name, description, image_url, bg_style, status, president_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		club.Name, club.Description, club.ImageURL, club.BgStyle, club.Status, club.PresidentID, club.CreatedBy,
	).Scan(&club.ID, &club.CreatedAt, &club.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "clubs_name_key") {
			return apperrors.ErrClubNameExists
		}
		return fmt.Errorf("error creating club: %w", err)
	}
	return nil
}

func applyClubUpdate(q squirrel.UpdateBuilder, update models.ClubUpdate) squirrel.UpdateBuilder {
	if update.Name != nil {
		q = q.Set("name", *update.Name)
	}
	if update.Description != nil {
		q = q.Set("description", *update.Description)
	}
	if update.ImageURL != nil {
		q = q.Set("image_url", *update.ImageURL)
	}
	if update.BgStyle != nil {
		q = q.Set("bg_style", *update.BgStyle)
	}
	if update.Status != nil {
		q = q.Set("status", *update.Status)
	}
	return q
}

// Update applies the descriptive fields of update. Status and president
// changes go through Approve and AdminUpdate.
func (r *ClubRepository) Update(ctx context.Context, id int64, update models.ClubUpdate) (*models.Club, error) {
	update.Status, update.PresidentID = nil, nil
	if update.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	sql, args, err := applyClubUpdate(psql.Update("clubs"), update).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_deleted": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "clubs_name_key") {
			return nil, apperrors.ErrClubNameExists
		}
		return nil, fmt.Errorf("error updating club: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrClubNotFound
	}
	return r.GetByID(ctx, id)
}

// SoftDelete marks a club deleted
func (r *ClubRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE clubs SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("error deleting club: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClubNotFound
	}
	return nil
}

// Approve activates a pending club and promotes its president from student
// to club_admin.
func (r *ClubRepository) Approve(ctx context.Context, id int64) (*models.Club, error) {
	err := db.RunInTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var status models.ClubStatus
		var presidentID *int64
		err := tx.QueryRow(ctx, `SELECT status, president_id FROM clubs WHERE id = $1 AND is_deleted = FALSE FOR UPDATE`, id).
			Scan(&status, &presidentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrClubNotFound
			}
			return fmt.Errorf("error locking club: %w", err)
		}
		if status == models.ClubStatusActive {
			return apperrors.NewBadRequestError("Club is already active")
		}

		if _, err := tx.Exec(ctx, `UPDATE clubs SET status = $1, updated_at = NOW() WHERE id = $2`, models.ClubStatusActive, id); err != nil {
			return fmt.Errorf("error approving club: %w", err)
		}
		if presidentID != nil {
			if _, err := tx.Exec(ctx, `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2 AND role = $3`,
				models.RoleClubAdmin, *presidentID, models.RoleStudent); err != nil {
				return fmt.Errorf("error promoting president: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// AdminUpdate changes any club field in one transaction. A president change
// demotes the old president to student when they preside no other club and
// promotes the new one to club_admin.
func (r *ClubRepository) AdminUpdate(ctx context.Context, id int64, update models.ClubUpdate) (*models.Club, error) {
	err := db.RunInTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var oldPresident *int64
		err := tx.QueryRow(ctx, `SELECT president_id FROM clubs WHERE id = $1 AND is_deleted = FALSE FOR UPDATE`, id).Scan(&oldPresident)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrClubNotFound
			}
			return fmt.Errorf("error locking club: %w", err)
		}

		q := applyClubUpdate(psql.Update("clubs"), update).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id})

		changePresident := update.PresidentID != nil && (oldPresident == nil || *oldPresident != *update.PresidentID)
		if changePresident {
			newID := *update.PresidentID
			var newRole models.RoleType
			err := tx.QueryRow(ctx, `SELECT role FROM users WHERE id = $1 AND is_deleted = FALSE FOR UPDATE`, newID).Scan(&newRole)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperrors.NewResourceNotFoundError("New president not found")
				}
				return fmt.Errorf("error locking new president: %w", err)
			}
			q = q.Set("president_id", newID)
		}

		sql, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsDuplicateConstraintError(err, "clubs_name_key") {
				return apperrors.ErrClubNameExists
			}
			return fmt.Errorf("error updating club: %w", err)
		}

		if !changePresident {
			return nil
		}

		if oldPresident != nil {
			if _, err := tx.Exec(ctx, `
				UPDATE users SET role = $1, updated_at = NOW()
				WHERE id = $2 AND role = $3
				  AND NOT EXISTS (SELECT 1 FROM clubs WHERE president_id = $2 AND is_deleted = FALSE)`,
				models.RoleStudent, *oldPresident, models.RoleClubAdmin); err != nil {
				return fmt.Errorf("error demoting old president: %w", err)
			}
		}
		if _, err := tx.Exec(ctx, `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2 AND role = $3`,
			models.RoleClubAdmin, *update.PresidentID, models.RoleStudent); err != nil {
			return fmt.Errorf("error promoting new president: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// ListPending returns clubs awaiting approval, oldest first
func (r *ClubRepository) ListPending(ctx context.Context) ([]models.Club, error) {
	return r.queryClubs(ctx, selectClubs().
		Where(squirrel.Eq{"c.status": models.ClubStatusPending}).
		OrderBy("c.created_at ASC", "c.id"))
}

// ListAll returns every non-deleted club
func (r *ClubRepository) ListAll(ctx context.Context) ([]models.Club, error) {
	return r.queryClubs(ctx, selectClubs().OrderBy("c.name"))
}

// ListByPresident returns the clubs userID presides
func (r *ClubRepository) ListByPresident(ctx context.Context, userID int64) ([]models.Club, error) {
	return r.queryClubs(ctx, selectClubs().
		Where(squirrel.Eq{"c.president_id": userID}).
		OrderBy("c.name"))
}

// CountByStatus counts non-deleted clubs in status
func (r *ClubRepository) CountByStatus(ctx context.Context, status models.ClubStatus) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clubs WHERE status = $1 AND is_deleted = FALSE`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting clubs: %w", err)
	}
	return n, nil
}
