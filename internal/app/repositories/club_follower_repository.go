package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/db"
)

// ClubFollowerRepository handles database operations for club followers
type ClubFollowerRepository struct {
	db db.DBTX
}

// NewClubFollowerRepository creates a new ClubFollowerRepository
func NewClubFollowerRepository(pool db.DBTX) *ClubFollowerRepository {
	return &ClubFollowerRepository{db: pool}
}

// Follow records userID as a follower of clubID. A previously left follow is
// revived. It returns false when the user already follows the club.
func (r *ClubFollowerRepository) Follow(ctx context.Context, clubID, userID int64) (bool, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO club_followers (club_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (club_id, user_id) DO UPDATE
			SET is_deleted = FALSE, deleted_at = NULL, joined_at = NOW(), updated_at = NOW()
			WHERE club_followers.is_deleted = TRUE
		RETURNING id`, clubID, userID).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("error following club: %w", err)
	}
	return true, nil
}

// Unfollow soft-deletes the follow. It returns false when there was none.
func (r *ClubFollowerRepository) Unfollow(ctx context.Context, clubID, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE club_followers SET is_deleted = TRUE, deleted_at = NOW(), updated_at = NOW()
		WHERE club_id = $1 AND user_id = $2 AND is_deleted = FALSE`, clubID, userID)
	if err != nil {
		return false, fmt.Errorf("error leaving club: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// IsFollowing checks if a user follows a club
func (r *ClubFollowerRepository) IsFollowing(ctx context.Context, clubID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM club_followers WHERE club_id = $1 AND user_id = $2 AND is_deleted = FALSE)`,
		clubID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return exists, nil
}

// FollowedAmong returns which of clubIDs userID follows
func (r *ClubFollowerRepository) FollowedAmong(ctx context.Context, userID int64, clubIDs []int64) (map[int64]bool, error) {
	followed := make(map[int64]bool)
	if len(clubIDs) == 0 {
		return followed, nil
	}

	sql, args, err := psql.Select("club_id").
		From("club_followers").
		Where(squirrel.Eq{"user_id": userID, "club_id": clubIDs, "is_deleted": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("error scanning row: %w", err)
	}
	for _, id := range ids {
		followed[id] = true
	}
	return followed, nil
}

// ListMembers returns the active followers of a club with their profiles,
// newest first
func (r *ClubFollowerRepository) ListMembers(ctx context.Context, clubID int64) ([]models.ClubFollower, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.id, f.club_id, f.user_id, f.joined_at, `+userColumns+`
		FROM club_followers f
		JOIN users u ON u.id = f.user_id
		WHERE f.club_id = $1 AND f.is_deleted = FALSE AND u.is_deleted = FALSE
		ORDER BY f.joined_at DESC`, clubID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	members := []models.ClubFollower{}
	for rows.Next() {
		var f models.ClubFollower
		var u models.User
		if err := rows.Scan(
			&f.ID, &f.ClubID, &f.UserID, &f.JoinedAt,
			&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Department, &u.Gender,
			&u.ProfileImage, &u.Bio, &u.Interests, &u.Role, &u.CreatedAt, &u.UpdatedAt, &u.IsDeleted, &u.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		f.User = &u
		members = append(members, f)
	}
	return members, rows.Err()
}

// ListFollowedClubs returns the active clubs userID follows
func (r *ClubFollowerRepository) ListFollowedClubs(ctx context.Context, userID int64) ([]models.Club, error) {
	sql, args, err := selectClubs().
		Join("club_followers cf ON cf.club_id = c.id AND cf.is_deleted = FALSE").
		Where(squirrel.Eq{"cf.user_id": userID, "c.status": models.ClubStatusActive}).
		OrderBy("cf.joined_at DESC").
		ToSql()
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
