package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/db"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
	"github.com/yigit/campusclubs/internal/pkg/dberrors"
)

const userColumns = `u.id, u.email, u.password_hash, u.first_name, u.last_name, u.department, u.gender,
	u.profile_image, u.bio, u.interests, u.role, u.created_at, u.updated_at, u.is_deleted, u.deleted_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db db.DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool db.DBTX) *UserRepository {
	return &UserRepository{db: pool}
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Department, &u.Gender,
		&u.ProfileImage, &u.Bio, &u.Interests, &u.Role, &u.CreatedAt, &u.UpdatedAt, &u.IsDeleted, &u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user whose ID is the student number.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, department, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		user.ID, user.Email, user.Password, user.FirstName, user.LastName, user.Department, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "users_pkey"):
			return apperrors.ErrStudentNumberExists
		case dberrors.IsDuplicateConstraintError(err, "users_email_key"):
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID, banned users included
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user %d: %w", id, err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email, banned users included
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE LOWER(u.email) = LOWER($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}
	return user, nil
}

// Exists reports whether the student number or the email is taken.
func (r *UserRepository) Exists(ctx context.Context, id int64, email string) (idTaken, emailTaken bool, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT
			EXISTS(SELECT 1 FROM users WHERE id = $1),
			EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($2))`,
		id, email).Scan(&idTaken, &emailTaken)
	if err != nil {
		return false, false, fmt.Errorf("error checking user existence: %w", err)
	}
	return idTaken, emailTaken, nil
}

// UpdateProfile applies the non-nil fields of update
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (*models.User, error) {
	if update.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	q := psql.Update("users").Set("updated_at", squirrel.Expr("NOW()")).Where(squirrel.Eq{"id": id, "is_deleted": false})
	if update.FirstName != nil {
		q = q.Set("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		q = q.Set("last_name", *update.LastName)
	}
	if update.Department != nil {
		q = q.Set("department", *update.Department)
	}
	if update.ProfileImage != nil {
		q = q.Set("profile_image", *update.ProfileImage)
	}
	if update.Bio != nil {
		q = q.Set("bio", *update.Bio)
	}
	if update.Interests != nil {
		q = q.Set("interests", *update.Interests)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

// UpdatePassword replaces the password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Search matches active users by first or last name
func (r *UserRepository) Search(ctx context.Context, term string, limit int) ([]models.User, error) {
	pattern := "%" + term + "%"
	sql, args, err := psql.Select(userColumns).
		From("users u").
		Where(squirrel.Eq{"u.is_deleted": false}).
		Where(squirrel.Or{
			squirrel.ILike{"u.first_name": pattern},
			squirrel.ILike{"u.last_name": pattern},
			squirrel.Expr("(u.first_name || ' ' || u.last_name) ILIKE ?", pattern),
		}).
		OrderBy("u.first_name", "u.last_name").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return r.queryUsers(ctx, sql, args...)
}

// List returns a page of all users, banned ones included, newest first
func (r *UserRepository) List(ctx context.Context, search string, page, limit int) ([]models.User, int64, error) {
	q := psql.Select(userColumns, "COUNT(*) OVER() AS total_count").From("users u")
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"u.email": pattern},
			squirrel.ILike{"u.first_name": pattern},
			squirrel.ILike{"u.last_name": pattern},
		})
	}
	sql, args, err := q.OrderBy("u.created_at DESC", "u.id").
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

	users := []models.User{}
	var total int64
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Department, &u.Gender,
			&u.ProfileImage, &u.Bio, &u.Interests, &u.Role, &u.CreatedAt, &u.UpdatedAt, &u.IsDeleted, &u.DeletedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	if len(users) == 0 && page > 1 {
		// total is only carried on rows; count separately past the last page
		total, err = r.count(ctx, search)
		if err != nil {
			return nil, 0, err
		}
	}
	return users, total, nil
}

func (r *UserRepository) count(ctx context.Context, search string) (int64, error) {
	q := psql.Select("COUNT(*)").From("users u")
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"u.email": pattern},
			squirrel.ILike{"u.first_name": pattern},
			squirrel.ILike{"u.last_name": pattern},
		})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return total, nil
}

// SetBanned sets the ban flag. Admins are never matched.
func (r *UserRepository) SetBanned(ctx context.Context, id int64, banned bool, now time.Time) error {
	var deletedAt *time.Time
	if banned {
		deletedAt = &now
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET is_deleted = $1, deleted_at = $2, updated_at = NOW()
		WHERE id = $3 AND role <> 'admin'`,
		banned, deletedAt, id)
	if err != nil {
		return fmt.Errorf("error updating ban flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateRole changes a user's role in one transaction. Making a user
// club_admin assigns them as president of clubID, which must not already have
// a different president. Demoting to student clears every presidency.
func (r *UserRepository) UpdateRole(ctx context.Context, userID int64, role models.RoleType, clubID *int64) error {
	return db.RunInTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var current models.RoleType
		err := tx.QueryRow(ctx, `SELECT role FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrUserNotFound
			}
			return fmt.Errorf("error locking user: %w", err)
		}

		switch role {
		case models.RoleClubAdmin:
			if clubID == nil {
				return apperrors.NewBadRequestError("A club must be selected when granting club_admin")
			}
			var presidentID *int64
			var presidentName *string
			err := tx.QueryRow(ctx, `
				SELECT c.president_id, NULLIF(TRIM(COALESCE(p.first_name, '') || ' ' || COALESCE(p.last_name, '')), '')
				FROM clubs c
				LEFT JOIN users p ON p.id = c.president_id
				WHERE c.id = $1 AND c.is_deleted = FALSE
				FOR UPDATE OF c`, *clubID).Scan(&presidentID, &presidentName)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperrors.ErrClubNotFound
				}
				return fmt.Errorf("error locking club: %w", err)
			}
			if presidentID != nil && *presidentID != userID {
				name := "unknown"
				if presidentName != nil {
					name = *presidentName
				}
				return apperrors.NewBadRequestError(fmt.Sprintf("This club already has a president: %s", name))
			}
			if _, err := tx.Exec(ctx, `UPDATE clubs SET president_id = $1, updated_at = NOW() WHERE id = $2`, userID, *clubID); err != nil {
				return fmt.Errorf("error assigning president: %w", err)
			}

		case models.RoleStudent:
			if _, err := tx.Exec(ctx, `UPDATE clubs SET president_id = NULL, updated_at = NOW() WHERE president_id = $1`, userID); err != nil {
				return fmt.Errorf("error clearing presidencies: %w", err)
			}
		}

		if _, err := tx.Exec(ctx, `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, role, userID); err != nil {
			return fmt.Errorf("error updating role: %w", err)
		}
		return nil
	})
}

func (r *UserRepository) queryUsers(ctx context.Context, sql string, args ...any) ([]models.User, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
