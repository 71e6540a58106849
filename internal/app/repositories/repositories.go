package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/campusclubs/internal/pkg/helpers"
)

// psql builds postgres-flavoured statements with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	ClubRepository               *ClubRepository
	ClubFollowerRepository       *ClubFollowerRepository
	EventRepository              *EventRepository
	EventParticipantRepository   *EventParticipantRepository
	CommentRepository            *CommentRepository
	NotificationRepository       *NotificationRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
	StatsRepository              *StatsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(db),
		ClubRepository:               NewClubRepository(db),
		ClubFollowerRepository:       NewClubFollowerRepository(db),
		EventRepository:              NewEventRepository(db),
		EventParticipantRepository:   NewEventParticipantRepository(db),
		CommentRepository:            NewCommentRepository(db),
		NotificationRepository:       NewNotificationRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
		StatsRepository:              NewStatsRepository(db),
	}
}

// offset is the row offset of a 1-based page
func offset(page, limit int) uint64 {
	off, _ := helpers.CalculateOffsetLimit(page, limit)
	return off
}
