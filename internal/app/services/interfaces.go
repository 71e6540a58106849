package services

import (
	"context"
	"time"

	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/pkg/weather"
)

// Repository contracts consumed by the services. The pgx repositories in
// internal/app/repositories satisfy them.

// UserRepository is the user store
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Exists(ctx context.Context, id int64, email string) (idTaken, emailTaken bool, err error)
	UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (*models.User, error)
	Search(ctx context.Context, term string, limit int) ([]models.User, error)
	List(ctx context.Context, search string, page, limit int) ([]models.User, int64, error)
	SetBanned(ctx context.Context, id int64, banned bool, now time.Time) error
	UpdateRole(ctx context.Context, userID int64, role models.RoleType, clubID *int64) error
}

// PasswordResetRepository stores single-use reset tokens
type PasswordResetRepository interface {
	CreateToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error
	ResetPassword(ctx context.Context, token, passwordHash string, now time.Time) error
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// ClubRepository is the club store
type ClubRepository interface {
	ListActive(ctx context.Context, page, limit int) ([]models.Club, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Club, error)
	Create(ctx context.Context, club *models.Club) error
	Update(ctx context.Context, id int64, update models.ClubUpdate) (*models.Club, error)
	AdminUpdate(ctx context.Context, id int64, update models.ClubUpdate) (*models.Club, error)
	SoftDelete(ctx context.Context, id int64) error
	Approve(ctx context.Context, id int64) (*models.Club, error)
	ListPending(ctx context.Context) ([]models.Club, error)
	ListAll(ctx context.Context) ([]models.Club, error)
	ListByPresident(ctx context.Context, userID int64) ([]models.Club, error)
}

// FollowerRepository tracks club membership
type FollowerRepository interface {
	Follow(ctx context.Context, clubID, userID int64) (bool, error)
	Unfollow(ctx context.Context, clubID, userID int64) (bool, error)
	IsFollowing(ctx context.Context, clubID, userID int64) (bool, error)
	FollowedAmong(ctx context.Context, userID int64, clubIDs []int64) (map[int64]bool, error)
	ListMembers(ctx context.Context, clubID int64) ([]models.ClubFollower, error)
	ListFollowedClubs(ctx context.Context, userID int64) ([]models.Club, error)
}

// EventRepository is the event store
type EventRepository interface {
	List(ctx context.Context, filter models.EventFilter, page, limit int) ([]models.Event, int64, error)
	ListByClub(ctx context.Context, clubID int64, page, limit int) ([]models.Event, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, id int64, update models.EventUpdate) (*models.Event, error)
	SoftDelete(ctx context.Context, id int64) error
}

// ParticipantRepository tracks event attendance
type ParticipantRepository interface {
	Join(ctx context.Context, eventID, userID int64) error
	Leave(ctx context.Context, eventID, userID int64) (bool, error)
	IsJoined(ctx context.Context, eventID, userID int64) (bool, error)
	List(ctx context.Context, eventID int64) ([]models.EventParticipant, error)
	History(ctx context.Context, userID int64) ([]models.UserEventHistory, error)
}

// CommentRepository is the comment store
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByEvent(ctx context.Context, eventID int64) ([]models.Comment, error)
	ListByUser(ctx context.Context, userID int64, page, limit int) ([]models.Comment, int64, error)
	SoftDelete(ctx context.Context, id int64) error
}

// NotificationRepository is the notification store
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	CreateForFollowers(ctx context.Context, clubID int64, eventID *int64, message string) ([]models.Notification, error)
	CreateForAllUsers(ctx context.Context, message string) ([]models.Notification, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

// StatsRepository reads dashboard counters
type StatsRepository interface {
	Get(ctx context.Context) (*models.AdminStats, error)
}

// Cache is the response cache. Implementations fail safe: a broken backend
// behaves like a miss.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) bool
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration)
	DeletePrefix(ctx context.Context, prefix string)
}

// Pusher delivers live messages to connected users
type Pusher interface {
	SendToUser(userID int64, v interface{})
}

// WeatherProvider looks up current conditions for a city
type WeatherProvider interface {
	Current(ctx context.Context, city string) (*weather.Report, error)
}

type noopCache struct{}

func (noopCache) GetJSON(context.Context, string, interface{}) bool           { return false }
func (noopCache) SetJSON(context.Context, string, interface{}, time.Duration) {}
func (noopCache) DeletePrefix(context.Context, string)                        {}

type noopPusher struct{}

func (noopPusher) SendToUser(int64, interface{}) {}

func cacheOrNoop(c Cache) Cache {
	if c == nil {
		return noopCache{}
	}
	return c
}
