package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/pkg/weather"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, id int64, email string) (bool, bool, error) {
	args := m.Called(ctx, id, email)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Search(ctx context.Context, term string, limit int) ([]models.User, error) {
	args := m.Called(ctx, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, search string, page, limit int) ([]models.User, int64, error) {
	args := m.Called(ctx, search, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) SetBanned(ctx context.Context, id int64, banned bool, now time.Time) error {
	args := m.Called(ctx, id, banned, now)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, userID int64, role models.RoleType, clubID *int64) error {
	args := m.Called(ctx, userID, role, clubID)
	return args.Error(0)
}

// MockPasswordResetRepository is a mock implementation of PasswordResetRepository.
type MockPasswordResetRepository struct {
	mock.Mock
}

func (m *MockPasswordResetRepository) CreateToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error {
	args := m.Called(ctx, userID, token, expiryDate)
	return args.Error(0)
}

func (m *MockPasswordResetRepository) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPasswordResetRepository) ResetPassword(ctx context.Context, token, passwordHash string, now time.Time) error {
	args := m.Called(ctx, token, passwordHash, now)
	return args.Error(0)
}

// MockClubRepository is a mock implementation of ClubRepository.
type MockClubRepository struct {
	mock.Mock
}

func (m *MockClubRepository) club(args mock.Arguments) (*models.Club, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Club), args.Error(1)
}

func (m *MockClubRepository) clubs(args mock.Arguments) ([]models.Club, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Club), args.Error(1)
}

func (m *MockClubRepository) ListActive(ctx context.Context, page, limit int) ([]models.Club, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Club), args.Get(1).(int64), args.Error(2)
}

func (m *MockClubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	return m.club(m.Called(ctx, id))
}

func (m *MockClubRepository) Create(ctx context.Context, club *models.Club) error {
	args := m.Called(ctx, club)
	return args.Error(0)
}

func (m *MockClubRepository) Update(ctx context.Context, id int64, update models.ClubUpdate) (*models.Club, error) {
	return m.club(m.Called(ctx, id, update))
}

func (m *MockClubRepository) AdminUpdate(ctx context.Context, id int64, update models.ClubUpdate) (*models.Club, error) {
	return m.club(m.Called(ctx, id, update))
}

func (m *MockClubRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClubRepository) Approve(ctx context.Context, id int64) (*models.Club, error) {
	return m.club(m.Called(ctx, id))
}

func (m *MockClubRepository) ListPending(ctx context.Context) ([]models.Club, error) {
	return m.clubs(m.Called(ctx))
}

func (m *MockClubRepository) ListAll(ctx context.Context) ([]models.Club, error) {
	return m.clubs(m.Called(ctx))
}

func (m *MockClubRepository) ListByPresident(ctx context.Context, userID int64) ([]models.Club, error) {
	return m.clubs(m.Called(ctx, userID))
}

// MockFollowerRepository is a mock implementation of FollowerRepository.
type MockFollowerRepository struct {
	mock.Mock
}

func (m *MockFollowerRepository) Follow(ctx context.Context, clubID, userID int64) (bool, error) {
	args := m.Called(ctx, clubID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowerRepository) Unfollow(ctx context.Context, clubID, userID int64) (bool, error) {
	args := m.Called(ctx, clubID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowerRepository) IsFollowing(ctx context.Context, clubID, userID int64) (bool, error) {
	args := m.Called(ctx, clubID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowerRepository) FollowedAmong(ctx context.Context, userID int64, clubIDs []int64) (map[int64]bool, error) {
	args := m.Called(ctx, userID, clubIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func (m *MockFollowerRepository) ListMembers(ctx context.Context, clubID int64) ([]models.ClubFollower, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ClubFollower), args.Error(1)
}

func (m *MockFollowerRepository) ListFollowedClubs(ctx context.Context, userID int64) ([]models.Club, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Club), args.Error(1)
}

// MockEventRepository is a mock implementation of EventRepository.
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) List(ctx context.Context, filter models.EventFilter, page, limit int) ([]models.Event, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Event), args.Get(1).(int64), args.Error(2)
}

func (m *MockEventRepository) ListByClub(ctx context.Context, clubID int64, page, limit int) ([]models.Event, int64, error) {
	args := m.Called(ctx, clubID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Event), args.Get(1).(int64), args.Error(2)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) Create(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) Update(ctx context.Context, id int64, update models.EventUpdate) (*models.Event, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockParticipantRepository is a mock implementation of ParticipantRepository.
type MockParticipantRepository struct {
	mock.Mock
}

func (m *MockParticipantRepository) Join(ctx context.Context, eventID, userID int64) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *MockParticipantRepository) Leave(ctx context.Context, eventID, userID int64) (bool, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockParticipantRepository) IsJoined(ctx context.Context, eventID, userID int64) (bool, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockParticipantRepository) List(ctx context.Context, eventID int64) ([]models.EventParticipant, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EventParticipant), args.Error(1)
}

func (m *MockParticipantRepository) History(ctx context.Context, userID int64) ([]models.UserEventHistory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserEventHistory), args.Error(1)
}

// MockCommentRepository is a mock implementation of CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.Comment, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByUser(ctx context.Context, userID int64, page, limit int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNotificationRepository is a mock implementation of NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) CreateForFollowers(ctx context.Context, clubID int64, eventID *int64, message string) ([]models.Notification, error) {
	args := m.Called(ctx, clubID, eventID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CreateForAllUsers(ctx context.Context, message string) ([]models.Notification, error) {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Notification, int64, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockStatsRepository is a mock implementation of StatsRepository.
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Get(ctx context.Context) (*models.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminStats), args.Error(1)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendWelcomeEmail(toEmail, toName string) error {
	args := m.Called(toEmail, toName)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordResetEmail(toEmail, token string) error {
	args := m.Called(toEmail, token)
	return args.Error(0)
}

// MockWeatherProvider is a mock implementation of WeatherProvider.
type MockWeatherProvider struct {
	mock.Mock
}

func (m *MockWeatherProvider) Current(ctx context.Context, city string) (*weather.Report, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*weather.Report), args.Error(1)
}

// recordingPusher captures live pushes.
type recordingPusher struct {
	mu    sync.Mutex
	users []int64
}

func (p *recordingPusher) SendToUser(userID int64, _ interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users = append(p.users, userID)
}

func (p *recordingPusher) pushed() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int64(nil), p.users...)
}

// memoryCache is an in-process Cache storing JSON like the redis one.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, dst interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if data, err := json.Marshal(value); err == nil {
		c.entries[key] = data
	}
}

func (c *memoryCache) DeletePrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, prefix)
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}
