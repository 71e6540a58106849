// Package seed creates the default admin account and optional demo data.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/repositories"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
	"github.com/yigit/campusclubs/internal/pkg/auth"
)

// Demo account ids and password
const (
	DemoPresidentID int64 = 2001
	DemoStudentID   int64 = 3001
	DemoPassword          = "123456"

	weeklyMeetings = 25
)

// Options controls what gets seeded
type Options struct {
	AdminEmail         string
	AdminPassword      string
	AdminStudentNumber int64
	Demo               bool
}

// UserStore creates accounts
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
}

// ClubStore creates clubs
type ClubStore interface {
	Create(ctx context.Context, club *models.Club) error
}

// EventStore creates events
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
}

// FollowerStore records club follows
type FollowerStore interface {
	Follow(ctx context.Context, clubID, userID int64) (bool, error)
}

// Seeder writes default rows. Every step is idempotent: rows that already
// exist are left alone.
type Seeder struct {
	users     UserStore
	clubs     ClubStore
	events    EventStore
	followers FollowerStore
	logger    zerolog.Logger
	now       func() time.Time
}

// NewSeeder creates a Seeder over the application repositories.
func NewSeeder(repos *repositories.Repositories, logger zerolog.Logger) *Seeder {
	return &Seeder{
		users:     repos.UserRepository,
		clubs:     repos.ClubRepository,
		events:    repos.EventRepository,
		followers: repos.ClubFollowerRepository,
		logger:    logger,
		now:       time.Now,
	}
}

// Run creates the admin and, when requested, the demo dataset. Failures are
// collected so one bad row does not stop the rest.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	s.logger.Info().Bool("demo", opts.Demo).Msg("Checking/Creating default data...")

	var finalErr error
	adminID, err := s.ensureAdmin(ctx, opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating admin user")
		finalErr = errors.Join(finalErr, err)
	}

	if opts.Demo {
		if err := s.seedDemo(ctx, adminID); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		s.logger.Info().Msg("Default data check/creation complete.")
	}
	return finalErr
}

func (s *Seeder) ensureAdmin(ctx context.Context, opts Options) (int64, error) {
	if opts.AdminEmail == "" || opts.AdminPassword == "" {
		s.logger.Warn().Msg("Admin email or password not configured, skipping admin seed")
		return 0, nil
	}
	id := opts.AdminStudentNumber
	if id <= 0 {
		id = 1
	}

	created, err := s.ensureUser(ctx, &models.User{
		ID:        id,
		Email:     opts.AdminEmail,
		FirstName: "Sistem",
		LastName:  "Yöneticisi",
		Role:      models.RoleAdmin,
	}, opts.AdminPassword)
	if err != nil {
		return 0, err
	}
	if created {
		s.logger.Info().Str("email", opts.AdminEmail).Msg("Admin user created")
	}
	return id, nil
}

// ensureUser inserts user unless its id or email is taken, reporting whether
// a row was written.
func (s *Seeder) ensureUser(ctx context.Context, user *models.User, password string) (bool, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("error hashing password: %w", err)
	}
	user.Password = hash

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrStudentNumberExists) || errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("error creating user %d: %w", user.ID, err)
	}
	return true, nil
}

func (s *Seeder) seedDemo(ctx context.Context, adminID int64) error {
	var finalErr error
	department := func(name string) *string { return &name }

	for _, u := range []*models.User{
		{ID: DemoPresidentID, Email: "baskan@teknoloji.kulubu", FirstName: "Can", LastName: "Tekno", Role: models.RoleClubAdmin, Department: department("Bilgisayar Müh.")},
		{ID: DemoStudentID, Email: "ogrenci@univ.edu", FirstName: "Ali", LastName: "Öğrenci", Role: models.RoleStudent, Department: department("Endüstri Müh.")},
	} {
		if _, err := s.ensureUser(ctx, u, DemoPassword); err != nil {
			s.logger.Error().Err(err).Int64("userID", u.ID).Msg("Error creating demo user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	var createdBy *int64
	if adminID > 0 {
		createdBy = &adminID
	}
	presidentID, studentID := DemoPresidentID, DemoStudentID
	description := func(text string) *string { return &text }

	techClub := &models.Club{
		Name:        "Teknoloji Kulübü",
		Description: description("Yazılım ve Donanım."),
		Status:      models.ClubStatusActive,
		PresidentID: &presidentID,
		CreatedBy:   createdBy,
	}
	techCreated, err := s.ensureClub(ctx, techClub)
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if _, err := s.ensureClub(ctx, &models.Club{
		Name:        "Satranç Kulübü",
		Description: description("Zeka oyunları."),
		Status:      models.ClubStatusPending,
		PresidentID: &studentID,
		CreatedBy:   &studentID,
	}); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	// Events and follows only accompany a freshly created club so reruns do
	// not duplicate them.
	if techCreated {
		if err := s.seedEvents(ctx, techClub.ID, presidentID); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
		if _, err := s.followers.Follow(ctx, techClub.ID, studentID); err != nil {
			s.logger.Error().Err(err).Msg("Error creating demo follow")
			finalErr = errors.Join(finalErr, err)
		}
	}
	return finalErr
}

func (s *Seeder) ensureClub(ctx context.Context, club *models.Club) (bool, error) {
	if err := s.clubs.Create(ctx, club); err != nil {
		if errors.Is(err, apperrors.ErrClubNameExists) {
			return false, nil
		}
		s.logger.Error().Err(err).Str("club", club.Name).Msg("Error creating demo club")
		return false, err
	}
	s.logger.Info().Int64("clubID", club.ID).Str("club", club.Name).Msg("Demo club created")
	return true, nil
}

func (s *Seeder) seedEvents(ctx context.Context, clubID, presidentID int64) error {
	now := s.now()
	text := func(v string) *string { return &v }

	events := []*models.Event{
		{Title: "Büyük Hackathon 2025", Description: text("48 saatlik kodlama maratonu."), EventDate: now.AddDate(0, 0, 30), Location: text("Ana Kampüs"), Capacity: 100},
		{Title: "Python ile Veri Analizi", Description: text("Pandas ve NumPy eğitimi."), EventDate: now.AddDate(0, 0, 10), Location: text("Online"), Capacity: 50},
	}
	for i := 1; i <= weeklyMeetings; i++ {
		events = append(events, &models.Event{
			Title:       fmt.Sprintf("Haftalık Toplantı #%d", i),
			Description: text(fmt.Sprintf("Teknoloji kulübü haftalık olağan toplantısı %d.", i)),
			EventDate:   now.AddDate(0, 0, i),
			Location:    text("B-Blok Z06"),
			Capacity:    20,
		})
	}

	var finalErr error
	for _, e := range events {
		e.ClubID = clubID
		e.CreatedBy = &presidentID
		if err := s.events.Create(ctx, e); err != nil {
			finalErr = errors.Join(finalErr, fmt.Errorf("error creating event %q: %w", e.Title, err))
		}
	}
	if finalErr != nil {
		s.logger.Error().Err(finalErr).Msg("Error creating demo events")
	}
	return finalErr
}
