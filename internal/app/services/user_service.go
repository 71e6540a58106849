package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
	"github.com/yigit/campusclubs/internal/pkg/validation"
)

// Search limits
const (
	MinSearchLength = 2
	SearchLimit     = 10
)

// User errors
var (
	ErrProfilePhotoURL     = apperrors.NewBadRequestError("Lütfen geçerli bir resim URL'si giriniz (http/https).")
	ErrUserNotFoundMessage = apperrors.NewCustomError(apperrors.ErrUserNotFound, "Kullanıcı bulunamadı")
	ErrEmptyFullName       = apperrors.NewBadRequestError("Ad soyad boş olamaz.")
)

// UserService handles profiles, history and user search
type UserService struct {
	userRepo        UserRepository
	participantRepo ParticipantRepository
	followerRepo    FollowerRepository
	logger          zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo UserRepository, participantRepo ParticipantRepository, followerRepo FollowerRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo:        userRepo,
		participantRepo: participantRepo,
		followerRepo:    followerRepo,
		logger:          logger,
	}
}

func userNotFound(err error) error {
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return ErrUserNotFoundMessage
	}
	return err
}

// History returns the events the user is going to or attended, newest first.
func (s *UserService) History(ctx context.Context, userID int64) (*dto.HistoryResponse, error) {
	history, err := s.participantRepo.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading history: %w", err)
	}
	if history == nil {
		history = []models.UserEventHistory{}
	}
	return &dto.HistoryResponse{History: history}, nil
}

func (s *UserService) activities(ctx context.Context, userID int64) (dto.Activities, error) {
	history, err := s.participantRepo.History(ctx, userID)
	if err != nil {
		return dto.Activities{}, fmt.Errorf("error loading history: %w", err)
	}
	clubs, err := s.followerRepo.ListFollowedClubs(ctx, userID)
	if err != nil {
		return dto.Activities{}, fmt.Errorf("error loading followed clubs: %w", err)
	}

	out := dto.Activities{
		ParticipatedEvents: make([]dto.ActivityEvent, 0, len(history)),
		FollowedClubs:      make([]dto.ActivityClub, 0, len(clubs)),
	}
	for _, h := range history {
		out.ParticipatedEvents = append(out.ParticipatedEvents, dto.ActivityEvent{
			ID:       h.EventID,
			Title:    h.Title,
			Date:     h.Date,
			ClubName: h.ClubName,
			ImageURL: models.StringValue(h.ImageURL),
		})
	}
	for _, c := range clubs {
		out.FollowedClubs = append(out.FollowedClubs, dto.ActivityClub{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

// Profile returns the caller's own profile with activities.
func (s *UserService) Profile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, userNotFound(err)
	}
	activities, err := s.activities(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileResponse{Profile: dto.NewUserProfile(user, true), Activities: activities}, nil
}

// PublicProfile returns another user's profile without the email. Banned
// users are hidden.
func (s *UserService) PublicProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, userNotFound(err)
	}
	if user.IsBanned() {
		return nil, ErrUserNotFoundMessage
	}
	activities, err := s.activities(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileResponse{Profile: dto.NewUserProfile(user, false), Activities: activities}, nil
}

// UpdateProfile applies a partial self-edit.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserProfile, error) {
	update := models.ProfileUpdate{
		Bio:        req.Bio,
		Interests:  req.Interests,
		Department: req.Department,
	}

	if req.FullName != nil {
		first, last := models.SplitFullName(*req.FullName)
		if first == "" {
			return nil, ErrEmptyFullName
		}
		update.FirstName, update.LastName = &first, &last
	}
	if req.ProfilePhoto != nil {
		photo := strings.TrimSpace(*req.ProfilePhoto)
		if !validation.IsImageURL(photo) {
			return nil, ErrProfilePhotoURL
		}
		update.ProfileImage = &photo
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, userNotFound(err)
	}
	s.logger.Info().Int64("userID", userID).Msg("Profile updated")

	profile := dto.NewUserProfile(user, true)
	return &profile, nil
}

// Search finds up to SearchLimit users by name. Short queries return nothing.
func (s *UserService) Search(ctx context.Context, query string) (*dto.UserSearchResponse, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSearchLength {
		return &dto.UserSearchResponse{Users: []dto.UserSearchItem{}}, nil
	}

	users, err := s.userRepo.Search(ctx, query, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("error searching users: %w", err)
	}
	items := make([]dto.UserSearchItem, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserSearchItem(&users[i]))
	}
	return &dto.UserSearchResponse{Users: items}, nil
}
