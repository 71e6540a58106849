package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
)

// Common errors specific to authorization
var (
	ErrNotClubManager = apperrors.NewForbiddenError("Only the club president or an admin can perform this action")
	ErrAdminOnly      = apperrors.NewForbiddenError("Bu işlem için yetkiniz yok.")
)

// Actor is the caller of a request. The zero value is an anonymous visitor.
type Actor struct {
	UserID int64
	Role   models.RoleType
}

// IsAnonymous reports whether no token was presented.
func (a Actor) IsAnonymous() bool {
	return a.UserID == 0
}

// IsAdmin reports whether the caller is a platform admin.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanManageClub reports whether actor is an admin or the club's president.
func CanManageClub(actor Actor, club *models.Club) bool {
	if actor.IsAnonymous() || club == nil {
		return false
	}
	return actor.IsAdmin() || club.IsPresident(actor.UserID)
}

// ClubFinder loads clubs for ownership checks
type ClubFinder interface {
	GetByID(ctx context.Context, id int64) (*models.Club, error)
}

// AuthorizationService handles authorization operations
type AuthorizationService struct {
	clubs  ClubFinder
	logger zerolog.Logger
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(clubs ClubFinder, logger zerolog.Logger) *AuthorizationService {
	return &AuthorizationService{
		clubs:  clubs,
		logger: logger,
	}
}

// ValidateClubManager loads the club and checks that actor may manage it.
func (s *AuthorizationService) ValidateClubManager(ctx context.Context, actor Actor, clubID int64) (*models.Club, error) {
	club, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, apperrors.ErrClubNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("clubID", clubID).Msg("Error getting club in ValidateClubManager")
		return nil, fmt.Errorf("failed to check club ownership: %w", err)
	}

	if !CanManageClub(actor, club) {
		s.logger.Warn().
			Int64("clubID", clubID).
			Int64("userID", actor.UserID).
			Msg("Club management denied")
		return nil, ErrNotClubManager
	}
	return club, nil
}

// ValidateAdmin returns ErrAdminOnly unless actor is an admin.
func (s *AuthorizationService) ValidateAdmin(actor Actor) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}
