package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	authz "github.com/yigit/campusclubs/internal/app/auth"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
	"github.com/yigit/campusclubs/internal/pkg/helpers"
)

// Admin errors
var (
	ErrBanAdmin        = apperrors.NewBadRequestError("Bir admin yasaklanamaz.")
	ErrInvalidRole     = apperrors.NewBadRequestError("Geçersiz rol tanımlaması.")
	ErrEmptyAnnounce   = apperrors.NewBadRequestError("Duyuru metni boş olamaz.")
	ErrAdminUserLookup = apperrors.NewCustomError(apperrors.ErrUserNotFound, "Kullanıcı bulunamadı.")
)

// AnnouncementMessage prefixes a global announcement
func AnnouncementMessage(message string) string {
	return "📢 DUYURU: " + message
}

// AdminService handles the admin dashboard
type AdminService struct {
	userRepo      UserRepository
	statsRepo     StatsRepository
	notifications *NotificationService
	logger        zerolog.Logger
	now           func() time.Time
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo UserRepository, statsRepo StatsRepository, notifications *NotificationService, logger zerolog.Logger) *AdminService {
	return &AdminService{
		userRepo:      userRepo,
		statsRepo:     statsRepo,
		notifications: notifications,
		logger:        logger,
		now:           time.Now,
	}
}

// Stats returns the dashboard counters.
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	stats, err := s.statsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading stats: %w", err)
	}
	return stats, nil
}

// Users returns a page of users, banned ones included.
func (s *AdminService) Users(ctx context.Context, search string, page, limit int) (*dto.AdminUserListResponse, error) {
	users, total, err := s.userRepo.List(ctx, strings.TrimSpace(search), page, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	items := make([]dto.AdminUser, 0, len(users))
	for i := range users {
		items = append(items, dto.NewAdminUser(&users[i]))
	}
	return &dto.AdminUserListResponse{Users: items, Pagination: helpers.NewPaginationInfo(total, page, limit)}, nil
}

// User returns one user, banned or not.
func (s *AdminService) User(ctx context.Context, id int64) (*dto.AdminUser, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, adminUserNotFound(err)
	}
	out := dto.NewAdminUser(user)
	return &out, nil
}

func adminUserNotFound(err error) error {
	if apperrors.Is(err, apperrors.ErrUserNotFound) {
		return ErrAdminUserLookup
	}
	return err
}

// ToggleBan flips a user's ban flag. Admins cannot be banned.
func (s *AdminService) ToggleBan(ctx context.Context, actor authz.Actor, id int64) (*dto.BanResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, adminUserNotFound(err)
	}
	if user.Role == models.RoleAdmin {
		return nil, ErrBanAdmin
	}

	banned := !user.IsBanned()
	if err := s.userRepo.SetBanned(ctx, id, banned, s.now()); err != nil {
		return nil, adminUserNotFound(err)
	}

	status := "erişime açıldı"
	if banned {
		status = "yasaklandı"
	}
	s.logger.Info().Int64("userID", id).Bool("banned", banned).Int64("adminID", actor.UserID).Msg("User ban toggled")
	return &dto.BanResponse{Message: fmt.Sprintf("Kullanıcı başarıyla %s.", status), IsBanned: banned}, nil
}

// UpdateRole changes a user's role. club_admin binds the user to a club as
// president; student clears every presidency.
func (s *AdminService) UpdateRole(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateRoleRequest) (string, error) {
	role := models.RoleType(strings.TrimSpace(req.Role))
	if !role.IsValid() {
		return "", ErrInvalidRole
	}

	if err := s.userRepo.UpdateRole(ctx, id, role, req.ClubID); err != nil {
		return "", clubNotFound(adminUserNotFound(err))
	}

	s.logger.Info().Int64("userID", id).Str("role", string(role)).Int64("adminID", actor.UserID).Msg("User role changed")
	return fmt.Sprintf("Kullanıcı rolü başarıyla %s olarak güncellendi.", role), nil
}

// Announce notifies every user.
func (s *AdminService) Announce(ctx context.Context, actor authz.Actor, message string) (*dto.AnnounceResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyAnnounce
	}

	n, err := s.notifications.Broadcast(ctx, AnnouncementMessage(message))
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("recipients", n).Int64("adminID", actor.UserID).Msg("Announcement sent")
	return &dto.AnnounceResponse{Message: fmt.Sprintf("Duyuru %d kişiye iletildi", n), Recipients: n}, nil
}
