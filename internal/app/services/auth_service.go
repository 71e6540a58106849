package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
	"github.com/yigit/campusclubs/internal/pkg/auth"
	"github.com/yigit/campusclubs/internal/pkg/mail"
)

// Auth messages shown to the user
const (
	MsgForgotPassword  = "Eğer hesap mevcutsa sıfırlama maili gönderilecektir."
	MsgPasswordChanged = "Şifreniz başarıyla güncellendi. Giriş yapabilirsiniz."
)

// DefaultResetTokenTTL is how long a password reset link stays valid
const DefaultResetTokenTTL = 30 * time.Minute

const resetTokenBytes = 32

// Define custom error types for auth service
var (
	ErrCredentials       = apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "E-posta veya şifre hatalı.")
	ErrAccountBanned     = apperrors.NewCustomError(apperrors.ErrUserBanned, "Hesabınız askıya alınmıştır.")
	ErrLoginRoleMismatch = apperrors.NewCustomError(apperrors.ErrRoleMismatch, "Bu alan için yetkiniz bulunmamaktadır.")
	ErrAccountTaken      = apperrors.NewCustomError(apperrors.ErrConflict, "Bu öğrenci numarası veya e-posta adresi zaten kullanımda.")
	ErrResetToken        = apperrors.NewCustomError(apperrors.ErrInvalidPasswordResetToken, "Geçersiz, kullanılmış veya süresi dolmuş token.")
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   UserRepository
	resetRepo  PasswordResetRepository
	jwtService *auth.JWTService
	mailer     mail.Mailer
	resetTTL   time.Duration
	logger     zerolog.Logger

	now func() time.Time
	// async runs fire-and-forget work such as mail delivery
	async func(func())
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo UserRepository,
	resetRepo PasswordResetRepository,
	jwtService *auth.JWTService,
	mailer mail.Mailer,
	resetTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if resetTTL <= 0 {
		resetTTL = DefaultResetTokenTTL
	}
	return &AuthService{
		userRepo:   userRepo,
		resetRepo:  resetRepo,
		jwtService: jwtService,
		mailer:     mailer,
		resetTTL:   resetTTL,
		logger:     logger,
		now:        time.Now,
		async:      func(fn func()) { go fn() },
	}
}

func (s *AuthService) tokenResponse(user *models.User) (*dto.AuthResponse, error) {
	token, _, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &dto.AuthResponse{Token: token, User: dto.NewAuthUser(user)}, nil
}

// Register creates a student account and returns a session token. The
// welcome mail is sent in the background; its failure never fails the request.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	studentNumber, err := strconv.ParseInt(strings.TrimSpace(req.StudentNumber), 10, 64)
	if err != nil || studentNumber <= 0 {
		return nil, apperrors.NewBadRequestError("Geçersiz öğrenci numarası.")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	idTaken, emailTaken, err := s.userRepo.Exists(ctx, studentNumber, email)
	if err != nil {
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}
	if idTaken || emailTaken {
		return nil, ErrAccountTaken
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:         studentNumber,
		Email:      email,
		Password:   hashedPassword,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Department: req.Department,
		Role:       models.RoleStudent,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperrors.Is(err, apperrors.ErrEmailAlreadyExists, apperrors.ErrStudentNumberExists) {
			return nil, ErrAccountTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User registered")

	if s.mailer != nil {
		to, name := user.Email, user.FullName()
		s.async(func() {
			if err := s.mailer.SendWelcomeEmail(to, name); err != nil {
				s.logger.Error().Err(err).Str("email", to).Msg("Welcome email failed")
				return
			}
			s.logger.Info().Str("email", to).Msg("Welcome email sent")
		})
	}

	return s.tokenResponse(user)
}

// Login checks credentials, the ban flag and, when requested, the role.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, ErrCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, ErrCredentials
	}
	if user.IsBanned() {
		s.logger.Warn().Int64("userID", user.ID).Msg("Banned user tried to log in")
		return nil, ErrAccountBanned
	}
	if req.Role != "" && models.RoleType(req.Role) != user.Role {
		return nil, ErrLoginRoleMismatch
	}

	return s.tokenResponse(user)
}

// Me returns the caller's token summary.
func (s *AuthService) Me(ctx context.Context, userID int64) (*dto.MeResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsBanned() {
		return nil, ErrAccountBanned
	}
	return &dto.MeResponse{User: dto.NewAuthUser(user)}, nil
}

// ForgotPassword issues a reset token when the account exists. The outcome is
// never revealed to the caller.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Warn().Str("email", email).Msg("Reset request for non-existent email")
			return nil
		}
		return fmt.Errorf("error loading user: %w", err)
	}
	if user.IsBanned() {
		return nil
	}

	if purged, err := s.resetRepo.DeleteExpiredTokens(ctx, s.now()); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to purge stale reset tokens")
	} else if purged > 0 {
		s.logger.Debug().Int64("purged", purged).Msg("Purged stale reset tokens")
	}

	token, err := auth.GenerateSecureToken(resetTokenBytes)
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}
	if err := s.resetRepo.CreateToken(ctx, user.ID, token, s.now().Add(s.resetTTL)); err != nil {
		return fmt.Errorf("error storing reset token: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendPasswordResetEmail(user.Email, token); err != nil {
			s.logger.Error().Err(err).Str("email", user.Email).Msg("Password reset email failed")
			return nil
		}
	}
	s.logger.Info().Str("email", user.Email).Msg("Password reset link sent")
	return nil
}

// ResetPassword consumes a reset token and sets the new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	token = strings.TrimSpace(token)
	if token == "" || password == "" {
		return apperrors.NewBadRequestError("Token ve yeni şifre zorunludur.")
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.resetRepo.ResetPassword(ctx, token, hashedPassword, s.now()); err != nil {
		if errors.Is(err, apperrors.ErrInvalidPasswordResetToken) {
			return ErrResetToken
		}
		return fmt.Errorf("error resetting password: %w", err)
	}
	s.logger.Info().Msg("Password reset completed")
	return nil
}
