package dto

import "github.com/yigit/campusclubs/internal/app/models"

// RegisterRequest represents a student registration
type RegisterRequest struct {
	StudentNumber string  `json:"student_number" binding:"required,student_number" example:"20201234"`
	Email         string  `json:"email" binding:"required,email" example:"student@campus.edu.tr"`
	Password      string  `json:"password" binding:"required,min=6" example:"secret123"`
	FirstName     string  `json:"first_name" binding:"required" example:"Ayşe"`
	LastName      string  `json:"last_name" binding:"required" example:"Yılmaz"`
	Department    *string `json:"department" example:"Computer Engineering"`
}

// LoginRequest represents login credentials. Role, when present, must match
// the account's role.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=student club_admin admin"`
}

// ForgotPasswordRequest starts a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes a password reset
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// AuthUser is the user summary returned with a token
type AuthUser struct {
	ID       int64           `json:"id" example:"20201234"`
	Email    string          `json:"email" example:"student@campus.edu.tr"`
	Role     models.RoleType `json:"role" example:"student"`
	FullName string          `json:"full_name" example:"Ayşe Yılmaz"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// MeResponse wraps the current user
type MeResponse struct {
	User AuthUser `json:"user"`
}

// NewAuthUser maps a user model to its token summary
func NewAuthUser(u *models.User) AuthUser {
	return AuthUser{
		ID:       u.ID,
		Email:    u.Email,
		Role:     u.Role,
		FullName: u.FullName(),
	}
}
