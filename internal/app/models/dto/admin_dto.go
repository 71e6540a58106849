package dto

import (
	"time"

	"github.com/yigit/campusclubs/internal/app/models"
)

// StatsResponse wraps dashboard counters
type StatsResponse struct {
	Stats models.AdminStats `json:"stats"`
}

// AdminUser is a row of the users tab
type AdminUser struct {
	ID           int64           `json:"id"`
	Email        string          `json:"email"`
	FullName     string          `json:"full_name"`
	Department   string          `json:"department"`
	Role         models.RoleType `json:"role"`
	ProfilePhoto string          `json:"profile_photo"`
	IsBanned     bool            `json:"is_banned"`
	CreatedAt    time.Time       `json:"created_at"`
}

// AdminUserListResponse is a page of users
type AdminUserListResponse struct {
	Users      []AdminUser    `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

// AdminUserResponse wraps one user
type AdminUserResponse struct {
	User AdminUser `json:"user"`
}

// BanResponse reports the new ban state
type BanResponse struct {
	Message  string `json:"message"`
	IsBanned bool   `json:"is_banned"`
}

// UpdateRoleRequest changes a user's role; club_admin requires club_id
type UpdateRoleRequest struct {
	Role   string `json:"role" binding:"required"`
	ClubID *int64 `json:"club_id" binding:"omitempty,gt=0"`
}

// AnnounceRequest broadcasts a message to every user
type AnnounceRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}

// AnnounceResponse reports the fan-out size
type AnnounceResponse struct {
	Message    string `json:"message"`
	Recipients int64  `json:"recipients"`
}

// NewAdminUser maps a user row for admins
func NewAdminUser(u *models.User) AdminUser {
	return AdminUser{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName(),
		Department:   models.StringValue(u.Department),
		Role:         u.Role,
		ProfilePhoto: models.StringValue(u.ProfileImage),
		IsBanned:     u.IsBanned(),
		CreatedAt:    u.CreatedAt,
	}
}
