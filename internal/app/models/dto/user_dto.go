package dto

import (
	"time"

	"github.com/yigit/campusclubs/internal/app/models"
)

// UpdateProfileRequest is a partial self-edit of the profile
type UpdateProfileRequest struct {
	FullName     *string `json:"full_name" binding:"omitempty,max=120"`
	Bio          *string `json:"bio" binding:"omitempty,max=1000"`
	Interests    *string `json:"interests" binding:"omitempty,max=500"`
	Department   *string `json:"department" binding:"omitempty,max=120"`
	ProfilePhoto *string `json:"profile_photo"`
}

// UserProfile is the profile card. Email is omitted on public profiles.
type UserProfile struct {
	ID           int64           `json:"id"`
	Email        string          `json:"email,omitempty"`
	FullName     string          `json:"full_name"`
	Department   string          `json:"department"`
	Role         models.RoleType `json:"role"`
	ProfilePhoto string          `json:"profile_photo"`
	Bio          string          `json:"bio"`
	Interests    string          `json:"interests"`
}

// ActivityEvent is an event on a profile
type ActivityEvent struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	ClubName string    `json:"club_name"`
	ImageURL string    `json:"image_url"`
}

// ActivityClub is a followed club on a profile
type ActivityClub struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Activities groups profile activity
type Activities struct {
	ParticipatedEvents []ActivityEvent `json:"participated_events"`
	FollowedClubs      []ActivityClub  `json:"followed_clubs"`
}

// ProfileResponse is a full profile page
type ProfileResponse struct {
	Profile    UserProfile `json:"profile"`
	Activities Activities  `json:"activities"`
}

// UpdateProfileResponse echoes the updated profile
type UpdateProfileResponse struct {
	Message string      `json:"message"`
	Profile UserProfile `json:"profile"`
}

// UserSearchItem is a search hit
type UserSearchItem struct {
	ID           int64  `json:"id"`
	FullName     string `json:"full_name"`
	Department   string `json:"department"`
	ProfilePhoto string `json:"profile_photo"`
}

// UserSearchResponse lists search hits
type UserSearchResponse struct {
	Users []UserSearchItem `json:"users"`
}

// HistoryResponse lists attended events
type HistoryResponse struct {
	History []models.UserEventHistory `json:"history"`
}

// NewUserProfile maps a user; withEmail is false for public profiles
func NewUserProfile(u *models.User, withEmail bool) UserProfile {
	p := UserProfile{
		ID:           u.ID,
		FullName:     u.FullName(),
		Department:   models.StringValue(u.Department),
		Role:         u.Role,
		ProfilePhoto: models.StringValue(u.ProfileImage),
		Bio:          models.StringValue(u.Bio),
		Interests:    models.StringValue(u.Interests),
	}
	if withEmail {
		p.Email = u.Email
	}
	return p
}

// NewUserSearchItem maps a search hit
func NewUserSearchItem(u *models.User) UserSearchItem {
	return UserSearchItem{
		ID:           u.ID,
		FullName:     u.FullName(),
		Department:   models.StringValue(u.Department),
		ProfilePhoto: models.StringValue(u.ProfileImage),
	}
}
