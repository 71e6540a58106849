package dto

import (
	"time"

	"github.com/yigit/campusclubs/internal/app/models"
)

// --- Request DTOs ---

// CreateClubRequest represents a club creation request
type CreateClubRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100" example:"AI Club"`
	Description *string `json:"description" example:"Machine learning study group"`
	ImageURL    *string `json:"image_url" binding:"omitempty,image_url" example:"https://cdn.example.com/ai.png"`
}

// UpdateClubRequest is a partial update by the president or an admin
type UpdateClubRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url" binding:"omitempty,image_url"`
	BgStyle     *string `json:"bg_style" binding:"omitempty,max=64"`
}

// AdminUpdateClubRequest may also change status and president
type AdminUpdateClubRequest struct {
	UpdateClubRequest
	Status      *string `json:"status" binding:"omitempty,oneof=pending active"`
	PresidentID *int64  `json:"president_id" binding:"omitempty,gt=0"`
}

// RemoveMemberRequest names the member to remove
type RemoveMemberRequest struct {
	UserID int64 `json:"user_id" binding:"required,gt=0"`
}

// ToModel converts the request to a column update
func (r UpdateClubRequest) ToModel() models.ClubUpdate {
	return models.ClubUpdate{
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		BgStyle:     r.BgStyle,
	}
}

// ToModel converts the request to a column update
func (r AdminUpdateClubRequest) ToModel() models.ClubUpdate {
	u := r.UpdateClubRequest.ToModel()
	if r.Status != nil {
		s := models.ClubStatus(*r.Status)
		u.Status = &s
	}
	u.PresidentID = r.PresidentID
	return u
}

// --- Response DTOs ---

// ClubListItem is one card on the clubs page
type ClubListItem struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	ImageURL    string            `json:"image_url"`
	Status      models.ClubStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	IsFollowing bool              `json:"is_following"`
	IsPresident bool              `json:"is_president"`
}

// ClubListResponse is a page of clubs
type ClubListResponse struct {
	Clubs      []ClubListItem  `json:"clubs"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

// ClubDetail is the club profile
type ClubDetail struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	ImageURL      string            `json:"image_url"`
	BgStyle       string            `json:"bg_style"`
	Status        models.ClubStatus `json:"status"`
	PresidentID   *int64            `json:"president_id"`
	FollowerCount int64             `json:"follower_count"`
	IsFollowing   bool              `json:"is_following"`
	IsPresident   bool              `json:"is_president"`
	CreatedAt     time.Time         `json:"created_at"`
}

// ClubResponse wraps a club profile
type ClubResponse struct {
	Club ClubDetail `json:"club"`
}

// ClubSummary is returned after creation
type ClubSummary struct {
	ID     int64             `json:"id"`
	Name   string            `json:"name"`
	Status models.ClubStatus `json:"status"`
}

// ClubCreatedResponse is the body of POST /clubs
type ClubCreatedResponse struct {
	Message string      `json:"message"`
	Club    ClubSummary `json:"club"`
}

// ClubUpdatedResponse is the body of club updates
type ClubUpdatedResponse struct {
	Message string     `json:"message"`
	Club    ClubDetail `json:"club"`
}

// PendingClub is a creation request awaiting approval
type PendingClub struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	ImageURL       string    `json:"image_url"`
	PresidentID    *int64    `json:"president_id"`
	PresidentName  string    `json:"president_name"`
	PresidentEmail string    `json:"president_email"`
	CreatedAt      time.Time `json:"created_at"`
}

// PendingClubsResponse lists pending requests
type PendingClubsResponse struct {
	Clubs []PendingClub `json:"clubs"`
}

// ClubMember is one follower of a club
type ClubMember struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Department   string    `json:"department"`
	JoinedAt     time.Time `json:"joined_at"`
	ProfilePhoto string    `json:"profile_photo"`
}

// ClubMembersResponse lists club members
type ClubMembersResponse struct {
	Members []ClubMember `json:"members"`
}

// ClubPostsResponse is a page of a club's events
type ClubPostsResponse struct {
	Events     []EventListItem `json:"events"`
	Pagination PaginationInfo  `json:"pagination"`
}

// NewClubListItem maps a club for the given viewer (0 = anonymous)
func NewClubListItem(c *models.Club, isFollowing bool, viewerID int64) ClubListItem {
	return ClubListItem{
		ID:          c.ID,
		Name:        c.Name,
		Description: models.StringValue(c.Description),
		ImageURL:    models.StringValue(c.ImageURL),
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		IsFollowing: isFollowing,
		IsPresident: viewerID != 0 && c.IsPresident(viewerID),
	}
}

// NewClubDetail maps a club profile for the given viewer (0 = anonymous)
func NewClubDetail(c *models.Club, isFollowing bool, viewerID int64) ClubDetail {
	return ClubDetail{
		ID:            c.ID,
		Name:          c.Name,
		Description:   models.StringValue(c.Description),
		ImageURL:      models.StringValue(c.ImageURL),
		BgStyle:       models.StringValue(c.BgStyle),
		Status:        c.Status,
		PresidentID:   c.PresidentID,
		FollowerCount: c.FollowerCount,
		IsFollowing:   isFollowing,
		IsPresident:   viewerID != 0 && c.IsPresident(viewerID),
		CreatedAt:     c.CreatedAt,
	}
}

// NewPendingClub maps a pending club with its president
func NewPendingClub(c *models.Club) PendingClub {
	return PendingClub{
		ID:             c.ID,
		Name:           c.Name,
		Description:    models.StringValue(c.Description),
		ImageURL:       models.StringValue(c.ImageURL),
		PresidentID:    c.PresidentID,
		PresidentName:  c.PresidentName,
		PresidentEmail: c.PresidentEmail,
		CreatedAt:      c.CreatedAt,
	}
}

// NewClubMember maps a follower row
func NewClubMember(f *models.ClubFollower) ClubMember {
	m := ClubMember{ID: f.UserID, JoinedAt: f.JoinedAt}
	if f.User != nil {
		m.FullName = f.User.FullName()
		m.Email = f.User.Email
		m.Department = models.StringValue(f.User.Department)
		m.ProfilePhoto = models.StringValue(f.User.ProfileImage)
	}
	return m
}
