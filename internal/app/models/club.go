package models

import "time"

// Club represents a student club
type Club struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description,omitempty" db:"description"`
	ImageURL    *string    `json:"image_url,omitempty" db:"image_url"`
	BgStyle     *string    `json:"bg_style,omitempty" db:"bg_style"`
	Status      ClubStatus `json:"status" db:"status"`
	PresidentID *int64     `json:"president_id,omitempty" db:"president_id"`
	CreatedBy   *int64     `json:"created_by,omitempty" db:"created_by"`
	SoftDelete

	// Computed by queries
	FollowerCount  int64  `json:"follower_count" db:"-"`
	PresidentName  string `json:"president_name,omitempty" db:"-"`
	PresidentEmail string `json:"president_email,omitempty" db:"-"`
}

// IsPresident reports whether userID presides this club.
func (c *Club) IsPresident(userID int64) bool {
	return c.PresidentID != nil && *c.PresidentID == userID
}

// ClubFollower represents a user following a club
type ClubFollower struct {
	ID       int64     `json:"id" db:"id"`
	ClubID   int64     `json:"club_id" db:"club_id"`
	UserID   int64     `json:"user_id" db:"user_id"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`

	User *User `json:"user,omitempty"`
}

// ClubUpdate carries optional column changes; nil fields stay untouched.
type ClubUpdate struct {
	Name        *string
	Description *string
	ImageURL    *string
	BgStyle     *string
	Status      *ClubStatus
	PresidentID *int64
}

// IsEmpty reports whether the update changes nothing.
func (u ClubUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.ImageURL == nil &&
		u.BgStyle == nil && u.Status == nil && u.PresidentID == nil
}
