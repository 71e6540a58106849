package models

import "time"

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent   RoleType = "student"
	RoleClubAdmin RoleType = "club_admin"
	RoleAdmin     RoleType = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r RoleType) IsValid() bool {
	switch r {
	case RoleStudent, RoleClubAdmin, RoleAdmin:
		return true
	}
	return false
}

// ClubStatus is the approval state of a club
type ClubStatus string

const (
	ClubStatusPending ClubStatus = "pending"
	ClubStatusActive  ClubStatus = "active"
)

// ParticipationStatus is a user's attendance intent for an event
type ParticipationStatus string

const (
	ParticipationGoing      ParticipationStatus = "going"
	ParticipationInterested ParticipationStatus = "interested"
)

// SoftDelete holds the bookkeeping columns shared by every table.
type SoftDelete struct {
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	IsDeleted bool       `json:"-" db:"is_deleted"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}
