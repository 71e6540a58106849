package models

import "time"

// Notification is a message delivered to a single user
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	ClubID    *int64    `json:"club_id,omitempty" db:"club_id"`
	EventID   *int64    `json:"event_id,omitempty" db:"event_id"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AdminStats are the dashboard counters
type AdminStats struct {
	Users        int64 `json:"users"`
	ActiveClubs  int64 `json:"active_clubs"`
	PendingClubs int64 `json:"pending_clubs"`
	Events       int64 `json:"events"`
}
