package models

import "time"

// Comment is an event comment
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	EventID   int64     `json:"event_id" db:"event_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Joined from users and events
	Author     *User  `json:"-"`
	EventTitle string `json:"event_title,omitempty"`
}
