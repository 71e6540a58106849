package models

import "time"

// Event is a scheduled activity owned by a club
type Event struct {
	ID          int64      `json:"id" db:"id"`
	ClubID      int64      `json:"club_id" db:"club_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	ImageURL    *string    `json:"image_url,omitempty" db:"image_url"`
	EventDate   time.Time  `json:"date" db:"event_date"`
	EndTime     *time.Time `json:"end_time,omitempty" db:"end_time"`
	Location    *string    `json:"location,omitempty" db:"location"`
	Capacity    int        `json:"capacity" db:"capacity"`
	CreatedBy   *int64     `json:"created_by,omitempty" db:"created_by"`
	SoftDelete

	// Computed by queries
	ClubName         string `json:"club_name" db:"-"`
	ParticipantCount int64  `json:"participant_count" db:"-"`
}

// IsFull reports whether going participants reached capacity.
func (e *Event) IsFull() bool {
	return e.ParticipantCount >= int64(e.Capacity)
}

// EventParticipant is a user's attendance record
type EventParticipant struct {
	ID       int64               `json:"id" db:"id"`
	EventID  int64               `json:"event_id" db:"event_id"`
	UserID   int64               `json:"user_id" db:"user_id"`
	Status   ParticipationStatus `json:"status" db:"status"`
	JoinedAt time.Time           `json:"joined_at" db:"created_at"`

	User *User `json:"user,omitempty"`
}

// EventUpdate carries optional column changes; nil fields stay untouched.
type EventUpdate struct {
	Title       *string
	Description *string
	ImageURL    *string
	EventDate   *time.Time
	EndTime     *time.Time
	Location    *string
	Capacity    *int
}

// EventFilter narrows the public event listing
type EventFilter struct {
	Search string
	From   *time.Time
	ClubID int64
}

// UserEventHistory is one attended event in a user's history.
type UserEventHistory struct {
	EventID  int64     `json:"event_id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	ClubID   int64     `json:"club_id"`
	ClubName string    `json:"club_name"`
	ImageURL *string   `json:"image_url,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}
