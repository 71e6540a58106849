package dto

import (
	"time"

	"github.com/yigit/campusclubs/internal/app/models"
)

// CreateEventRequest represents an event creation request
type CreateEventRequest struct {
	ClubID      int64         `json:"club_id" binding:"required,gt=0" example:"3"`
	Title       string        `json:"title" binding:"required,max=200" example:"Intro to Go"`
	Description *string       `json:"description"`
	Date        FlexibleTime  `json:"date" swaggertype:"string" example:"2025-05-01T18:00"`
	EndTime     *FlexibleTime `json:"end_time" swaggertype:"string"`
	Location    *string       `json:"location" example:"Hall B"`
	Capacity    int           `json:"capacity" example:"50"`
	ImageURL    *string       `json:"image_url" binding:"omitempty,image_url"`
}

// UpdateEventRequest is a partial event update
type UpdateEventRequest struct {
	Title       *string       `json:"title" binding:"omitempty,max=200"`
	Description *string       `json:"description"`
	Date        *FlexibleTime `json:"date" swaggertype:"string"`
	EndTime     *FlexibleTime `json:"end_time" swaggertype:"string"`
	Location    *string       `json:"location"`
	Capacity    *int          `json:"capacity"`
	ImageURL    *string       `json:"image_url" binding:"omitempty,image_url"`
}

// ToModel converts the request to a column update
func (r UpdateEventRequest) ToModel() models.EventUpdate {
	u := models.EventUpdate{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Capacity:    r.Capacity,
		ImageURL:    r.ImageURL,
	}
	if r.Date != nil && !r.Date.IsZero() {
		u.EventDate = &r.Date.Time
	}
	if r.EndTime != nil && !r.EndTime.IsZero() {
		u.EndTime = &r.EndTime.Time
	}
	return u
}

// ParticipantRequest names a participant to remove
type ParticipantRequest struct {
	UserID int64 `json:"user_id" binding:"required,gt=0"`
}

// EventListItem is one event card
type EventListItem struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Date             time.Time `json:"date"`
	ClubID           int64     `json:"club_id"`
	ClubName         string    `json:"club_name"`
	Location         string    `json:"location"`
	ImageURL         string    `json:"image_url"`
	Capacity         int       `json:"capacity"`
	ParticipantCount int64     `json:"participant_count"`
}

// EventListResponse is a page of events
type EventListResponse struct {
	Events     []EventListItem `json:"events"`
	Pagination PaginationInfo  `json:"pagination"`
}

// EventDetail is the event page
type EventDetail struct {
	EventListItem
	EndTime  *time.Time `json:"end_time"`
	IsJoined bool       `json:"is_joined"`
	IsFull   bool       `json:"is_full"`
}

// EventResponse wraps an event
type EventResponse struct {
	Event EventDetail `json:"event"`
}

// EventUpdatedResponse is the body of PUT /events/{id}
type EventUpdatedResponse struct {
	Message string      `json:"message"`
	Event   EventDetail `json:"event"`
}

// EventCreatedResponse is the body of POST /events
type EventCreatedResponse struct {
	Message string `json:"message"`
	EventID int64  `json:"event_id"`
}

// Participant is one attendee
type Participant struct {
	ID         int64                      `json:"id"`
	FullName   string                     `json:"full_name"`
	Email      string                     `json:"email"`
	Department string                     `json:"department"`
	Status     models.ParticipationStatus `json:"status"`
	JoinedAt   time.Time                  `json:"joined_at"`
}

// ParticipantsResponse lists attendees
type ParticipantsResponse struct {
	Participants []Participant `json:"participants"`
}

// NewEventListItem maps an event card
func NewEventListItem(e *models.Event) EventListItem {
	return EventListItem{
		ID:               e.ID,
		Title:            e.Title,
		Description:      models.StringValue(e.Description),
		Date:             e.EventDate,
		ClubID:           e.ClubID,
		ClubName:         e.ClubName,
		Location:         models.StringValue(e.Location),
		ImageURL:         models.StringValue(e.ImageURL),
		Capacity:         e.Capacity,
		ParticipantCount: e.ParticipantCount,
	}
}

// NewEventDetail maps the event page for a viewer
func NewEventDetail(e *models.Event, isJoined bool) EventDetail {
	return EventDetail{
		EventListItem: NewEventListItem(e),
		EndTime:       e.EndTime,
		IsJoined:      isJoined,
		IsFull:        e.IsFull(),
	}
}

// NewParticipant maps a participant row
func NewParticipant(p *models.EventParticipant) Participant {
	out := Participant{ID: p.UserID, Status: p.Status, JoinedAt: p.JoinedAt}
	if p.User != nil {
		out.FullName = p.User.FullName()
		out.Email = p.User.Email
		out.Department = models.StringValue(p.User.Department)
	}
	return out
}
