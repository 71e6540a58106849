package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// EventQuery filters the event listing
type EventQuery struct {
	Search string
	// Date is YYYY-MM-DD; events on or after it
	Date  string
	Page  int
	Limit int
}

// Events lists events of active clubs
func (c *Client) Events(ctx context.Context, q EventQuery) (*EventList, error) {
	query := pageQuery(q.Page, q.Limit)
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Date != "" {
		query.Set("date", q.Date)
	}
	var resp EventList
	if err := c.get(ctx, "/events", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Event fetches one event
func (c *Client) Event(ctx context.Context, id int64) (*Event, error) {
	var resp struct {
		Event Event `json:"event"`
	}
	if err := c.get(ctx, fmt.Sprintf("/events/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

// EventCalendar downloads the event as an iCalendar document
func (c *Client) EventCalendar(ctx context.Context, id int64) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, fmt.Sprintf("/events/%d/calendar.ics", id), nil, nil, "text/calendar")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// CreateEvent publishes an event and returns its id
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (int64, error) {
	var resp struct {
		EventID int64 `json:"event_id"`
	}
	if err := c.post(ctx, "/events", req, &resp); err != nil {
		return 0, err
	}
	return resp.EventID, nil
}

// UpdateEvent edits an event
func (c *Client) UpdateEvent(ctx context.Context, id int64, req UpdateEventRequest) (*Event, error) {
	var resp struct {
		Event Event `json:"event"`
	}
	if err := c.put(ctx, fmt.Sprintf("/events/%d", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

// DeleteEvent removes an event
func (c *Client) DeleteEvent(ctx context.Context, id int64) (string, error) {
	var resp messageResponse
	err := c.delete(ctx, fmt.Sprintf("/events/%d", id), nil, &resp)
	return resp.Message, err
}

// JoinEvent registers the caller
func (c *Client) JoinEvent(ctx context.Context, id int64) (string, error) {
	var resp messageResponse
	err := c.post(ctx, fmt.Sprintf("/events/%d/join", id), nil, &resp)
	return resp.Message, err
}

// LeaveEvent cancels the caller's registration
func (c *Client) LeaveEvent(ctx context.Context, id int64) (string, error) {
	var resp messageResponse
	err := c.post(ctx, fmt.Sprintf("/events/%d/leave", id), nil, &resp)
	return resp.Message, err
}

// EventParticipants lists attendees; president or admin only
func (c *Client) EventParticipants(ctx context.Context, id int64) ([]Participant, error) {
	var resp struct {
		Participants []Participant `json:"participants"`
	}
	if err := c.get(ctx, fmt.Sprintf("/events/%d/participants", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Participants, nil
}

// RemoveParticipant drops an attendee
func (c *Client) RemoveParticipant(ctx context.Context, eventID, userID int64) (string, error) {
	var resp messageResponse
	err := c.post(ctx, fmt.Sprintf("/events/%d/remove-participant", eventID), map[string]int64{"user_id": userID}, &resp)
	return resp.Message, err
}

// EventComments lists an event's comments, newest first
func (c *Client) EventComments(ctx context.Context, id int64) ([]Comment, error) {
	var resp struct {
		Comments []Comment `json:"comments"`
	}
	if err := c.get(ctx, fmt.Sprintf("/events/%d/comments", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

// AddComment posts a comment on an event
func (c *Client) AddComment(ctx context.Context, eventID int64, content string) (*Comment, error) {
	var resp struct {
		Comment Comment `json:"comment"`
	}
	if err := c.post(ctx, fmt.Sprintf("/events/%d/comments", eventID), map[string]string{"content": content}, &resp); err != nil {
		return nil, err
	}
	return &resp.Comment, nil
}
