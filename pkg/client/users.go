package client

import (
	"context"
	"fmt"
	"net/url"
)

// Notifications returns the caller's latest notifications and unread count
func (c *Client) Notifications(ctx context.Context) (*NotificationList, error) {
	var resp NotificationList
	if err := c.get(ctx, "/notifications", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MarkNotificationRead marks one notification read
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/notifications/%d/read", id), nil, nil)
}

// MarkAllNotificationsRead marks everything read and returns how many changed
func (c *Client) MarkAllNotificationsRead(ctx context.Context) (int64, error) {
	var resp struct {
		Updated int64 `json:"updated"`
	}
	if err := c.post(ctx, "/notifications/read-all", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Updated, nil
}

// Profile returns the caller's profile and activity
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var resp Profile
	if err := c.get(ctx, "/users/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfile edits the caller's profile
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*UserProfile, error) {
	var resp struct {
		Profile UserProfile `json:"profile"`
	}
	if err := c.put(ctx, "/users/profile", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Profile, nil
}

// PublicProfile returns another user's profile
func (c *Client) PublicProfile(ctx context.Context, id int64) (*Profile, error) {
	var resp Profile
	if err := c.get(ctx, fmt.Sprintf("/users/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchUsers finds users by name
func (c *Client) SearchUsers(ctx context.Context, term string) ([]UserSearchItem, error) {
	var resp struct {
		Users []UserSearchItem `json:"users"`
	}
	if err := c.get(ctx, "/users/search", url.Values{"q": {term}}, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// History lists the events the caller attended
func (c *Client) History(ctx context.Context) ([]EventHistory, error) {
	var resp struct {
		History []EventHistory `json:"history"`
	}
	if err := c.get(ctx, "/users/history", nil, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

// UserComments pages through a user's comments
func (c *Client) UserComments(ctx context.Context, id int64, page, limit int) (*UserComments, error) {
	var resp UserComments
	if err := c.get(ctx, fmt.Sprintf("/users/%d/comments", id), pageQuery(page, limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Weather returns current conditions for city; empty uses the server default
func (c *Client) Weather(ctx context.Context, city string) (*Weather, error) {
	var query url.Values
	if city != "" {
		query = url.Values{"city": {city}}
	}
	var resp struct {
		Weather *Weather `json:"weather"`
	}
	if err := c.get(ctx, "/weather", query, &resp); err != nil {
		return nil, err
	}
	return resp.Weather, nil
}
