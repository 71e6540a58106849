package client

import (
	"context"
	"fmt"
)

// AdminStats returns the dashboard counters
func (c *Client) AdminStats(ctx context.Context) (*AdminStats, error) {
	var resp struct {
		Stats AdminStats `json:"stats"`
	}
	if err := c.get(ctx, "/admin/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Stats, nil
}

// AdminUsers pages through users, optionally filtered by search
func (c *Client) AdminUsers(ctx context.Context, search string, page, limit int) (*AdminUsers, error) {
	query := pageQuery(page, limit)
	if search != "" {
		query.Set("search", search)
	}
	var resp AdminUsers
	if err := c.get(ctx, "/admin/users", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ToggleBan flips a user's ban and returns the new state
func (c *Client) ToggleBan(ctx context.Context, userID int64) (bool, error) {
	var resp struct {
		IsBanned bool `json:"is_banned"`
	}
	if err := c.post(ctx, fmt.Sprintf("/admin/users/%d/ban", userID), nil, &resp); err != nil {
		return false, err
	}
	return resp.IsBanned, nil
}

// SetRole changes a user's role. clubID is required when promoting to club_admin.
func (c *Client) SetRole(ctx context.Context, userID int64, role Role, clubID *int64) (string, error) {
	body := struct {
		Role   Role   `json:"role"`
		ClubID *int64 `json:"club_id,omitempty"`
	}{Role: role, ClubID: clubID}
	var resp messageResponse
	err := c.put(ctx, fmt.Sprintf("/admin/users/%d/role", userID), body, &resp)
	return resp.Message, err
}

// Announce notifies every user and returns the recipient count
func (c *Client) Announce(ctx context.Context, message string) (int64, error) {
	var resp struct {
		Recipients int64 `json:"recipients"`
	}
	if err := c.post(ctx, "/admin/announce", map[string]string{"message": message}, &resp); err != nil {
		return 0, err
	}
	return resp.Recipients, nil
}

// AdminUpdateClub edits any club field, including status and president
func (c *Client) AdminUpdateClub(ctx context.Context, id int64, req AdminUpdateClubRequest) (*Club, error) {
	var resp struct {
		Club Club `json:"club"`
	}
	if err := c.put(ctx, fmt.Sprintf("/admin/clubs/%d", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Club, nil
}

// AdminRemoveMember removes a member from any club
func (c *Client) AdminRemoveMember(ctx context.Context, clubID, userID int64) (string, error) {
	var resp messageResponse
	err := c.delete(ctx, fmt.Sprintf("/admin/clubs/%d/members/%d", clubID, userID), nil, &resp)
	return resp.Message, err
}

// AdminDeleteComment removes a comment
func (c *Client) AdminDeleteComment(ctx context.Context, id int64) (string, error) {
	var resp messageResponse
	err := c.delete(ctx, fmt.Sprintf("/admin/comments/%d", id), nil, &resp)
	return resp.Message, err
}
