package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// Clubs lists active clubs
func (c *Client) Clubs(ctx context.Context, page, limit int) (*ClubList, error) {
	var resp ClubList
	if err := c.get(ctx, "/clubs", pageQuery(page, limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MyClubs lists the clubs the caller follows or presides over
func (c *Client) MyClubs(ctx context.Context) ([]ClubListItem, error) {
	var resp ClubList
	if err := c.get(ctx, "/clubs/my-clubs", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Clubs, nil
}

// Club fetches one club
func (c *Client) Club(ctx context.Context, id int64) (*Club, error) {
	var resp struct {
		Club Club `json:"club"`
	}
	if err := c.get(ctx, fmt.Sprintf("/clubs/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Club, nil
}

// ClubPosts lists a club's events
func (c *Client) ClubPosts(ctx context.Context, id int64, page, limit int) (*ClubPosts, error) {
	var resp ClubPosts
	if err := c.get(ctx, fmt.Sprintf("/clubs/%d/posts", id), pageQuery(page, limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateClub submits a club application; the club starts pending.
func (c *Client) CreateClub(ctx context.Context, req CreateClubRequest) (*ClubSummary, error) {
	var resp struct {
		Club ClubSummary `json:"club"`
	}
	if err := c.post(ctx, "/clubs", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Club, nil
}

// UpdateClub edits a club as its president or an admin
func (c *Client) UpdateClub(ctx context.Context, id int64, req UpdateClubRequest) (*Club, error) {
	var resp struct {
		Club Club `json:"club"`
	}
	if err := c.put(ctx, fmt.Sprintf("/clubs/%d", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Club, nil
}

// FollowClub makes the caller a member
func (c *Client) FollowClub(ctx context.Context, id int64) (string, error) {
	var resp messageResponse
	err := c.post(ctx, fmt.Sprintf("/clubs/%d/follow", id), nil, &resp)
	return resp.Message, err
}

// LeaveClub removes the caller's membership
func (c *Client) LeaveClub(ctx context.Context, id int64) (string, error) {
	var resp messageResponse
	err := c.post(ctx, fmt.Sprintf("/clubs/%d/leave", id), nil, &resp)
	return resp.Message, err
}

// ClubMembers lists members; president or admin only
func (c *Client) ClubMembers(ctx context.Context, id int64) ([]ClubMember, error) {
	var resp struct {
		Members []ClubMember `json:"members"`
	}
	if err := c.get(ctx, fmt.Sprintf("/clubs/%d/members", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Members, nil
}

// RemoveClubMember removes a member as the club's president
func (c *Client) RemoveClubMember(ctx context.Context, clubID, userID int64) (string, error) {
	var resp messageResponse
	err := c.post(ctx, fmt.Sprintf("/clubs/%d/remove-member", clubID), map[string]int64{"user_id": userID}, &resp)
	return resp.Message, err
}

// PendingClubs lists applications awaiting approval; admin only
func (c *Client) PendingClubs(ctx context.Context) ([]PendingClub, error) {
	var resp struct {
		Clubs []PendingClub `json:"clubs"`
	}
	if err := c.get(ctx, "/clubs/pending-requests", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Clubs, nil
}

// ApproveClub activates a pending club; admin only
func (c *Client) ApproveClub(ctx context.Context, id int64) (string, error) {
	var resp messageResponse
	err := c.post(ctx, fmt.Sprintf("/clubs/%d/approve", id), nil, &resp)
	return resp.Message, err
}

// DeleteClub soft-deletes or rejects a club; admin only
func (c *Client) DeleteClub(ctx context.Context, id int64) (string, error) {
	var resp messageResponse
	err := c.delete(ctx, fmt.Sprintf("/clubs/%d", id), nil, &resp)
	return resp.Message, err
}

// ClubCard is the local state of a club tile
type ClubCard struct {
	ClubListItem
}

// ToggleFollow follows or leaves the card's club and flips IsFollowing on
// success. The card is unchanged when the request fails.
func (c *Client) ToggleFollow(ctx context.Context, card *ClubCard) (string, error) {
	var (
		msg string
		err error
	)
	if card.IsFollowing {
		msg, err = c.LeaveClub(ctx, card.ID)
	} else {
		msg, err = c.FollowClub(ctx, card.ID)
	}
	if err != nil {
		return "", err
	}
	card.IsFollowing = !card.IsFollowing
	return msg, nil
}
