package dto

import (
	"time"

	"github.com/yigit/campusclubs/internal/app/models"
)

const anonymousAuthor = "Anonymous"

// CreateCommentRequest posts a comment
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// CommentItem is one comment in an event thread
type CommentItem struct {
	ID           int64     `json:"id"`
	Content      string    `json:"content"`
	UserID       int64     `json:"user_id"`
	UserName     string    `json:"user_name"`
	Department   string    `json:"department"`
	ProfilePhoto string    `json:"profile_photo"`
	CreatedAt    time.Time `json:"created_at"`
}

// CommentListResponse lists an event thread
type CommentListResponse struct {
	Comments []CommentItem `json:"comments"`
}

// CommentCreatedResponse is the body of POST /events/{id}/comments
type CommentCreatedResponse struct {
	Message string      `json:"message"`
	Comment CommentItem `json:"comment"`
}

// UserComment is one comment on a profile
type UserComment struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	EventID    int64     `json:"event_id"`
	EventTitle string    `json:"event_title"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserCommentsResponse is a page of a user's comments
type UserCommentsResponse struct {
	Comments   []UserComment  `json:"comments"`
	Pagination PaginationInfo `json:"pagination"`
}

// NewCommentItem maps a comment with its author
func NewCommentItem(c *models.Comment) CommentItem {
	item := CommentItem{
		ID:        c.ID,
		Content:   c.Content,
		UserID:    c.UserID,
		UserName:  anonymousAuthor,
		CreatedAt: c.CreatedAt,
	}
	if c.Author != nil {
		if name := c.Author.FullName(); name != "" {
			item.UserName = name
		}
		item.Department = models.StringValue(c.Author.Department)
		item.ProfilePhoto = models.StringValue(c.Author.ProfileImage)
	}
	return item
}

// NewUserComment maps a comment for a profile page
func NewUserComment(c *models.Comment) UserComment {
	return UserComment{
		ID:         c.ID,
		Content:    c.Content,
		EventID:    c.EventID,
		EventTitle: c.EventTitle,
		CreatedAt:  c.CreatedAt,
	}
}
