package dto

import "github.com/yigit/campusclubs/internal/app/models"

// NotificationListResponse lists the caller's notifications
type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}

// ReadAllResponse reports how many notifications were marked read
type ReadAllResponse struct {
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}
