package client

import (
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/pkg/weather"
)

// Wire types shared with the server
type (
	Role       = models.RoleType
	User       = dto.AuthUser
	AuthResult = dto.AuthResponse
	Pagination = dto.PaginationInfo

	RegisterRequest        = dto.RegisterRequest
	CreateClubRequest      = dto.CreateClubRequest
	UpdateClubRequest      = dto.UpdateClubRequest
	AdminUpdateClubRequest = dto.AdminUpdateClubRequest
	CreateEventRequest     = dto.CreateEventRequest
	UpdateEventRequest     = dto.UpdateEventRequest
	UpdateProfileRequest   = dto.UpdateProfileRequest
	FlexibleTime           = dto.FlexibleTime

	ClubListItem = dto.ClubListItem
	ClubList     = dto.ClubListResponse
	Club         = dto.ClubDetail
	ClubSummary  = dto.ClubSummary
	PendingClub  = dto.PendingClub
	ClubMember   = dto.ClubMember
	ClubPosts    = dto.ClubPostsResponse

	EventListItem = dto.EventListItem
	EventList     = dto.EventListResponse
	Event         = dto.EventDetail
	Participant   = dto.Participant

	Comment      = dto.CommentItem
	UserComments = dto.UserCommentsResponse

	Notification     = models.Notification
	NotificationList = dto.NotificationListResponse

	Profile        = dto.ProfileResponse
	UserProfile    = dto.UserProfile
	UserSearchItem = dto.UserSearchItem
	EventHistory   = models.UserEventHistory

	AdminStats = models.AdminStats
	AdminUser  = dto.AdminUser
	AdminUsers = dto.AdminUserListResponse

	Weather = weather.Report
)

// Roles
const (
	RoleStudent   = models.RoleStudent
	RoleClubAdmin = models.RoleClubAdmin
	RoleAdmin     = models.RoleAdmin
)
