package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/campusclubs/internal/app/controllers"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/middleware"
	"github.com/yigit/campusclubs/internal/pkg/websocket"
)

// Controllers groups every HTTP handler the router mounts
type Controllers struct {
	Auth         *controllers.AuthController
	Club         *controllers.ClubController
	Event        *controllers.EventController
	Comment      *controllers.CommentController
	Notification *controllers.NotificationController
	User         *controllers.UserController
	Admin        *controllers.AdminController
	Weather      *controllers.WeatherController
	Health       *controllers.HealthController
	Socket       *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)

	router.GET("/", c.Health.Health)
	router.GET("/health", c.Health.Health)

	// --- Auth ---
	auth := router.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/forgot-password", c.Auth.ForgotPassword)
		auth.POST("/reset-password", c.Auth.ResetPassword)
		auth.GET("/me", authMiddleware.JWTAuth(), c.Auth.Me)
	}

	// --- Clubs ---
	clubs := router.Group("/clubs")
	{
		// Public reads personalise the response when a token is present
		clubs.GET("", authMiddleware.OptionalAuth(), c.Club.List)
		clubs.GET("/:id", authMiddleware.OptionalAuth(), c.Club.Get)
		clubs.GET("/:id/posts", c.Club.Posts)

		member := clubs.Group("", authMiddleware.JWTAuth())
		{
			member.GET("/my-clubs", c.Club.MyClubs)
			member.GET("/pending-requests", adminOnly, c.Club.Pending)
			member.POST("", c.Club.Create)
			member.PUT("/:id", c.Club.Update)
			member.POST("/:id/approve", adminOnly, c.Club.Approve)
			member.DELETE("/:id", adminOnly, c.Club.Delete)
			member.GET("/:id/members", c.Club.Members)
			member.POST("/:id/follow", c.Club.Follow)
			member.POST("/:id/leave", c.Club.Leave)
			member.DELETE("/:id/members/:user_id", c.Club.RemoveMember)
			member.POST("/:id/remove-member", c.Club.RemoveMemberByBody)
		}
	}

	// --- Events and comments ---
	events := router.Group("/events")
	{
		events.GET("", c.Event.List)
		events.GET("/:id", authMiddleware.OptionalAuth(), c.Event.Get)
		events.GET("/:id/calendar.ics", c.Event.Calendar)
		events.GET("/:id/comments", c.Comment.List)

		attendee := events.Group("", authMiddleware.JWTAuth())
		{
			attendee.POST("", c.Event.Create)
			attendee.PUT("/:id", c.Event.Update)
			attendee.DELETE("/:id", c.Event.Delete)
			attendee.POST("/:id/join", c.Event.Join)
			attendee.POST("/:id/leave", c.Event.Leave)
			attendee.POST("/:id/remove-participant", c.Event.RemoveParticipant)
			attendee.GET("/:id/participants", c.Event.Participants)
			attendee.POST("/:id/comments", c.Comment.Add)
		}
	}

	// --- Notifications ---
	notifications := router.Group("/notifications", authMiddleware.JWTAuth())
	{
		notifications.GET("", c.Notification.List)
		notifications.POST("/read-all", c.Notification.MarkAllRead)
		notifications.POST("/:id/read", c.Notification.MarkRead)
	}
	router.GET("/ws/notifications", authMiddleware.JWTAuth(), c.Socket.HandleConnection)

	// --- Users ---
	users := router.Group("/users", authMiddleware.JWTAuth())
	{
		users.GET("/history", c.User.History)
		users.GET("/profile", c.User.GetProfile)
		users.PUT("/profile", c.User.UpdateProfile)
		users.GET("/search", c.User.Search)
		users.GET("/:id", c.User.PublicProfile)
		users.GET("/:id/comments", c.Comment.ByUser)
	}

	// --- Admin ---
	admin := router.Group("/admin", authMiddleware.JWTAuth(), adminOnly)
	{
		admin.GET("/stats", c.Admin.Stats)
		admin.GET("/users", c.Admin.Users)
		admin.GET("/users/:id", c.Admin.User)
		admin.POST("/users/:id/ban", c.Admin.ToggleBan)
		admin.PUT("/users/:id/role", c.Admin.UpdateRole)
		admin.POST("/announce", c.Admin.Announce)
		admin.PUT("/clubs/:id", c.Club.AdminUpdate)
		admin.DELETE("/clubs/:id/members/:user_id", c.Club.RemoveMember)
		admin.DELETE("/comments/:id", c.Comment.Delete)
	}

	router.GET("/weather", c.Weather.Current)
}
