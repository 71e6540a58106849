package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	authz "github.com/yigit/campusclubs/internal/app/auth"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/middleware"
	"github.com/yigit/campusclubs/internal/pkg/helpers"
)

const adminUserPageSize = 20

// AdminUseCases is the slice of the admin service used over HTTP
type AdminUseCases interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
	Users(ctx context.Context, search string, page, limit int) (*dto.AdminUserListResponse, error)
	User(ctx context.Context, id int64) (*dto.AdminUser, error)
	ToggleBan(ctx context.Context, actor authz.Actor, id int64) (*dto.BanResponse, error)
	UpdateRole(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateRoleRequest) (string, error)
	Announce(ctx context.Context, actor authz.Actor, message string) (*dto.AnnounceResponse, error)
}

// AdminController serves the admin dashboard
type AdminController struct {
	adminService AdminUseCases
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService AdminUseCases, logger zerolog.Logger) *AdminController {
	return &AdminController{adminService: adminService, logger: logger}
}

// Stats godoc
// @Summary Dashboard counters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StatsResponse
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Router /admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	stats, err := c.adminService.Stats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StatsResponse{Stats: *stats})
}

// Users godoc
// @Summary All users, banned ones included
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param search query string false "Name or email fragment"
// @Success 200 {object} dto.AdminUserListResponse
// @Router /admin/users [get]
func (c *AdminController) Users(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx, adminUserPageSize)
	resp, err := c.adminService.Users(ctx.Request.Context(), ctx.Query("search"), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// User godoc
// @Summary One user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.AdminUserResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [get]
func (c *AdminController) User(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	user, err := c.adminService.User(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.AdminUserResponse{User: *user})
}

// ToggleBan godoc
// @Summary Ban or unban a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.BanResponse
// @Failure 400 {object} dto.ErrorResponse "Admins cannot be banned"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/ban [post]
func (c *AdminController) ToggleBan(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	actor := middleware.ActorFromContext(ctx)
	resp, err := c.adminService.ToggleBan(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("userID", id).Bool("banned", resp.IsBanned).Int64("by", actor.UserID).Msg("Ban toggled")
	ctx.JSON(http.StatusOK, resp)
}

// UpdateRole godoc
// @Summary Change a user's role
// @Description club_admin requires club_id and makes the user its president. student clears every presidency.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid role or club"
// @Failure 404 {object} dto.ErrorResponse "User or club not found"
// @Router /admin/users/{id}/role [put]
func (c *AdminController) UpdateRole(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateRoleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	msg, err := c.adminService.UpdateRole(ctx.Request.Context(), middleware.ActorFromContext(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	message(ctx, http.StatusOK, msg)
}

// Announce godoc
// @Summary Broadcast an announcement
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AnnounceRequest true "Announcement"
// @Success 200 {object} dto.AnnounceResponse
// @Failure 400 {object} dto.ErrorResponse "Empty message"
// @Router /admin/announce [post]
func (c *AdminController) Announce(ctx *gin.Context) {
	var req dto.AnnounceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.adminService.Announce(ctx.Request.Context(), middleware.ActorFromContext(ctx), req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
