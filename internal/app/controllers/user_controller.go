package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/middleware"
)

// UserUseCases is the slice of the user service used over HTTP
type UserUseCases interface {
	History(ctx context.Context, userID int64) (*dto.HistoryResponse, error)
	Profile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	PublicProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserProfile, error)
	Search(ctx context.Context, query string) (*dto.UserSearchResponse, error)
}

// UserController handles user-related operations
type UserController struct {
	userService UserUseCases
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService UserUseCases, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// History godoc
// @Summary Events the caller attended
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.HistoryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/history [get]
func (c *UserController) History(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	resp, err := c.userService.History(ctx.Request.Context(), actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Description Includes attended events and followed clubs.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	resp, err := c.userService.Profile(ctx.Request.Context(), actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Description full_name is split on the first space. profile_photo must be empty or an http(s) URL.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.UpdateProfileResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /users/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.ActorFromContext(ctx)
	profile, err := c.userService.UpdateProfile(ctx.Request.Context(), actor.UserID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", actor.UserID).Msg("Profile update rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.UpdateProfileResponse{Message: "Profil başarıyla güncellendi", Profile: *profile})
}

// Search godoc
// @Summary Find users by name
// @Description Queries shorter than two characters return an empty list.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param q query string true "Name fragment"
// @Success 200 {object} dto.UserSearchResponse
// @Router /users/search [get]
func (c *UserController) Search(ctx *gin.Context) {
	resp, err := c.userService.Search(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// PublicProfile godoc
// @Summary Another user's public profile
// @Description Email is omitted.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) PublicProfile(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.userService.PublicProfile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
