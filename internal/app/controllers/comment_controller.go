package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	authz "github.com/yigit/campusclubs/internal/app/auth"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/middleware"
	"github.com/yigit/campusclubs/internal/pkg/helpers"
)

const userCommentPageSize = 10

// CommentUseCases is the slice of the comment service used over HTTP
type CommentUseCases interface {
	Add(ctx context.Context, actor authz.Actor, eventID int64, content string) (*dto.CommentItem, error)
	List(ctx context.Context, eventID int64) (*dto.CommentListResponse, error)
	ByUser(ctx context.Context, userID int64, page, limit int) (*dto.UserCommentsResponse, error)
	Delete(ctx context.Context, actor authz.Actor, id int64) error
}

// CommentController serves event comment threads
type CommentController struct {
	commentService CommentUseCases
	logger         zerolog.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService CommentUseCases, logger zerolog.Logger) *CommentController {
	return &CommentController{commentService: commentService, logger: logger}
}

// List godoc
// @Summary Comments of an event
// @Description Newest first.
// @Tags comments
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.CommentListResponse
// @Router /events/{id}/comments [get]
func (c *CommentController) List(ctx *gin.Context) {
	eventID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.commentService.List(ctx.Request.Context(), eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Add godoc
// @Summary Comment on an event
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.CommentCreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Empty content"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/comments [post]
func (c *CommentController) Add(ctx *gin.Context) {
	eventID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	comment, err := c.commentService.Add(ctx.Request.Context(), middleware.ActorFromContext(ctx), eventID, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.CommentCreatedResponse{Message: "Comment added successfully", Comment: *comment})
}

// ByUser godoc
// @Summary Comments written by a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.UserCommentsResponse
// @Router /users/{id}/comments [get]
func (c *CommentController) ByUser(ctx *gin.Context) {
	userID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	page, limit := helpers.ParsePaginationParams(ctx, userCommentPageSize)
	resp, err := c.commentService.ByUser(ctx.Request.Context(), userID, page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Moderate a comment
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Router /admin/comments/{id} [delete]
func (c *CommentController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.commentService.Delete(ctx.Request.Context(), middleware.ActorFromContext(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	message(ctx, http.StatusOK, "Yorum başarıyla silindi")
}
