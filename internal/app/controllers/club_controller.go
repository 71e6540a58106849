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

const (
	clubPageSize = 12
	postPageSize = 5
)

// ClubUseCases is the slice of the club service used over HTTP
type ClubUseCases interface {
	List(ctx context.Context, actor authz.Actor, page, limit int) (*dto.ClubListResponse, error)
	MyClubs(ctx context.Context, actor authz.Actor) (*dto.ClubListResponse, error)
	Pending(ctx context.Context) (*dto.PendingClubsResponse, error)
	Get(ctx context.Context, actor authz.Actor, id int64) (*dto.ClubDetail, error)
	Posts(ctx context.Context, clubID int64, page, limit int) (*dto.ClubPostsResponse, error)
	Create(ctx context.Context, actor authz.Actor, req *dto.CreateClubRequest) (*dto.ClubCreatedResponse, error)
	Update(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateClubRequest) (*dto.ClubDetail, error)
	AdminUpdate(ctx context.Context, actor authz.Actor, id int64, req *dto.AdminUpdateClubRequest) (*dto.ClubDetail, error)
	Approve(ctx context.Context, actor authz.Actor, id int64) (string, error)
	Delete(ctx context.Context, actor authz.Actor, id int64) error
	Members(ctx context.Context, clubID int64) (*dto.ClubMembersResponse, error)
	Follow(ctx context.Context, actor authz.Actor, clubID int64) (string, error)
	Leave(ctx context.Context, actor authz.Actor, clubID int64) error
	RemoveMember(ctx context.Context, actor authz.Actor, clubID, userID int64) error
}

// ClubController serves the club directory and memberships
type ClubController struct {
	clubService ClubUseCases
	logger      zerolog.Logger
}

// NewClubController creates a new ClubController
func NewClubController(clubService ClubUseCases, logger zerolog.Logger) *ClubController {
	return &ClubController{clubService: clubService, logger: logger}
}

// List godoc
// @Summary List active clubs
// @Description Newest first. Signed-in callers also get is_following and is_president.
// @Tags clubs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(12)
// @Success 200 {object} dto.ClubListResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /clubs [get]
func (c *ClubController) List(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx, clubPageSize)
	resp, err := c.clubService.List(ctx.Request.Context(), middleware.ActorFromContext(ctx), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// MyClubs godoc
// @Summary Clubs managed by the caller
// @Description Admins get every club, everyone else the clubs they preside.
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ClubListResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /clubs/my-clubs [get]
func (c *ClubController) MyClubs(ctx *gin.Context) {
	resp, err := c.clubService.MyClubs(ctx.Request.Context(), middleware.ActorFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Pending godoc
// @Summary Club requests awaiting approval
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PendingClubsResponse
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Router /clubs/pending-requests [get]
func (c *ClubController) Pending(ctx *gin.Context) {
	resp, err := c.clubService.Pending(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Club profile
// @Tags clubs
// @Produce json
// @Param id path int true "Club ID"
// @Success 200 {object} dto.ClubResponse
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id} [get]
func (c *ClubController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	club, err := c.clubService.Get(ctx.Request.Context(), middleware.ActorFromContext(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ClubResponse{Club: *club})
}

// Posts godoc
// @Summary Events posted by a club
// @Tags clubs
// @Produce json
// @Param id path int true "Club ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(5)
// @Success 200 {object} dto.ClubPostsResponse
// @Router /clubs/{id}/posts [get]
func (c *ClubController) Posts(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	page, limit := helpers.ParsePaginationParams(ctx, postPageSize)
	resp, err := c.clubService.Posts(ctx.Request.Context(), id, page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Request a new club
// @Description The caller becomes president. Clubs created by admins are active immediately, others wait for approval.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClubRequest true "Club data"
// @Success 201 {object} dto.ClubCreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Club name taken"
// @Router /clubs [post]
func (c *ClubController) Create(ctx *gin.Context) {
	var req dto.CreateClubRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.clubService.Create(ctx.Request.Context(), middleware.ActorFromContext(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("clubID", resp.Club.ID).Str("status", string(resp.Club.Status)).Msg("Club created")
	ctx.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary Edit a club
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.UpdateClubRequest true "Fields to change"
// @Success 200 {object} dto.ClubUpdatedResponse
// @Failure 403 {object} dto.ErrorResponse "Not the president"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id} [put]
func (c *ClubController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateClubRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	club, err := c.clubService.Update(ctx.Request.Context(), middleware.ActorFromContext(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ClubUpdatedResponse{Message: "Kulüp başarıyla güncellendi", Club: *club})
}

// AdminUpdate godoc
// @Summary Edit a club as admin
// @Description May also change status and hand the presidency to another user.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.AdminUpdateClubRequest true "Fields to change"
// @Success 200 {object} dto.ClubUpdatedResponse
// @Failure 404 {object} dto.ErrorResponse "Club or user not found"
// @Router /admin/clubs/{id} [put]
func (c *ClubController) AdminUpdate(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.AdminUpdateClubRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	club, err := c.clubService.AdminUpdate(ctx.Request.Context(), middleware.ActorFromContext(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ClubUpdatedResponse{Message: "Kulüp başarıyla güncellendi", Club: *club})
}

// Approve godoc
// @Summary Approve a club request
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Already active"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id}/approve [post]
func (c *ClubController) Approve(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	msg, err := c.clubService.Approve(ctx.Request.Context(), middleware.ActorFromContext(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	message(ctx, http.StatusOK, msg)
}

// Delete godoc
// @Summary Delete a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id} [delete]
func (c *ClubController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.clubService.Delete(ctx.Request.Context(), middleware.ActorFromContext(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	message(ctx, http.StatusOK, "Club deleted successfully")
}

// Members godoc
// @Summary Club followers
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.ClubMembersResponse
// @Router /clubs/{id}/members [get]
func (c *ClubController) Members(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.clubService.Members(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Follow godoc
// @Summary Follow a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Admin, president or already following"
// @Failure 404 {object} dto.ErrorResponse "Club not found or not active"
// @Router /clubs/{id}/follow [post]
func (c *ClubController) Follow(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	msg, err := c.clubService.Follow(ctx.Request.Context(), middleware.ActorFromContext(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	message(ctx, http.StatusOK, msg)
}

// Leave godoc
// @Summary Unfollow a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Not following"
// @Router /clubs/{id}/leave [post]
func (c *ClubController) Leave(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.clubService.Leave(ctx.Request.Context(), middleware.ActorFromContext(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	message(ctx, http.StatusOK, "Successfully left the club")
}

// RemoveMember godoc
// @Summary Remove a follower
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse "Not the president"
// @Failure 404 {object} dto.ErrorResponse "Not a member"
// @Router /clubs/{id}/members/{user_id} [delete]
// @Router /admin/clubs/{id}/members/{user_id} [delete]
func (c *ClubController) RemoveMember(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	userID, ok := parseID(ctx, "user_id")
	if !ok {
		return
	}
	c.removeMember(ctx, id, userID)
}

// RemoveMemberByBody godoc
// @Summary Remove a follower
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param request body dto.RemoveMemberRequest true "Member to remove"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse "Not the president"
// @Failure 404 {object} dto.ErrorResponse "Not a member"
// @Router /clubs/{id}/remove-member [post]
func (c *ClubController) RemoveMemberByBody(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.RemoveMemberRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	c.removeMember(ctx, id, req.UserID)
}

func (c *ClubController) removeMember(ctx *gin.Context, clubID, userID int64) {
	actor := middleware.ActorFromContext(ctx)
	if err := c.clubService.RemoveMember(ctx.Request.Context(), actor, clubID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("clubID", clubID).Int64("userID", userID).Int64("by", actor.UserID).Msg("Club member removed")
	message(ctx, http.StatusOK, "Member removed successfully")
}
