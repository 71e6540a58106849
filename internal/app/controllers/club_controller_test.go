package controllers

import (
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	authz "github.com/yigit/campusclubs/internal/app/auth"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
)

func newClubTestServer() (*testServer, *mockClubService) {
	s := newTestServer()
	svc := new(mockClubService)
	ctrl := NewClubController(svc, zerolog.Nop())

	g := s.router.Group("/clubs")
	g.GET("", s.auth.OptionalAuth(), ctrl.List)
	g.GET("/:id", s.auth.OptionalAuth(), ctrl.Get)
	g.POST("", s.auth.JWTAuth(), ctrl.Create)
	g.PUT("/:id", s.auth.JWTAuth(), ctrl.Update)
	g.POST("/:id/follow", s.auth.JWTAuth(), ctrl.Follow)
	g.POST("/:id/approve", s.auth.JWTAuth(), s.auth.RoleRequired(models.RoleAdmin), ctrl.Approve)
	g.DELETE("/:id/members/:user_id", s.auth.JWTAuth(), ctrl.RemoveMember)
	g.POST("/:id/remove-member", s.auth.JWTAuth(), ctrl.RemoveMemberByBody)
	return s, svc
}

func TestClubController_ListAnonymous(t *testing.T) {
	s, svc := newClubTestServer()
	resp := &dto.ClubListResponse{
		Clubs:      []dto.ClubListItem{{ID: 5, Name: "Satranç", Status: models.ClubStatusActive}},
		Pagination: &dto.PaginationInfo{Total: 1, Page: 2, Limit: 6, TotalPages: 1},
	}
	svc.On("List", mock.Anything, authz.Actor{}, 2, 6).Return(resp, nil).Once()

	rec := s.do(t, http.MethodGet, "/clubs?page=2&limit=6", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body dto.ClubListResponse
	decodeBody(t, rec, &body)
	assert.Len(t, body.Clubs, 1)
	assert.Equal(t, 1, body.Pagination.TotalPages)
	svc.AssertExpectations(t)
}

func TestClubController_GetPassesViewer(t *testing.T) {
	s, svc := newClubTestServer()
	viewer := authz.Actor{UserID: 10, Role: models.RoleStudent}
	svc.On("Get", mock.Anything, viewer, int64(5)).Return(&dto.ClubDetail{ID: 5, IsFollowing: true}, nil).Once()

	rec := s.do(t, http.MethodGet, "/clubs/5", nil, s.token(t, 10, models.RoleStudent))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body dto.ClubResponse
	decodeBody(t, rec, &body)
	assert.True(t, body.Club.IsFollowing)
}

func TestClubController_GetNotFound(t *testing.T) {
	s, svc := newClubTestServer()
	svc.On("Get", mock.Anything, authz.Actor{}, int64(99)).
		Return(nil, apperrors.NewCustomError(apperrors.ErrClubNotFound, "Club not found")).Once()

	rec := s.do(t, http.MethodGet, "/clubs/99", nil, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Club not found", decodeError(t, rec).Error.Message)
}

func TestClubController_Create(t *testing.T) {
	s, svc := newClubTestServer()
	actor := authz.Actor{UserID: 10, Role: models.RoleStudent}
	svc.On("Create", mock.Anything, actor, mock.MatchedBy(func(req *dto.CreateClubRequest) bool {
		return req.Name == "Robotik"
	})).Return(&dto.ClubCreatedResponse{
		Message: "Club request submitted",
		Club:    dto.ClubSummary{ID: 8, Name: "Robotik", Status: models.ClubStatusPending},
	}, nil).Once()

	rec := s.do(t, http.MethodPost, "/clubs", map[string]string{"name": "Robotik"}, s.token(t, 10, models.RoleStudent))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body dto.ClubCreatedResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, models.ClubStatusPending, body.Club.Status)
	svc.AssertNumberOfCalls(t, "Create", 1)
}

func TestClubController_CreateRejectsBadImage(t *testing.T) {
	s, svc := newClubTestServer()

	rec := s.do(t, http.MethodPost, "/clubs", map[string]string{"name": "Robotik", "image_url": "javascript:alert(1)"}, s.token(t, 10, models.RoleStudent))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "image_url", decodeError(t, rec).Error.Field)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestClubController_UpdateForbidden(t *testing.T) {
	s, svc := newClubTestServer()
	svc.On("Update", mock.Anything, mock.Anything, int64(5), mock.Anything).
		Return(nil, apperrors.NewForbiddenError("Only the club president can do this")).Once()

	rec := s.do(t, http.MethodPut, "/clubs/5", map[string]string{"name": "Yeni"}, s.token(t, 10, models.RoleStudent))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, dto.ErrorCodeForbidden, decodeError(t, rec).Error.Code)
}

func TestClubController_Follow(t *testing.T) {
	s, svc := newClubTestServer()
	actor := authz.Actor{UserID: 10, Role: models.RoleStudent}
	svc.On("Follow", mock.Anything, actor, int64(5)).Return("Successfully joined the club", nil).Once()
	svc.On("Follow", mock.Anything, actor, int64(6)).Return("", apperrors.NewBadRequestError("Already a member")).Once()

	rec := s.do(t, http.MethodPost, "/clubs/5/follow", nil, s.token(t, 10, models.RoleStudent))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Successfully joined the club"}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/clubs/6/follow", nil, s.token(t, 10, models.RoleStudent))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Already a member", decodeError(t, rec).Error.Message)

	rec = s.do(t, http.MethodPost, "/clubs/5/follow", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClubController_ApproveAdminOnly(t *testing.T) {
	s, svc := newClubTestServer()
	svc.On("Approve", mock.Anything, mock.Anything, int64(5)).Return("Club approved", nil).Once()

	rec := s.do(t, http.MethodPost, "/clubs/5/approve", nil, s.token(t, 20, models.RoleClubAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/clubs/5/approve", nil, s.token(t, 1, models.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertNumberOfCalls(t, "Approve", 1)
}

func TestClubController_RemoveMemberVariants(t *testing.T) {
	s, svc := newClubTestServer()
	president := authz.Actor{UserID: 20, Role: models.RoleClubAdmin}
	svc.On("RemoveMember", mock.Anything, president, int64(5), int64(10)).Return(nil).Twice()
	token := s.token(t, 20, models.RoleClubAdmin)

	rec := s.do(t, http.MethodDelete, "/clubs/5/members/10", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/clubs/5/remove-member", map[string]int64{"user_id": 10}, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Member removed successfully"}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/clubs/5/remove-member", `{}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.AssertExpectations(t)
}
