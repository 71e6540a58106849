package controllers

import (
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
)

func newAuthTestServer() (*testServer, *mockAuthService) {
	s := newTestServer()
	svc := new(mockAuthService)
	ctrl := NewAuthController(svc, zerolog.Nop())

	g := s.router.Group("/auth")
	g.POST("/register", ctrl.Register)
	g.POST("/login", ctrl.Login)
	g.POST("/forgot-password", ctrl.ForgotPassword)
	g.POST("/reset-password", ctrl.ResetPassword)
	g.GET("/me", s.auth.JWTAuth(), ctrl.Me)
	return s, svc
}

func TestAuthController_Register(t *testing.T) {
	s, svc := newAuthTestServer()
	resp := &dto.AuthResponse{Token: "jwt", User: dto.AuthUser{ID: 20201234, Email: "ayse@campus.edu.tr", Role: models.RoleStudent, FullName: "Ayşe Yılmaz"}}
	svc.On("Register", mock.Anything, mock.MatchedBy(func(req *dto.RegisterRequest) bool {
		return req.StudentNumber == "20201234" && req.Email == "ayse@campus.edu.tr"
	})).Return(resp, nil).Once()

	rec := s.do(t, http.MethodPost, "/auth/register", map[string]string{
		"student_number": "20201234",
		"email":          "ayse@campus.edu.tr",
		"password":       "secret123",
		"first_name":     "Ayşe",
		"last_name":      "Yılmaz",
	}, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body dto.AuthResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "jwt", body.Token)
	assert.Equal(t, int64(20201234), body.User.ID)
	svc.AssertExpectations(t)
}

func TestAuthController_RegisterValidation(t *testing.T) {
	s, svc := newAuthTestServer()

	tests := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{name: "missing email", body: map[string]string{"student_number": "1", "password": "secret123", "first_name": "A", "last_name": "B"}, field: "email"},
		{name: "short password", body: map[string]string{"student_number": "1", "email": "a@b.co", "password": "123", "first_name": "A", "last_name": "B"}, field: "password"},
		{name: "non numeric student number", body: map[string]string{"student_number": "x1", "email": "a@b.co", "password": "secret123", "first_name": "A", "last_name": "B"}, field: "student_number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/auth/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
			assert.Equal(t, tt.field, body.Error.Field)
		})
	}
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthController_LoginErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{name: "wrong password", err: apperrors.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeInvalidCredentials},
		{name: "banned", err: apperrors.NewCustomError(apperrors.ErrUserBanned, "Hesabınız askıya alınmıştır."), wantStatus: http.StatusForbidden, wantCode: dto.ErrorCodeAccountBanned},
		{name: "role mismatch", err: apperrors.NewCustomError(apperrors.ErrRoleMismatch, "Bu rol ile giriş yetkiniz yok."), wantStatus: http.StatusForbidden, wantCode: dto.ErrorCodeForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, svc := newAuthTestServer()
			svc.On("Login", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := s.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "a@b.co", "password": "x", "role": "admin"}, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Error.Code)
		})
	}
}

func TestAuthController_ForgotPasswordSameMessage(t *testing.T) {
	s, svc := newAuthTestServer()
	svc.On("ForgotPassword", mock.Anything, "ghost@campus.edu.tr").Return(nil).Once()

	rec := s.do(t, http.MethodPost, "/auth/forgot-password", map[string]string{"email": "ghost@campus.edu.tr"}, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body dto.MessageResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, ForgotPasswordMessage, body.Message)
}

func TestAuthController_ResetPasswordRejectsUsedToken(t *testing.T) {
	s, svc := newAuthTestServer()
	svc.On("ResetPassword", mock.Anything, "used", "newpass1").
		Return(apperrors.NewCustomError(apperrors.ErrInvalidPasswordResetToken, "Geçersiz veya süresi dolmuş token.")).Once()

	rec := s.do(t, http.MethodPost, "/auth/reset-password", map[string]string{"token": "used", "password": "newpass1"}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Geçersiz veya süresi dolmuş token.", decodeError(t, rec).Error.Message)
}

func TestAuthController_Me(t *testing.T) {
	s, svc := newAuthTestServer()

	rec := s.do(t, http.MethodGet, "/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	svc.On("Me", mock.Anything, int64(42)).Return(&dto.MeResponse{User: dto.AuthUser{ID: 42}}, nil).Once()
	rec = s.do(t, http.MethodGet, "/auth/me", nil, s.token(t, 42, models.RoleStudent))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":{"id":42,"email":"","role":"","full_name":""}}`, rec.Body.String())
}
