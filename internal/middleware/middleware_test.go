package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
	"github.com/yigit/campusclubs/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
}

func tokenFor(t *testing.T, jwtService *auth.JWTService, id int64, role models.RoleType) string {
	t.Helper()
	token, _, err := jwtService.GenerateToken(&models.User{ID: id, Role: role})
	require.NoError(t, err)
	return token
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func actorEcho(c *gin.Context) {
	actor := ActorFromContext(c)
	c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID, "role": actor.Role})
}

func TestJWTAuth(t *testing.T) {
	jwtService := testJWT()
	m := NewAuthMiddleware(jwtService)
	valid := tokenFor(t, jwtService, 20201234, models.RoleStudent)

	r := gin.New()
	r.GET("/me", m.JWTAuth(), actorEcho)

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{name: "bearer header", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "query token", query: "?token=" + valid, wantStatus: http.StatusOK},
		{name: "missing token", wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeTokenNotFound},
		{name: "garbage token", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"user_id":20201234,"role":"student"}`, rec.Body.String())
				return
			}
			body := decodeError(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtService := testJWT()
	m := NewAuthMiddleware(jwtService)
	r := gin.New()
	r.GET("/clubs", m.OptionalAuth(), actorEcho)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clubs", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":0,"role":""}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/clubs", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtService, 7, models.RoleClubAdmin))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.JSONEq(t, `{"user_id":7,"role":"club_admin"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/clubs", nil)
	req.Header.Set("Authorization", "Bearer broken")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "bad tokens degrade to anonymous")
}

func TestRoleRequired(t *testing.T) {
	jwtService := testJWT()
	m := NewAuthMiddleware(jwtService)
	r := gin.New()
	r.GET("/admin/stats", m.JWTAuth(), m.RoleRequired(models.RoleAdmin), actorEcho)

	for role, want := range map[models.RoleType]int{
		models.RoleAdmin:     http.StatusOK,
		models.RoleClubAdmin: http.StatusForbidden,
		models.RoleStudent:   http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtService, 1, role))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, string(role))
	}
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    dto.ErrorCode
		wantMessage string
	}{
		{name: "club not found", err: apperrors.NewCustomError(apperrors.ErrClubNotFound, "Club not found"), wantStatus: 404, wantCode: dto.ErrorCodeResourceNotFound, wantMessage: "Club not found"},
		{name: "bare not found", err: fmt.Errorf("loading: %w", apperrors.ErrEventNotFound), wantStatus: 404, wantCode: dto.ErrorCodeResourceNotFound, wantMessage: "Resource not found"},
		{name: "forbidden", err: apperrors.NewForbiddenError("Only the president"), wantStatus: 403, wantCode: dto.ErrorCodeForbidden, wantMessage: "Only the president"},
		{name: "banned", err: apperrors.NewCustomError(apperrors.ErrUserBanned, "Hesabınız yasaklandı"), wantStatus: 403, wantCode: dto.ErrorCodeAccountBanned, wantMessage: "Hesabınız yasaklandı"},
		{name: "role mismatch", err: apperrors.ErrRoleMismatch, wantStatus: 403, wantCode: dto.ErrorCodeForbidden, wantMessage: "Permission denied"},
		{name: "credentials", err: apperrors.ErrInvalidCredentials, wantStatus: 401, wantCode: dto.ErrorCodeInvalidCredentials, wantMessage: "Invalid credentials"},
		{name: "expired token", err: auth.ErrExpiredToken, wantStatus: 401, wantCode: dto.ErrorCodeExpiredToken, wantMessage: "Token expired"},
		{name: "bad request", err: apperrors.NewBadRequestError("Event is full"), wantStatus: 400, wantCode: dto.ErrorCodeBadRequest, wantMessage: "Event is full"},
		{name: "reset token", err: apperrors.ErrInvalidPasswordResetToken, wantStatus: 400, wantCode: dto.ErrorCodeBadRequest, wantMessage: "Bad request"},
		{name: "duplicate email", err: apperrors.ErrEmailAlreadyExists, wantStatus: 409, wantCode: dto.ErrorCodeResourceAlreadyExists, wantMessage: "Resource already exists"},
		{name: "conflict", err: apperrors.NewConflictError("A club with this name already exists"), wantStatus: 409, wantCode: dto.ErrorCodeConflict, wantMessage: "A club with this name already exists"},
		{name: "upstream", err: apperrors.ErrUpstreamUnavailable, wantStatus: 503, wantCode: dto.ErrorCodeExternalServiceError, wantMessage: "Upstream service unavailable"},
		{name: "unknown hides text", err: errors.New("pq: connection refused"), wantStatus: 500, wantCode: dto.ErrorCodeInternalServer, wantMessage: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantMessage, body.Error.Message)
			assert.False(t, body.Timestamp.IsZero())
		})
	}
}

func TestBindJSON_ValidationEnvelope(t *testing.T) {
	require.NoError(t, RegisterValidators())
	r := gin.New()
	r.POST("/auth/register", func(c *gin.Context) {
		var req dto.RegisterRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"student_number":"12-34","email":"a@b.co","password":"secret123","first_name":"A","last_name":"B"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
	assert.Equal(t, "student_number", body.Error.Field)
}

type fakeCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (f *fakeCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[key]++
	return f.counts[key], nil
}

func TestRateLimit(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int64{}}
	r := gin.New()
	r.Use(RateLimit(counter, 2, time.Hour, zerolog.Nop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	counter := &fakeCounter{err: errors.New("redis down")}
	r := gin.New()
	r.Use(RateLimit(counter, 1, time.Minute, zerolog.Nop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/clubs", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/clubs", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/clubs", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
