package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/middleware"
	"github.com/yigit/campusclubs/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.RegisterValidators(); err != nil {
		panic(err)
	}
}

type testServer struct {
	router *gin.Engine
	auth   *middleware.AuthMiddleware
	jwt    *auth.JWTService
}

func newTestServer() *testServer {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "controller-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	return &testServer{
		router: gin.New(),
		auth:   middleware.NewAuthMiddleware(jwtService),
		jwt:    jwtService,
	}
}

func (s *testServer) token(t *testing.T, id int64, role models.RoleType) string {
	t.Helper()
	token, _, err := s.jwt.GenerateToken(&models.User{ID: id, Role: role})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	decodeBody(t, rec, &body)
	require.NotNil(t, body.Error)
	return body
}

func TestParseID(t *testing.T) {
	r := gin.New()
	r.GET("/clubs/:id", func(ctx *gin.Context) {
		id, ok := parseID(ctx, "id")
		if !ok {
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"id": id})
	})

	for path, want := range map[string]int{
		"/clubs/5":   http.StatusOK,
		"/clubs/0":   http.StatusBadRequest,
		"/clubs/-3":  http.StatusBadRequest,
		"/clubs/abc": http.StatusBadRequest,
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, want, rec.Code, path)
	}
}
