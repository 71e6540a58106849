package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authz "github.com/yigit/campusclubs/internal/app/auth"
	"github.com/yigit/campusclubs/internal/app/models"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// tokenFromRequest reads the bearer token from the Authorization header, or
// from ?token= for websocket upgrades which cannot set headers.
func tokenFromRequest(c *gin.Context) (string, error) {
	header := strings.Trim(c.GetHeader("Authorization"), "\"'")
	if header == "" {
		header = c.Query("token")
	}
	if header == "" {
		return "", auth.ErrInvalidFormat
	}
	return auth.ExtractBearerToken(header)
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*auth.Claims, error) {
	token, err := tokenFromRequest(c)
	if err != nil {
		return nil, err
	}
	return m.jwtService.ValidateAndExtractClaims(token)
}

func setActor(c *gin.Context, claims *auth.Claims) {
	id, _ := claims.UserID()
	c.Set(ContextUserID, id)
	c.Set(ContextRole, models.RoleType(claims.Role))
}

func abortUnauthorized(c *gin.Context, err error) {
	code := dto.ErrorCodeInvalidToken
	message := "Invalid token"
	switch {
	case errors.Is(err, auth.ErrInvalidFormat):
		code = dto.ErrorCodeTokenNotFound
		message = "Authentication required"
	case errors.Is(err, auth.ErrExpiredToken):
		code = dto.ErrorCodeExpiredToken
		message = "Token has expired"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// JWTAuth rejects requests without a valid access token.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		setActor(c, claims)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and lets
// anonymous requests through otherwise.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := m.authenticate(c); err == nil {
			setActor(c, claims)
		}
		c.Next()
	}
}

// RoleRequired allows only the listed roles. It must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)
		if actor.IsAnonymous() {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Bu işlem için yetkiniz yok.")))
	}
}

// ActorFromContext returns the authenticated caller, or the zero Actor for
// anonymous requests.
func ActorFromContext(c *gin.Context) authz.Actor {
	var actor authz.Actor
	if id, ok := c.Get(ContextUserID); ok {
		actor.UserID, _ = id.(int64)
	}
	if role, ok := c.Get(ContextRole); ok {
		actor.Role, _ = role.(models.RoleType)
	}
	return actor
}
