package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusclubs/internal/app/models/dto"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthController reports liveness and dependency status
type HealthController struct {
	database Pinger
	redis    Pinger
}

// NewHealthController creates a new HealthController. Either pinger may be nil.
func NewHealthController(database, redis Pinger) *HealthController {
	return &HealthController{database: database, redis: redis}
}

// Health godoc
// @Summary Health check
// @Description Always 200 while the process serves requests. Database and redis report up or down.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	ctx.JSON(http.StatusOK, dto.HealthResponse{
		Status:   "ok",
		Database: probe(pingCtx, h.database),
		Redis:    probe(pingCtx, h.redis),
	})
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
