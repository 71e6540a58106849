package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/campusclubs/internal/app/models/dto"
	"github.com/yigit/campusclubs/internal/middleware"
	"github.com/yigit/campusclubs/internal/pkg/weather"
)

// WeatherLookup returns the current weather of a city
type WeatherLookup interface {
	Current(ctx context.Context, city string) (*weather.Report, error)
}

// WeatherController serves the campus weather widget
type WeatherController struct {
	weatherService WeatherLookup
	logger         zerolog.Logger
}

// NewWeatherController creates a new WeatherController
func NewWeatherController(weatherService WeatherLookup, logger zerolog.Logger) *WeatherController {
	return &WeatherController{weatherService: weatherService, logger: logger}
}

// Current godoc
// @Summary Current weather
// @Description Geocodes the city through open-meteo and returns the current conditions. Results are cached.
// @Tags weather
// @Produce json
// @Param city query string false "City name" default(Istanbul)
// @Success 200 {object} dto.WeatherResponse
// @Failure 404 {object} dto.ErrorResponse "City not found"
// @Failure 503 {object} dto.ErrorResponse "Weather provider unavailable"
// @Router /weather [get]
func (c *WeatherController) Current(ctx *gin.Context) {
	city := ctx.Query("city")
	report, err := c.weatherService.Current(ctx.Request.Context(), city)
	if err != nil {
		c.logger.Warn().Err(err).Str("city", city).Msg("Weather lookup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.WeatherResponse{Weather: report})
}
