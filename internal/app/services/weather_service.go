package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campusclubs/internal/cache"
	"github.com/yigit/campusclubs/internal/metrics"
	"github.com/yigit/campusclubs/internal/pkg/weather"
)

// WeatherService serves current weather through the response cache
type WeatherService struct {
	provider      WeatherProvider
	responseCache Cache
	metrics       *metrics.Metrics
	ttl           time.Duration
	defaultCity   string
	logger        zerolog.Logger
}

// NewWeatherService creates a new WeatherService
func NewWeatherService(provider WeatherProvider, responseCache Cache, m *metrics.Metrics, ttl time.Duration, defaultCity string, logger zerolog.Logger) *WeatherService {
	return &WeatherService{
		provider:      provider,
		responseCache: cacheOrNoop(responseCache),
		metrics:       m,
		ttl:           ttl,
		defaultCity:   defaultCity,
		logger:        logger,
	}
}

// Current returns the weather of city, or of the default city when empty.
func (s *WeatherService) Current(ctx context.Context, city string) (*weather.Report, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		city = s.defaultCity
	}

	key := cache.WeatherKey(city)
	var cached weather.Report
	hit := s.responseCache.GetJSON(ctx, key, &cached)
	s.metrics.CacheLookup("weather", hit)
	if hit {
		return &cached, nil
	}

	report, err := s.provider.Current(ctx, city)
	if err != nil {
		s.logger.Warn().Err(err).Str("city", city).Msg("Weather lookup failed")
		return nil, err
	}
	s.responseCache.SetJSON(ctx, key, report, s.ttl)
	return report, nil
}
