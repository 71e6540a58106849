package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusclubs/internal/pkg/apperrors"
)

func newUpstream(t *testing.T, geo, forecast string, forecastStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("count"))
		assert.Equal(t, "tr", r.URL.Query().Get("language"))
		_, _ = w.Write([]byte(geo))
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		w.WriteHeader(forecastStatus)
		_, _ = w.Write([]byte(forecast))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCurrent(t *testing.T) {
	srv := newUpstream(t,
		`{"results":[{"name":"Ankara","latitude":39.92,"longitude":32.85}]}`,
		`{"current_weather":{"temperature":12.5,"windspeed":8.1,"weathercode":3,"time":"2026-01-01T12:00"}}`,
		http.StatusOK)

	c := NewClient(Config{GeocodingURL: srv.URL + "/search", ForecastURL: srv.URL + "/forecast"})
	report, err := c.Current(context.Background(), "ankara")
	require.NoError(t, err)

	assert.Equal(t, "Ankara", report.City)
	assert.Equal(t, 12.5, report.Temperature)
	assert.Equal(t, 8.1, report.WindSpeed)
	assert.Equal(t, 3, report.WeatherCode)
	assert.Equal(t, "Kapalı", report.Description)
	assert.Equal(t, 39.92, report.Latitude)
	assert.Equal(t, "2026-01-01T12:00", report.UpdatedAt)
}

func TestCurrent_CityNotFound(t *testing.T) {
	srv := newUpstream(t, `{}`, `{}`, http.StatusOK)
	c := NewClient(Config{GeocodingURL: srv.URL + "/search", ForecastURL: srv.URL + "/forecast"})

	_, err := c.Current(context.Background(), "Nowhere")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
	assert.Equal(t, "City 'Nowhere' not found", apperrors.Message(err, ""))
}

func TestCurrent_UpstreamFailure(t *testing.T) {
	srv := newUpstream(t,
		`{"results":[{"name":"Ankara","latitude":1,"longitude":2}]}`,
		`oops`, http.StatusBadGateway)
	c := NewClient(Config{GeocodingURL: srv.URL + "/search", ForecastURL: srv.URL + "/forecast"})

	_, err := c.Current(context.Background(), "Ankara")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstreamUnavailable))
}

func TestCurrent_EmptyCity(t *testing.T) {
	_, err := NewClient(Config{}).Current(context.Background(), "  ")
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Açık", Describe(0))
	assert.Equal(t, "Fırtına", Describe(95))
	assert.Equal(t, "Bilinmiyor", Describe(42))
}
