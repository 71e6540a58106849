// Package weather resolves a city name to its current conditions through the
// open-meteo geocoding and forecast APIs.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yigit/campusclubs/internal/pkg/apperrors"
)

const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"

	userAgent = "CampusClubs/1.0"
)

// Report is the current weather of a resolved city
type Report struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"wind_speed"`
	WeatherCode int     `json:"weather_code"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	UpdatedAt   string  `json:"updated_at"`
}

// Config holds the upstream endpoints
type Config struct {
	GeocodingURL string
	ForecastURL  string
	Timeout      time.Duration
}

// Client queries open-meteo
type Client struct {
	geocodingURL string
	forecastURL  string
	http         *http.Client
}

// NewClient creates a Client, filling empty endpoints with the public ones.
func NewClient(cfg Config) *Client {
	if cfg.GeocodingURL == "" {
		cfg.GeocodingURL = DefaultGeocodingURL
	}
	if cfg.ForecastURL == "" {
		cfg.ForecastURL = DefaultForecastURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		geocodingURL: cfg.GeocodingURL,
		forecastURL:  cfg.ForecastURL,
		http:         &http.Client{Timeout: cfg.Timeout},
	}
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
}

// Current geocodes city and fetches its current weather.
func (c *Client) Current(ctx context.Context, city string) (*Report, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, apperrors.NewBadRequestError("city is required")
	}

	q := url.Values{}
	q.Set("name", city)
	q.Set("count", "1")
	q.Set("language", "tr")
	q.Set("format", "json")

	var geo geocodingResponse
	if err := c.getJSON(ctx, c.geocodingURL+"?"+q.Encode(), &geo); err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", city, err)
	}
	if len(geo.Results) == 0 {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("City '%s' not found", city))
	}
	loc := geo.Results[0]

	q = url.Values{}
	q.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	q.Set("current_weather", "true")

	var forecast forecastResponse
	if err := c.getJSON(ctx, c.forecastURL+"?"+q.Encode(), &forecast); err != nil {
		return nil, fmt.Errorf("forecast for %q: %w", city, err)
	}

	cw := forecast.CurrentWeather
	return &Report{
		City:        loc.Name,
		Temperature: cw.Temperature,
		WindSpeed:   cw.WindSpeed,
		WeatherCode: cw.WeatherCode,
		Description: Describe(cw.WeatherCode),
		Latitude:    loc.Latitude,
		Longitude:   loc.Longitude,
		UpdatedAt:   cw.Time,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.NewCustomError(apperrors.ErrUpstreamUnavailable, "Weather service currently unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.NewCustomError(apperrors.ErrUpstreamUnavailable, "Weather service currently unavailable").
			WithDetails(map[string]interface{}{"upstream_status": resp.StatusCode})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode upstream response: %w", err)
	}
	return nil
}

// WMO weather interpretation codes
var descriptions = map[int]string{
	0:  "Açık",
	1:  "Çoğunlukla Açık",
	2:  "Parçalı Bulutlu",
	3:  "Kapalı",
	45: "Sisli",
	48: "Kırağı Sis",
	51: "Hafif Çiseleme",
	53: "Çiseleme",
	55: "Yoğun Çiseleme",
	61: "Hafif Yağmur",
	63: "Yağmur",
	65: "Şiddetli Yağmur",
	71: "Hafif Kar",
	73: "Kar Yağışlı",
	75: "Yoğun Kar",
	77: "Kar Taneleri",
	80: "Hafif Sağanak",
	81: "Sağanak Yağmur",
	82: "Şiddetli Sağanak",
	95: "Fırtına",
	96: "Hafif Dolu Fırtınası",
	99: "Şiddetli Dolu Fırtınası",
}

// Describe maps a WMO code to its Turkish description.
func Describe(code int) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "Bilinmiyor"
}
