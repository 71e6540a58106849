package dto

import "github.com/yigit/campusclubs/internal/pkg/weather"

// WeatherResponse wraps the current weather of a city
type WeatherResponse struct {
	Weather *weather.Report `json:"weather"`
}
