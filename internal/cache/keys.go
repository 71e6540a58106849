package cache

import (
	"fmt"
	"strings"
)

// Key prefixes
const (
	ClubListPrefix  = "clubs:list:"
	EventListPrefix = "events:list:"
	WeatherPrefix   = "weather:"
	RateLimitPrefix = "ratelimit:"
)

// ClubListKey caches an anonymous club page.
func ClubListKey(page, limit int) string {
	return fmt.Sprintf("%s%d:%d", ClubListPrefix, page, limit)
}

// EventListKey caches an event page for a search and date filter.
func EventListKey(page, limit int, search, date string) string {
	return fmt.Sprintf("%s%d:%d:%s:%s", EventListPrefix, page, limit, strings.ToLower(strings.TrimSpace(search)), date)
}

// WeatherKey caches a city's weather.
func WeatherKey(city string) string {
	return WeatherPrefix + strings.ToLower(strings.TrimSpace(city))
}
