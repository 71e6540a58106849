package helpers

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DayLayout is the YYYY-MM-DD layout used by date query filters
const DayLayout = "2006-01-02"

// ParseDuration reads values such as "300s" or "1h" from config. Empty or
// malformed values yield def; malformed ones are logged.
func ParseDuration(raw string, def time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn().Err(err).Str("value", raw).Dur("default", def).Msg("Invalid duration, using default")
		return def
	}
	return d
}

// ParseDay parses a YYYY-MM-DD filter into midnight UTC of that day.
func ParseDay(raw string) (time.Time, error) {
	return time.Parse(DayLayout, strings.TrimSpace(raw))
}
