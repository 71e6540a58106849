package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// eventTimeLayouts are the date formats accepted from forms; datetime-local
// inputs send no seconds and no zone.
var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FlexibleTime decodes the date formats sent by HTML forms.
type FlexibleTime struct {
	time.Time
}

// ParseFlexibleTime parses s with the first matching layout.
func ParseFlexibleTime(s string) (time.Time, error) {
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format %q", s)
}

func (t *FlexibleTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := ParseFlexibleTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t FlexibleTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time)
}
