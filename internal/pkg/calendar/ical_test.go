package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportOne_DefaultsEndToOneHour(t *testing.T) {
	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	data, err := ExportOne(Entry{ID: 7, Title: "Go Meetup", Location: "B-101", ClubName: "Yazılım Kulübü", Start: start}, start)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "UID:event-7@campusclubs")
	assert.Contains(t, out, "SUMMARY:Go Meetup")
	assert.Contains(t, out, "DTSTART:20260310T180000Z")
	assert.Contains(t, out, "DTEND:20260310T190000Z")
	assert.Contains(t, out, "LOCATION:B-101")
}

func TestExportOne_KeepsExplicitEnd(t *testing.T) {
	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	data, err := ExportOne(Entry{ID: 1, Title: "Workshop", Start: start, End: start.Add(3 * time.Hour)}, start)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DTEND:20260310T210000Z")
}
