package calendar

import (
	"bytes"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

const productID = "-//CampusClubs//Events//TR"

// Entry is the calendar view of an event
type Entry struct {
	ID          int64
	Title       string
	Description string
	Location    string
	ClubName    string
	Start       time.Time
	End         time.Time
}

// Export serializes entries into an iCalendar document. An entry without an
// end time lasts one hour.
func Export(entries []Entry, now time.Time) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")

	for _, entry := range entries {
		e := cal.AddEvent(fmt.Sprintf("event-%d@campusclubs", entry.ID))
		e.SetDtStampTime(now)
		e.SetCreatedTime(now)
		e.SetModifiedAt(now)
		e.SetStartAt(entry.Start)

		end := entry.End
		if end.IsZero() || !end.After(entry.Start) {
			end = entry.Start.Add(time.Hour)
		}
		e.SetEndAt(end)

		e.SetSummary(entry.Title)
		if desc := describe(entry); desc != "" {
			e.SetDescription(desc)
		}
		if entry.Location != "" {
			e.SetLocation(entry.Location)
		}
		e.SetStatus(ics.ObjectStatusConfirmed)
		e.SetTimeTransparency(ics.TransparencyOpaque)
		e.SetClass(ics.ClassificationPublic)
		e.SetSequence(0)

		// reminder one hour before
		alarm := e.AddAlarm()
		alarm.SetAction(ics.ActionDisplay)
		alarm.AddProperty("TRIGGER;VALUE=DURATION", "-PT1H")
		alarm.SetDescription(entry.Title)
	}

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		return nil, fmt.Errorf("error serializing calendar: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportOne serializes a single event.
func ExportOne(entry Entry, now time.Time) ([]byte, error) {
	return Export([]Entry{entry}, now)
}

func describe(entry Entry) string {
	switch {
	case entry.ClubName == "":
		return entry.Description
	case entry.Description == "":
		return entry.ClubName
	default:
		return entry.ClubName + ": " + entry.Description
	}
}
