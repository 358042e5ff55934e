package calendar

import (
	"context"
	"errors"
	"net/http"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

const (
	// GigDuration is how long a mirrored gig event lasts.
	GigDuration = 2 * time.Hour
	// ReminderMinutes is one week; both email and popup reminders use it.
	ReminderMinutes = 60 * 24 * 7
	gigColorID      = "5"
)

// EventService is the slice of the Google Calendar API the app uses. The
// Google-backed implementation is GoogleClient; tests use fakes.
type EventService interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time, maxResults int64) ([]*gcal.Event, error)
	InsertEvent(ctx context.Context, ev *gcal.Event) (*gcal.Event, error)
	PatchEvent(ctx context.Context, eventID string, ev *gcal.Event) (*gcal.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// EventInput carries the gig fields an event is built from.
type EventInput struct {
	Venue         string
	InternalNotes string
	Start         time.Time
}

// BuildEventPayload produces the event body used for inserts and patches.
func BuildEventPayload(in EventInput) *gcal.Event {
	zone := in.Start.Location().String()
	end := in.Start.Add(GigDuration)

	return &gcal.Event{
		Summary:     "Gig at " + in.Venue,
		Description: in.InternalNotes,
		Start: &gcal.EventDateTime{
			DateTime: in.Start.Format(time.RFC3339),
			TimeZone: zone,
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: zone,
		},
		ColorId: gigColorID,
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: ReminderMinutes},
				{Method: "popup", Minutes: ReminderMinutes},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

// EventStart reads an event's start, either a timestamp or an all-day date
// interpreted in loc.
func EventStart(ev *gcal.Event, loc *time.Location) (time.Time, bool) {
	if ev == nil || ev.Start == nil {
		return time.Time{}, false
	}
	if ev.Start.DateTime != "" {
		t, err := time.Parse(time.RFC3339, ev.Start.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return t.In(loc), true
	}
	if ev.Start.Date != "" {
		t, err := time.ParseInLocation("2006-01-02", ev.Start.Date, loc)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// IsGone reports whether err is a Google API 404 or 410, i.e. the event no
// longer exists remotely.
func IsGone(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound || gerr.Code == http.StatusGone
	}
	return false
}
