package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"soundwalk/logger"

	gcal "google.golang.org/api/calendar/v3"
)

const maxListedEvents = 2500

var ErrInvalidWindow = errors.New("invalid time window")

// NormalizedEvent is the flat shape the admin calendar widget consumes.
type NormalizedEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	StartISO    string `json:"startISO"`
	EndISO      string `json:"endISO"`
	Description string `json:"description"`
	AllDay      bool   `json:"allDay"`
}

// NormalizeEvents flattens API events. All-day events keep Google's exclusive
// end date. Rows without a usable start or end are dropped.
func NormalizeEvents(items []*gcal.Event, loc *time.Location) []NormalizedEvent {
	out := make([]NormalizedEvent, 0, len(items))
	for _, e := range items {
		if e == nil {
			continue
		}
		allDay := (e.Start != nil && e.Start.Date != "") || (e.End != nil && e.End.Date != "")

		var startISO, endISO string
		if allDay {
			startISO = dayISO(e.Start, loc)
			endISO = dayISO(e.End, loc)
		} else {
			if e.Start != nil {
				startISO = e.Start.DateTime
			}
			if e.End != nil {
				endISO = e.End.DateTime
			}
		}
		if startISO == "" || endISO == "" {
			continue
		}

		title := e.Summary
		if title == "" {
			title = "(untitled)"
		}
		id := e.Id
		if id == "" {
			summary := e.Summary
			if summary == "" {
				summary = "Event"
			}
			id = fmt.Sprintf("%s-%s", summary, startISO)
		}

		out = append(out, NormalizedEvent{
			ID:          id,
			Title:       title,
			StartISO:    startISO,
			EndISO:      endISO,
			Description: e.Description,
			AllDay:      allDay,
		})
	}
	return out
}

func dayISO(dt *gcal.EventDateTime, loc *time.Location) string {
	if dt == nil || dt.Date == "" {
		return ""
	}
	t, err := time.ParseInLocation("2006-01-02", dt.Date, loc)
	if err != nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

type ListEventsUC struct {
	events EventService
	loc    *time.Location
	now    func() time.Time
}

// NewListEventsUC accepts a nil EventService; the use case then returns an
// empty list, matching an unconfigured calendar.
func NewListEventsUC(events EventService, loc *time.Location) *ListEventsUC {
	return &ListEventsUC{events: events, loc: loc, now: time.Now}
}

// Invoke lists events between timeMin and timeMax (RFC 3339). Empty bounds
// default to one month back and six months ahead. Upstream failures are
// logged and yield an empty list.
func (uc *ListEventsUC) Invoke(ctx context.Context, timeMin, timeMax string) ([]NormalizedEvent, error) {
	if uc.events == nil {
		return []NormalizedEvent{}, nil
	}

	now := uc.now().In(uc.loc)
	from := now.AddDate(0, -1, 0)
	to := now.AddDate(0, 6, 0)

	if timeMin != "" {
		t, err := time.Parse(time.RFC3339, timeMin)
		if err != nil {
			return nil, fmt.Errorf("%w: timeMin: %v", ErrInvalidWindow, err)
		}
		from = t
	}
	if timeMax != "" {
		t, err := time.Parse(time.RFC3339, timeMax)
		if err != nil {
			return nil, fmt.Errorf("%w: timeMax: %v", ErrInvalidWindow, err)
		}
		to = t
	}

	items, err := uc.events.ListEvents(ctx, from, to, maxListedEvents)
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[google-events] Listing events failed: %v", err))
		return []NormalizedEvent{}, nil
	}

	events := NormalizeEvents(items, uc.loc)
	logger.Log.Info(fmt.Sprintf("[google-events] Returning %d events between %s and %s", len(events), from.Format(time.RFC3339), to.Format(time.RFC3339)))
	return events, nil
}
