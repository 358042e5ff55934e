package feed

import (
	"context"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"soundwalk/applications/gig"

	ics "github.com/arran4/golang-ical"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type gigsFunc func(ctx context.Context) ([]*gig.Gig, error)

func (f gigsFunc) Invoke(ctx context.Context) ([]*gig.Gig, error) { return f(ctx) }

func TestBuildRoundTrips(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	timed := &gig.Gig{ID: primitive.NewObjectID(), Venue: "The Anchor", Date: time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC), StartTime: "20:00", Description: "Free entry"}
	allDay := &gig.Gig{ID: primitive.NewObjectID(), Venue: "Summer Fete", Date: time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)}
	private := &gig.Gig{ID: primitive.NewObjectID(), Venue: "Wedding", Date: time.Date(2025, 8, 9, 0, 0, 0, 0, time.UTC), PrivateEvent: true, InternalNotes: "secret"}

	uc := NewFeedUC(gigsFunc(func(context.Context) ([]*gig.Gig, error) {
		return []*gig.Gig{timed, allDay, private}, nil
	}), loc, "https://soundwalk.example")
	uc.now = func() time.Time { return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC) }

	body, err := uc.Invoke(context.Background())
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if strings.Contains(body, "Wedding") || strings.Contains(body, "secret") {
		t.Fatal("private gig leaked into the public feed")
	}

	cal, err := ics.ParseCalendar(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ParseCalendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	first := events[0]
	if got := first.GetProperty(ics.ComponentPropertySummary).Value; got != "Soundwalk @ The Anchor" {
		t.Fatalf("summary = %q", got)
	}
	if got := first.GetProperty(ics.ComponentPropertyLocation).Value; got != "The Anchor" {
		t.Fatalf("location = %q", got)
	}
	start, err := first.GetStartAt()
	if err != nil || !start.Equal(time.Date(2025, 7, 12, 19, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v err=%v", start, err)
	}
	end, err := first.GetEndAt()
	if err != nil || end.Sub(start) != 2*time.Hour {
		t.Fatalf("end = %v err=%v", end, err)
	}

	if v := events[1].GetProperty(ics.ComponentPropertyDtStart).Value; v != "20250802" {
		t.Fatalf("all-day DTSTART = %q", v)
	}
}
