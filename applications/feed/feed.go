package feed

import (
	"context"
	"fmt"
	"time"

	"soundwalk/applications/calendar"
	"soundwalk/applications/gig"
	"soundwalk/logger"

	ics "github.com/arran4/golang-ical"
)

const ContentType = "text/calendar; charset=utf-8"

// Build renders public gigs as an iCalendar feed. Timed gigs last
// calendar.GigDuration; gigs without a start time are all-day.
func Build(gigs []*gig.Gig, loc *time.Location, siteURL string, stamp time.Time) string {
	cal := ics.NewCalendarFor("Soundwalk")
	cal.SetMethod(ics.MethodPublish)
	cal.SetName("Soundwalk gigs")
	cal.SetXWRCalName("Soundwalk gigs")
	cal.SetXWRTimezone(loc.String())
	cal.SetRefreshInterval("PT6H")

	for _, g := range gigs {
		if g.PrivateEvent {
			continue
		}
		ev := cal.AddEvent(g.ID.Hex() + "@soundwalk")
		ev.SetDtStampTime(stamp)
		ev.SetSummary("Soundwalk @ " + g.Venue)
		ev.SetLocation(g.Venue)
		if g.Description != "" {
			ev.SetDescription(g.Description)
		}
		if siteURL != "" {
			ev.SetURL(siteURL + "/gigs")
		}

		if g.StartTime == "" {
			day := g.Date.UTC()
			ev.SetAllDayStartAt(day)
			ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}
		start := g.StartIn(loc)
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(calendar.GigDuration))
	}
	return cal.Serialize()
}

type publicLister interface {
	Invoke(ctx context.Context) ([]*gig.Gig, error)
}

type FeedUC struct {
	gigs    publicLister
	loc     *time.Location
	siteURL string
	now     func() time.Time
}

func NewFeedUC(gigs publicLister, loc *time.Location, siteURL string) *FeedUC {
	return &FeedUC{gigs: gigs, loc: loc, siteURL: siteURL, now: time.Now}
}

func (uc *FeedUC) Invoke(ctx context.Context) (string, error) {
	gigs, err := uc.gigs.Invoke(ctx)
	if err != nil {
		return "", err
	}
	body := Build(gigs, uc.loc, uc.siteURL, uc.now().UTC())
	logger.Log.Info(fmt.Sprintf("[feed] Serving iCal feed with %d gigs.", len(gigs)))
	return body, nil
}
