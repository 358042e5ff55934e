package gigsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"soundwalk/applications/calendar"
	"soundwalk/applications/gig"
	"soundwalk/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrCalendarNotConfigured = errors.New("No Google Calendar client configured")

var tracer = otel.Tracer("soundwalk/gigsync")

type GigError struct {
	GigID   string `json:"gigId"`
	Message string `json:"message"`
}

type Result struct {
	TotalUpcoming       int        `json:"totalUpcoming"`
	CreatedCount        int        `json:"createdCount"`
	LinkedExistingCount int        `json:"linkedExistingCount"`
	UpdatedCount        int        `json:"updatedCount"`
	Created             []string   `json:"created"`
	LinkedExisting      []string   `json:"linkedExisting"`
	Updated             []string   `json:"updated"`
	Errors              []GigError `json:"errors"`
}

func newResult(total int) *Result {
	return &Result{
		TotalUpcoming:  total,
		Created:        []string{},
		LinkedExisting: []string{},
		Updated:        []string{},
		Errors:         []GigError{},
	}
}

func (r *Result) record(a Action, gigID string) {
	switch a {
	case ActionCreate:
		r.Created = append(r.Created, gigID)
		r.CreatedCount++
	case ActionLink:
		r.LinkedExisting = append(r.LinkedExisting, gigID)
		r.LinkedExistingCount++
	case ActionUpdate:
		r.Updated = append(r.Updated, gigID)
		r.UpdatedCount++
	}
}

type SyncGigsUC struct {
	gigs   gig.Store
	events calendar.EventService
	loc    *time.Location
	now    func() time.Time
}

func NewSyncGigsUC(gigs gig.Store, events calendar.EventService, loc *time.Location) *SyncGigsUC {
	return &SyncGigsUC{gigs: gigs, events: events, loc: loc, now: time.Now}
}

// Invoke reconciles every upcoming gig with the calendar, one at a time.
// A failure on one gig is recorded and the run moves on.
func (uc *SyncGigsUC) Invoke(ctx context.Context) (*Result, error) {
	if uc.events == nil {
		return nil, ErrCalendarNotConfigured
	}

	ctx, span := tracer.Start(ctx, "gigsync.Run")
	defer span.End()

	from := gig.StartOfToday(uc.now(), uc.loc)
	upcoming, err := uc.gigs.ListFrom(ctx, from)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list upcoming gigs")
		logger.Log.Error(fmt.Sprintf("[gigs-sync] Listing upcoming gigs failed: %v", err))
		return nil, err
	}
	logger.Log.Info(fmt.Sprintf("[gigs-sync] Reconciling %d upcoming gigs from %s", len(upcoming), from.Format(gig.DayLayout)))

	res := newResult(len(upcoming))
	for _, g := range upcoming {
		gigID := g.ID.Hex()
		action, err := uc.syncOne(ctx, g)
		if err != nil {
			logger.Log.Error(fmt.Sprintf("[gigs-sync] Gig %s failed: %v", gigID, err))
			res.Errors = append(res.Errors, GigError{GigID: gigID, Message: err.Error()})
			continue
		}
		res.record(action, gigID)
	}

	span.SetAttributes(
		attribute.Int("gigs.upcoming", res.TotalUpcoming),
		attribute.Int("gigs.created", res.CreatedCount),
		attribute.Int("gigs.linked", res.LinkedExistingCount),
		attribute.Int("gigs.updated", res.UpdatedCount),
		attribute.Int("gigs.errors", len(res.Errors)),
	)
	logger.Log.Info(fmt.Sprintf("[gigs-sync] Done: created=%d linked=%d updated=%d errors=%d",
		res.CreatedCount, res.LinkedExistingCount, res.UpdatedCount, len(res.Errors)))
	return res, nil
}

func (uc *SyncGigsUC) syncOne(ctx context.Context, g *gig.Gig) (Action, error) {
	ctx, span := tracer.Start(ctx, "gigsync.gig")
	defer span.End()
	span.SetAttributes(attribute.String("gig.id", g.ID.Hex()))

	start := g.StartIn(uc.loc)
	payload := calendar.BuildEventPayload(calendar.EventInput{
		Venue:         g.Venue,
		InternalNotes: g.InternalNotes,
		Start:         start,
	})

	items, err := uc.events.ListEvents(ctx, start.Add(-SearchRadius), start.Add(SearchRadius), maxSearchResults)
	if err != nil {
		return fail(span, err)
	}

	d := Resolve(g.LinkedEventID(), Candidates(items, start, uc.loc))
	span.SetAttributes(attribute.String("gig.action", d.Action.String()))

	if d.Action == ActionCreate {
		created, err := uc.events.InsertEvent(ctx, payload)
		if err != nil {
			return fail(span, err)
		}
		if created == nil || created.Id == "" {
			return fail(span, errors.New("Insert returned no eventId"))
		}
		if err := uc.gigs.SetCalendarEventID(ctx, g.ID, created.Id); err != nil {
			return fail(span, err)
		}
		return ActionCreate, nil
	}

	if g.LinkedEventID() != d.EventID {
		if err := uc.gigs.SetCalendarEventID(ctx, g.ID, d.EventID); err != nil {
			return fail(span, err)
		}
	}
	if _, err := uc.events.PatchEvent(ctx, d.EventID, payload); err != nil {
		return fail(span, err)
	}
	return d.Action, nil
}

func fail(span trace.Span, err error) (Action, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return ActionCreate, err
}
