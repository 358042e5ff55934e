package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"soundwalk/applications/calendar"
	"soundwalk/applications/gigsync"
	"soundwalk/logger"

	"github.com/labstack/echo/v4"
)

type gigSyncer interface {
	Invoke(ctx context.Context) (*gigsync.Result, error)
}

type eventLister interface {
	Invoke(ctx context.Context, timeMin, timeMax string) ([]calendar.NormalizedEvent, error)
}

type CalendarController struct {
	sync   gigSyncer
	events eventLister
}

func NewCalendarController(sync gigSyncer, events eventLister) *CalendarController {
	return &CalendarController{sync: sync, events: events}
}

// SyncGigsController reconciles upcoming gigs with the band calendar.
// Per-gig failures are part of a 200 response.
func (h *CalendarController) SyncGigsController(c echo.Context) error {
	res, err := h.sync.Invoke(c.Request().Context())
	if errors.Is(err, gigsync.ErrCalendarNotConfigured) {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[gigs-sync] Sync request failed: %v", err))
		return errorJSON(c, http.StatusInternalServerError, "Calendar sync failed")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CalendarController) GoogleEventsController(c echo.Context) error {
	events, err := h.events.Invoke(c.Request().Context(), c.QueryParam("timeMin"), c.QueryParam("timeMax"))
	if errors.Is(err, calendar.ErrInvalidWindow) {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to list calendar events")
	}
	return c.JSON(http.StatusOK, events)
}
