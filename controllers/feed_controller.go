package controllers

import (
	"context"
	"net/http"

	"soundwalk/applications/feed"

	"github.com/labstack/echo/v4"
)

type feedBuilder interface {
	Invoke(ctx context.Context) (string, error)
}

type FeedController struct {
	feed feedBuilder
}

func NewFeedController(f feedBuilder) *FeedController {
	return &FeedController{feed: f}
}

// ICalController serves the public gigs as a subscribable calendar.
func (h *FeedController) ICalController(c echo.Context) error {
	body, err := h.feed.Invoke(c.Request().Context())
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to build calendar feed")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="soundwalk-gigs.ics"`)
	return c.Blob(http.StatusOK, feed.ContentType, []byte(body))
}
