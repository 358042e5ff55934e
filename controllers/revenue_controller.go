package controllers

import (
	"context"
	"errors"
	"net/http"

	"soundwalk/applications/revenue"

	"github.com/labstack/echo/v4"
)

type revenueSummarizer interface {
	Invoke(ctx context.Context, q revenue.Query) (*revenue.Summary, error)
}

type RevenueController struct {
	summary revenueSummarizer
}

func NewRevenueController(s revenueSummarizer) *RevenueController {
	return &RevenueController{summary: s}
}

func (h *RevenueController) RevenueController(c echo.Context) error {
	granularity, err := revenue.ParseGranularity(c.QueryParam("granularity"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	sum, err := h.summary.Invoke(c.Request().Context(), revenue.Query{
		Granularity: granularity,
		Start:       c.QueryParam("start"),
		End:         c.QueryParam("end"),
	})
	switch {
	case errors.Is(err, revenue.ErrInvalidRange), errors.Is(err, revenue.ErrUnknownGranularity):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case err != nil:
		return errorJSON(c, http.StatusInternalServerError, "Failed to compute revenue")
	}
	return c.JSON(http.StatusOK, sum)
}
