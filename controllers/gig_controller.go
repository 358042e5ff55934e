package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"soundwalk/applications/gig"
	"soundwalk/logger"

	"github.com/labstack/echo/v4"
)

type gigLister interface {
	Invoke(ctx context.Context) ([]*gig.Gig, error)
}

type gigGetter interface {
	Invoke(ctx context.Context, id string) (*gig.Gig, error)
}

type gigCreator interface {
	Invoke(ctx context.Context, p *gig.GigParams) (*gig.Gig, error)
}

type gigUpdater interface {
	Invoke(ctx context.Context, id string, p *gig.GigParams) (*gig.Gig, error)
}

type gigDeleter interface {
	Invoke(ctx context.Context, id string) error
}

type GigController struct {
	list   gigLister
	public gigLister
	get    gigGetter
	create gigCreator
	update gigUpdater
	remove gigDeleter
}

func NewGigController(list, public gigLister, get gigGetter, create gigCreator, update gigUpdater, remove gigDeleter) *GigController {
	return &GigController{list: list, public: public, get: get, create: create, update: update, remove: remove}
}

// gigID prefers the path, then ?id=, then whatever the body carried.
func gigID(c echo.Context, fromBody string) string {
	if id := strings.TrimSpace(c.Param("id")); id != "" {
		return id
	}
	if id := strings.TrimSpace(c.QueryParam("id")); id != "" {
		return id
	}
	return strings.TrimSpace(fromBody)
}

func gigFailure(c echo.Context, action string, err error) error {
	switch {
	case errors.Is(err, gig.ErrValidation), errors.Is(err, gig.ErrInvalidID):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, gig.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, "Gig not found")
	}
	logger.Log.Error(fmt.Sprintf("[gigs] Failed to %s gig: %v", action, err))
	return errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to %s gig", action))
}

func (h *GigController) GetAllGigsController(c echo.Context) error {
	gigs, err := h.list.Invoke(c.Request().Context())
	if err != nil {
		return gigFailure(c, "list", err)
	}
	return c.JSON(http.StatusOK, gigs)
}

func (h *GigController) GetGigController(c echo.Context) error {
	g, err := h.get.Invoke(c.Request().Context(), gigID(c, ""))
	if err != nil {
		return gigFailure(c, "fetch", err)
	}
	return c.JSON(http.StatusOK, g)
}

// GetPublicGigsController serves upcoming non-private gigs without money or notes.
func (h *GigController) GetPublicGigsController(c echo.Context) error {
	gigs, err := h.public.Invoke(c.Request().Context())
	if err != nil {
		return gigFailure(c, "list", err)
	}
	out := make([]gig.PublicGig, 0, len(gigs))
	for _, g := range gigs {
		out = append(out, g.Public())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *GigController) CreateGigController(c echo.Context) error {
	params := new(gig.GigParams)
	if err := c.Bind(params); err != nil {
		logger.Log.Warn(fmt.Sprintf("[gigs] Create failed: invalid payload: %v", err))
		return errorJSON(c, http.StatusBadRequest, "Invalid gig payload")
	}

	created, err := h.create.Invoke(c.Request().Context(), params)
	if err != nil {
		return gigFailure(c, "create", err)
	}
	logger.Log.Info(fmt.Sprintf("[gigs] Gig created successfully. ID: %s", created.ID.Hex()))
	return c.JSON(http.StatusCreated, created)
}

func (h *GigController) UpdateGigController(c echo.Context) error {
	params := new(gig.GigParams)
	if err := c.Bind(params); err != nil {
		logger.Log.Warn(fmt.Sprintf("[gigs] Update failed: invalid payload: %v", err))
		return errorJSON(c, http.StatusBadRequest, "Invalid gig payload")
	}

	updated, err := h.update.Invoke(c.Request().Context(), gigID(c, params.TargetID()), params)
	if err != nil {
		return gigFailure(c, "update", err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *GigController) DeleteGigController(c echo.Context) error {
	var body struct {
		ID      string `json:"id"`
		MongoID string `json:"_id"`
	}
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&body); err != nil {
			return errorJSON(c, http.StatusBadRequest, "Invalid delete payload")
		}
	}
	fromBody := body.ID
	if fromBody == "" {
		fromBody = body.MongoID
	}

	id := gigID(c, fromBody)
	if err := h.remove.Invoke(c.Request().Context(), id); err != nil {
		return gigFailure(c, "delete", err)
	}
	logger.Log.Info(fmt.Sprintf("[gigs] Gig %s deleted.", id))
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "id": id})
}
