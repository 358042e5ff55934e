package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"soundwalk/applications/push"
	"soundwalk/logger"

	"github.com/labstack/echo/v4"
)

type subscriptionSaver interface {
	Invoke(ctx context.Context, p *push.SubscriptionParams, userAgent string) (*push.SaveResult, error)
}

type broadcaster interface {
	Invoke(ctx context.Context, n push.Notification) (*push.BroadcastResult, error)
}

type PushController struct {
	save      subscriptionSaver
	broadcast broadcaster
	publicKey string
}

func NewPushController(save subscriptionSaver, b broadcaster, publicKey string) *PushController {
	return &PushController{save: save, broadcast: b, publicKey: publicKey}
}

func (h *PushController) SubscribeController(c echo.Context) error {
	params := new(push.SubscriptionParams)
	if err := c.Bind(params); err != nil {
		return errorJSON(c, http.StatusBadRequest, push.ErrInvalidSubscription.Error())
	}

	res, err := h.save.Invoke(c.Request().Context(), params, c.Request().UserAgent())
	if errors.Is(err, push.ErrInvalidSubscription) {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to save subscription")
	}
	return c.JSON(http.StatusOK, res)
}

// PublicKeyController hands the browser the VAPID application server key.
func (h *PushController) PublicKeyController(c echo.Context) error {
	if h.publicKey == "" {
		return errorJSON(c, http.StatusServiceUnavailable, "Push notifications are not configured")
	}
	return c.JSON(http.StatusOK, map[string]string{"publicKey": h.publicKey})
}

func (h *PushController) BroadcastController(c echo.Context) error {
	n := push.Notification{}
	if err := c.Bind(&n); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid notification payload")
	}
	if strings.TrimSpace(n.Title) == "" || strings.TrimSpace(n.Body) == "" {
		return errorJSON(c, http.StatusBadRequest, "title and body are required")
	}

	res, err := h.broadcast.Invoke(c.Request().Context(), n)
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[push] Broadcast request failed: %v", err))
		return errorJSON(c, http.StatusInternalServerError, "Broadcast failed")
	}
	return c.JSON(http.StatusOK, res)
}
