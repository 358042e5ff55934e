package calendar

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"soundwalk/logger"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var ErrNoCredentials = errors.New("google credentials not configured")

// ParseCredentials accepts service-account JSON either raw or base64 encoded.
func ParseCredentials(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrNoCredentials
	}

	jsonBytes := []byte(raw)
	if !strings.HasPrefix(raw, "{") {
		compact := strings.Join(strings.Fields(raw), "")
		decoded, err := base64.StdEncoding.DecodeString(compact)
		if err != nil {
			return nil, fmt.Errorf("credentials are neither JSON nor base64: %w", err)
		}
		jsonBytes = bytes.TrimSpace(decoded)
	}

	var creds struct {
		ClientEmail string `json:"client_email"`
		PrivateKey  string `json:"private_key"`
	}
	if err := json.Unmarshal(jsonBytes, &creds); err != nil {
		return nil, fmt.Errorf("invalid credentials json: %w", err)
	}
	if creds.ClientEmail == "" || creds.PrivateKey == "" {
		return nil, fmt.Errorf("credentials missing client_email or private_key")
	}
	return jsonBytes, nil
}

// GoogleClient talks to one calendar through a service account.
type GoogleClient struct {
	srv        *gcal.Service
	calendarID string
}

// NewGoogleClient builds a client for calendarID. scope is usually
// gcal.CalendarScope or gcal.CalendarReadonlyScope.
func NewGoogleClient(ctx context.Context, rawCreds, calendarID, scope string) (*GoogleClient, error) {
	creds, err := ParseCredentials(rawCreds)
	if err != nil {
		return nil, err
	}
	srv, err := gcal.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(scope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	logger.Log.Info(fmt.Sprintf("[calendar] Google Calendar client ready for %s", calendarID))
	return &GoogleClient{srv: srv, calendarID: calendarID}, nil
}

func (c *GoogleClient) CalendarID() string { return c.calendarID }

func (c *GoogleClient) ListEvents(ctx context.Context, timeMin, timeMax time.Time, maxResults int64) ([]*gcal.Event, error) {
	res, err := c.srv.Events.List(c.calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return res.Items, nil
}

func (c *GoogleClient) InsertEvent(ctx context.Context, ev *gcal.Event) (*gcal.Event, error) {
	created, err := c.srv.Events.Insert(c.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return created, nil
}

func (c *GoogleClient) PatchEvent(ctx context.Context, eventID string, ev *gcal.Event) (*gcal.Event, error) {
	patched, err := c.srv.Events.Patch(c.calendarID, eventID, ev).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("patch event %s: %w", eventID, err)
	}
	return patched, nil
}

func (c *GoogleClient) DeleteEvent(ctx context.Context, eventID string) error {
	if err := c.srv.Events.Delete(c.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}
	return nil
}
