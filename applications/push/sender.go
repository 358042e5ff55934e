package push

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// Sender delivers one encrypted payload and reports the push service's
// HTTP status.
type Sender interface {
	Send(ctx context.Context, sub *Subscription, payload []byte) (int, error)
}

type VAPID struct {
	PublicKey  string
	PrivateKey string
	Subject    string
}

type WebPushSender struct {
	vapid VAPID
	ttl   int
}

func NewWebPushSender(v VAPID) *WebPushSender {
	return &WebPushSender{vapid: v, ttl: 60 * 60}
}

func (s *WebPushSender) Send(ctx context.Context, sub *Subscription, payload []byte) (int, error) {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.Keys.P256dh,
			Auth:   sub.Keys.Auth,
		},
	}, &webpush.Options{
		// the library adds the mailto: scheme itself
		Subscriber:      strings.TrimPrefix(s.vapid.Subject, "mailto:"),
		VAPIDPublicKey:  s.vapid.PublicKey,
		VAPIDPrivateKey: s.vapid.PrivateKey,
		TTL:             s.ttl,
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("push service responded %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}

// Notification is the JSON the service worker reads in its push handler.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag,omitempty"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
	Badge string `json:"badge"`
}

const defaultIcon = "/pwa-192.png"

func (n Notification) payload() ([]byte, error) {
	if n.URL == "" {
		n.URL = "/admin"
	}
	if n.Icon == "" {
		n.Icon = defaultIcon
	}
	if n.Badge == "" {
		n.Badge = defaultIcon
	}
	return json.Marshal(n)
}

func endpointHost(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
