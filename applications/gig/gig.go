package gig

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DayLayout = "2006-01-02"

var (
	ErrNotFound   = errors.New("gig not found")
	ErrInvalidID  = errors.New("invalid gig ID format")
	ErrValidation = errors.New("invalid gig")
)

const (
	PaymentCash         = "Cash"
	PaymentBankTransfer = "Bank Transfer"

	SplitEven      = "Even"
	SplitCustomise = "Customise"
)

// Members are the band members a fee is split between.
var Members = []string{"Ross", "Keith", "Barry"}

// Gig is a booked performance as stored in the gigs collection.
type Gig struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Venue             string             `bson:"venue"`
	Date              time.Time          `bson:"date"`
	StartTime         string             `bson:"startTime"`
	Description       string             `bson:"description"`
	InternalNotes     string             `bson:"internalNotes"`
	Fee               Amount             `bson:"fee"`
	PaymentMethod     string             `bson:"paymentMethod"`
	PaymentSplit      string             `bson:"paymentSplit"`
	PaymentSplitRoss  Amount             `bson:"paymentSplitRoss"`
	PaymentSplitKeith Amount             `bson:"paymentSplitKeith"`
	PaymentSplitBarry Amount             `bson:"paymentSplitBarry"`
	PrivateEvent      bool               `bson:"privateEvent"`
	PostersNeeded     bool               `bson:"postersNeeded"`
	CalendarEventID   *string            `bson:"calendarEventId"`
}

type gigView struct {
	ID                string  `json:"_id"`
	Venue             string  `json:"venue"`
	Date              string  `json:"date"`
	StartTime         string  `json:"startTime"`
	Description       string  `json:"description"`
	InternalNotes     string  `json:"internalNotes"`
	Fee               float64 `json:"fee"`
	PaymentMethod     string  `json:"paymentMethod"`
	PaymentSplit      string  `json:"paymentSplit"`
	PaymentSplitRoss  float64 `json:"paymentSplitRoss"`
	PaymentSplitKeith float64 `json:"paymentSplitKeith"`
	PaymentSplitBarry float64 `json:"paymentSplitBarry"`
	PrivateEvent      bool    `json:"privateEvent"`
	PostersNeeded     bool    `json:"postersNeeded"`
	CalendarEventID   *string `json:"calendarEventId"`
}

// MarshalJSON renders the date as a plain ISO day, the way the admin client expects.
func (g Gig) MarshalJSON() ([]byte, error) {
	return json.Marshal(gigView{
		ID:                g.ID.Hex(),
		Venue:             g.Venue,
		Date:              g.Day(),
		StartTime:         g.StartTime,
		Description:       g.Description,
		InternalNotes:     g.InternalNotes,
		Fee:               float64(g.Fee),
		PaymentMethod:     g.PaymentMethod,
		PaymentSplit:      g.PaymentSplit,
		PaymentSplitRoss:  float64(g.PaymentSplitRoss),
		PaymentSplitKeith: float64(g.PaymentSplitKeith),
		PaymentSplitBarry: float64(g.PaymentSplitBarry),
		PrivateEvent:      g.PrivateEvent,
		PostersNeeded:     g.PostersNeeded,
		CalendarEventID:   g.CalendarEventID,
	})
}

// Day returns the calendar day as YYYY-MM-DD.
func (g *Gig) Day() string {
	if g.Date.IsZero() {
		return ""
	}
	return g.Date.UTC().Format(DayLayout)
}

// LinkedEventID returns the stored calendar event id, or "".
func (g *Gig) LinkedEventID() string {
	if g.CalendarEventID == nil {
		return ""
	}
	return *g.CalendarEventID
}

// StartIn places the gig's day and start time in loc. Missing or malformed
// time parts count as zero, so an untimed gig starts at local midnight.
func (g *Gig) StartIn(loc *time.Location) time.Time {
	y, m, d := g.Date.UTC().Date()
	hour, minute := 0, 0
	if g.StartTime != "" {
		parts := strings.SplitN(g.StartTime, ":", 3)
		hour, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
		if len(parts) > 1 {
			minute, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
		}
	}
	return time.Date(y, m, d, hour, minute, 0, 0, loc)
}

// PayFor returns a member's share of the fee.
func (g *Gig) PayFor(member string) (float64, bool) {
	switch member {
	case "Ross":
		return float64(g.PaymentSplitRoss), true
	case "Keith":
		return float64(g.PaymentSplitKeith), true
	case "Barry":
		return float64(g.PaymentSplitBarry), true
	}
	return 0, false
}

// PublicGig is the reduced view shown on the public gigs page.
type PublicGig struct {
	ID          string `json:"_id"`
	Venue       string `json:"venue"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime,omitempty"`
	Description string `json:"description,omitempty"`
}

func (g *Gig) Public() PublicGig {
	return PublicGig{
		ID:          g.ID.Hex(),
		Venue:       g.Venue,
		Date:        g.Day(),
		StartTime:   g.StartTime,
		Description: g.Description,
	}
}

// ParseID converts a hex string into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// ParseDay accepts YYYY-MM-DD or an RFC 3339 timestamp and returns UTC midnight
// of that day.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) >= len(DayLayout) {
		if t, err := time.Parse(DayLayout, s[:len(DayLayout)]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
}

// ParseFee reads a fee from a number or a numeric-looking string. Everything
// except digits and '.' is dropped from strings; anything unreadable is 0.
func ParseFee(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case Amount:
		return finite(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return finite(f)
	case string:
		var b strings.Builder
		for _, r := range x {
			if (r >= '0' && r <= '9') || r == '.' {
				b.WriteRune(r)
			}
		}
		if b.Len() == 0 {
			return 0
		}
		f, err := strconv.ParseFloat(b.String(), 64)
		if err != nil {
			return 0
		}
		return finite(f)
	}
	return 0
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
