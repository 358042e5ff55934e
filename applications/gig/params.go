package gig

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// GigParams is the payload the admin form sends for create and update.
type GigParams struct {
	ID                string `json:"id,omitempty"`
	MongoID           string `json:"_id,omitempty"`
	Venue             string `json:"venue"`
	Date              string `json:"date"`
	StartTime         string `json:"startTime"`
	Description       string `json:"description"`
	InternalNotes     string `json:"internalNotes"`
	Fee               Amount `json:"fee"`
	PaymentMethod     string `json:"paymentMethod"`
	PaymentSplit      string `json:"paymentSplit"`
	PaymentSplitRoss  Amount `json:"paymentSplitRoss"`
	PaymentSplitKeith Amount `json:"paymentSplitKeith"`
	PaymentSplitBarry Amount `json:"paymentSplitBarry"`
	PrivateEvent      bool   `json:"privateEvent"`
	PostersNeeded     bool   `json:"postersNeeded"`
}

// TargetID returns whichever id field the client filled in.
func (p *GigParams) TargetID() string {
	if p.ID != "" {
		return p.ID
	}
	return p.MongoID
}

// ToGig validates the payload and applies the payment split rules.
func (p *GigParams) ToGig() (*Gig, error) {
	venue := strings.TrimSpace(p.Venue)
	if venue == "" {
		return nil, fmt.Errorf("%w: venue is required", ErrValidation)
	}
	if strings.TrimSpace(p.Date) == "" {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}
	day, err := ParseDay(p.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	startTime := strings.TrimSpace(p.StartTime)
	if startTime != "" {
		if len(startTime) > 5 {
			startTime = startTime[:5]
		}
		if _, err := time.Parse("15:04", startTime); err != nil {
			return nil, fmt.Errorf("%w: startTime must be HH:mm", ErrValidation)
		}
	}

	switch p.PaymentMethod {
	case "", PaymentCash, PaymentBankTransfer:
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, p.PaymentMethod)
	}

	g := &Gig{
		Venue:         venue,
		Date:          day,
		StartTime:     startTime,
		Description:   p.Description,
		InternalNotes: p.InternalNotes,
		Fee:           p.Fee,
		PaymentMethod: p.PaymentMethod,
		PrivateEvent:  p.PrivateEvent,
		PostersNeeded: p.PostersNeeded,
	}

	switch p.PaymentSplit {
	case "", SplitEven:
		share := Amount(math.Round(float64(p.Fee) / 3))
		g.PaymentSplit = SplitEven
		g.PaymentSplitRoss, g.PaymentSplitKeith, g.PaymentSplitBarry = share, share, share
	case SplitCustomise:
		sum := float64(p.PaymentSplitRoss + p.PaymentSplitKeith + p.PaymentSplitBarry)
		if math.Abs(sum-float64(p.Fee)) > 0.01 {
			return nil, fmt.Errorf("%w: payment split total must match the gig fee", ErrValidation)
		}
		g.PaymentSplit = SplitCustomise
		g.PaymentSplitRoss = p.PaymentSplitRoss
		g.PaymentSplitKeith = p.PaymentSplitKeith
		g.PaymentSplitBarry = p.PaymentSplitBarry
	default:
		return nil, fmt.Errorf("%w: unknown payment split %q", ErrValidation, p.PaymentSplit)
	}

	return g, nil
}
