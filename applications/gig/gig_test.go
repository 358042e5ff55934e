package gig

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func london(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestParseFee(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{"£45.50", 45.5},
		{45.5, 45.5},
		{"1,200", 1200},
		{"", 0},
		{"n/a", 0},
		{nil, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{int64(300), 300},
		{Amount(12.25), 12.25},
		{json.Number("99.99"), 99.99},
		{true, 0},
	}
	for _, c := range cases {
		if got := ParseFee(c.in); got != c.want {
			t.Errorf("ParseFee(%#v) = %v, want %v", c.in, got, c.want)
		}
	}

	once := ParseFee("£1,234.5")
	if twice := ParseFee(once); twice != once {
		t.Fatalf("ParseFee not idempotent: %v then %v", once, twice)
	}
}

func TestParseDay(t *testing.T) {
	for _, in := range []string{"2025-07-12", "2025-07-12T19:30:00Z", " 2025-07-12 "} {
		got, err := ParseDay(in)
		if err != nil {
			t.Fatalf("ParseDay(%q): %v", in, err)
		}
		if !got.Equal(time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("ParseDay(%q) = %v", in, got)
		}
	}
	if _, err := ParseDay("12/07/2025"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestAmountJSON(t *testing.T) {
	var p GigParams
	body := `{"venue":"The Anchor","date":"2025-01-10","fee":"£300","paymentSplitRoss":100,"paymentSplitKeith":"100.00","paymentSplitBarry":null}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Fee != 300 || p.PaymentSplitRoss != 100 || p.PaymentSplitKeith != 100 || p.PaymentSplitBarry != 0 {
		t.Fatalf("unexpected amounts %+v", p)
	}

	for raw, want := range map[string]Amount{`1e3`: 1000, `-50`: -50, `45.5`: 45.5, `"£1,250"`: 1250} {
		var a Amount
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if a != want {
			t.Fatalf("Amount(%s) = %v, want %v", raw, a, want)
		}
	}
}

func TestAmountBSON(t *testing.T) {
	type doc struct {
		Fee Amount `bson:"fee"`
	}
	for _, in := range []any{"£45.50", 45.5, int32(45), int64(45)} {
		raw, err := bson.Marshal(bson.M{"fee": in})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var d doc
		if err := bson.Unmarshal(raw, &d); err != nil {
			t.Fatalf("unmarshal %#v: %v", in, err)
		}
		want := 45.5
		if _, isInt := in.(int32); isInt {
			want = 45
		}
		if _, isInt := in.(int64); isInt {
			want = 45
		}
		if float64(d.Fee) != want {
			t.Fatalf("decoded %#v as %v", in, d.Fee)
		}
	}
}

func TestToGigEvenSplit(t *testing.T) {
	p := &GigParams{Venue: "  The Anchor ", Date: "2025-01-10", StartTime: "20:30:00", Fee: 301}
	g, err := p.ToGig()
	if err != nil {
		t.Fatalf("ToGig: %v", err)
	}
	if g.Venue != "The Anchor" || g.StartTime != "20:30" {
		t.Fatalf("unexpected normalisation %+v", g)
	}
	if g.PaymentSplit != SplitEven {
		t.Fatalf("split = %q", g.PaymentSplit)
	}
	for _, m := range Members {
		share, _ := g.PayFor(m)
		if share != 100 {
			t.Fatalf("%s share = %v", m, share)
		}
	}
}

func TestToGigCustomiseSplit(t *testing.T) {
	p := &GigParams{
		Venue: "The Anchor", Date: "2025-01-10", Fee: 300, PaymentSplit: SplitCustomise,
		PaymentSplitRoss: 150, PaymentSplitKeith: 100, PaymentSplitBarry: 50,
	}
	g, err := p.ToGig()
	if err != nil {
		t.Fatalf("ToGig: %v", err)
	}
	if g.PaymentSplitRoss != 150 || g.PaymentSplitBarry != 50 {
		t.Fatalf("custom shares lost: %+v", g)
	}

	p.PaymentSplitBarry = 40
	if _, err := p.ToGig(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for mismatched split, got %v", err)
	}
}

func TestToGigValidation(t *testing.T) {
	cases := map[string]*GigParams{
		"no venue":       {Date: "2025-01-10"},
		"no date":        {Venue: "x"},
		"bad date":       {Venue: "x", Date: "soon"},
		"bad start":      {Venue: "x", Date: "2025-01-10", StartTime: "8pm"},
		"bad method":     {Venue: "x", Date: "2025-01-10", PaymentMethod: "Cheque"},
		"bad split mode": {Venue: "x", Date: "2025-01-10", PaymentSplit: "Odd"},
	}
	for name, p := range cases {
		if _, err := p.ToGig(); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestStartIn(t *testing.T) {
	loc := london(t)
	g := &Gig{Date: time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC), StartTime: "19:45"}
	if got := g.StartIn(loc); !got.Equal(time.Date(2025, 7, 12, 19, 45, 0, 0, loc)) {
		t.Fatalf("StartIn = %v", got)
	}

	g.StartTime = ""
	if got := g.StartIn(loc); !got.Equal(time.Date(2025, 7, 12, 0, 0, 0, 0, loc)) {
		t.Fatalf("untimed StartIn = %v", got)
	}

	g.StartTime = "xx:30"
	if got := g.StartIn(loc); got.Hour() != 0 || got.Minute() != 30 {
		t.Fatalf("malformed StartIn = %v", got)
	}
}

func TestGigJSON(t *testing.T) {
	id := primitive.NewObjectID()
	ev := "evt1"
	g := Gig{ID: id, Venue: "The Anchor", Date: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), Fee: 300, CalendarEventID: &ev}
	raw, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(raw)
	for _, want := range []string{`"_id":"` + id.Hex() + `"`, `"date":"2025-01-10"`, `"fee":300`, `"calendarEventId":"evt1"`} {
		if !strings.Contains(s, want) {
			t.Fatalf("%s missing %s", s, want)
		}
	}

	pub, err := json.Marshal(g.Public())
	if err != nil {
		t.Fatalf("marshal public: %v", err)
	}
	if strings.Contains(string(pub), "fee") || strings.Contains(string(pub), "internalNotes") {
		t.Fatalf("public view leaks private fields: %s", pub)
	}
}

func TestParseID(t *testing.T) {
	if _, err := ParseID("not-hex"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	id := primitive.NewObjectID()
	got, err := ParseID(id.Hex())
	if err != nil || got != id {
		t.Fatalf("ParseID round trip: %v %v", got, err)
	}
}

func TestStartOfToday(t *testing.T) {
	loc := london(t)
	// 23:30 UTC on 30 June is already 1 July in London
	now := time.Date(2025, 6, 30, 23, 30, 0, 0, time.UTC)
	if got := StartOfToday(now, loc); !got.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("StartOfToday = %v", got)
	}
}
