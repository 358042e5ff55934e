package revenue

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"soundwalk/applications/gig"
)

type Granularity string

const (
	Monthly   Granularity = "monthly"
	Quarterly Granularity = "quarterly"
	Yearly    Granularity = "yearly"
	All       Granularity = "all"
)

var (
	ErrUnknownGranularity = errors.New("unknown granularity")
	ErrInvalidRange       = errors.New("invalid date range")
)

// ParseGranularity accepts the query values the admin chart sends. Empty means monthly.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case "":
		return Monthly, nil
	case Monthly, Quarterly, Yearly, All:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGranularity, s)
}

type Bucket struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`

	start time.Time
}

type Summary struct {
	ChartData      []Bucket `json:"chartData"`
	TotalRevenue   float64  `json:"totalRevenue"`
	TotalGigs      int      `json:"totalGigs"`
	AverageRevenue float64  `json:"averageRevenue"`
}

// Query narrows the gigs that are summed. Start and End are YYYY-MM-DD and
// default to the earliest and latest gig dates. End covers the whole day.
type Query struct {
	Granularity Granularity
	Start       string
	End         string
}

// BuildSummary buckets gig fees by period. Bucket totals always add up to
// TotalRevenue.
func BuildSummary(gigs []*gig.Gig, q Query) (*Summary, error) {
	granularity := q.Granularity
	if granularity == "" {
		granularity = Monthly
	}
	if _, err := ParseGranularity(string(granularity)); err != nil {
		return nil, err
	}

	var from, to time.Time
	if q.Start != "" {
		d, err := gig.ParseDay(q.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
		from = d
	}
	if q.End != "" {
		d, err := gig.ParseDay(q.End)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
		to = d.Add(24*time.Hour - time.Second)
	}

	sum := &Summary{ChartData: []Bucket{}}
	buckets := map[string]*Bucket{}

	for _, g := range gigs {
		if g == nil || g.Date.IsZero() {
			continue
		}
		date := g.Date.UTC()
		if !from.IsZero() && date.Before(from) {
			continue
		}
		if !to.IsZero() && date.After(to) {
			continue
		}

		fee := gig.ParseFee(g.Fee)
		sum.TotalRevenue += fee
		sum.TotalGigs++

		key, label, start := period(date, granularity)
		b, ok := buckets[key]
		if !ok {
			b = &Bucket{Label: label, start: start}
			buckets[key] = b
		}
		b.Total += fee
	}

	for _, b := range buckets {
		sum.ChartData = append(sum.ChartData, *b)
	}
	sort.Slice(sum.ChartData, func(i, j int) bool {
		return sum.ChartData[i].start.Before(sum.ChartData[j].start)
	})

	if sum.TotalGigs > 0 {
		sum.AverageRevenue = sum.TotalRevenue / float64(sum.TotalGigs)
	}
	return sum, nil
}

func period(date time.Time, g Granularity) (key, label string, start time.Time) {
	year, month := date.Year(), date.Month()
	switch g {
	case Monthly:
		start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		return start.Format("2006-01"), start.Format("Jan 2006"), start
	case Quarterly:
		q := (int(month)-1)/3 + 1
		start = time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
		return fmt.Sprintf("%d-q%d", year, q), fmt.Sprintf("Q%d %d", q, year), start
	case Yearly:
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return fmt.Sprintf("%d", year), fmt.Sprintf("%d", year), start
	}
	return "all-time", "All time", time.Time{}
}
