package payslip

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"soundwalk/applications/gig"
)

var (
	ErrNoGigs        = errors.New("no gigs for this payslip")
	ErrUnknownMember = errors.New("unknown band member")
	ErrInvalidPeriod = errors.New("invalid payslip period")
)

const rowDateLayout = "Mon 2 Jan 2006"

// MonthlyRequest selects a member's gigs in one month. Empty GigIDs means
// every gig of that month.
type MonthlyRequest struct {
	Member string   `json:"person"`
	Month  string   `json:"month"`
	GigIDs []string `json:"gigIds"`
}

type YearlyRequest struct {
	Member string `json:"person"`
	Year   int    `json:"year"`
}

// Line is one table row: a gig or a month, and the member's pay for it.
type Line struct {
	Label string
	Venue string
	Pay   float64
}

// Document is a rendered payslip ready to download.
type Document struct {
	Filename string
	Content  []byte
}

func checkMember(name string) (string, error) {
	for _, m := range gig.Members {
		if strings.EqualFold(m, strings.TrimSpace(name)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMember, name)
}

func parseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month must be YYYY-MM", ErrInvalidPeriod)
	}
	return t, nil
}

// MonthlyLines picks the gigs for a monthly payslip, earliest first.
func MonthlyLines(gigs []*gig.Gig, member string, month time.Time, ids []string) []Line {
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[strings.TrimSpace(id)] = true
	}

	picked := make([]*gig.Gig, 0)
	for _, g := range gigs {
		d := g.Date.UTC()
		if d.Year() != month.Year() || d.Month() != month.Month() {
			continue
		}
		if len(wanted) > 0 && !wanted[g.ID.Hex()] {
			continue
		}
		picked = append(picked, g)
	}
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].Date.Before(picked[j].Date) })

	lines := make([]Line, 0, len(picked))
	for _, g := range picked {
		pay, _ := g.PayFor(member)
		venue := g.Venue
		if venue == "" {
			venue = "-"
		}
		lines = append(lines, Line{Label: g.Date.UTC().Format(rowDateLayout), Venue: venue, Pay: pay})
	}
	return lines
}

// YearlyLines returns twelve rows, January first, with the member's pay per
// month, and how many gigs fell in the year.
func YearlyLines(gigs []*gig.Gig, member string, year int) ([]Line, int) {
	lines := make([]Line, 12)
	for i := range lines {
		lines[i].Label = time.Month(i + 1).String()
	}
	count := 0
	for _, g := range gigs {
		d := g.Date.UTC()
		if g.Date.IsZero() || d.Year() != year {
			continue
		}
		pay, _ := g.PayFor(member)
		lines[d.Month()-1].Pay += pay
		count++
	}
	return lines, count
}

func total(lines []Line) float64 {
	var t float64
	for _, l := range lines {
		t += l.Pay
	}
	return t
}

func MonthlyFilename(month time.Time, member string) string {
	return month.Format("Jan") + month.Format("06") + member + "SWPayslip.pdf"
}

func YearlyFilename(year int, member string) string {
	return strconv.Itoa(year) + member + "SWPayslip.pdf"
}

func money(v float64) string {
	return fmt.Sprintf("£%.2f", v)
}
