package payslip

import (
	"context"
	"fmt"

	"soundwalk/applications/gig"
	"soundwalk/logger"
)

type gigLister interface {
	List(ctx context.Context) ([]*gig.Gig, error)
}

type GeneratePayslipUC struct {
	gigs     gigLister
	logoPath string
	newRef   func() string
}

func NewGeneratePayslipUC(gigs gigLister, logoPath string) *GeneratePayslipUC {
	return &GeneratePayslipUC{gigs: gigs, logoPath: logoPath, newRef: newReference}
}

// Monthly renders one member's pay for the chosen gigs of a month.
func (uc *GeneratePayslipUC) Monthly(ctx context.Context, req MonthlyRequest) (*Document, error) {
	member, err := checkMember(req.Member)
	if err != nil {
		return nil, err
	}
	month, err := parseMonth(req.Month)
	if err != nil {
		return nil, err
	}

	gigs, err := uc.gigs.List(ctx)
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[payslip-uc] Listing gigs failed: %v", err))
		return nil, err
	}

	lines := MonthlyLines(gigs, member, month, req.GigIDs)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrNoGigs, member, req.Month)
	}

	content, err := render(sheet{
		subtitle:  fmt.Sprintf("%s • %s", month.Format("January 2006"), member),
		firstCol:  "Date",
		showVenue: true,
		lines:     lines,
		reference: uc.newRef(),
		logoPath:  uc.logoPath,
	})
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[payslip-uc] Rendering monthly payslip failed: %v", err))
		return nil, err
	}

	doc := &Document{Filename: MonthlyFilename(month, member), Content: content}
	logger.Log.Info(fmt.Sprintf("[payslip-uc] Generated %s (%d gigs, total %.2f)", doc.Filename, len(lines), total(lines)))
	return doc, nil
}

// Yearly renders one member's pay per month across a year.
func (uc *GeneratePayslipUC) Yearly(ctx context.Context, req YearlyRequest) (*Document, error) {
	member, err := checkMember(req.Member)
	if err != nil {
		return nil, err
	}
	if req.Year < 2000 || req.Year > 9999 {
		return nil, fmt.Errorf("%w: year %d", ErrInvalidPeriod, req.Year)
	}

	gigs, err := uc.gigs.List(ctx)
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[payslip-uc] Listing gigs failed: %v", err))
		return nil, err
	}

	lines, count := YearlyLines(gigs, member, req.Year)
	if count == 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoGigs, req.Year)
	}

	content, err := render(sheet{
		subtitle:  fmt.Sprintf("%d • %s", req.Year, member),
		firstCol:  "Month",
		lines:     lines,
		reference: uc.newRef(),
		logoPath:  uc.logoPath,
	})
	if err != nil {
		logger.Log.Error(fmt.Sprintf("[payslip-uc] Rendering yearly payslip failed: %v", err))
		return nil, err
	}

	doc := &Document{Filename: YearlyFilename(req.Year, member), Content: content}
	logger.Log.Info(fmt.Sprintf("[payslip-uc] Generated %s (total %.2f)", doc.Filename, total(lines)))
	return doc, nil
}
