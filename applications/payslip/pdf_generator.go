package payslip

import (
	"bytes"
	"fmt"
	"os"

	"soundwalk/logger"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	margin     = 48.0
	rowHeight  = 24.0
	logoMaxW   = 140.0
	logoMaxH   = 32.0
	qrSize     = 56.0
	headerRule = margin + 54
)

// sheet is what the renderer needs to draw either kind of payslip.
type sheet struct {
	subtitle  string
	firstCol  string
	showVenue bool
	lines     []Line
	reference string
	logoPath  string
}

// render draws an A4 payslip in points. Amounts go through the cp1252
// translator so the pound sign survives the core fonts.
func render(s sheet) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	// --- Header ---
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(margin, margin+10, "Payslip")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(60, 60, 60)
	pdf.Text(margin, margin+32, tr(s.subtitle))
	pdf.SetTextColor(20, 20, 20)

	drawLogo(pdf, s.logoPath, pageW)
	drawReference(pdf, s.reference, pageW)

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(margin, headerRule, pageW-margin, headerRule)

	// --- Table ---
	left, right := margin, pageW-margin
	if !s.showVenue {
		const yearlyWidth = 360.0
		left = (pageW - yearlyWidth) / 2
		right = left + yearlyWidth
	}

	tableTop := margin + 90
	pdf.SetFillColor(242, 242, 242)
	pdf.Rect(left, tableTop, right-left, 26, "F")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(30, 30, 30)
	pdf.Text(left+10, tableTop+18, s.firstCol)
	if s.showVenue {
		pdf.Text(left+180, tableTop+18, "Venue")
	}
	rightText(pdf, right-10, tableTop+18, s.amountHeader())

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(20, 20, 20)
	y := tableTop + 44
	for i, l := range s.lines {
		if i%2 == 1 {
			pdf.SetFillColor(250, 250, 250)
			pdf.Rect(left, y-16, right-left, rowHeight, "F")
		}
		pdf.Text(left+10, y, tr(l.Label))
		if s.showVenue {
			pdf.Text(left+180, y, tr(truncate(l.Venue, 48)))
		}
		rightText(pdf, right-10, y, tr(money(l.Pay)))
		y += rowHeight
		if y > pageH-margin-60 {
			pdf.AddPage()
			y = margin + 20
		}
	}

	// --- Total ---
	footerY := y + 16
	if footerY > pageH-margin {
		footerY = pageH - margin
	}
	pdf.SetDrawColor(210, 210, 210)
	pdf.Line(left, footerY-16, right, footerY-16)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(right-120, footerY, "Total")
	rightText(pdf, right-10, footerY, tr(money(total(s.lines))))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

func (s sheet) amountHeader() string {
	if s.showVenue {
		return "Payment"
	}
	return "Total"
}

func rightText(pdf *gofpdf.Fpdf, x, y float64, text string) {
	pdf.Text(x-pdf.GetStringWidth(text), y, text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// drawLogo places the band logo top right, scaled into the header box.
// A missing file is skipped.
func drawLogo(pdf *gofpdf.Fpdf, path string, pageW float64) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		logger.Log.Warn(fmt.Sprintf("[payslip] Logo %s not readable, skipping: %v", path, err))
		return
	}
	info := pdf.RegisterImageOptions(path, gofpdf.ImageOptions{ReadDpi: true})
	if pdf.Err() || info == nil {
		logger.Log.Warn(fmt.Sprintf("[payslip] Logo %s could not be decoded: %v", path, pdf.Error()))
		pdf.ClearError()
		return
	}
	w, h := info.Extent()
	scale := 1.0
	if w > logoMaxW {
		scale = logoMaxW / w
	}
	if h*scale > logoMaxH {
		scale = logoMaxH / h
	}
	pdf.ImageOptions(path, pageW-margin-w*scale, margin-6, w*scale, h*scale, false, gofpdf.ImageOptions{}, 0, "")
}

// drawReference prints a QR code carrying the payslip reference, left of the logo.
func drawReference(pdf *gofpdf.Fpdf, ref string, pageW float64) {
	png, err := qrcode.Encode(ref, qrcode.Medium, 256)
	if err != nil {
		logger.Log.Warn(fmt.Sprintf("[payslip] QR encoding failed: %v", err))
		return
	}
	name := "ref-" + ref
	pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(png))
	x := pageW - margin - logoMaxW - qrSize - 12
	pdf.ImageOptions(name, x, margin-12, qrSize, qrSize, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(120, 120, 120)
	short := ref
	if len(short) > 8 {
		short = short[:8]
	}
	pdf.Text(x, margin+qrSize-4, "Ref "+short)
	pdf.SetTextColor(20, 20, 20)
}

func newReference() string {
	return uuid.NewString()
}
