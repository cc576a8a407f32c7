package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/finledger/finledger/money"
	"github.com/finledger/finledger/reporting"
)

const (
	pdfMarginPt  = 50.0 / 72.0 * 25.4 // 50pt expressed in mm, gofpdf's native unit
	pdfPageLimit = 270.0              // mm; leave room for the footer before a page break
)

// PDF renders report as an A4-portrait document: 50pt margins, a
// fixed-width font for the ledger body, column widths taken from the
// report's schema, a repeated title/company/period banner on every page,
// and a "Page N | Generated: dd/MM/yyyy | FIN Financial Management
// System" footer (spec.md §4.H).
func PDF(report *reporting.Report, banner Banner, cfg money.FormatConfig) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginPt, pdfMarginPt, pdfMarginPt)
	pdf.SetTitle(fmt.Sprintf("%s - %s", report.Title, banner.Company), false)
	pdf.SetSubject(fmt.Sprintf("%s for %s", report.Title, banner.Period), false)
	pdf.SetAuthor("FIN Financial Management System", false)

	pageNum := 0
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Courier", "", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d | Generated: %s | FIN Financial Management System", pageNum, time.Now().Format("02/01/2006")), "", 0, "C", false, 0, "")
	})

	newPage := func() {
		pdf.AddPage()
		pageNum++
		pdf.SetFont("Courier", "B", 14)
		pdf.CellFormat(0, 8, report.Title, "", 1, "C", false, 0, "")
		pdf.SetFont("Courier", "", 10)
		pdf.CellFormat(0, 6, banner.Company, "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 6, banner.Period, "", 1, "C", false, 0, "")
		pdf.Ln(4)
		drawHeaderRow(pdf, report)
	}

	newPage()
	pdf.SetFont("Courier", "", 9)
	for _, row := range report.Rows {
		if pdf.GetY() > pdfPageLimit {
			newPage()
			pdf.SetFont("Courier", "", 9)
		}
		for _, col := range report.Columns {
			align := "L"
			if col.Align == reporting.AlignRight {
				align = "R"
			}
			pdf.CellFormat(float64(col.Width), 6, cellText(col, row[col.Key], cfg), "1", 0, align, false, 0, "")
		}
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawHeaderRow(pdf *gofpdf.Fpdf, report *reporting.Report) {
	pdf.SetFont("Courier", "B", 9)
	pdf.SetFillColor(220, 220, 220)
	for _, col := range report.Columns {
		pdf.CellFormat(float64(col.Width), 7, col.Header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(7)
	pdf.SetFillColor(255, 255, 255)
}
