package export

import (
	"strings"

	"github.com/finledger/finledger/money"
	"github.com/finledger/finledger/reporting"
)

const textWidth = 120

// Text renders report as fixed-width plain text: 120-column layout with
// "=" separator rows around the title and "-" under the section header
// (spec.md §4.H).
func Text(report *reporting.Report, banner Banner, cfg money.FormatConfig) []byte {
	var b strings.Builder

	sep := strings.Repeat("=", textWidth)
	b.WriteString(sep + "\n")
	b.WriteString(center(report.Title, textWidth) + "\n")
	b.WriteString(center(banner.Company, textWidth) + "\n")
	b.WriteString(center(banner.Period, textWidth) + "\n")
	b.WriteString(sep + "\n")

	var header strings.Builder
	for _, col := range report.Columns {
		header.WriteString(padCell(col.Header, col.Width, col.Align))
	}
	b.WriteString(header.String() + "\n")
	b.WriteString(strings.Repeat("-", textWidth) + "\n")

	for _, row := range report.Rows {
		var line strings.Builder
		for _, col := range report.Columns {
			line.WriteString(padCell(cellText(col, row[col.Key], cfg), col.Width, col.Align))
		}
		b.WriteString(line.String() + "\n")
	}

	return []byte(b.String())
}

func padCell(s string, width int, align reporting.Alignment) string {
	if len(s) > width {
		s = s[:width]
	}
	pad := width - len(s) + 1 // one column gap between fields
	if align == reporting.AlignRight {
		return strings.Repeat(" ", pad) + s
	}
	return s + strings.Repeat(" ", pad)
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s
}
