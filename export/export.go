// Package export implements the Export Formatter component (spec.md
// §4.H): it renders a format-agnostic reporting.Report into one of
// {plain text, CSV, spreadsheet, PDF}. The format surface is a contract,
// not a policy — every formatter consumes the same (title, columns,
// rows) shape.
package export

import (
	"fmt"

	"github.com/finledger/finledger/money"
	"github.com/finledger/finledger/reporting"
)

// Banner identifies the company and fiscal period a report was run for,
// printed on every export surface that supports a header/footer.
type Banner struct {
	Company string
	Period  string
}

// cellText renders one row value as a string, formatting currency cells
// through cfg rather than relying on fmt's default float rendering.
func cellText(col reporting.Column, v interface{}, cfg money.FormatConfig) string {
	if v == nil {
		return ""
	}
	switch col.Type {
	case reporting.ColumnCurrency:
		if amt, ok := v.(money.Amount); ok {
			return amt.Format(cfg)
		}
	}
	return fmt.Sprintf("%v", v)
}

// rawNumber extracts a plain (locale-free) float64 for cells that must be
// written as numbers rather than formatted text (spreadsheet export); it
// reports false for any value that is not a money.Amount.
func rawNumber(v interface{}) (float64, bool) {
	if amt, ok := v.(money.Amount); ok {
		return amt.Float64(), true
	}
	return 0, false
}
