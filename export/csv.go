package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/finledger/finledger/money"
	"github.com/finledger/finledger/reporting"
)

// CSV renders report as RFC4180 CSV: comma separator, period decimal
// separator regardless of locale, `yyyy-MM-dd HH:mm:ss` for timestamps,
// `dd/MM` for short dates (spec.md §4.H). Amounts are never locale
// formatted here — CSV consumers expect a parseable decimal literal.
func CSV(report *reporting.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(report.Columns))
	for i, col := range report.Columns {
		header[i] = col.Header
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range report.Rows {
		record := make([]string, len(report.Columns))
		for i, col := range report.Columns {
			record[i] = csvCell(col, row[col.Key])
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func csvCell(col reporting.Column, v interface{}) string {
	if v == nil {
		return ""
	}
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02 15:04:05")
	}
	switch col.Type {
	case reporting.ColumnCurrency:
		if amt, ok := v.(money.Amount); ok {
			return amt.String()
		}
	case reporting.ColumnDate:
		if s, ok := v.(string); ok {
			if t, err := time.Parse("2006-01-02", s); err == nil {
				return t.Format("02/01")
			}
			return s
		}
	}
	return fmt.Sprintf("%v", v)
}
