package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/finledger/finledger/money"
	"github.com/finledger/finledger/reporting"
)

func sampleReport() *reporting.Report {
	return &reporting.Report{
		Title: "Trial Balance",
		Columns: []reporting.Column{
			{Header: "Code", Key: "code", Width: 10, Type: reporting.ColumnText, Align: reporting.AlignLeft},
			{Header: "Debit", Key: "debit", Width: 15, Type: reporting.ColumnCurrency, Align: reporting.AlignRight},
		},
		Rows: []reporting.Row{
			{"code": "1100", "debit": money.MustNew("1000.00")},
			{"code": "4000", "debit": money.Zero},
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	// spec.md §8: for rows without embedded newlines, importing an
	// exported CSV yields the original rows.
	report := sampleReport()
	data, err := CSV(report)
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}

	r := csv.NewReader(strings.NewReader(string(data)))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("re-read csv: %v", err)
	}
	if len(records) != 3 { // header + 2 rows
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[1][0] != "1100" || records[1][1] != "1000.00" {
		t.Errorf("unexpected row 1: %v", records[1])
	}
}

func TestTextRendersTitleAndBanner(t *testing.T) {
	report := sampleReport()
	out := Text(report, Banner{Company: "Acme Ltd", Period: "2025-01"}, money.DefaultFormat)
	s := string(out)
	if !strings.Contains(s, "Trial Balance") || !strings.Contains(s, "Acme Ltd") {
		t.Errorf("text export missing title/banner: %q", s)
	}
}

func TestXLSXProducesNonEmptyFile(t *testing.T) {
	report := sampleReport()
	data, err := XLSX(report, Banner{Company: "Acme Ltd", Period: "2025-01"})
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty xlsx output")
	}
}

func TestPDFProducesNonEmptyFile(t *testing.T) {
	report := sampleReport()
	data, err := PDF(report, Banner{Company: "Acme Ltd", Period: "2025-01"}, money.DefaultFormat)
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty pdf output")
	}
}
