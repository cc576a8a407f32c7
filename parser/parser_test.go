package parser

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/finledger/finledger/money"
)

func buildLine(cols Columns, details, debit, credit, dateField, balance string) string {
	width := cols.BalanceStart + len(balance) + 5
	line := make([]byte, width)
	for i := range line {
		line[i] = ' '
	}
	put := func(s string, start int) {
		copy(line[start:], s)
	}
	put(details, cols.DetailsStart)
	if debit != "" {
		put(debit, cols.DebitStart)
	}
	if credit != "" {
		put(credit, cols.CreditStart)
	}
	put(dateField, cols.DateStart)
	put(balance, cols.BalanceStart)
	return strings.TrimRight(string(line), " ")
}

func TestParseTwoLineContinuation(t *testing.T) {
	// spec.md §8 scenario 4.
	head := buildLine(DefaultColumns, "PAYMENT TO SUPPLIER ALPHA LTD", "1,234.56-", "", "01 15", "98,765.43")
	input := head + "\nINV 2025-001\n"

	p := New(DefaultColumns, time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC))
	txs, err := p.Parse(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d: %+v", len(txs), txs)
	}

	tx := txs[0]
	if !tx.Date.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v, want 2025-01-15", tx.Date)
	}
	if !strings.Contains(tx.Description, "PAYMENT TO SUPPLIER ALPHA LTD") || !strings.Contains(tx.Description, "INV 2025-001") {
		t.Errorf("description = %q, missing expected parts", tx.Description)
	}
}

func TestParseNoAmountIsWarningNotFatal(t *testing.T) {
	// A date-bearing line with no parseable amount in either column is
	// dropped with a warning, not a fatal error (spec.md §7).
	line := strings.Repeat(" ", 200)
	runes := []byte(line)
	copy(runes[0:20], []byte("NO AMOUNT HERE"))
	copy(runes[DefaultColumns.DateStart:DefaultColumns.DateStart+5], []byte("01 15"))

	p := New(DefaultColumns, time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC))
	txs, err := p.Parse(context.Background(), strings.NewReader(string(runes)+"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("expected 0 transactions, got %d", len(txs))
	}
	if len(p.Warnings()) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(p.Warnings()))
	}
}

func TestYearResolutionSixMonthHeuristic(t *testing.T) {
	// Statement nominally dated late December; a "01 05" head should
	// resolve forward into the following January, not backward.
	p := New(DefaultColumns, time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC))
	date, err := p.resolveDate([]string{"01 05", "01", "05"})
	if err != nil {
		t.Fatalf("resolveDate: %v", err)
	}
	if date.Year() != 2026 {
		t.Errorf("year = %d, want 2026", date.Year())
	}
}

func TestParseIdempotentOnSerialize(t *testing.T) {
	nominal := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	original := []ParsedTransaction{
		{
			Description: "SALARY PAYMENT",
			Debit:       money.MustNew("500.00"),
			Date:        time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			Balance:     money.MustNew("1500.00"),
		},
		{
			Description: "INTEREST RECEIVED",
			Credit:      money.MustNew("12.34"),
			Date:        time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
			Balance:     money.MustNew("1512.34"),
		},
	}

	serialized := Serialize(DefaultColumns, nominal.Year(), original)

	p := New(DefaultColumns, nominal)
	reparsed, err := p.Parse(context.Background(), strings.NewReader(serialized))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(reparsed) != len(original) {
		t.Fatalf("got %d transactions, want %d", len(reparsed), len(original))
	}
	for i := range original {
		if reparsed[i].Description != original[i].Description {
			t.Errorf("tx %d description = %q, want %q", i, reparsed[i].Description, original[i].Description)
		}
		if reparsed[i].Debit.Cmp(original[i].Debit) != 0 {
			t.Errorf("tx %d debit = %s, want %s", i, reparsed[i].Debit, original[i].Debit)
		}
		if reparsed[i].Credit.Cmp(original[i].Credit) != 0 {
			t.Errorf("tx %d credit = %s, want %s", i, reparsed[i].Credit, original[i].Credit)
		}
	}
}
