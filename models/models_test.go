package models

import (
	"testing"
	"time"

	"github.com/finledger/finledger/money"
)

func TestNormalBalanceOf(t *testing.T) {
	cases := map[AccountType]NormalBalance{
		Asset:     Debit,
		Expense:   Debit,
		Liability: Credit,
		Equity:    Credit,
		Revenue:   Credit,
	}
	for typ, want := range cases {
		if got := NormalBalanceOf(typ); got != want {
			t.Errorf("NormalBalanceOf(%s) = %s, want %s", typ, got, want)
		}
	}
}

func TestJournalEntryIsBalanced(t *testing.T) {
	e := JournalEntry{Lines: []JournalEntryLine{
		{Debit: money.MustNew("1000.00")},
		{Credit: money.MustNew("1000.00")},
	}}
	if !e.IsBalanced() {
		t.Fatal("expected balanced entry")
	}

	unbalanced := JournalEntry{Lines: []JournalEntryLine{
		{Debit: money.MustNew("100.00")},
		{Credit: money.MustNew("90.00")},
	}}
	if unbalanced.IsBalanced() {
		t.Fatal("expected unbalanced entry")
	}

	empty := JournalEntry{}
	if empty.IsBalanced() {
		t.Fatal("zero-total entry must not be balanced")
	}
}

func TestFiscalPeriodOverlaps(t *testing.T) {
	jan := FiscalPeriod{
		StartDate: date(2025, 1, 1),
		EndDate:   date(2025, 1, 31),
	}
	feb := FiscalPeriod{
		StartDate: date(2025, 2, 1),
		EndDate:   date(2025, 2, 28),
	}
	if jan.Overlaps(feb) {
		t.Fatal("january and february must not overlap")
	}

	midJan := FiscalPeriod{
		StartDate: date(2025, 1, 15),
		EndDate:   date(2025, 2, 15),
	}
	if !jan.Overlaps(midJan) {
		t.Fatal("expected overlap")
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
