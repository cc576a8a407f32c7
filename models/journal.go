package models

import (
	"time"

	"github.com/finledger/finledger/money"
)

// JournalEntry is an atomic balanced posting of two or more lines. It is
// append-only within an open fiscal period: amendment is always a new
// compensating entry, never an in-place mutation (spec.md §3).
type JournalEntry struct {
	ID             uint      `gorm:"primaryKey"`
	CompanyID      uint      `gorm:"not null;index;uniqueIndex:idx_journal_company_reference"`
	FiscalPeriodID uint      `gorm:"not null;index"`
	Date           time.Time `gorm:"not null;index"`
	Reference      string    `gorm:"not null;size:40;uniqueIndex:idx_journal_company_reference"`
	Description    string    `gorm:"not null;size:255"`
	CreatedBy      string    `gorm:"size:100"`
	CreatedAt      time.Time

	Lines []JournalEntryLine `gorm:"foreignKey:JournalEntryID"`
}

// JournalEntryLine is one debit or credit line of a JournalEntry. Exactly
// one of Debit/Credit is strictly positive; the other is zero.
type JournalEntryLine struct {
	ID             uint         `gorm:"primaryKey"`
	JournalEntryID uint         `gorm:"not null;index"`
	LineNumber     int          `gorm:"not null"`
	AccountID      uint         `gorm:"not null;index"`
	Description    string       `gorm:"size:255"`
	Debit          money.Amount `gorm:"type:decimal(18,2);not null;default:0"`
	Credit         money.Amount `gorm:"type:decimal(18,2);not null;default:0"`
}

// IsDebitLine reports whether this line carries a debit amount.
func (l JournalEntryLine) IsDebitLine() bool { return l.Debit.IsPositive() }

// TotalDebit sums the Debit column across all lines.
func (e JournalEntry) TotalDebit() money.Amount {
	total := money.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the Credit column across all lines.
func (e JournalEntry) TotalCredit() money.Amount {
	total := money.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// IsBalanced reports whether the entry's debit and credit totals are equal
// and both strictly positive — the invariant every post() must hold
// (spec.md §3, §8).
func (e JournalEntry) IsBalanced() bool {
	d, c := e.TotalDebit(), e.TotalCredit()
	return d.Cmp(c) == 0 && d.IsPositive()
}

// AccountBalance is a derived (never stored) per-account summary over a
// fiscal period.
type AccountBalance struct {
	AccountID     uint
	AccountCode   string
	AccountName   string
	Normal        NormalBalance
	Opening       money.Amount
	PeriodDebits  money.Amount
	PeriodCredits money.Amount
	Closing       money.Amount
}
