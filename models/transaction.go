package models

import (
	"time"

	"github.com/finledger/finledger/money"
)

// BankTransaction is one parsed-and-classified line from an imported bank
// statement. Exactly one of Debit/Credit is non-zero. Immutable after
// import except for its classification back-reference.
type BankTransaction struct {
	ID             uint      `gorm:"primaryKey"`
	CompanyID      uint      `gorm:"not null;index"`
	FiscalPeriodID uint      `gorm:"not null;index"`
	Date           time.Time `gorm:"not null"`
	Details        string    `gorm:"not null;size:500"`
	Debit          money.Amount `gorm:"type:decimal(18,2);not null;default:0"`
	Credit         money.Amount `gorm:"type:decimal(18,2);not null;default:0"`
	RunningBalance money.Amount `gorm:"type:decimal(18,2);not null;default:0"`
	Reference      string       `gorm:"size:40"`
	ServiceFee     bool         `gorm:"not null;default:false"`
	SourceFileID   *uint        `gorm:"index"`

	// ClassifiedAccountCode is the back-reference set once the
	// Classification Engine has assigned a target account; empty means
	// "unclassified".
	ClassifiedAccountCode string `gorm:"size:10"`

	CreatedAt time.Time
}

// IsDebit reports whether this transaction represents money out (a debit
// to the classified account, a credit to the bank account).
func (t BankTransaction) IsDebit() bool { return t.Debit.IsPositive() }

// IsCredit reports whether this transaction represents money in.
func (t BankTransaction) IsCredit() bool { return t.Credit.IsPositive() }
