package models

import (
	"time"

	"gorm.io/gorm"
)

// AccountType is a closed enumeration of the five account types, replacing
// the teacher's stringly-typed "ASSET"/"LIABILITY"/... constants with a
// tagged variant at the kernel boundary per the Design Notes.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalBalance is the side — debit or credit — on which an account's
// balance is expected to be positive.
type NormalBalance string

const (
	Debit  NormalBalance = "D"
	Credit NormalBalance = "C"
)

// NormalBalanceOf returns the normal balance for an account type: Asset and
// Expense are debit-normal, Liability/Equity/Revenue are credit-normal.
// This is the pure function the Design Notes call for in place of dynamic
// dispatch across account-type subclasses.
func NormalBalanceOf(t AccountType) NormalBalance {
	switch t {
	case Asset, Expense:
		return Debit
	case Liability, Equity, Revenue:
		return Credit
	default:
		return Debit
	}
}

// AccountCategory groups accounts under a company (e.g. "Current Assets").
type AccountCategory struct {
	ID        uint   `gorm:"primaryKey"`
	CompanyID uint   `gorm:"not null;index"`
	Name      string `gorm:"not null;size:100"`
	Type      AccountType `gorm:"not null;size:20"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Account is a chart-of-accounts entry. Code must match
// ^[0-9]{4}(-[0-9]{1,3})?$ and is unique per company (spec.md §3).
type Account struct {
	ID         uint   `gorm:"primaryKey"`
	CompanyID  uint   `gorm:"not null;index:idx_accounts_company_code,unique"`
	Code       string `gorm:"not null;size:10;index:idx_accounts_company_code,unique"`
	Name       string `gorm:"not null;size:100"`
	CategoryID uint   `gorm:"not null;index"`
	Category   AccountCategory `gorm:"foreignKey:CategoryID"`
	ParentID   *uint  `gorm:"index"`
	Active     bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// NormalBalance returns the account's normal balance, derived from its
// category's account type.
func (a Account) NormalBalance() NormalBalance {
	return NormalBalanceOf(a.Category.Type)
}
