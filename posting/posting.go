// Package posting implements the Posting Service component (spec.md §4.F):
// it turns a (BankTransaction, classification) pair into a balanced
// JournalEntry and hands it to the Journal Store.
package posting

import (
	"context"
	"fmt"

	"github.com/finledger/finledger/apperr"
	"github.com/finledger/finledger/coa"
	"github.com/finledger/finledger/config"
	"github.com/finledger/finledger/journal"
	"github.com/finledger/finledger/models"
)

// Service builds and posts journal entries for classified bank
// transactions.
type Service struct {
	journal  *journal.Store
	accounts *coa.Store
	cfg      config.AccountingConfig
}

// NewService builds a posting Service over the given journal store and
// chart-of-accounts snapshot.
func NewService(js *journal.Store, accounts *coa.Store, cfg config.AccountingConfig) *Service {
	return &Service{journal: js, accounts: accounts, cfg: cfg}
}

// Reference returns the deterministic journal reference for a bank
// transaction id, per spec.md §4.F.
func Reference(cfg config.AccountingConfig, bankTransactionID uint) string {
	return fmt.Sprintf("%s-%06d", cfg.JournalSettings.ReferencePrefix, bankTransactionID)
}

// Post builds a balanced two-line JournalEntry for tx classified against
// classifiedAccountCode and posts it to the journal store. The shape of
// the entry depends on the transaction: a credit (money in) debits the
// bank account and credits the classified account; a debit (money out)
// reverses that; a service-fee transaction always debits the configured
// bank-charges expense account (spec.md §4.F).
func (s *Service) Post(ctx context.Context, period models.FiscalPeriod, tx models.BankTransaction, classifiedAccountCode string) (*models.JournalEntry, error) {
	bank, err := s.accounts.MustBeActive(s.cfg.DefaultAccounts.BankAccountCode)
	if err != nil {
		return nil, fmt.Errorf("bank account: %w", err)
	}

	var targetCode string
	if tx.ServiceFee {
		targetCode = s.cfg.DefaultAccounts.BankChargesExpenseCode
	} else {
		targetCode = classifiedAccountCode
	}
	if targetCode == "" {
		return nil, apperr.New(apperr.UnknownAccount, "transaction has no classified account")
	}
	target, err := s.accounts.MustBeActive(targetCode)
	if err != nil {
		return nil, fmt.Errorf("target account: %w", err)
	}

	amount := tx.Debit
	if tx.IsCredit() {
		amount = tx.Credit
	}
	if amount.IsZero() || amount.IsNegative() {
		return nil, apperr.New(apperr.Unbalanced, "transaction amount must be strictly positive")
	}

	var lines []models.JournalEntryLine
	switch {
	case tx.ServiceFee:
		lines = []models.JournalEntryLine{
			{AccountID: target.ID, Debit: amount, Description: target.Name},
			{AccountID: bank.ID, Credit: amount, Description: bank.Name},
		}
	case tx.IsCredit():
		lines = []models.JournalEntryLine{
			{AccountID: bank.ID, Debit: amount, Description: bank.Name},
			{AccountID: target.ID, Credit: amount, Description: target.Name},
		}
	default:
		lines = []models.JournalEntryLine{
			{AccountID: target.ID, Debit: amount, Description: target.Name},
			{AccountID: bank.ID, Credit: amount, Description: bank.Name},
		}
	}

	entry := &models.JournalEntry{
		CompanyID:      tx.CompanyID,
		FiscalPeriodID: tx.FiscalPeriodID,
		Date:           tx.Date,
		Reference:      Reference(s.cfg, tx.ID),
		Description:    target.Name,
		Lines:          lines,
	}

	if err := s.journal.Post(ctx, period, s.accounts, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
