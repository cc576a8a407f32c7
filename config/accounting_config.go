package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// AccountingConfig holds company-level posting and period policy — the
// kind of thing the teacher loads once and keeps behind a package-level
// mutex-guarded pointer, reloadable from a JSON file without a restart.
type AccountingConfig struct {
	DefaultAccounts DefaultAccountMapping `json:"default_accounts"`
	JournalSettings JournalConfiguration  `json:"journal_settings"`
	PeriodSettings  PeriodConfiguration   `json:"period_settings"`
}

// DefaultAccountMapping names the accounts the Posting Service (spec.md
// §4.F) needs by convention: the bank/cash account debited or credited on
// every bank-statement line, and the expense account absorbing service
// fees.
type DefaultAccountMapping struct {
	BankAccountCode         string `json:"bank_account_code"`          // e.g. "1100"
	BankChargesExpenseCode  string `json:"bank_charges_expense_code"`  // e.g. "5200"
}

// JournalConfiguration controls reference generation for posted entries.
// Balance enforcement in journal.Store.Post does not read
// RequireBalancedEntry; unbalanced entries are always rejected.
type JournalConfiguration struct {
	ReferencePrefix      string `json:"reference_prefix"`       // e.g. "JE"
	RequireBalancedEntry bool   `json:"require_balanced_entry"` // always true in this kernel; kept explicit for clarity
}

// PeriodConfiguration holds fiscal-period posting policy. journal.Store.Post
// does not read AllowPostToClosedPeriod: a post into a closed period is
// always rejected with PeriodClosed.
type PeriodConfiguration struct {
	AllowPostToClosedPeriod bool `json:"allow_post_to_closed_period"` // default false
}

var (
	accountingConfig *AccountingConfig
	configMutex      sync.RWMutex
	configLoaded     bool
)

// LoadAccountingConfig loads the policy from configPath, falling back to
// defaults when the file does not exist.
func LoadAccountingConfig(configPath string) error {
	configMutex.Lock()
	defer configMutex.Unlock()

	if configPath == "" {
		configPath = "config/accounting_config.json"
	}

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.Open(configPath)
		if err != nil {
			return fmt.Errorf("open config file: %w", err)
		}
		defer file.Close()

		accountingConfig = &AccountingConfig{}
		if err := json.NewDecoder(file).Decode(accountingConfig); err != nil {
			return fmt.Errorf("decode config: %w", err)
		}
	} else {
		accountingConfig = defaultAccountingConfig()
	}

	configLoaded = true
	return nil
}

// GetAccountingConfig returns the current policy, loading defaults on
// first use if LoadAccountingConfig was never called.
func GetAccountingConfig() *AccountingConfig {
	configMutex.RLock()
	if configLoaded {
		defer configMutex.RUnlock()
		return accountingConfig
	}
	configMutex.RUnlock()

	configMutex.Lock()
	defer configMutex.Unlock()
	if !configLoaded {
		accountingConfig = defaultAccountingConfig()
		configLoaded = true
	}
	return accountingConfig
}

func defaultAccountingConfig() *AccountingConfig {
	return &AccountingConfig{
		DefaultAccounts: DefaultAccountMapping{
			BankAccountCode:        "1100",
			BankChargesExpenseCode: "5200",
		},
		JournalSettings: JournalConfiguration{
			ReferencePrefix:      "JE",
			RequireBalancedEntry: true,
		},
		PeriodSettings: PeriodConfiguration{
			AllowPostToClosedPeriod: false,
		},
	}
}
