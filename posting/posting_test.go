package posting

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/finledger/finledger/coa"
	"github.com/finledger/finledger/config"
	"github.com/finledger/finledger/journal"
	"github.com/finledger/finledger/models"
	"github.com/finledger/finledger/money"
	"github.com/finledger/finledger/repositories"
)

func setup(t *testing.T) (*gorm.DB, *coa.Store, models.FiscalPeriod, models.Account, models.Account) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Company{}, &models.AccountCategory{}, &models.Account{}, &models.FiscalPeriod{}, &models.JournalEntry{}, &models.JournalEntryLine{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	var companyID uint = 1
	assetCat := models.AccountCategory{CompanyID: companyID, Name: "Current Assets", Type: models.Asset}
	revCat := models.AccountCategory{CompanyID: companyID, Name: "Sales", Type: models.Revenue}
	db.Create(&assetCat)
	db.Create(&revCat)

	bank := models.Account{CompanyID: companyID, Code: "1100", Name: "Bank", CategoryID: assetCat.ID, Category: assetCat, Active: true}
	sales := models.Account{CompanyID: companyID, Code: "4000", Name: "Sales", CategoryID: revCat.ID, Category: revCat, Active: true}
	db.Create(&bank)
	db.Create(&sales)

	period := models.FiscalPeriod{CompanyID: companyID, Name: "2025-01", StartDate: time.Now(), EndDate: time.Now()}
	db.Create(&period)

	accounts, err := coa.Load(context.Background(), repositories.NewAccountRepository(db), companyID)
	if err != nil {
		t.Fatalf("coa.Load: %v", err)
	}
	return db, accounts, period, bank, sales
}

func TestPostCreditTransaction(t *testing.T) {
	db, accounts, period, bank, sales := setup(t)
	js := journal.NewStore(db)
	cfg := config.AccountingConfig{
		DefaultAccounts: config.DefaultAccountMapping{BankAccountCode: bank.Code, BankChargesExpenseCode: "5200"},
		JournalSettings: config.JournalConfiguration{ReferencePrefix: "JE"},
	}
	svc := NewService(js, accounts, cfg)

	tx := models.BankTransaction{ID: 1, CompanyID: 1, FiscalPeriodID: period.ID, Date: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), Credit: money.MustNew("1000.00")}

	entry, err := svc.Post(context.Background(), period, tx, sales.Code)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if !entry.IsBalanced() {
		t.Fatalf("entry not balanced: %+v", entry)
	}
	if entry.Reference != "JE-000001" {
		t.Errorf("reference = %q, want JE-000001", entry.Reference)
	}

	var debitLine, creditLine models.JournalEntryLine
	for _, l := range entry.Lines {
		if l.IsDebitLine() {
			debitLine = l
		} else {
			creditLine = l
		}
	}
	if debitLine.AccountID != bank.ID {
		t.Errorf("expected debit to bank account, got account %d", debitLine.AccountID)
	}
	if creditLine.AccountID != sales.ID {
		t.Errorf("expected credit to sales account, got account %d", creditLine.AccountID)
	}
}
