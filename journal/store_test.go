package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/finledger/finledger/apperr"
	"github.com/finledger/finledger/coa"
	"github.com/finledger/finledger/models"
	"github.com/finledger/finledger/money"
	"github.com/finledger/finledger/repositories"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Company{}, &models.AccountCategory{}, &models.Account{}, &models.FiscalPeriod{}, &models.JournalEntry{}, &models.JournalEntryLine{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedAccounts(t *testing.T, db *gorm.DB, companyID uint) (bank, expense models.Account) {
	t.Helper()
	assetCat := models.AccountCategory{CompanyID: companyID, Name: "Current Assets", Type: models.Asset}
	expCat := models.AccountCategory{CompanyID: companyID, Name: "Operating Expenses", Type: models.Expense}
	if err := db.Create(&assetCat).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&expCat).Error; err != nil {
		t.Fatal(err)
	}
	bank = models.Account{CompanyID: companyID, Code: "1100", Name: "Bank", CategoryID: assetCat.ID, Category: assetCat, Active: true}
	expense = models.Account{CompanyID: companyID, Code: "5200", Name: "Bank Charges", CategoryID: expCat.ID, Category: expCat, Active: true}
	if err := db.Create(&bank).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&expense).Error; err != nil {
		t.Fatal(err)
	}
	return bank, expense
}

func TestPostRejectsUnbalanced(t *testing.T) {
	db := openTestDB(t)
	var companyID uint = 1
	bank, expense := seedAccounts(t, db, companyID)

	period := models.FiscalPeriod{CompanyID: companyID, Name: "2025-01", StartDate: time.Now(), EndDate: time.Now()}
	if err := db.Create(&period).Error; err != nil {
		t.Fatal(err)
	}

	accounts, err := coa.Load(context.Background(), repositories.NewAccountRepository(db), companyID)
	if err != nil {
		t.Fatalf("coa.Load: %v", err)
	}

	store := NewStore(db)
	entry := &models.JournalEntry{
		CompanyID:      companyID,
		FiscalPeriodID: period.ID,
		Date:           time.Now(),
		Reference:      "JE-0001",
		Lines: []models.JournalEntryLine{
			{AccountID: expense.ID, Debit: mustAmount("100.00")},
			{AccountID: bank.ID, Credit: mustAmount("90.00")},
		},
	}

	err = store.Post(context.Background(), period, accounts, entry)
	if !errors.Is(err, apperr.Of(apperr.Unbalanced)) {
		t.Fatalf("expected Unbalanced, got %v", err)
	}
}

func TestPostRejectsClosedPeriod(t *testing.T) {
	db := openTestDB(t)
	var companyID uint = 1
	bank, expense := seedAccounts(t, db, companyID)

	period := models.FiscalPeriod{CompanyID: companyID, Name: "2025-01", StartDate: time.Now(), EndDate: time.Now(), Closed: true}
	if err := db.Create(&period).Error; err != nil {
		t.Fatal(err)
	}

	accounts, err := coa.Load(context.Background(), repositories.NewAccountRepository(db), companyID)
	if err != nil {
		t.Fatalf("coa.Load: %v", err)
	}

	store := NewStore(db)
	entry := &models.JournalEntry{
		CompanyID:      companyID,
		FiscalPeriodID: period.ID,
		Date:           time.Now(),
		Reference:      "JE-0002",
		Lines: []models.JournalEntryLine{
			{AccountID: expense.ID, Debit: mustAmount("100.00")},
			{AccountID: bank.ID, Credit: mustAmount("100.00")},
		},
	}

	err = store.Post(context.Background(), period, accounts, entry)
	if !errors.Is(err, apperr.Of(apperr.PeriodClosed)) {
		t.Fatalf("expected PeriodClosed, got %v", err)
	}
}

func TestPostRejectsDualSidedLine(t *testing.T) {
	db := openTestDB(t)
	var companyID uint = 1
	bank, expense := seedAccounts(t, db, companyID)

	period := models.FiscalPeriod{CompanyID: companyID, Name: "2025-01", StartDate: time.Now(), EndDate: time.Now()}
	if err := db.Create(&period).Error; err != nil {
		t.Fatal(err)
	}

	accounts, err := coa.Load(context.Background(), repositories.NewAccountRepository(db), companyID)
	if err != nil {
		t.Fatalf("coa.Load: %v", err)
	}

	store := NewStore(db)
	entry := &models.JournalEntry{
		CompanyID:      companyID,
		FiscalPeriodID: period.ID,
		Date:           time.Now(),
		Reference:      "JE-0004",
		Lines: []models.JournalEntryLine{
			// totals still balance (debit=150, credit=150) but line 1 carries both sides.
			{AccountID: expense.ID, Debit: mustAmount("100.00"), Credit: mustAmount("50.00")},
			{AccountID: bank.ID, Credit: mustAmount("100.00"), Debit: mustAmount("50.00")},
		},
	}

	err = store.Post(context.Background(), period, accounts, entry)
	if !errors.Is(err, apperr.Of(apperr.Unbalanced)) {
		t.Fatalf("expected Unbalanced for dual-sided line, got %v", err)
	}
}

func TestPostRejectsZeroAmountLine(t *testing.T) {
	db := openTestDB(t)
	var companyID uint = 1
	bank, expense := seedAccounts(t, db, companyID)

	period := models.FiscalPeriod{CompanyID: companyID, Name: "2025-01", StartDate: time.Now(), EndDate: time.Now()}
	if err := db.Create(&period).Error; err != nil {
		t.Fatal(err)
	}

	accounts, err := coa.Load(context.Background(), repositories.NewAccountRepository(db), companyID)
	if err != nil {
		t.Fatalf("coa.Load: %v", err)
	}

	store := NewStore(db)
	entry := &models.JournalEntry{
		CompanyID:      companyID,
		FiscalPeriodID: period.ID,
		Date:           time.Now(),
		Reference:      "JE-0005",
		Lines: []models.JournalEntryLine{
			{AccountID: expense.ID, Debit: mustAmount("100.00")},
			{AccountID: bank.ID, Credit: mustAmount("100.00")},
			{AccountID: bank.ID}, // zero-amount line, neither side positive
		},
	}

	err = store.Post(context.Background(), period, accounts, entry)
	if !errors.Is(err, apperr.Of(apperr.Unbalanced)) {
		t.Fatalf("expected Unbalanced for zero-amount line, got %v", err)
	}
}

func TestEntriesPagedSearchMatchesReference(t *testing.T) {
	db := openTestDB(t)
	var companyID uint = 1
	bank, expense := seedAccounts(t, db, companyID)

	period := models.FiscalPeriod{CompanyID: companyID, Name: "2025-01", StartDate: time.Now(), EndDate: time.Now()}
	if err := db.Create(&period).Error; err != nil {
		t.Fatal(err)
	}

	accounts, err := coa.Load(context.Background(), repositories.NewAccountRepository(db), companyID)
	if err != nil {
		t.Fatalf("coa.Load: %v", err)
	}

	store := NewStore(db)
	entry := &models.JournalEntry{
		CompanyID:      companyID,
		FiscalPeriodID: period.ID,
		Date:           time.Now(),
		Reference:      "JE-000777",
		Description:    "bank transfer",
		Lines: []models.JournalEntryLine{
			{AccountID: expense.ID, Debit: mustAmount("100.00")},
			{AccountID: bank.ID, Credit: mustAmount("100.00")},
		},
	}
	if err := store.Post(context.Background(), period, accounts, entry); err != nil {
		t.Fatalf("Post: %v", err)
	}

	// "000777" appears only in the reference, never in the description.
	entries, total, err := store.EntriesPaged(context.Background(), companyID, period.ID, PageFilters{Search: "000777"}, 1, 20)
	if err != nil {
		t.Fatalf("EntriesPaged: %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Fatalf("expected search on reference to match 1 entry, got total=%d len=%d", total, len(entries))
	}
}

func TestPostAndQuery(t *testing.T) {
	db := openTestDB(t)
	var companyID uint = 1
	bank, expense := seedAccounts(t, db, companyID)

	period := models.FiscalPeriod{CompanyID: companyID, Name: "2025-01", StartDate: time.Now(), EndDate: time.Now()}
	if err := db.Create(&period).Error; err != nil {
		t.Fatal(err)
	}

	accounts, err := coa.Load(context.Background(), repositories.NewAccountRepository(db), companyID)
	if err != nil {
		t.Fatalf("coa.Load: %v", err)
	}

	store := NewStore(db)
	entry := &models.JournalEntry{
		CompanyID:      companyID,
		FiscalPeriodID: period.ID,
		Date:           time.Now(),
		Reference:      "JE-0003",
		Lines: []models.JournalEntryLine{
			{AccountID: expense.ID, Debit: mustAmount("100.00")},
			{AccountID: bank.ID, Credit: mustAmount("100.00")},
		},
	}

	if err := store.Post(context.Background(), period, accounts, entry); err != nil {
		t.Fatalf("Post: %v", err)
	}

	entries, err := store.EntriesInPeriod(context.Background(), companyID, period.ID)
	if err != nil {
		t.Fatalf("EntriesInPeriod: %v", err)
	}
	if len(entries) != 1 || len(entries[0].Lines) != 2 {
		t.Fatalf("expected 1 entry with 2 lines, got %+v", entries)
	}
}

func mustAmount(s string) money.Amount {
	return money.MustNew(s)
}
