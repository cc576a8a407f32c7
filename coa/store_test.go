package coa

import (
	"context"
	"errors"
	"testing"

	"github.com/finledger/finledger/apperr"
	"github.com/finledger/finledger/models"
)

type fakeAccountRepo struct {
	accounts []models.Account
}

func (f *fakeAccountRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	return a, nil
}
func (f *fakeAccountRepo) FindByCode(ctx context.Context, companyID uint, code string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.Code == code {
			return &a, nil
		}
	}
	return nil, apperr.New(apperr.UnknownAccount, code)
}
func (f *fakeAccountRepo) FindByID(ctx context.Context, id uint) (*models.Account, error) {
	return nil, nil
}
func (f *fakeAccountRepo) FindAll(ctx context.Context, companyID uint) ([]models.Account, error) {
	return f.accounts, nil
}
func (f *fakeAccountRepo) FindByCodePrefix(ctx context.Context, companyID uint, prefix string) ([]models.Account, error) {
	return nil, nil
}
func (f *fakeAccountRepo) Deactivate(ctx context.Context, companyID uint, code string) error {
	return nil
}

func TestStoreByCode(t *testing.T) {
	repo := &fakeAccountRepo{accounts: []models.Account{
		{Code: "1100", Name: "Bank", Active: true, Category: models.AccountCategory{Type: models.Asset}},
		{Code: "5200", Name: "Bank Charges", Active: false, Category: models.AccountCategory{Type: models.Expense}},
	}}

	s, err := Load(context.Background(), repo, 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	a, err := s.ByCode("1100")
	if err != nil || a.Name != "Bank" {
		t.Fatalf("ByCode(1100) = %v, %v", a, err)
	}

	if _, err := s.ByCode("9999"); !errors.Is(err, apperr.Of(apperr.UnknownAccount)) {
		t.Fatalf("expected UnknownAccount, got %v", err)
	}

	if _, err := s.MustBeActive("5200"); !errors.Is(err, apperr.Of(apperr.InactiveAccount)) {
		t.Fatalf("expected InactiveAccount, got %v", err)
	}

	nb, err := s.NormalBalance("1100")
	if err != nil || nb != models.Debit {
		t.Fatalf("NormalBalance(1100) = %v, %v", nb, err)
	}
}

func TestStoreByCodePrefix(t *testing.T) {
	repo := &fakeAccountRepo{accounts: []models.Account{
		{Code: "1100", Category: models.AccountCategory{Type: models.Asset}},
		{Code: "1200", Category: models.AccountCategory{Type: models.Asset}},
		{Code: "4000", Category: models.AccountCategory{Type: models.Revenue}},
	}}

	s, err := Load(context.Background(), repo, 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	assets := s.ByCodePrefix("1")
	if len(assets) != 2 {
		t.Fatalf("expected 2 asset accounts, got %d", len(assets))
	}
}
