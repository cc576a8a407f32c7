package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/finledger/finledger/apperr"
	"github.com/finledger/finledger/models"
)

// AccountRepository defines the account-related database operations the
// Chart of Accounts component (spec.md §4.B) is built on.
type AccountRepository interface {
	Create(ctx context.Context, a *models.Account) (*models.Account, error)
	FindByCode(ctx context.Context, companyID uint, code string) (*models.Account, error)
	FindByID(ctx context.Context, id uint) (*models.Account, error)
	FindAll(ctx context.Context, companyID uint) ([]models.Account, error)
	FindByCodePrefix(ctx context.Context, companyID uint, prefix string) ([]models.Account, error)
	Deactivate(ctx context.Context, companyID uint, code string) error
}

// AccountRepo implements AccountRepository over GORM.
type AccountRepo struct {
	*BaseRepo
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &AccountRepo{BaseRepo: &BaseRepo{DB: db}}
}

// Create inserts a new account, surfacing apperr.CodeConflict on a
// duplicate (companyID, code) pair.
func (r *AccountRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	var existing models.Account
	err := r.DB.WithContext(ctx).
		Where("company_id = ? AND code = ?", a.CompanyID, a.Code).
		First(&existing).Error
	if err == nil {
		return nil, apperr.New(apperr.CodeConflict, fmt.Sprintf("account code %q already in use by %q", a.Code, existing.Name))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing code: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(a).Error; err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return a, nil
}

// FindByCode looks up an account by its company-scoped code.
func (r *AccountRepo) FindByCode(ctx context.Context, companyID uint, code string) (*models.Account, error) {
	var a models.Account
	err := r.DB.WithContext(ctx).
		Preload("Category").
		Where("company_id = ? AND code = ?", companyID, code).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.UnknownAccount, fmt.Sprintf("no account with code %q", code))
	}
	if err != nil {
		return nil, fmt.Errorf("find account by code: %w", err)
	}
	return &a, nil
}

// FindByID looks up an account by its primary key.
func (r *AccountRepo) FindByID(ctx context.Context, id uint) (*models.Account, error) {
	var a models.Account
	err := r.DB.WithContext(ctx).Preload("Category").First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.UnknownAccount, fmt.Sprintf("no account with id %d", id))
	}
	if err != nil {
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return &a, nil
}

// FindAll returns every account belonging to a company, ordered by code.
func (r *AccountRepo) FindAll(ctx context.Context, companyID uint) ([]models.Account, error) {
	var accounts []models.Account
	err := r.DB.WithContext(ctx).
		Preload("Category").
		Where("company_id = ?", companyID).
		Order("code ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// FindByCodePrefix returns accounts whose code starts with prefix, e.g.
// "1" for assets or "4" for revenue; any "%" in prefix is stripped.
func (r *AccountRepo) FindByCodePrefix(ctx context.Context, companyID uint, prefix string) ([]models.Account, error) {
	var accounts []models.Account
	err := r.DB.WithContext(ctx).
		Preload("Category").
		Where("company_id = ? AND code LIKE ?", companyID, strings.ReplaceAll(prefix, "%", "")+"%").
		Order("code ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("list accounts by prefix: %w", err)
	}
	return accounts, nil
}

// Deactivate marks an account inactive; it remains readable for historical
// reporting but is rejected for new postings (spec.md §4.B).
func (r *AccountRepo) Deactivate(ctx context.Context, companyID uint, code string) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Account{}).
		Where("company_id = ? AND code = ?", companyID, code).
		Update("active", false)
	if res.Error != nil {
		return fmt.Errorf("deactivate account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.UnknownAccount, fmt.Sprintf("no account with code %q", code))
	}
	return nil
}
