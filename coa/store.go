// Package coa implements the Chart of Accounts component (spec.md §4.B): a
// read-mostly catalogue of accounts keyed by company, with lookup by code,
// listing by code prefix, and normal-balance classification. A Store is
// loaded once per request as an immutable snapshot (spec.md §5) so that
// concurrent postings never observe a half-updated chart.
package coa

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/finledger/finledger/apperr"
	"github.com/finledger/finledger/models"
	"github.com/finledger/finledger/repositories"
)

// Store is an immutable, in-memory snapshot of one company's chart of
// accounts, indexed by code for O(1) amortised lookup.
type Store struct {
	companyID uint
	byCode    map[string]models.Account
	byID      map[uint]models.Account
	ordered   []models.Account
}

// Load fetches the full chart of accounts for companyID and returns a
// snapshot. Callers should take a fresh Load per request rather than
// caching one across requests, so that newly created or deactivated
// accounts are always visible on the next load.
func Load(ctx context.Context, repo repositories.AccountRepository, companyID uint) (*Store, error) {
	accounts, err := repo.FindAll(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("load chart of accounts: %w", err)
	}

	s := &Store{
		companyID: companyID,
		byCode:    make(map[string]models.Account, len(accounts)),
		byID:      make(map[uint]models.Account, len(accounts)),
		ordered:   accounts,
	}
	for _, a := range accounts {
		s.byCode[a.Code] = a
		s.byID[a.ID] = a
	}
	return s, nil
}

// ByCode returns the account with the given code, or apperr.UnknownAccount
// if no such account exists in this company's chart.
func (s *Store) ByCode(code string) (models.Account, error) {
	a, ok := s.byCode[code]
	if !ok {
		return models.Account{}, apperr.New(apperr.UnknownAccount, fmt.Sprintf("no account with code %q", code))
	}
	return a, nil
}

// MustBeActive returns the account for code, or apperr.InactiveAccount if
// it exists but has been deactivated — callers posting new entries must
// reject inactive target accounts while still allowing reads of history.
func (s *Store) MustBeActive(code string) (models.Account, error) {
	a, err := s.ByCode(code)
	if err != nil {
		return models.Account{}, err
	}
	if !a.Active {
		return models.Account{}, apperr.New(apperr.InactiveAccount, fmt.Sprintf("account %q is inactive", code))
	}
	return a, nil
}

// ByID returns the account with the given primary key, or
// apperr.UnknownAccount if no such account exists in this snapshot.
func (s *Store) ByID(id uint) (models.Account, error) {
	a, ok := s.byID[id]
	if !ok {
		return models.Account{}, apperr.New(apperr.UnknownAccount, fmt.Sprintf("no account with id %d", id))
	}
	return a, nil
}

// MustBeActiveByID is MustBeActive keyed by account ID, used when
// validating journal lines which reference accounts by foreign key.
func (s *Store) MustBeActiveByID(id uint) (models.Account, error) {
	a, err := s.ByID(id)
	if err != nil {
		return models.Account{}, err
	}
	if !a.Active {
		return models.Account{}, apperr.New(apperr.InactiveAccount, fmt.Sprintf("account %q is inactive", a.Code))
	}
	return a, nil
}

// All returns every account in the snapshot, ordered by code.
func (s *Store) All() []models.Account {
	out := make([]models.Account, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// ByCodePrefix returns accounts whose code starts with prefix, ordered by
// code — e.g. "1" for assets, "4" for revenue. The reporting package does
// not call it; it matches code prefixes on the accounts it has collected.
func (s *Store) ByCodePrefix(prefix string) []models.Account {
	var out []models.Account
	for _, a := range s.ordered {
		if strings.HasPrefix(a.Code, prefix) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// NormalBalance returns the normal balance side for the account with the
// given code.
func (s *Store) NormalBalance(code string) (models.NormalBalance, error) {
	a, err := s.ByCode(code)
	if err != nil {
		return "", err
	}
	return a.NormalBalance(), nil
}

// CompanyID returns the company this snapshot was loaded for.
func (s *Store) CompanyID() uint { return s.companyID }
