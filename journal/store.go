// Package journal implements the Journal Store component (spec.md §4.C):
// an append-only ledger of balanced JournalEntry records, indexed for
// per-account and per-period retrieval. Posting is linearizable per
// (company, fiscal period): two concurrent posts to the same period are
// serialised, but posts to distinct periods may interleave (spec.md §5).
package journal

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/finledger/finledger/apperr"
	"github.com/finledger/finledger/coa"
	"github.com/finledger/finledger/models"
	"github.com/finledger/finledger/repositories"
	"github.com/finledger/finledger/utils"
)

// Store posts and queries journal entries; it is not bound to one company,
// and every query is scoped by the company and fiscal period it is given.
type Store struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[uint]*sync.RWMutex // fiscal period ID -> per-period lock
}

// NewStore builds a Store over the given database connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, locks: make(map[uint]*sync.RWMutex)}
}

func (s *Store) periodLock(periodID uint) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[periodID]
	if !ok {
		l = &sync.RWMutex{}
		s.locks[periodID] = l
	}
	return l
}

// Post persists entry iff it is balanced, its period is open, and every
// line references a known, active account. The entry and its lines are
// written in a single database transaction so a partially written
// unbalanced entry is never observable (spec.md §4.C).
func (s *Store) Post(ctx context.Context, period models.FiscalPeriod, accounts *coa.Store, entry *models.JournalEntry) error {
	if period.Closed {
		return apperr.New(apperr.PeriodClosed, fmt.Sprintf("fiscal period %q is closed", period.Name))
	}
	if len(entry.Lines) < 2 {
		return apperr.New(apperr.Unbalanced, "entry must have at least two lines")
	}
	if !entry.IsBalanced() {
		return apperr.New(apperr.Unbalanced, fmt.Sprintf("debits %s != credits %s", entry.TotalDebit(), entry.TotalCredit()))
	}

	for i, line := range entry.Lines {
		if err := validateLineShape(i, line); err != nil {
			return err
		}
		if _, err := accounts.MustBeActiveByID(line.AccountID); err != nil {
			return err
		}
	}

	lock := s.periodLock(period.ID)
	lock.Lock()
	defer lock.Unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range entry.Lines {
			entry.Lines[i].LineNumber = i + 1
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("post journal entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	utils.Audit("journal.post", "journal_entry", entry.ID, utils.Fields{
		"company_id": entry.CompanyID,
		"period_id":  period.ID,
		"reference":  entry.Reference,
		"lines":      len(entry.Lines),
	})
	return nil
}

// validateLineShape enforces that line carries exactly one of a strictly
// positive Debit or a strictly positive Credit, never both and never
// neither (spec.md §8: a dual-sided or zero-amount line is rejected).
func validateLineShape(i int, line models.JournalEntryLine) error {
	debit, credit := line.Debit.IsPositive(), line.Credit.IsPositive()
	if debit == credit {
		return apperr.New(apperr.Unbalanced, fmt.Sprintf("line %d must carry exactly one of debit/credit, got debit=%s credit=%s", i+1, line.Debit, line.Credit))
	}
	return nil
}

// LinesForAccount returns every line posted against accountID within
// period, ordered by (entry date asc, entry id asc, line number asc).
func (s *Store) LinesForAccount(ctx context.Context, companyID, periodID, accountID uint) ([]LineWithEntry, error) {
	lock := s.periodLock(periodID)
	lock.RLock()
	defer lock.RUnlock()

	var rows []LineWithEntry
	err := s.db.WithContext(ctx).
		Table("journal_entry_lines AS l").
		Select("l.*, e.date AS entry_date, e.id AS entry_id, e.reference AS entry_reference").
		Joins("JOIN journal_entries AS e ON e.id = l.journal_entry_id").
		Where("e.company_id = ? AND e.fiscal_period_id = ? AND l.account_id = ?", companyID, periodID, accountID).
		Order("e.date ASC, e.id ASC, l.line_number ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("lines for account: %w", err)
	}
	return rows, nil
}

// LineWithEntry flattens a JournalEntryLine together with the date/id/
// reference of its parent entry, for account-history queries.
type LineWithEntry struct {
	models.JournalEntryLine
	EntryDate      string
	EntryID        uint
	EntryReference string
}

// EntriesInPeriod returns every entry (with its lines preloaded) posted in
// period, ordered by (entry date asc, entry id asc).
func (s *Store) EntriesInPeriod(ctx context.Context, companyID, periodID uint) ([]models.JournalEntry, error) {
	lock := s.periodLock(periodID)
	lock.RLock()
	defer lock.RUnlock()

	var entries []models.JournalEntry
	err := s.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND fiscal_period_id = ?", companyID, periodID).
		Order("date ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("entries in period: %w", err)
	}
	return entries, nil
}

// PageFilters narrows an EntriesPaged query by date range and free text
// matched against the entry description or reference.
type PageFilters struct {
	FromDate string
	ToDate   string
	Search   string
}

// EntriesPaged returns a deterministic page of entries matching filters,
// plus the total matching count.
func (s *Store) EntriesPaged(ctx context.Context, companyID, periodID uint, filters PageFilters, page, size int) ([]models.JournalEntry, int64, error) {
	lock := s.periodLock(periodID)
	lock.RLock()
	defer lock.RUnlock()

	q := s.db.WithContext(ctx).Model(&models.JournalEntry{}).
		Where("company_id = ? AND fiscal_period_id = ?", companyID, periodID)
	if filters.FromDate != "" {
		q = q.Where("date >= ?", filters.FromDate)
	}
	if filters.ToDate != "" {
		q = q.Where("date <= ?", filters.ToDate)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		q = q.Where("description LIKE ? OR reference LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count entries: %w", err)
	}

	pagination := repositories.CalculatePagination(total, page, size)
	opts := &repositories.QueryOptions{
		Preload: []string{"Lines"},
		Sort:    "date, id",
		Limit:   pagination.PerPage,
		Offset:  (pagination.CurrentPage - 1) * pagination.PerPage,
	}

	var entries []models.JournalEntry
	err := repositories.ApplyQueryOptions(q, opts).Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("page entries: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date.Equal(entries[j].Date) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].Date.Before(entries[j].Date)
	})

	return entries, total, nil
}
