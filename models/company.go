package models

import "time"

// Company owns every other entity by containment: each carries a CompanyID.
// No foreign-key constraint or cascade is declared, so deleting a Company
// does not delete its accounts, periods, rules or entries.
type Company struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null;size:150"`
	RegistrationNo string `gorm:"size:50"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FiscalPeriod is a date window within which posting is permitted. Periods
// for a company never overlap, and start must not be after end.
type FiscalPeriod struct {
	ID        uint      `gorm:"primaryKey"`
	CompanyID uint      `gorm:"not null;index"`
	Name      string    `gorm:"not null;size:50"` // e.g. "2025-01"
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	Closed    bool      `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether d falls within [StartDate, EndDate].
func (p FiscalPeriod) Contains(d time.Time) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// Overlaps reports whether p and other share any date.
func (p FiscalPeriod) Overlaps(other FiscalPeriod) bool {
	return !p.EndDate.Before(other.StartDate) && !other.EndDate.Before(p.StartDate)
}

// SourceFile records the provenance of an imported bank statement so a
// re-import of the same file can be detected — supplements the "optional
// source-file id" spec.md already names on BankTransaction.
type SourceFile struct {
	ID         uint   `gorm:"primaryKey"`
	CompanyID  uint   `gorm:"not null;index"`
	Filename   string `gorm:"not null;size:255"`
	Checksum   string `gorm:"size:64;index"`
	ImportedAt time.Time
}
