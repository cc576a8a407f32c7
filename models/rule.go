package models

import "time"

// MatchType is the predicate kind a TransactionMappingRule evaluates
// against an upper-cased, trimmed description (spec.md §4.E).
type MatchType string

const (
	MatchContains   MatchType = "CONTAINS"
	MatchStartsWith MatchType = "STARTS_WITH"
	MatchEndsWith   MatchType = "ENDS_WITH"
	MatchEquals     MatchType = "EQUALS"
	MatchRegex      MatchType = "REGEX"
)

// IsValid reports whether mt is one of the five known match types.
func (mt MatchType) IsValid() bool {
	switch mt {
	case MatchContains, MatchStartsWith, MatchEndsWith, MatchEquals, MatchRegex:
		return true
	}
	return false
}

// TransactionMappingRule maps a free-text statement line to a target
// account. The set of rules for a company is a priority-ordered sequence;
// lower Priority (ties broken by lower ID) is evaluated first.
type TransactionMappingRule struct {
	ID               uint      `gorm:"primaryKey"`
	CompanyID        uint      `gorm:"not null;index"`
	Name             string    `gorm:"not null;size:100"`
	MatchType        MatchType `gorm:"not null;size:20"`
	MatchValue       string    `gorm:"not null;size:255"`
	TargetAccountCode string   `gorm:"not null;size:10"`
	Active           bool      `gorm:"not null;default:true"`
	Priority         int       `gorm:"not null;default:100"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
