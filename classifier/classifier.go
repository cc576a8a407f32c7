// Package classifier implements the Classification Engine component
// (spec.md §4.E): a pure, deterministic, re-entrant evaluator that maps a
// transaction description to a target account using a priority-ordered
// rule set.
package classifier

import (
	"regexp"
	"sort"
	"strings"

	"github.com/finledger/finledger/apperr"
	"github.com/finledger/finledger/models"
)

// Unclassified is the sentinel account code returned when no rule matches.
const Unclassified = ""

// CompiledRule is a TransactionMappingRule with its regex (if any)
// pre-compiled once, so Classify never pays compilation cost per call.
type CompiledRule struct {
	Rule    models.TransactionMappingRule
	Pattern *regexp.Regexp // non-nil only for MatchRegex rules
}

// Compile prepares ruleset for classification: keeps only active rules,
// sorts by priority ascending then id ascending (spec.md §4.E step 1), and
// compiles regex patterns once. Rules whose regex fails to compile are
// dropped and reported via the returned warnings, matching the
// RegexInvalid recovery policy (spec.md §7: rule marked inactive).
func Compile(rules []models.TransactionMappingRule) ([]CompiledRule, []error) {
	var active []models.TransactionMappingRule
	for _, r := range rules {
		if r.Active {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Priority != active[j].Priority {
			return active[i].Priority < active[j].Priority
		}
		return active[i].ID < active[j].ID
	})

	var compiled []CompiledRule
	var warnings []error
	for _, r := range active {
		cr := CompiledRule{Rule: r}
		if r.MatchType == models.MatchRegex {
			pattern, err := regexp.Compile("(?i)^" + r.MatchValue + "$")
			if err != nil {
				warnings = append(warnings, apperr.Wrap(apperr.RegexInvalid, "rule "+r.Name+" marked inactive", err))
				continue
			}
			cr.Pattern = pattern
		}
		compiled = append(compiled, cr)
	}
	return compiled, warnings
}

// Classify returns the target account code for description against rules,
// or Unclassified plus a reason if nothing matches. Pure and re-entrant:
// safe to call concurrently across many transactions (spec.md §4.E).
func Classify(description string, rules []CompiledRule) (accountCode string, reason string) {
	desc := strings.ToUpper(strings.TrimSpace(description))

	for _, cr := range rules {
		value := strings.ToUpper(strings.TrimSpace(cr.Rule.MatchValue))
		var matched bool
		switch cr.Rule.MatchType {
		case models.MatchContains:
			matched = strings.Contains(desc, value)
		case models.MatchStartsWith:
			matched = strings.HasPrefix(desc, value)
		case models.MatchEndsWith:
			matched = strings.HasSuffix(desc, value)
		case models.MatchEquals:
			matched = desc == value
		case models.MatchRegex:
			matched = cr.Pattern != nil && cr.Pattern.MatchString(desc)
		}
		if matched {
			return cr.Rule.TargetAccountCode, ""
		}
	}
	return Unclassified, "no rule matched"
}
