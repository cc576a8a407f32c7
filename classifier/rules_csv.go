package classifier

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/finledger/finledger/models"
)

// LoadRulesCSV parses a rules bulk-load file per spec.md §6: columns
// ruleName,matchType,matchValue,accountCode,priority,active. The first row
// is treated as a header and skipped.
func LoadRulesCSV(r io.Reader, companyID uint) ([]models.TransactionMappingRule, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rules csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var rules []models.TransactionMappingRule
	for i, rec := range records[1:] {
		if len(rec) < 6 {
			return nil, fmt.Errorf("rules csv row %d: expected 6 columns, got %d", i+2, len(rec))
		}
		matchType := models.MatchType(strings.ToUpper(strings.TrimSpace(rec[1])))
		if !matchType.IsValid() {
			return nil, fmt.Errorf("rules csv row %d: unknown match type %q", i+2, rec[1])
		}
		priority, err := strconv.Atoi(strings.TrimSpace(rec[4]))
		if err != nil {
			return nil, fmt.Errorf("rules csv row %d: invalid priority %q", i+2, rec[4])
		}
		active, err := strconv.ParseBool(strings.TrimSpace(rec[5]))
		if err != nil {
			return nil, fmt.Errorf("rules csv row %d: invalid active flag %q", i+2, rec[5])
		}

		rules = append(rules, models.TransactionMappingRule{
			CompanyID:         companyID,
			Name:              strings.TrimSpace(rec[0]),
			MatchType:         matchType,
			MatchValue:        strings.TrimSpace(rec[2]),
			TargetAccountCode: strings.TrimSpace(rec[3]),
			Priority:          priority,
			Active:            active,
		})
	}
	return rules, nil
}
