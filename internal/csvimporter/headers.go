package csvimporter

import (
	"strings"

	"github.com/ModulasKhwaait/moneyMatters/pkg/financialimporter"
)

// headerRule maps headers containing every keyword to a canonical
// column. Rules are ordered; the first match wins.
type headerRule struct {
	keywords  []string
	canonical string
}

var headerRules = []headerRule{
	{[]string{"transaction", "date"}, financialimporter.ColumnTransactionDate},
	{[]string{"post", "date"}, financialimporter.ColumnPostDate},
	{[]string{"description"}, financialimporter.ColumnDescription},
	{[]string{"category"}, financialimporter.ColumnOriginalCategory},
	{[]string{"type"}, financialimporter.ColumnTransactionType},
	{[]string{"amount"}, financialimporter.ColumnAmount},
	{[]string{"memo"}, financialimporter.ColumnMemo},
}

// NormalizeHeaders maps raw export headers onto canonical column names
// using keyword matching on the lower-cased, trimmed header. Headers
// matching no rule pass through unchanged. If two headers map to the
// same canonical name the later one wins — known fragility inherited
// from the column heuristics, kept as-is.
func NormalizeHeaders(headers []string) map[string]string {
	mapping := make(map[string]string, len(headers))

	for _, header := range headers {
		mapping[header] = normalizeHeader(header)
	}

	return mapping
}

func normalizeHeader(header string) string {
	lowered := strings.ToLower(strings.TrimSpace(header))

	for _, rule := range headerRules {
		if containsAll(lowered, rule.keywords) {
			return rule.canonical
		}
	}

	return header
}

func containsAll(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if !strings.Contains(s, keyword) {
			return false
		}
	}
	return true
}
