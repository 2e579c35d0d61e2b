package csvimporter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ModulasKhwaait/moneyMatters/pkg/financialimporter"
)

// isoDate is the storage format for all calendar dates.
const isoDate = "2006-01-02"

// dateFormats are tried in order when parsing export dates. Chase uses
// MM/DD/YYYY; the rest cover formats seen in other institutions' files.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"2006/01/02",
	"01-02-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// CleanResult is a typed row set ready for loading, plus the transaction
// date range for diagnostics.
type CleanResult struct {
	Records      []financialimporter.Record
	MinDate      string
	MaxDate      string
	DroppedEmpty int
}

// CleanRows renames columns per the header mapping and converts raw CSV
// rows into typed records: dates normalized to ISO, the amount parsed to
// a signed float, all-blank rows dropped, and missing memos filled with
// the empty string. An unparseable date or amount fails the whole batch;
// nothing is returned for the caller to load.
func CleanRows(header []string, rows [][]string) (*CleanResult, error) {
	columns := columnIndex(header)

	for _, required := range []string{
		financialimporter.ColumnTransactionDate,
		financialimporter.ColumnDescription,
		financialimporter.ColumnAmount,
	} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %s (headers: %v)", required, header)
		}
	}

	result := &CleanResult{Records: make([]financialimporter.Record, 0, len(rows))}

	for i, row := range rows {
		if rowIsEmpty(row) {
			result.DroppedEmpty++
			continue
		}

		record := financialimporter.Record{
			Description:      getColumn(row, columns, financialimporter.ColumnDescription),
			OriginalCategory: getColumn(row, columns, financialimporter.ColumnOriginalCategory),
			TransactionType:  getColumn(row, columns, financialimporter.ColumnTransactionType),
			Memo:             getColumn(row, columns, financialimporter.ColumnMemo),
		}

		date, err := parseDate(getColumn(row, columns, financialimporter.ColumnTransactionDate))
		if err != nil {
			return nil, fmt.Errorf("row %d: transaction date: %w", i+1, err)
		}
		record.TransactionDate = date

		if raw := getColumn(row, columns, financialimporter.ColumnPostDate); raw != "" {
			postDate, err := parseDate(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: post date: %w", i+1, err)
			}
			record.PostDate = postDate
		}

		amount, err := parseAmount(getColumn(row, columns, financialimporter.ColumnAmount))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		record.Amount = amount

		if result.MinDate == "" || record.TransactionDate < result.MinDate {
			result.MinDate = record.TransactionDate
		}
		if record.TransactionDate > result.MaxDate {
			result.MaxDate = record.TransactionDate
		}

		result.Records = append(result.Records, record)
	}

	return result, nil
}

// columnIndex resolves each header through the normalization mapping and
// keys its position by the resulting name. When two headers normalize to
// the same canonical column the later position wins, matching the
// last-wins behavior documented on NormalizeHeaders.
func columnIndex(header []string) map[string]int {
	mapping := NormalizeHeaders(header)

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[mapping[h]] = i
	}
	return columns
}

func getColumn(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func rowIsEmpty(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func parseDate(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("empty date")
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t.Format(isoDate), nil
		}
	}

	return "", fmt.Errorf("unparseable date %q", raw)
}

// parseAmount converts an export amount into a plain signed float.
// Currency symbols and thousands separators are stripped first, and an
// accounting-style parenthesized value is read as negative.
func parseAmount(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable amount %q", raw)
	}

	if negative {
		amount = -amount
	}
	return amount, nil
}
