package csvimporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeadersChaseExport(t *testing.T) {
	mapping := NormalizeHeaders([]string{"Transaction Date", "Description", "Amount", "Memo"})

	assert.Equal(t, map[string]string{
		"Transaction Date": "transaction_date",
		"Description":      "description",
		"Amount":           "amount",
		"Memo":             "memo",
	}, mapping)
}

func TestNormalizeHeadersFullExport(t *testing.T) {
	mapping := NormalizeHeaders([]string{
		"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount", "Memo",
	})

	assert.Equal(t, "transaction_date", mapping["Transaction Date"])
	assert.Equal(t, "post_date", mapping["Post Date"])
	assert.Equal(t, "original_category", mapping["Category"])
	assert.Equal(t, "transaction_type", mapping["Type"])
}

func TestNormalizeHeadersCaseAndWhitespace(t *testing.T) {
	mapping := NormalizeHeaders([]string{"  TRANSACTION DATE ", "description", "AMOUNT"})

	assert.Equal(t, "transaction_date", mapping["  TRANSACTION DATE "])
	assert.Equal(t, "description", mapping["description"])
	assert.Equal(t, "amount", mapping["AMOUNT"])
}

func TestNormalizeHeadersFirstRuleWins(t *testing.T) {
	// contains both "category" and "type"; the category rule is ordered first
	mapping := NormalizeHeaders([]string{"Category Type"})
	assert.Equal(t, "original_category", mapping["Category Type"])
}

func TestNormalizeHeadersPassThroughUnmatched(t *testing.T) {
	mapping := NormalizeHeaders([]string{"Reference Number", "Amount"})

	assert.Equal(t, "Reference Number", mapping["Reference Number"])
	assert.Equal(t, "amount", mapping["Amount"])
}
