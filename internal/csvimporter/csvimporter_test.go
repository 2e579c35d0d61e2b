package csvimporter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ModulasKhwaait/moneyMatters/pkg/financialimporter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	accountName string
	accountType string
	institution string
	records     []financialimporter.Record
	nextID      int64
}

func (s *fakeStore) EnsureAccount(ctx context.Context, name, accountType, institution string) (int64, error) {
	s.accountName = name
	s.accountType = accountType
	s.institution = institution
	s.nextID = 1
	return s.nextID, nil
}

func (s *fakeStore) InsertTransactions(ctx context.Context, accountID int64, records []financialimporter.Record) (financialimporter.LoadResult, error) {
	s.records = append(s.records, records...)
	return financialimporter.LoadResult{Inserted: len(records)}, nil
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportCSV(t *testing.T) {
	path := writeCSV(t, "Transaction Date,Description,Amount,Memo\n"+
		"01/05/2024,COFFEE SHOP,-4.50,\n"+
		"01/06/2024,PAYROLL,2000.00,january\n")

	store := &fakeStore{}
	importer := NewChaseImporter(store, time.Time{})

	result, err := importer.ImportCSV(path, "Chase Freedom")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, "Chase Freedom", store.accountName)
	assert.Equal(t, "Credit Card", store.accountType)
	assert.Equal(t, "Chase", store.institution)

	require.Len(t, store.records, 2)
	assert.Equal(t, "2024-01-05", store.records[0].TransactionDate)
	assert.Equal(t, "january", store.records[1].Memo)
}

func TestImportCSVMissingFile(t *testing.T) {
	store := &fakeStore{}
	importer := NewChaseImporter(store, time.Time{})

	_, err := importer.ImportCSV(filepath.Join(t.TempDir(), "nope.csv"), "Chase Freedom")
	assert.Error(t, err)
	// nothing may be written on input errors
	assert.Empty(t, store.accountName)
	assert.Empty(t, store.records)
}

func TestImportCSVBadAmountAbortsBeforeWriting(t *testing.T) {
	path := writeCSV(t, "Transaction Date,Description,Amount\n"+
		"01/05/2024,COFFEE SHOP,not-a-number\n")

	store := &fakeStore{}
	importer := NewChaseImporter(store, time.Time{})

	_, err := importer.ImportCSV(path, "Chase Freedom")
	assert.Error(t, err)
	assert.Empty(t, store.accountName)
	assert.Empty(t, store.records)
}

func TestImportCSVCutoffFiltersOldRows(t *testing.T) {
	path := writeCSV(t, "Transaction Date,Description,Amount\n"+
		"12/31/2023,OLD ROW,-1.00\n"+
		"01/06/2024,NEW ROW,-2.00\n")

	store := &fakeStore{}
	importer := NewChaseImporter(store, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	result, err := importer.ImportCSV(path, "Chase Freedom")
	require.NoError(t, err)

	// filtered rows count as neither inserted nor skipped
	assert.Equal(t, 1, result.Inserted)
	require.Len(t, store.records, 1)
	assert.Equal(t, "NEW ROW", store.records[0].Description)
}
