package financialimporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImporter struct {
	calls        []string
	accountNames []string
	result       ImportResult
}

func (f *fakeImporter) ImportCSV(path, accountName string) (ImportResult, error) {
	f.calls = append(f.calls, path)
	f.accountNames = append(f.accountNames, accountName)
	return f.result, nil
}

func TestImportFileDispatchesToChase(t *testing.T) {
	fake := &fakeImporter{result: ImportResult{Inserted: 3, Skipped: 1}}
	manager := NewImportManager(fake)

	result, err := manager.ImportFile("data/raw/export.csv", "chase", "Chase Freedom")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Inserted)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, []string{"data/raw/export.csv"}, fake.calls)
	assert.Equal(t, []string{"Chase Freedom"}, fake.accountNames)
}

func TestImportFileDefaultsAccountNameFromFileStem(t *testing.T) {
	fake := &fakeImporter{}
	manager := NewImportManager(fake)

	_, err := manager.ImportFile("data/raw/Chase1234_Activity.csv", "Chase", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chase - Chase1234_Activity"}, fake.accountNames)
}

func TestImportFileUnsupportedInstitution(t *testing.T) {
	fake := &fakeImporter{}
	manager := NewImportManager(fake)

	result, err := manager.ImportFile("data/raw/export.csv", "bofa", "")
	assert.ErrorIs(t, err, ErrUnsupportedInstitution)
	assert.Equal(t, ImportResult{}, result)
	// the importer must not have been touched
	assert.Empty(t, fake.calls)
}
