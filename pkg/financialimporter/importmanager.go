package financialimporter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedInstitution is returned by ImportFile for institutions
// without a registered importer. Nothing is written in that case.
var ErrUnsupportedInstitution = errors.New("unsupported institution")

// FileImporter imports a single export file into the ledger under the
// given account name.
type FileImporter interface {
	ImportCSV(path, accountName string) (ImportResult, error)
}

// ImportManager dispatches an import to the right institution importer.
type ImportManager struct {
	chase FileImporter
}

func NewImportManager(chase FileImporter) *ImportManager {
	return &ImportManager{chase: chase}
}

// ImportFile imports path using the importer for institution. When
// accountName is empty a name is derived from the institution and the
// file stem, so separate export files land in separate accounts.
func (m *ImportManager) ImportFile(path, institution, accountName string) (ImportResult, error) {
	switch strings.ToLower(strings.TrimSpace(institution)) {
	case "chase":
		if accountName == "" {
			accountName = "Chase - " + fileStem(path)
		}
		return m.chase.ImportCSV(path, accountName)
	default:
		return ImportResult{}, fmt.Errorf("%w %q (supported: chase)", ErrUnsupportedInstitution, institution)
	}
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
