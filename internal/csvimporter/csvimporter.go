// Package csvimporter turns institution CSV exports into cleaned,
// deduplicated ledger rows.
package csvimporter

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ModulasKhwaait/moneyMatters/pkg/financialimporter"
	"github.com/sirupsen/logrus"
)

const LogLevelEnv = "MONEYMATTERS_LOG_LEVEL"

// TransactionStore is the slice of the finance store the importer needs.
type TransactionStore interface {
	EnsureAccount(ctx context.Context, name, accountType, institution string) (int64, error)
	InsertTransactions(ctx context.Context, accountID int64, records []financialimporter.Record) (financialimporter.LoadResult, error)
}

// ChaseImporter imports Chase credit card CSV exports.
type ChaseImporter struct {
	store       TransactionStore
	log         *logrus.Logger
	importAfter time.Time // zero means no cutoff
}

func NewChaseImporter(store TransactionStore, importAfter time.Time) *ChaseImporter {
	log := logrus.New()
	log.SetReportCaller(true)

	level, err := logrus.ParseLevel(os.Getenv(LogLevelEnv))
	if err != nil {
		level = logrus.InfoLevel
	}

	log.SetLevel(level)

	return &ChaseImporter{
		store:       store,
		log:         log,
		importAfter: importAfter,
	}
}

// ImportCSV reads, cleans, and loads one export file into the account
// named accountName, creating the account on first sight. Returns how
// many rows were inserted and how many were duplicates of rows already
// imported. Input failures (missing file, bad structure, unparseable
// date or amount) abort the call before anything for it is written.
func (i *ChaseImporter) ImportCSV(path, accountName string) (financialimporter.ImportResult, error) {
	csvFile, err := os.Open(path)
	if err != nil {
		return financialimporter.ImportResult{}, fmt.Errorf("failed to open %s csv file: %w", path, err)
	}
	defer csvFile.Close()

	reader := csv.NewReader(bufio.NewReader(csvFile))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return financialimporter.ImportResult{}, fmt.Errorf("failed to parse %s csv header: %w", path, err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return financialimporter.ImportResult{}, fmt.Errorf("failed to parse %s csv row: %w", path, err)
		}
		rows = append(rows, row)
	}

	i.log.Infof("Read %d rows from %s", len(rows), path)

	clean, err := CleanRows(header, rows)
	if err != nil {
		return financialimporter.ImportResult{}, fmt.Errorf("failed to clean %s: %w", path, err)
	}

	if clean.DroppedEmpty > 0 {
		i.log.Infof("Dropped %d empty rows", clean.DroppedEmpty)
	}
	if len(clean.Records) > 0 {
		i.log.Infof("Cleaned %d rows, date range %s to %s", len(clean.Records), clean.MinDate, clean.MaxDate)
	}

	records := i.filterByCutoff(clean.Records)

	accountID, err := i.store.EnsureAccount(context.Background(), accountName, "Credit Card", "Chase")
	if err != nil {
		return financialimporter.ImportResult{}, err
	}

	loaded, err := i.store.InsertTransactions(context.Background(), accountID, records)
	if err != nil {
		return financialimporter.ImportResult{Inserted: loaded.Inserted, Skipped: loaded.Skipped}, err
	}

	return financialimporter.ImportResult{Inserted: loaded.Inserted, Skipped: loaded.Skipped}, nil
}

// filterByCutoff drops records dated strictly before the configured
// import-after date. Filtered rows are neither inserted nor skipped.
func (i *ChaseImporter) filterByCutoff(records []financialimporter.Record) []financialimporter.Record {
	if i.importAfter.IsZero() {
		return records
	}

	kept := records[:0]
	for _, record := range records {
		t, err := time.Parse(isoDate, record.TransactionDate)
		if err != nil || t.Before(i.importAfter) {
			continue
		}
		kept = append(kept, record)
	}

	if dropped := len(records) - len(kept); dropped > 0 {
		i.log.Infof("Skipped %d rows before cutoff %s", dropped, i.importAfter.Format(isoDate))
	}

	return kept
}
