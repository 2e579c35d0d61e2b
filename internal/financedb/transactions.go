package financedb

import (
	"context"
	"fmt"

	"github.com/ModulasKhwaait/moneyMatters/pkg/financialimporter"
	"k8s.io/klog"
)

// InsertTransactions loads cleaned records into the ledger for one
// account. Each row is its own atomic insert: a natural-key collision
// counts as a duplicate skip and the batch continues; any other failure
// aborts the batch. Rows inserted before an abort stay committed.
func (db *DB) InsertTransactions(ctx context.Context, accountID int64, records []financialimporter.Record) (financialimporter.LoadResult, error) {
	var result financialimporter.LoadResult

	for _, record := range records {
		rowResult, err := db.insertTransaction(ctx, accountID, record)
		if err != nil {
			return result, err
		}
		result.Add(rowResult)
	}

	klog.Infof("Inserted %d new transactions", result.Inserted)
	if result.Skipped > 0 {
		klog.Infof("Skipped %d duplicate transactions", result.Skipped)
	}

	return result, nil
}

// insertTransaction attempts one insert. The unique natural key is
// enforced by the schema, so the conflict clause turns "already
// imported" into a zero-row insert rather than an error.
func (db *DB) insertTransaction(ctx context.Context, accountID int64, record financialimporter.Record) (financialimporter.InsertResult, error) {
	row := &Transaction{
		AccountID:        accountID,
		TransactionDate:  record.TransactionDate,
		PostDate:         record.PostDate,
		Description:      record.Description,
		OriginalCategory: record.OriginalCategory,
		TransactionType:  record.TransactionType,
		Amount:           record.Amount,
		Memo:             record.Memo,
	}

	res, err := db.NewInsert().
		Model(row).
		On("CONFLICT (account_id, transaction_date, description, amount) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction %q on %s: %w", record.Description, record.TransactionDate, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return financialimporter.DuplicateSkipped, nil
	}
	return financialimporter.Inserted, nil
}

// Transactions returns ledger rows with their account name and
// institution, newest transaction date first. accountID nil means all
// accounts. limit <= 0 falls back to 100.
func (db *DB) Transactions(ctx context.Context, accountID *int64, limit int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []Transaction
	q := db.NewSelect().
		Model(&rows).
		ColumnExpr("t.*").
		ColumnExpr("a.account_name").
		ColumnExpr("a.institution").
		Join("JOIN accounts AS a ON a.account_id = t.account_id")

	if accountID != nil {
		q = q.Where("t.account_id = ?", *accountID)
	}

	err := q.OrderExpr("t.transaction_date DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return rows, nil
}
