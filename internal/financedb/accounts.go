package financedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"k8s.io/klog"
)

// AccountClass partitions accounts for reporting. Classification is
// derived from the free-text account_type column at read time; this
// helper is the single place the rule lives so every caller applies it
// the same way.
type AccountClass int

const (
	ClassDeposit AccountClass = iota
	ClassCredit
)

// ClassifyAccountType returns ClassCredit when the type string contains
// "credit" (case-insensitive), ClassDeposit otherwise.
func ClassifyAccountType(accountType string) AccountClass {
	if strings.Contains(strings.ToLower(accountType), "credit") {
		return ClassCredit
	}
	return ClassDeposit
}

// EnsureAccount returns the id of the account with the given name,
// creating it if needed. Safe to call repeatedly: a second call with the
// same name returns the existing id and leaves the stored type and
// institution untouched, even if the arguments differ.
func (db *DB) EnsureAccount(ctx context.Context, name, accountType, institution string) (int64, error) {
	account := &Account{
		Name:        name,
		Type:        accountType,
		Institution: institution,
	}

	res, err := db.NewInsert().
		Model(account).
		On("CONFLICT (account_name) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to insert account %s: %w", name, err)
	}

	var id int64
	err = db.NewSelect().
		Model((*Account)(nil)).
		Column("account_id").
		Where("account_name = ?", name).
		Scan(ctx, &id)
	if err != nil {
		return 0, fmt.Errorf("failed to look up account %s: %w", name, err)
	}

	if n, raErr := res.RowsAffected(); raErr == nil && n > 0 {
		klog.Infof("Added account %s (id %d)", name, id)
	} else {
		klog.Infof("Account already exists: %s (id %d)", name, id)
	}

	return id, nil
}

// AccountByName returns the account with the given name, or nil when it
// doesn't exist.
func (db *DB) AccountByName(ctx context.Context, name string) (*Account, error) {
	account := new(Account)
	err := db.NewSelect().
		Model(account).
		Where("account_name = ?", name).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up account %s: %w", name, err)
	}
	return account, nil
}

// Accounts returns every account, ordered by id.
func (db *DB) Accounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	err := db.NewSelect().
		Model(&accounts).
		Order("account_id").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
