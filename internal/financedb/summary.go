package financedb

import (
	"context"
	"fmt"
)

const (
	DisplayCreditCard  = "credit_card"
	DisplayBankAccount = "bank_account"
)

// AccountSummary reports one account's aggregates. The negative/positive
// sums are exposed under charge/payment names for credit-type accounts
// and expense/income names for everything else; only the pair matching
// DisplayType is populated. NetChange is always the signed net.
type AccountSummary struct {
	AccountID        int64   `json:"account_id"`
	AccountName      string  `json:"account_name"`
	AccountType      string  `json:"account_type"`
	Institution      string  `json:"institution"`
	DisplayType      string  `json:"display_type"`
	TransactionCount int     `json:"transaction_count"`
	TotalCharges     float64 `json:"total_charges,omitempty"`
	TotalPayments    float64 `json:"total_payments,omitempty"`
	TotalExpenses    float64 `json:"total_expenses,omitempty"`
	TotalIncome      float64 `json:"total_income,omitempty"`
	NetChange        float64 `json:"net_change"`
}

type Summary struct {
	TotalAccounts     int              `json:"total_accounts"`
	TotalTransactions int              `json:"total_transactions"`
	ByAccount         []AccountSummary `json:"by_account"`
}

// Summary aggregates per-account statistics, scoped to one account when
// accountID is non-nil, otherwise across all accounts. Accounts with no
// transactions report zeros.
func (db *DB) Summary(ctx context.Context, accountID *int64) (*Summary, error) {
	var accounts []Account
	var err error

	if accountID != nil {
		account := new(Account)
		err = db.NewSelect().
			Model(account).
			Where("account_id = ?", *accountID).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load account %d: %w", *accountID, err)
		}
		accounts = []Account{*account}
	} else {
		accounts, err = db.Accounts(ctx)
		if err != nil {
			return nil, err
		}
	}

	summary := &Summary{
		TotalAccounts: len(accounts),
		ByAccount:     make([]AccountSummary, 0, len(accounts)),
	}

	for _, account := range accounts {
		accountSummary, err := db.summarizeAccount(ctx, account)
		if err != nil {
			return nil, err
		}
		summary.ByAccount = append(summary.ByAccount, *accountSummary)
		summary.TotalTransactions += accountSummary.TransactionCount
	}

	return summary, nil
}

func (db *DB) summarizeAccount(ctx context.Context, account Account) (*AccountSummary, error) {
	var count int
	var negativeSum, positiveSum, net float64

	// COALESCE so an empty account sums to zero rather than NULL
	err := db.NewSelect().
		Model((*Transaction)(nil)).
		ColumnExpr("COUNT(*)").
		ColumnExpr("COALESCE(SUM(CASE WHEN amount < 0 THEN amount ELSE 0 END), 0)").
		ColumnExpr("COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0)").
		ColumnExpr("COALESCE(SUM(amount), 0)").
		Where("account_id = ?", account.ID).
		Scan(ctx, &count, &negativeSum, &positiveSum, &net)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize account %s: %w", account.Name, err)
	}

	accountSummary := &AccountSummary{
		AccountID:        account.ID,
		AccountName:      account.Name,
		AccountType:      account.Type,
		Institution:      account.Institution,
		TransactionCount: count,
		NetChange:        net,
	}

	// outflow magnitude is reported as a positive number
	outflow := -negativeSum

	switch ClassifyAccountType(account.Type) {
	case ClassCredit:
		accountSummary.DisplayType = DisplayCreditCard
		accountSummary.TotalCharges = outflow
		accountSummary.TotalPayments = positiveSum
	default:
		accountSummary.DisplayType = DisplayBankAccount
		accountSummary.TotalExpenses = outflow
		accountSummary.TotalIncome = positiveSum
	}

	return accountSummary, nil
}
