package financedb

import (
	"time"

	"github.com/uptrace/bun"
)

type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`

	ID          int64     `bun:"account_id,pk,autoincrement"`
	Name        string    `bun:"account_name,notnull,unique"`
	Type        string    `bun:"account_type,notnull"`
	Institution string    `bun:"institution,notnull"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Transaction is one ledger row. The natural key
// (account_id, transaction_date, description, amount) is unique at the
// storage layer so re-importing the same export never double-counts.
// Dates are stored as ISO text so ordering and key equality stay exact
// across dialects.
type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID               int64     `bun:"transaction_id,pk,autoincrement"`
	AccountID        int64     `bun:"account_id,notnull,unique:transactions_natural_key"`
	TransactionDate  string    `bun:"transaction_date,notnull,unique:transactions_natural_key"`
	PostDate         string    `bun:"post_date,nullzero"`
	Description      string    `bun:"description,notnull,unique:transactions_natural_key"`
	OriginalCategory string    `bun:"original_category,nullzero"`
	CustomCategory   string    `bun:"custom_category,nullzero"`
	TransactionType  string    `bun:"transaction_type,nullzero"`
	Amount           float64   `bun:"amount,notnull,unique:transactions_natural_key"`
	Memo             string    `bun:"memo"`
	ImportedAt       time.Time `bun:"imported_at,nullzero,notnull,default:current_timestamp"`

	// joined from accounts on reads
	AccountName string `bun:"account_name,scanonly"`
	Institution string `bun:"institution,scanonly"`
}

// Category and CategoryRule back the auto-categorization extension
// point. The import core creates the tables but never touches them.
type Category struct {
	bun.BaseModel `bun:"table:categories"`

	ID        int64     `bun:"category_id,pk,autoincrement"`
	Name      string    `bun:"category_name,notnull,unique"`
	Type      string    `bun:"category_type,notnull"`
	Parent    string    `bun:"parent_category,nullzero"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type CategoryRule struct {
	bun.BaseModel `bun:"table:category_rules"`

	ID           int64     `bun:"rule_id,pk,autoincrement"`
	Keyword      string    `bun:"keyword,notnull"`
	CategoryName string    `bun:"category_name,notnull"`
	Priority     int       `bun:"priority,notnull,default:0"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
