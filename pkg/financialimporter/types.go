package financialimporter

// Canonical column names. Header normalization maps whatever an
// institution's export calls its columns onto these.
const (
	ColumnTransactionDate  = "transaction_date"
	ColumnPostDate         = "post_date"
	ColumnDescription      = "description"
	ColumnOriginalCategory = "original_category"
	ColumnTransactionType  = "transaction_type"
	ColumnAmount           = "amount"
	ColumnMemo             = "memo"
)

// Record is a single cleaned transaction row, typed per the canonical
// schema. Dates are ISO strings (YYYY-MM-DD); PostDate and the optional
// text fields are empty when the source column was missing or blank.
// Amount is signed: negative for outflows, positive for inflows.
type Record struct {
	TransactionDate  string
	PostDate         string
	Description      string
	OriginalCategory string
	TransactionType  string
	Amount           float64
	Memo             string
}

// InsertResult is the per-row outcome of loading a Record into the store.
type InsertResult int

const (
	Inserted InsertResult = iota
	DuplicateSkipped
)

// LoadResult accumulates per-row insert outcomes for one batch.
type LoadResult struct {
	Inserted int
	Skipped  int
}

// Add folds a single row outcome into the batch totals.
func (r *LoadResult) Add(result InsertResult) {
	switch result {
	case Inserted:
		r.Inserted++
	case DuplicateSkipped:
		r.Skipped++
	}
}

// ImportResult reports how one import call landed: how many rows were
// written and how many were already present from a prior import.
type ImportResult struct {
	Inserted int
	Skipped  int
}
