package services

import (
	"errors"
	"io"

	"github.com/username/galfin/src/models"
)

var (
	// ErrParsingFailed wraps statement file parse errors, including missing
	// required columns.
	ErrParsingFailed = errors.New("statement parsing failed")
	// ErrProcessingFailed wraps transform/persistence errors during import.
	ErrProcessingFailed = errors.New("statement processing failed")
	// ErrTransactionNotFound is returned when an operation addresses a
	// transaction id that does not exist. Never a silent no-op.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrAccountNotFound is the accounts counterpart.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountInUse is returned when deleting an account that transactions
	// still reference.
	ErrAccountInUse = errors.New("account still referenced by transactions")
)

// ImportResult summarizes one statement import. Dropped rows (unparsable
// date or amount) are reported here rather than failing the batch;
// duplicates are skipped, so re-importing a file is idempotent.
type ImportResult struct {
	RowsParsed        int `json:"rows_parsed"`
	RowsDropped       int `json:"rows_dropped"`
	Inserted          int `json:"inserted"`
	DuplicatesSkipped int `json:"duplicates_skipped"`
	Categorized       int `json:"categorized"`
}

// ImportService runs the full ingest pipeline: parse, transform, upsert,
// categorize.
type ImportService interface {
	ProcessImport(fileReader io.Reader, format string) (*ImportResult, error)
}

// TransactionFilter narrows the transaction listing. Category and
// Subcategory filter on the effective value (user override else auto);
// Search matches details, cleaned and user descriptions.
type TransactionFilter struct {
	StartDate   string
	EndDate     string
	AccountID   string
	Institution string
	Currency    string
	Type        string
	Category    string
	Subcategory string
	Search      string
}

// Overrides carries a manual edit. Nil pointers leave the field untouched;
// pointers to the empty string clear the override back to the auto value.
type Overrides struct {
	Category    *string `json:"category_user"`
	Subcategory *string `json:"subcategory_user"`
	Description *string `json:"description_user"`
}

// TransactionService covers reads and user-driven writes on canonical
// transactions, plus the bulk recompute passes for the derived fields.
type TransactionService interface {
	List(filter TransactionFilter) ([]models.CanonicalTransaction, error)
	Get(transactionID string) (*models.CanonicalTransaction, error)
	UpdateOverrides(transactionID string, o Overrides) error
	Delete(transactionID string) error
	// Recategorize recomputes the auto category fields from the cleaned
	// descriptions and the current rule file. User overrides are never
	// touched. onlyMissing limits the pass to rows without auto values.
	Recategorize(onlyMissing bool) (int, error)
	// RecleanDescriptions recomputes description_cleaned from the raw
	// details, for when the cleaning logic changes.
	RecleanDescriptions(onlyMissing bool) (int, error)
}

// ReportFilter scopes the read-only report projections.
type ReportFilter struct {
	StartDate string
	EndDate   string
	AccountID string
}

// ReportService exposes the aggregate projections consumed by the
// presentation layer.
type ReportService interface {
	ExpensesByCategory(filter ReportFilter) ([]models.CategoryExpense, error)
	IncomeVsExpenseByMonth(filter ReportFilter) ([]models.MonthlyFlow, error)
}
