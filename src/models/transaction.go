package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type labels derived from the sign of the amount.
// Zero-amount rows classify as Expense.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// RawStatementRow is one line of a bank statement export, exactly as read
// from the source file. It only exists during an import.
type RawStatementRow struct {
	AccountNumber   string `json:"account_number"`
	MutationCode    string `json:"mutation_code"`    // carries the currency label in ABN exports
	TransactionDate string `json:"transaction_date"` // integer-encoded YYYYMMDD
	Amount          string `json:"amount"`
	Description     string `json:"description"`
}

// CanonicalTransaction is the persisted representation of one statement line.
//
// TransactionID is a pure function of (AccountID, Date, Amount, Currency,
// Details), so re-importing the same source rows never duplicates data.
// DescriptionCleaned and the *Auto fields are derived caches, recomputable
// from Details and the current rule set. The *User fields are manual
// overrides and win over the auto fields whenever non-blank.
type CanonicalTransaction struct {
	TransactionID      string          `json:"transaction_id"`
	Date               time.Time       `json:"date"`
	Institution        string          `json:"institution"`
	AccountID          string          `json:"account_id"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	Details            string          `json:"details"`
	DescriptionCleaned string          `json:"description_cleaned"`
	TransactionType    string          `json:"transaction_type"`
	CategoryAuto       string          `json:"category_auto,omitempty"`
	SubcategoryAuto    string          `json:"subcategory_auto,omitempty"`
	CategoryUser       string          `json:"category_user,omitempty"`
	SubcategoryUser    string          `json:"subcategory_user,omitempty"`
	DescriptionUser    string          `json:"description_user,omitempty"`
	CreatedAt          string          `json:"created_at,omitempty"`
}

// EffectiveCategory returns the category shown to the user: the manual
// override when present, otherwise the rule-engine output.
func (t *CanonicalTransaction) EffectiveCategory() string {
	return Effective(t.CategoryUser, t.CategoryAuto)
}

// EffectiveSubcategory mirrors EffectiveCategory for the subcategory field.
func (t *CanonicalTransaction) EffectiveSubcategory() string {
	return Effective(t.SubcategoryUser, t.SubcategoryAuto)
}

// EffectiveDescription returns the user-edited description when present,
// else the cleaned one.
func (t *CanonicalTransaction) EffectiveDescription() string {
	return Effective(t.DescriptionUser, t.DescriptionCleaned)
}
