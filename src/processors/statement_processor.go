// Package processors turns raw statement rows into canonical transactions:
// stable content-derived identity, normalized account ids, decoded dates and
// cleaned descriptions.
package processors

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/galfin/src/cleaning"
	"github.com/username/galfin/src/logger"
	"github.com/username/galfin/src/models"
)

const dateLayout = "20060102" // integer-encoded YYYYMMDD in the source files

// MakeTransactionID derives the persistence primary key from the five
// content fields, joined with a fixed separator. The amount contributes its
// 2-decimal string form, so 12.5 and 12.50 hash identically while any real
// field change yields a different id. Deterministic across runs: repeated
// imports of the same source row always produce the same key.
func MakeTransactionID(accountID, isoDate string, amount decimal.Decimal, currency, details string) string {
	base := strings.TrimSpace(accountID + "|" + isoDate + "|" + amount.StringFixed(2) + "|" + currency + "|" + details)
	sum := sha256.Sum256([]byte(base))
	return hex.EncodeToString(sum[:])
}

// StatementResult is the output of one transform pass. DroppedRows counts
// source rows excluded for an unparsable date or amount; they are reported,
// never raised, so one bad row cannot abort a batch.
type StatementResult struct {
	Transactions []models.CanonicalTransaction
	DroppedRows  int
}

// StatementProcessor maps bank-specific raw rows onto the canonical record
// shape. An optional account mapping replaces account numbers with display
// names; the institution label is stamped on every row.
type StatementProcessor struct {
	institution string
	accounts    *AccountMapping
}

func NewStatementProcessor(institution string, accounts *AccountMapping) *StatementProcessor {
	return &StatementProcessor{institution: institution, accounts: accounts}
}

// Process converts raw rows to canonical transactions. Per row: the account
// id is normalized and mapped, the YYYYMMDD date decoded, the amount parsed
// as a decimal, the transaction id derived, and the description cleaned.
// Income means amount > 0; zero classifies as Expense.
func (p *StatementProcessor) Process(rows []models.RawStatementRow) *StatementResult {
	result := &StatementResult{}
	for _, raw := range rows {
		date, err := time.Parse(dateLayout, strings.TrimSpace(raw.TransactionDate))
		if err != nil {
			logger.L.Debug("Dropping row with unparsable date", "transactionDate", raw.TransactionDate)
			result.DroppedRows++
			continue
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(raw.Amount))
		if err != nil {
			logger.L.Debug("Dropping row with unparsable amount", "amount", raw.Amount)
			result.DroppedRows++
			continue
		}

		accountID := NormalizeAccountID(raw.AccountNumber)
		if p.accounts != nil {
			accountID = p.accounts.Resolve(accountID)
		}

		currency := strings.ToUpper(strings.TrimSpace(raw.MutationCode))
		details := strings.TrimSpace(raw.Description)
		isoDate := date.Format("2006-01-02")

		txType := models.TypeExpense
		if amount.IsPositive() {
			txType = models.TypeIncome
		}

		result.Transactions = append(result.Transactions, models.CanonicalTransaction{
			TransactionID:      MakeTransactionID(accountID, isoDate, amount, currency, details),
			Date:               date,
			Institution:        p.institution,
			AccountID:          accountID,
			Amount:             amount,
			Currency:           currency,
			Details:            details,
			DescriptionCleaned: cleaning.CleanDescription(details),
			TransactionType:    txType,
		})
	}
	return result
}

// NormalizeAccountID trims whitespace and strips the trailing ".0" that
// numeric coercion in spreadsheet tools tacks onto account numbers.
func NormalizeAccountID(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, ".0")
	return s
}
