package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/username/galfin/src/categorization"
	"github.com/username/galfin/src/cleaning"
	"github.com/username/galfin/src/database"
	"github.com/username/galfin/src/logger"
	"github.com/username/galfin/src/models"
)

// effectiveCategorySQL resolves the category shown to the user inside the
// query: the manual override when non-blank, else the rule-engine output.
const (
	effectiveCategorySQL    = "COALESCE(NULLIF(TRIM(COALESCE(category_user, '')), ''), category_auto)"
	effectiveSubcategorySQL = "COALESCE(NULLIF(TRIM(COALESCE(subcategory_user, '')), ''), subcategory_auto)"
)

const transactionColumns = `transaction_id, date, institution, account_id, amount, currency,
	details, description_cleaned, transaction_type,
	category_auto, subcategory_auto, category_user, subcategory_user, description_user, created_at`

type transactionServiceImpl struct {
	rulesPath   string
	reportCache *cache.Cache
}

func NewTransactionService(rulesPath string, reportCache *cache.Cache) TransactionService {
	return &transactionServiceImpl{rulesPath: rulesPath, reportCache: reportCache}
}

func (s *transactionServiceImpl) List(filter TransactionFilter) ([]models.CanonicalTransaction, error) {
	var where []string
	var args []interface{}

	add := func(clause string, value string) {
		if value != "" {
			where = append(where, clause)
			args = append(args, value)
		}
	}
	add("date >= ?", filter.StartDate)
	add("date <= ?", filter.EndDate)
	add("account_id = ?", filter.AccountID)
	add("institution = ?", filter.Institution)
	add("currency = ?", filter.Currency)
	add("transaction_type = ?", filter.Type)
	add(effectiveCategorySQL+" = ?", filter.Category)
	add(effectiveSubcategorySQL+" = ?", filter.Subcategory)
	if filter.Search != "" {
		where = append(where, "(details LIKE ? OR description_cleaned LIKE ? OR COALESCE(description_user, '') LIKE ?)")
		pattern := "%" + strings.ToUpper(filter.Search) + "%"
		args = append(args, pattern, pattern, pattern)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM transactions %s ORDER BY date DESC, created_at DESC`,
		transactionColumns, whereSQL)
	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.CanonicalTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over transaction rows: %w", err)
	}
	return transactions, nil
}

func (s *transactionServiceImpl) Get(transactionID string) (*models.CanonicalTransaction, error) {
	row := database.DB.QueryRow(fmt.Sprintf(
		`SELECT %s FROM transactions WHERE transaction_id = ?`, transactionColumns), transactionID)
	tx, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, transactionID)
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// UpdateOverrides writes the manual override fields. Only fields with a
// non-nil pointer are touched; setting a field to the empty string clears
// the override so the auto value shows again. The derived fields are never
// written here.
func (s *transactionServiceImpl) UpdateOverrides(transactionID string, o Overrides) error {
	if _, err := s.Get(transactionID); err != nil {
		return err
	}

	var sets []string
	var args []interface{}
	if o.Category != nil {
		sets = append(sets, "category_user = ?")
		args = append(args, *o.Category)
	}
	if o.Subcategory != nil {
		sets = append(sets, "subcategory_user = ?")
		args = append(args, *o.Subcategory)
	}
	if o.Description != nil {
		sets = append(sets, "description_user = ?")
		args = append(args, *o.Description)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, transactionID)

	_, err := database.DB.Exec(fmt.Sprintf(
		"UPDATE transactions SET %s WHERE transaction_id = ?", strings.Join(sets, ", ")), args...)
	if err != nil {
		return fmt.Errorf("error updating overrides for %s: %w", transactionID, err)
	}
	s.reportCache.Flush()
	return nil
}

func (s *transactionServiceImpl) Delete(transactionID string) error {
	res, err := database.DB.Exec("DELETE FROM transactions WHERE transaction_id = ?", transactionID)
	if err != nil {
		return fmt.Errorf("error deleting transaction %s: %w", transactionID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, transactionID)
	}
	s.reportCache.Flush()
	return nil
}

func (s *transactionServiceImpl) Recategorize(onlyMissing bool) (int, error) {
	rules, err := categorization.LoadRules(s.rulesPath)
	if err != nil {
		return 0, err
	}
	count, err := recategorize(rules, onlyMissing)
	if err != nil {
		return 0, err
	}
	s.reportCache.Flush()
	logger.L.Info("Recategorization pass complete", "updated", count, "onlyMissing", onlyMissing)
	return count, nil
}

// RecleanDescriptions recomputes description_cleaned from the immutable
// details column. Used after the cleaning logic changes; repeated runs
// converge because cleaning always starts from the raw details.
func (s *transactionServiceImpl) RecleanDescriptions(onlyMissing bool) (int, error) {
	where := ""
	if onlyMissing {
		where = "WHERE description_cleaned IS NULL OR TRIM(description_cleaned) = ''"
	}
	rows, err := database.DB.Query(fmt.Sprintf(
		"SELECT transaction_id, details FROM transactions %s", where))
	if err != nil {
		return 0, fmt.Errorf("error querying transactions for recleaning: %w", err)
	}
	defer rows.Close()

	type pending struct{ id, cleaned string }
	var updates []pending
	for rows.Next() {
		var id, details string
		if err := rows.Scan(&id, &details); err != nil {
			return 0, fmt.Errorf("error scanning transaction for recleaning: %w", err)
		}
		updates = append(updates, pending{id, cleaning.CleanDescription(details)})
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating transactions for recleaning: %w", err)
	}
	if len(updates) == 0 {
		return 0, nil
	}

	dbTx, err := database.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("error beginning recleaning transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare("UPDATE transactions SET description_cleaned = ? WHERE transaction_id = ?")
	if err != nil {
		return 0, fmt.Errorf("error preparing recleaning update: %w", err)
	}
	defer stmt.Close()

	for _, u := range updates {
		if _, err := stmt.Exec(u.cleaned, u.id); err != nil {
			return 0, fmt.Errorf("error recleaning %s: %w", u.id, err)
		}
	}
	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing recleaning: %w", err)
	}

	s.reportCache.Flush()
	logger.L.Info("Recleaning pass complete", "updated", len(updates), "onlyMissing", onlyMissing)
	return len(updates), nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(r rowScanner) (*models.CanonicalTransaction, error) {
	var tx models.CanonicalTransaction
	var dateStr string
	var amount float64
	var categoryAuto, subcategoryAuto, categoryUser, subcategoryUser, descriptionUser sql.NullString

	err := r.Scan(
		&tx.TransactionID, &dateStr, &tx.Institution, &tx.AccountID, &amount, &tx.Currency,
		&tx.Details, &tx.DescriptionCleaned, &tx.TransactionType,
		&categoryAuto, &subcategoryAuto, &categoryUser, &subcategoryUser, &descriptionUser,
		&tx.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning transaction row: %w", err)
	}

	if date, err := time.Parse("2006-01-02", dateStr); err == nil {
		tx.Date = date
	}
	tx.Amount = decimal.NewFromFloat(amount)
	tx.CategoryAuto = categoryAuto.String
	tx.SubcategoryAuto = subcategoryAuto.String
	tx.CategoryUser = categoryUser.String
	tx.SubcategoryUser = subcategoryUser.String
	tx.DescriptionUser = descriptionUser.String
	return &tx, nil
}
