package services

import (
	"fmt"
	"io"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/username/galfin/src/categorization"
	"github.com/username/galfin/src/database"
	"github.com/username/galfin/src/logger"
	"github.com/username/galfin/src/models"
	"github.com/username/galfin/src/parsers"
	"github.com/username/galfin/src/processors"
)

type importServiceImpl struct {
	processor   *processors.StatementProcessor
	rulesPath   string
	currency    string
	institution string
	reportCache *cache.Cache
}

func NewImportService(
	processor *processors.StatementProcessor,
	rulesPath string,
	institution string,
	currency string,
	reportCache *cache.Cache,
) ImportService {
	return &importServiceImpl{
		processor:   processor,
		rulesPath:   rulesPath,
		currency:    currency,
		institution: institution,
		reportCache: reportCache,
	}
}

// ProcessImport ingests one statement file: parse, transform, upsert,
// categorize. Re-importing the same file is a no-op for every row already
// present, because the transaction id is derived from the row content.
func (s *importServiceImpl) ProcessImport(fileReader io.Reader, format string) (*ImportResult, error) {
	overallStartTime := time.Now()
	logger.L.Info("ProcessImport START", "format", format)

	parser, err := parsers.GetParser(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	rawRows, err := parser.Parse(fileReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	transformed := s.processor.Process(rawRows)

	result := &ImportResult{
		RowsParsed:  len(rawRows),
		RowsDropped: transformed.DroppedRows,
	}
	if len(transformed.Transactions) == 0 {
		logger.L.Info("ProcessImport END: nothing to insert", "rowsParsed", result.RowsParsed, "rowsDropped", result.RowsDropped)
		return result, nil
	}

	inserted, err := s.insertTransactions(transformed.Transactions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}
	result.Inserted = inserted
	result.DuplicatesSkipped = len(transformed.Transactions) - inserted

	rules, err := categorization.LoadRules(s.rulesPath)
	if err != nil {
		// The import itself succeeded; surface the rules problem to the
		// caller without undoing inserted rows.
		return result, fmt.Errorf("transactions imported but categorization skipped: %w", err)
	}
	categorized, err := recategorize(rules, true)
	if err != nil {
		return result, fmt.Errorf("transactions imported but categorization failed: %w", err)
	}
	result.Categorized = categorized

	s.reportCache.Flush()
	logger.L.Info("ProcessImport END",
		"rowsParsed", result.RowsParsed,
		"rowsDropped", result.RowsDropped,
		"inserted", result.Inserted,
		"duplicatesSkipped", result.DuplicatesSkipped,
		"categorized", result.Categorized,
		"duration", time.Since(overallStartTime))
	return result, nil
}

// insertTransactions writes one import batch in a single database
// transaction. Accounts referenced by the batch are ensured first so the
// foreign key holds; the transaction insert no-ops on id conflict.
func (s *importServiceImpl) insertTransactions(txs []models.CanonicalTransaction) (int, error) {
	dbTx, err := database.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	accountStmt, err := dbTx.Prepare(`INSERT INTO accounts (account_id, institution, account_name, currency)
		VALUES (?, ?, ?, ?) ON CONFLICT(account_id) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("error preparing account statement: %w", err)
	}
	defer accountStmt.Close()

	seenAccounts := make(map[string]bool)
	for _, tx := range txs {
		if seenAccounts[tx.AccountID] {
			continue
		}
		seenAccounts[tx.AccountID] = true
		currency := tx.Currency
		if currency == "" {
			currency = s.currency
		}
		if _, err := accountStmt.Exec(tx.AccountID, s.institution, tx.AccountID, currency); err != nil {
			return 0, fmt.Errorf("error ensuring account %s: %w", tx.AccountID, err)
		}
	}

	stmt, err := dbTx.Prepare(`INSERT INTO transactions (
		transaction_id, date, institution, account_id, amount, currency,
		details, description_cleaned, transaction_type
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(transaction_id) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, tx := range txs {
		res, err := stmt.Exec(
			tx.TransactionID,
			tx.Date.Format("2006-01-02"),
			tx.Institution,
			tx.AccountID,
			tx.Amount.InexactFloat64(),
			tx.Currency,
			tx.Details,
			tx.DescriptionCleaned,
			tx.TransactionType,
		)
		if err != nil {
			return 0, fmt.Errorf("error inserting transaction %s: %w", tx.TransactionID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("error reading rows affected for %s: %w", tx.TransactionID, err)
		}
		if affected > 0 {
			inserted++
		} else {
			logger.L.Debug("Skipping duplicate transaction on import", "transactionID", tx.TransactionID)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing transactions: %w", err)
	}
	return inserted, nil
}

// recategorize applies the rule set to stored cleaned descriptions and
// rewrites the auto category fields. Shared by the import pipeline
// (onlyMissing) and the bulk recompute endpoint (full pass). User override
// fields are never touched.
func recategorize(rules []models.CategoryRule, onlyMissing bool) (int, error) {
	where := ""
	if onlyMissing {
		where = "WHERE category_auto IS NULL AND subcategory_auto IS NULL"
	}

	rows, err := database.DB.Query(fmt.Sprintf(
		"SELECT transaction_id, description_cleaned FROM transactions %s", where))
	if err != nil {
		return 0, fmt.Errorf("error querying transactions for categorization: %w", err)
	}
	defer rows.Close()

	type pending struct {
		id          string
		category    *string
		subcategory *string
	}
	var updates []pending
	for rows.Next() {
		var id, cleaned string
		if err := rows.Scan(&id, &cleaned); err != nil {
			return 0, fmt.Errorf("error scanning transaction for categorization: %w", err)
		}
		category, subcategory := categorization.Categorize(cleaned, rules)
		updates = append(updates, pending{id, nullable(category), nullable(subcategory)})
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating transactions for categorization: %w", err)
	}
	if len(updates) == 0 {
		return 0, nil
	}

	dbTx, err := database.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("error beginning categorization transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`UPDATE transactions
		SET category_auto = ?, subcategory_auto = ?
		WHERE transaction_id = ?`)
	if err != nil {
		return 0, fmt.Errorf("error preparing categorization update: %w", err)
	}
	defer stmt.Close()

	for _, u := range updates {
		if _, err := stmt.Exec(u.category, u.subcategory, u.id); err != nil {
			return 0, fmt.Errorf("error updating categories for %s: %w", u.id, err)
		}
	}
	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing categorization: %w", err)
	}
	return len(updates), nil
}

// nullable maps the categorizer's empty string onto NULL in the store.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
