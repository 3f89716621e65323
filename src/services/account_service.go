package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/username/galfin/src/database"
	"github.com/username/galfin/src/models"
)

// AccountService is the thin persistence layer over the accounts table.
type AccountService struct{}

func NewAccountService() *AccountService { return &AccountService{} }

func (s *AccountService) List() ([]models.Account, error) {
	rows, err := database.DB.Query(`SELECT account_id, institution, account_name, currency,
		opening_balance, COALESCE(opening_date, '') FROM accounts ORDER BY account_name`)
	if err != nil {
		return nil, fmt.Errorf("error querying accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		var balance float64
		if err := rows.Scan(&a.AccountID, &a.Institution, &a.AccountName, &a.Currency, &balance, &a.OpeningDate); err != nil {
			return nil, fmt.Errorf("error scanning account row: %w", err)
		}
		a.OpeningBalance = decimal.NewFromFloat(balance)
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

func (s *AccountService) Get(accountID string) (*models.Account, error) {
	var a models.Account
	var balance float64
	err := database.DB.QueryRow(`SELECT account_id, institution, account_name, currency,
		opening_balance, COALESCE(opening_date, '') FROM accounts WHERE account_id = ?`, accountID).
		Scan(&a.AccountID, &a.Institution, &a.AccountName, &a.Currency, &balance, &a.OpeningDate)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying account %s: %w", accountID, err)
	}
	a.OpeningBalance = decimal.NewFromFloat(balance)
	return &a, nil
}

// Upsert creates or replaces an account row. Imports create stub rows for
// unknown accounts; this is where the user fills in the real details.
func (s *AccountService) Upsert(a models.Account) error {
	if strings.TrimSpace(a.AccountID) == "" {
		return fmt.Errorf("account_id must not be blank")
	}
	_, err := database.DB.Exec(`INSERT INTO accounts (account_id, institution, account_name, currency, opening_balance, opening_date)
		VALUES (?, ?, ?, ?, ?, NULLIF(?, ''))
		ON CONFLICT(account_id) DO UPDATE SET
			institution = excluded.institution,
			account_name = excluded.account_name,
			currency = excluded.currency,
			opening_balance = excluded.opening_balance,
			opening_date = excluded.opening_date`,
		a.AccountID, a.Institution, a.AccountName, a.Currency, a.OpeningBalance.InexactFloat64(), a.OpeningDate)
	if err != nil {
		return fmt.Errorf("error upserting account %s: %w", a.AccountID, err)
	}
	return nil
}

// Delete removes an account. Accounts still referenced by transactions
// cannot go; the foreign key violation is surfaced as ErrAccountInUse.
func (s *AccountService) Delete(accountID string) error {
	var refs int
	if err := database.DB.QueryRow(
		"SELECT COUNT(*) FROM transactions WHERE account_id = ?", accountID).Scan(&refs); err != nil {
		return fmt.Errorf("error counting transactions for account %s: %w", accountID, err)
	}
	if refs > 0 {
		return fmt.Errorf("%w: %s has %d transactions", ErrAccountInUse, accountID, refs)
	}

	res, err := database.DB.Exec("DELETE FROM accounts WHERE account_id = ?", accountID)
	if err != nil {
		return fmt.Errorf("error deleting account %s: %w", accountID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	return nil
}
