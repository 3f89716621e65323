package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Account mirrors the accounts table. AccountID matches the bank account
// number on the statement rows that reference it.
type Account struct {
	AccountID      string          `json:"account_id"`
	Institution    string          `json:"institution"`
	AccountName    string          `json:"account_name"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	OpeningDate    string          `json:"opening_date,omitempty"`
}

// Parameter is one row of the key/value settings store.
type Parameter struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Effective resolves a user override against a derived value: the override
// wins when it is non-blank.
func Effective(user, auto string) string {
	if strings.TrimSpace(user) != "" {
		return user
	}
	return auto
}
