package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/galfin/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if _, err := DB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		stdlog.Fatalf("failed to enable foreign keys: %v", err)
	}

	logger.L.Info("Checking database migrations", "databasePath", databasePath)
	migrateTransactionsTable()

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS accounts (
		account_id TEXT PRIMARY KEY,
		institution TEXT NOT NULL,
		account_name TEXT NOT NULL,
		currency TEXT NOT NULL DEFAULT 'EUR',
		opening_balance REAL NOT NULL DEFAULT 0,
		opening_date TEXT
	);

	CREATE TABLE IF NOT EXISTS transactions (
		transaction_id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		institution TEXT NOT NULL,
		account_id TEXT NOT NULL,
		amount REAL NOT NULL,
		currency TEXT NOT NULL,
		details TEXT NOT NULL,
		description_cleaned TEXT NOT NULL,
		transaction_type TEXT NOT NULL,
		category_auto TEXT,
		subcategory_auto TEXT,
		category_user TEXT,
		subcategory_user TEXT,
		description_user TEXT,
		created_at TEXT NOT NULL DEFAULT (datetime('now')),
		FOREIGN KEY (account_id) REFERENCES accounts(account_id)
	);

	CREATE TABLE IF NOT EXISTS parameters (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_date
		ON transactions(date);
	CREATE INDEX IF NOT EXISTS idx_transactions_account_date
		ON transactions(account_id, date);
	CREATE INDEX IF NOT EXISTS idx_transactions_type_date
		ON transactions(transaction_type, date);
	CREATE INDEX IF NOT EXISTS idx_transactions_created_at
		ON transactions(created_at);
	CREATE INDEX IF NOT EXISTS idx_transactions_currency_date
		ON transactions(currency, date);
	CREATE INDEX IF NOT EXISTS idx_transactions_institution_date
		ON transactions(institution, date);
	CREATE INDEX IF NOT EXISTS idx_transactions_category_user
		ON transactions(category_user);
	CREATE INDEX IF NOT EXISTS idx_transactions_category_auto
		ON transactions(category_auto);
	-- Partial index for the default "uncategorized" screen; only rows where
	-- both category fields are NULL, usually a small subset.
	CREATE INDEX IF NOT EXISTS idx_transactions_uncategorized
		ON transactions(date)
		WHERE category_user IS NULL AND category_auto IS NULL;
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		logger.L.Error("failed to create tables", "error", err)
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	logger.L.Info("Database tables ensured/created.")
}

// migrateTransactionsTable adds columns introduced after the first release
// to databases created with the old schema.
func migrateTransactionsTable() {
	var tableName string
	err := DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='transactions'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			logger.L.Info("'transactions' table does not exist, no migration needed as table will be created.")
			return
		}
		logger.L.Error("Error checking for 'transactions' table", "error", err)
		return
	}

	rows, err := DB.Query("PRAGMA table_info(transactions)")
	if err != nil {
		logger.L.Error("Error querying table schema for 'transactions'", "error", err)
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			logger.L.Error("Error scanning column info for 'transactions'", "error", err)
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		logger.L.Error("Error iterating over column info for 'transactions'", "error", err)
		return
	}

	if _, ok := columnExists["description_user"]; !ok {
		if _, err := DB.Exec("ALTER TABLE transactions ADD COLUMN description_user TEXT"); err != nil {
			logger.L.Error("Error adding 'description_user' column to 'transactions' table", "error", err)
		} else {
			logger.L.Info("Added 'description_user' column to 'transactions' table")
		}
	}
	if _, ok := columnExists["created_at"]; !ok {
		// ALTER TABLE cannot add a column with a non-constant default.
		if _, err := DB.Exec("ALTER TABLE transactions ADD COLUMN created_at TEXT NOT NULL DEFAULT ''"); err != nil {
			logger.L.Error("Error adding 'created_at' column to 'transactions' table", "error", err)
		} else {
			logger.L.Info("Added 'created_at' column to 'transactions' table")
		}
	}
}
