package services

import (
	"fmt"
	"strings"

	"github.com/username/galfin/src/database"
	"github.com/username/galfin/src/models"
)

// ParameterService is the key/value settings store.
type ParameterService struct{}

func NewParameterService() *ParameterService { return &ParameterService{} }

func (s *ParameterService) GetAll() ([]models.Parameter, error) {
	rows, err := database.DB.Query("SELECT key, value, updated_at FROM parameters ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("error querying parameters: %w", err)
	}
	defer rows.Close()

	var params []models.Parameter
	for rows.Next() {
		var p models.Parameter
		if err := rows.Scan(&p.Key, &p.Value, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning parameter row: %w", err)
		}
		params = append(params, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parameter rows: %w", err)
	}
	return params, nil
}

// Upsert writes settings, bumping updated_at on every change.
func (s *ParameterService) Upsert(params []models.Parameter) (int, error) {
	dbTx, err := database.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("error beginning parameter transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`INSERT INTO parameters (key, value, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = datetime('now')`)
	if err != nil {
		return 0, fmt.Errorf("error preparing parameter upsert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, p := range params {
		key := strings.TrimSpace(p.Key)
		if key == "" {
			continue
		}
		if _, err := stmt.Exec(key, strings.TrimSpace(p.Value)); err != nil {
			return 0, fmt.Errorf("error upserting parameter %s: %w", key, err)
		}
		count++
	}
	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing parameters: %w", err)
	}
	return count, nil
}
