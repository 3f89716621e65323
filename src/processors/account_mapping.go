package processors

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/username/galfin/src/logger"
)

// AccountMapping replaces bank account numbers with user-chosen display
// names. The mapping file is CSV with columns account_number,account_name.
// A missing file is fine (raw numbers are used); a malformed one is a
// configuration error.
type AccountMapping struct {
	names map[string]string
}

// LoadAccountMapping reads the mapping file at path. An empty path or
// absent file yields an empty mapping.
func LoadAccountMapping(path string) (*AccountMapping, error) {
	m := &AccountMapping{names: make(map[string]string)}
	if path == "" {
		return m, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.L.Info("Account mapping file not found, using raw account numbers", "path", path)
			return m, nil
		}
		return nil, fmt.Errorf("opening account mapping %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("account mapping invalid: reading header: %w", err)
	}
	numberIdx, nameIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "account_number":
			numberIdx = i
		case "account_name":
			nameIdx = i
		}
	}
	if numberIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("account mapping invalid: need columns account_number, account_name")
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("account mapping invalid: %w", err)
		}
		if numberIdx >= len(record) || nameIdx >= len(record) {
			continue
		}
		number := strings.TrimSpace(record[numberIdx])
		name := strings.TrimSpace(record[nameIdx])
		if number == "" || name == "" {
			continue
		}
		m.names[number] = name
	}
	logger.L.Info("Account mapping loaded", "path", path, "entries", len(m.names))
	return m, nil
}

// Resolve returns the display name for an account number, or the number
// itself when unmapped.
func (m *AccountMapping) Resolve(accountID string) string {
	if name, ok := m.names[accountID]; ok {
		return name
	}
	return accountID
}
