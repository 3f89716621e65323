package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"

	"github.com/username/galfin/src/database"
	"github.com/username/galfin/src/processors"
)

const testRulesCSV = "match,category,subcategory\n" +
	"ALBERT HEIJN,Groceries,Supermarket\n" +
	"SHELL,Transport,Fuel\n" +
	"SALARIS,Income,Salary\n"

const testStatementCSV = "accountNumber,mutationcode,transactiondate,amount,description\n" +
	"NL12ABNA0123456789,EUR,20240105,-12.50,\"BEA, APPLE PAY ALBERT HEIJN 1573,PAS123\"\n" +
	"NL12ABNA0123456789,EUR,20240106,1500.00,SALARIS MAART\n" +
	"NL12ABNA0123456789,EUR,20240207,-60.00,SHELL STATION\n" +
	"NL12ABNA0123456789,EUR,not-a-date,-1.00,BROKEN ROW\n"

type testEnv struct {
	rulesPath   string
	reportCache *cache.Cache
	importSvc   ImportService
}

// setupTestEnv opens a fresh database in a temp dir and wires the service
// graph against it.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	database.InitDB(filepath.Join(dir, "galfin_test.db"))

	rulesPath := filepath.Join(dir, "rules.csv")
	require.NoError(t, os.WriteFile(rulesPath, []byte(testRulesCSV), 0o644))

	reportCache := cache.New(time.Minute, time.Minute)
	processor := processors.NewStatementProcessor("ABN AMRO", nil)

	return &testEnv{
		rulesPath:   rulesPath,
		reportCache: reportCache,
		importSvc:   NewImportService(processor, rulesPath, "ABN AMRO", "EUR", reportCache),
	}
}

// importFixture runs the standard statement through the import pipeline.
func (e *testEnv) importFixture(t *testing.T) *ImportResult {
	t.Helper()
	result, err := e.importSvc.ProcessImport(strings.NewReader(testStatementCSV), "csv")
	require.NoError(t, err)
	return result
}
