package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/galfin/src/database"
)

func TestTransactionListFilters(t *testing.T) {
	env := setupTestEnv(t)
	env.importFixture(t)
	svc := NewTransactionService(env.rulesPath, env.reportCache)

	all, err := svc.List(TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "2024-02-07", all[0].Date.Format("2006-01-02"), "newest first")

	january, err := svc.List(TransactionFilter{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)
	assert.Len(t, january, 2)

	income, err := svc.List(TransactionFilter{Type: "Income"})
	require.NoError(t, err)
	require.Len(t, income, 1)
	assert.Equal(t, "SALARIS MAART", income[0].Details)

	groceries, err := svc.List(TransactionFilter{Category: "Groceries"})
	require.NoError(t, err)
	assert.Len(t, groceries, 1)

	search, err := svc.List(TransactionFilter{Search: "shell"})
	require.NoError(t, err)
	assert.Len(t, search, 1)
}

func TestTransactionGetAndDelete(t *testing.T) {
	env := setupTestEnv(t)
	env.importFixture(t)
	svc := NewTransactionService(env.rulesPath, env.reportCache)

	all, err := svc.List(TransactionFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, all)

	got, err := svc.Get(all[0].TransactionID)
	require.NoError(t, err)
	assert.Equal(t, all[0].Details, got.Details)

	_, err = svc.Get("no-such-id")
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	require.NoError(t, svc.Delete(all[0].TransactionID))
	_, err = svc.Get(all[0].TransactionID)
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	assert.ErrorIs(t, svc.Delete(all[0].TransactionID), ErrTransactionNotFound,
		"deleting an absent row is an error, never a silent no-op")
}

func TestTransactionUpdateOverrides(t *testing.T) {
	env := setupTestEnv(t)
	env.importFixture(t)
	svc := NewTransactionService(env.rulesPath, env.reportCache)

	groceries, err := svc.List(TransactionFilter{Category: "Groceries"})
	require.NoError(t, err)
	require.Len(t, groceries, 1)
	id := groceries[0].TransactionID

	override := "Dining"
	require.NoError(t, svc.UpdateOverrides(id, Overrides{Category: &override}))

	tx, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Dining", tx.CategoryUser)
	assert.Equal(t, "Groceries", tx.CategoryAuto, "auto value stays intact under the override")
	assert.Equal(t, "Dining", tx.EffectiveCategory())
	assert.Equal(t, "Supermarket", tx.EffectiveSubcategory(), "untouched field keeps resolving to auto")

	// The effective filter follows the override.
	dining, err := svc.List(TransactionFilter{Category: "Dining"})
	require.NoError(t, err)
	assert.Len(t, dining, 1)
	groceries, err = svc.List(TransactionFilter{Category: "Groceries"})
	require.NoError(t, err)
	assert.Empty(t, groceries)

	// Clearing the override restores the auto value.
	blank := ""
	require.NoError(t, svc.UpdateOverrides(id, Overrides{Category: &blank}))
	tx, err = svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", tx.EffectiveCategory())

	assert.ErrorIs(t, svc.UpdateOverrides("no-such-id", Overrides{Category: &override}), ErrTransactionNotFound)
}

func TestRecategorizeFullPass(t *testing.T) {
	env := setupTestEnv(t)
	env.importFixture(t)
	svc := NewTransactionService(env.rulesPath, env.reportCache)

	// Rule change: Shell moves to a new category.
	require.NoError(t, os.WriteFile(env.rulesPath, []byte(
		"match,category,subcategory\nSHELL,Car,Fuel\n"), 0o644))

	updated, err := svc.Recategorize(false)
	require.NoError(t, err)
	assert.Equal(t, 3, updated, "a full pass rewrites every row")

	car, err := svc.List(TransactionFilter{Category: "Car"})
	require.NoError(t, err)
	assert.Len(t, car, 1)

	// Rows no rule matches anymore lose their auto categories.
	salaris, err := svc.List(TransactionFilter{Search: "SALARIS"})
	require.NoError(t, err)
	require.Len(t, salaris, 1)
	assert.Empty(t, salaris[0].CategoryAuto)
}

func TestRecleanDescriptions(t *testing.T) {
	env := setupTestEnv(t)
	env.importFixture(t)
	svc := NewTransactionService(env.rulesPath, env.reportCache)

	// Simulate rows imported before the cleaning pipeline existed.
	_, err := database.DB.Exec("UPDATE transactions SET description_cleaned = ''")
	require.NoError(t, err)

	updated, err := svc.RecleanDescriptions(true)
	require.NoError(t, err)
	assert.Equal(t, 3, updated)

	search, err := svc.List(TransactionFilter{Search: "ALBERT HEIJN"})
	require.NoError(t, err)
	require.NotEmpty(t, search)
	assert.Equal(t, "ALBERT HEIJN 1573", search[0].DescriptionCleaned)

	// Nothing left to fill in.
	updated, err = svc.RecleanDescriptions(true)
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
}
