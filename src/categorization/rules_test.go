package categorization

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/galfin/src/models"
)

func TestReadRules(t *testing.T) {
	in := strings.NewReader(
		"match,category,subcategory\n" +
			"albert heijn ,Groceries, Supermarket\n" +
			",Ignored,Blank\n" +
			"SHELL,Transport,Fuel\n")

	rules, err := ReadRules(in)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, models.CategoryRule{Match: "ALBERT HEIJN", Category: "Groceries", Subcategory: "Supermarket"}, rules[0])
	assert.Equal(t, models.CategoryRule{Match: "SHELL", Category: "Transport", Subcategory: "Fuel"}, rules[1])
}

func TestReadRulesHeaderCaseInsensitive(t *testing.T) {
	in := strings.NewReader("Match,CATEGORY,Subcategory\nJUMBO,Groceries,Supermarket\n")
	rules, err := ReadRules(in)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "JUMBO", rules[0].Match)
}

func TestReadRulesMissingColumns(t *testing.T) {
	in := strings.NewReader("match,note\nJUMBO,whatever\n")
	_, err := ReadRules(in)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRulesFileInvalid)
	assert.Contains(t, err.Error(), "category, subcategory")
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.csv")
	rules := []models.CategoryRule{
		{Match: "JUMBO", Category: "Groceries", Subcategory: "Supermarket"},
		{Match: "SHELL", Category: "Transport", Subcategory: "Fuel"},
	}
	require.NoError(t, SaveRules(path, rules))

	loaded, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, rules, loaded)
}

func TestAppendRule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.csv")

	// Appending to a missing file creates it.
	require.NoError(t, AppendRule(path, models.CategoryRule{Match: "jumbo", Category: "Groceries", Subcategory: "Supermarket"}))
	require.NoError(t, AppendRule(path, models.CategoryRule{Match: "SHELL", Category: "Transport", Subcategory: "Fuel"}))

	loaded, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "JUMBO", loaded[0].Match, "existing rules keep their position")
	assert.Equal(t, "SHELL", loaded[1].Match)

	err = AppendRule(path, models.CategoryRule{Match: "   "})
	assert.ErrorIs(t, err, ErrRulesFileInvalid)
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
