package categorization

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/username/galfin/src/models"
)

func TestCategorizeFirstMatchWins(t *testing.T) {
	rules := []models.CategoryRule{
		{Match: "COFFEE SHOP", Category: "Leisure", Subcategory: "Cafe"},
		{Match: "COFFEE", Category: "Groceries", Subcategory: "Drinks"},
	}

	cat, sub := Categorize("COFFEE SHOP DOWNTOWN", rules)
	assert.Equal(t, "Leisure", cat)
	assert.Equal(t, "Cafe", sub)

	cat, sub = Categorize("COFFEE BEANS 1KG", rules)
	assert.Equal(t, "Groceries", cat)
	assert.Equal(t, "Drinks", sub)
}

func TestCategorizeFieldsResolveIndependently(t *testing.T) {
	rules := []models.CategoryRule{
		{Match: "ALBERT HEIJN", Category: "Groceries", Subcategory: ""},
		{Match: "HEIJN", Category: "Shopping", Subcategory: "Supermarket"},
	}

	// The first rule fixes the category; the second still fills the
	// subcategory it left blank.
	cat, sub := Categorize("ALBERT HEIJN 1573", rules)
	assert.Equal(t, "Groceries", cat)
	assert.Equal(t, "Supermarket", sub)
}

func TestCategorizeMatchingDetails(t *testing.T) {
	rules := []models.CategoryRule{
		{Match: "NET.FLIX", Category: "Subscriptions", Subcategory: "Streaming"},
		{Match: "JUMBO", Category: "Groceries", Subcategory: "Supermarket"},
	}

	// Literal containment only, a regex-looking pattern matches nothing.
	cat, sub := Categorize("NETFLIX MARCH", rules)
	assert.Empty(t, cat)
	assert.Empty(t, sub)

	// Input casing is irrelevant.
	cat, _ = Categorize("jumbo utrecht", rules)
	assert.Equal(t, "Groceries", cat)

	// No rules, no categories.
	cat, sub = Categorize("ANYTHING", nil)
	assert.Empty(t, cat)
	assert.Empty(t, sub)
}

func TestCategoryOptions(t *testing.T) {
	rules := []models.CategoryRule{
		{Match: "B", Category: "Transport", Subcategory: "Fuel"},
		{Match: "A", Category: "Groceries", Subcategory: "Supermarket"},
		{Match: "C", Category: "Transport", Subcategory: ""},
	}

	assert.Equal(t, []string{"", "Groceries", "Transport"}, CategoryOptions(rules))
	assert.Equal(t, []string{"", "Fuel", "Supermarket"}, SubcategoryOptions(rules))
}
