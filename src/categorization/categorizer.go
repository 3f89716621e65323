package categorization

import (
	"sort"
	"strings"

	"github.com/username/galfin/src/models"
)

// Categorize scans the rules in order against the upper-cased cleaned
// description. Matching is literal substring containment, never regex. The
// category and subcategory are resolved independently: a later rule can
// still fill the subcategory after an earlier rule fixed the category. Once
// both are set the remaining rules are irrelevant. Empty returns mean no
// rule matched; "Uncategorized" is a presentation label, not a stored value.
//
// Pure function over a snapshot of the rules; callers load the rules once
// per pass and hand them in.
func Categorize(cleaned string, rules []models.CategoryRule) (category, subcategory string) {
	desc := strings.ToUpper(cleaned)
	for _, rule := range rules {
		if rule.Match == "" || !strings.Contains(desc, rule.Match) {
			continue
		}
		if category == "" {
			category = rule.Category
		}
		if subcategory == "" {
			subcategory = rule.Subcategory
		}
		if category != "" && subcategory != "" {
			break
		}
	}
	return category, subcategory
}

// CategoryOptions returns the sorted distinct categories in the rule set,
// prefixed with the empty option (meaning "no override").
func CategoryOptions(rules []models.CategoryRule) []string {
	return distinctOptions(rules, func(r models.CategoryRule) string { return r.Category })
}

// SubcategoryOptions mirrors CategoryOptions for subcategories.
func SubcategoryOptions(rules []models.CategoryRule) []string {
	return distinctOptions(rules, func(r models.CategoryRule) string { return r.Subcategory })
}

func distinctOptions(rules []models.CategoryRule, pick func(models.CategoryRule) string) []string {
	seen := make(map[string]bool, len(rules))
	out := []string{""}
	for _, r := range rules {
		v := strings.TrimSpace(pick(r))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	// Keep the leading empty option, sort the rest.
	sort.Strings(out[1:])
	return out
}
