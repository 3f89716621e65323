// Package categorization assigns categories to cleaned transaction
// descriptions by scanning an ordered list of substring rules.
package categorization

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/username/galfin/src/models"
)

// ErrRulesFileInvalid marks configuration errors in the rules file, such as
// missing required columns.
var ErrRulesFileInvalid = fmt.Errorf("rules file invalid")

var ruleColumns = []string{"match", "category", "subcategory"}

// LoadRules reads the rule file (CSV: match,category,subcategory). Match
// patterns are upper-cased and trimmed on load; rows with a blank match are
// ignored. File order is preserved, because earlier rules win.
func LoadRules(path string) ([]models.CategoryRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rules file %s: %w", path, err)
	}
	defer f.Close()
	return ReadRules(f)
}

// ReadRules parses rules from r. A header missing any required column is a
// configuration error naming the missing columns, no rows are processed.
func ReadRules(r io.Reader) ([]models.CategoryRule, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrRulesFileInvalid, err)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	var missing []string
	for _, col := range ruleColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: missing columns: %s", ErrRulesFileInvalid, strings.Join(missing, ", "))
	}

	var rules []models.CategoryRule
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading rule row: %v", ErrRulesFileInvalid, err)
		}
		rule := models.CategoryRule{
			Match:       strings.ToUpper(strings.TrimSpace(field(record, idx["match"]))),
			Category:    strings.TrimSpace(field(record, idx["category"])),
			Subcategory: strings.TrimSpace(field(record, idx["subcategory"])),
		}
		if rule.Match == "" {
			continue
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// SaveRules rewrites the rule file in full (bulk edit). The file is written
// atomically via a temp file so a failed write never clobbers the rules.
func SaveRules(path string, rules []models.CategoryRule) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating rules file %s: %w", tmp, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(ruleColumns); err != nil {
		f.Close()
		return fmt.Errorf("writing rules header: %w", err)
	}
	for _, r := range rules {
		if err := w.Write([]string{r.Match, r.Category, r.Subcategory}); err != nil {
			f.Close()
			return fmt.Errorf("writing rule %q: %w", r.Match, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing rules file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing rules file: %w", err)
	}
	return os.Rename(tmp, path)
}

// AppendRule adds one user-created rule to the end of the file, keeping
// every existing rule's priority intact.
func AppendRule(path string, rule models.CategoryRule) error {
	rule.Match = strings.ToUpper(strings.TrimSpace(rule.Match))
	if rule.Match == "" {
		return fmt.Errorf("%w: rule match must not be blank", ErrRulesFileInvalid)
	}

	var rules []models.CategoryRule
	if _, err := os.Stat(path); err == nil {
		rules, err = LoadRules(path)
		if err != nil {
			return err
		}
	}
	return SaveRules(path, append(rules, rule))
}
