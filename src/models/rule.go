package models

// CategoryRule maps a literal substring to a category/subcategory pair.
// Rules live in an ordered list: the first rule whose Match is contained in
// the cleaned description wins, per field independently.
type CategoryRule struct {
	Match       string `json:"match"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}
