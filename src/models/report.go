package models

// CategoryExpense is one row of the expenses-by-category report: the
// absolute sum of negative amounts grouped by effective category.
type CategoryExpense struct {
	Category   string  `json:"category"`
	ExpenseAbs float64 `json:"expense_abs"`
}

// MonthlyFlow is one row of the income-vs-expense report, bucketed by
// calendar month (YYYY-MM).
type MonthlyFlow struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}
