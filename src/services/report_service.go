package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/username/galfin/src/database"
	"github.com/username/galfin/src/logger"
	"github.com/username/galfin/src/models"
)

const (
	ckExpensesByCategory = "report_expenses_by_category_%s_%s_%s"
	ckIncomeVsExpense    = "report_income_vs_expense_%s_%s_%s"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

// uncategorizedLabel is applied at presentation time only; the store keeps
// NULL for unmatched rows.
const uncategorizedLabel = "Uncategorized"

type reportServiceImpl struct {
	reportCache *cache.Cache
}

func NewReportService(reportCache *cache.Cache) ReportService {
	return &reportServiceImpl{reportCache: reportCache}
}

func reportWhere(filter ReportFilter) (string, []interface{}) {
	var where []string
	var args []interface{}
	if filter.StartDate != "" {
		where = append(where, "date >= ?")
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		where = append(where, "date <= ?")
		args = append(args, filter.EndDate)
	}
	if filter.AccountID != "" && filter.AccountID != "ALL" {
		where = append(where, "account_id = ?")
		args = append(args, filter.AccountID)
	}
	if len(where) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(where, " AND "), args
}

// ExpensesByCategory sums the absolute value of negative amounts per
// effective category, largest first.
func (s *reportServiceImpl) ExpensesByCategory(filter ReportFilter) ([]models.CategoryExpense, error) {
	cacheKey := fmt.Sprintf(ckExpensesByCategory, filter.StartDate, filter.EndDate, filter.AccountID)
	if cached, found := s.reportCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for ExpensesByCategory", "key", cacheKey)
		return cached.([]models.CategoryExpense), nil
	}

	whereSQL, args := reportWhere(filter)
	extra := "amount < 0"
	if whereSQL == "" {
		whereSQL = "WHERE " + extra
	} else {
		whereSQL += " AND " + extra
	}

	query := fmt.Sprintf(`
		SELECT %s AS category_final, SUM(-amount) AS expense_abs
		FROM transactions
		%s
		GROUP BY category_final
		ORDER BY expense_abs DESC`, effectiveCategorySQL, whereSQL)

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying expenses by category: %w", err)
	}
	defer rows.Close()

	result := []models.CategoryExpense{}
	for rows.Next() {
		var category sql.NullString
		var expense float64
		if err := rows.Scan(&category, &expense); err != nil {
			return nil, fmt.Errorf("error scanning expense row: %w", err)
		}
		label := category.String
		if !category.Valid || label == "" {
			label = uncategorizedLabel
		}
		result = append(result, models.CategoryExpense{Category: label, ExpenseAbs: expense})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}

	s.reportCache.Set(cacheKey, result, DefaultCacheExpiration)
	return result, nil
}

// IncomeVsExpenseByMonth buckets signed amounts into YYYY-MM months:
// income is the sum of positive amounts, expense the absolute sum of
// negative ones.
func (s *reportServiceImpl) IncomeVsExpenseByMonth(filter ReportFilter) ([]models.MonthlyFlow, error) {
	cacheKey := fmt.Sprintf(ckIncomeVsExpense, filter.StartDate, filter.EndDate, filter.AccountID)
	if cached, found := s.reportCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for IncomeVsExpenseByMonth", "key", cacheKey)
		return cached.([]models.MonthlyFlow), nil
	}

	whereSQL, args := reportWhere(filter)
	query := fmt.Sprintf(`
		SELECT substr(date, 1, 7) AS month,
			SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END) AS income,
			SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END) AS expense
		FROM transactions
		%s
		GROUP BY month
		ORDER BY month`, whereSQL)

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying income vs expense: %w", err)
	}
	defer rows.Close()

	result := []models.MonthlyFlow{}
	for rows.Next() {
		var flow models.MonthlyFlow
		if err := rows.Scan(&flow.Month, &flow.Income, &flow.Expense); err != nil {
			return nil, fmt.Errorf("error scanning monthly flow row: %w", err)
		}
		result = append(result, flow)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly flow rows: %w", err)
	}

	s.reportCache.Set(cacheKey, result, DefaultCacheExpiration)
	return result, nil
}
