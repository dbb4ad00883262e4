// Package report computes the aggregate views behind the stats and
// dashboard endpoints. Everything here is read-only: repeated calls
// against an unchanged store return identical results.
package report

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finanalyst/models"
)

// Stats summarises a filtered transaction set. An empty set yields the
// zero value, never nulls, so consumers can keep doing arithmetic.
type Stats struct {
	TotalTransactions int64           `json:"totalTransactions"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	AvgAmount         decimal.Decimal `json:"avgAmount"`
	MinAmount         decimal.Decimal `json:"minAmount"`
	MaxAmount         decimal.Decimal `json:"maxAmount"`
}

// CategoryBreakdown is one per-category aggregate row.
type CategoryBreakdown struct {
	Category string          `json:"category"`
	Count    int64           `json:"count"`
	Total    decimal.Decimal `json:"total"`
	Avg      decimal.Decimal `json:"avg"`
}

// MonthlyTrend is one (year, month, category) bucket of summed amounts.
type MonthlyTrend struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// GetStats computes count, sum, average, min and max over the matching
// set, optionally scoped to one owner.
func GetStats(db *gorm.DB, userID string) (Stats, error) {
	q := db.Model(&models.Transaction{})
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var row struct {
		TotalTransactions int64
		TotalAmount       *decimal.Decimal
		AvgAmount         *decimal.Decimal
		MinAmount         *decimal.Decimal
		MaxAmount         *decimal.Decimal
	}
	err := q.Select("count(*) as total_transactions," +
		" sum(amount) as total_amount," +
		" avg(amount) as avg_amount," +
		" min(amount) as min_amount," +
		" max(amount) as max_amount").Scan(&row).Error
	if err != nil {
		return Stats{}, err
	}
	return finalizeStats(row.TotalTransactions, row.TotalAmount, row.AvgAmount, row.MinAmount, row.MaxAmount), nil
}

// finalizeStats maps the SQL NULLs of an empty set to zeroes.
func finalizeStats(count int64, total, avg, min, max *decimal.Decimal) Stats {
	s := Stats{TotalTransactions: count}
	if total != nil {
		s.TotalAmount = *total
	}
	if avg != nil {
		s.AvgAmount = *avg
	}
	if min != nil {
		s.MinAmount = *min
	}
	if max != nil {
		s.MaxAmount = *max
	}
	return s
}

// GetCategoryBreakdown groups the matching set by category with
// per-group count, sum and average. Ordering is sum descending with
// category name ascending as the deterministic tie-break.
func GetCategoryBreakdown(db *gorm.DB, userID, categoryType string) ([]CategoryBreakdown, error) {
	q := db.Model(&models.Transaction{})
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if categoryType != "" {
		q = q.Where("category = ?", categoryType)
	}
	var rows []CategoryBreakdown
	err := q.Select("category, count(*) as count, sum(amount) as total, avg(amount) as avg").
		Group("category").
		Order("total DESC, category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []CategoryBreakdown{}
	}
	return rows, nil
}

// GetMonthlyTrends sums amounts per (year, month, category), oldest
// buckets first, for the dashboard trend chart.
func GetMonthlyTrends(db *gorm.DB, userID string) ([]MonthlyTrend, error) {
	q := db.Model(&models.Transaction{})
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var rows []MonthlyTrend
	err := q.Select("extract(year from date)::int as year," +
		" extract(month from date)::int as month," +
		" category, sum(amount) as total").
		Group("year, month, category").
		Order("year ASC, month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []MonthlyTrend{}
	}
	return rows, nil
}

// GetDistinct returns the sorted distinct values of column for the
// matching set. Used by the filter-options endpoint.
func GetDistinct(db *gorm.DB, userID, column string) ([]string, error) {
	q := db.Model(&models.Transaction{})
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var vals []string
	if err := q.Distinct(column).Order(column + " ASC").Pluck(column, &vals).Error; err != nil {
		return nil, err
	}
	if vals == nil {
		vals = []string{}
	}
	return vals, nil
}
