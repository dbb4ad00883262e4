// Package query turns raw list/export parameters into validated filter,
// sort and pagination plans for the transaction store. Parsing happens
// once at the boundary; execution is delegated to gorm scopes.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultPage   = 1
	DefaultLimit  = 10
	DefaultSortBy = "date"
)

const dateOnly = "2006-01-02"

// ListParams is the request-scoped query descriptor for listing
// transactions. Nil/empty fields impose no constraint; a range bound
// supplied on only one side is a half-open constraint.
type ListParams struct {
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string // "asc" | "desc"
	Categories []string
	Statuses   []string
	DateFrom   *time.Time
	DateTo     *time.Time
	AmountMin  *decimal.Decimal
	AmountMax  *decimal.Decimal
	UserID     string
}

// ParseListParams validates raw query values into a ListParams.
// Repeated category/status params combine as set membership.
func ParseListParams(vals url.Values) (*ListParams, error) {
	p := &ListParams{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    DefaultSortBy,
		SortOrder: "desc",
		UserID:    vals.Get("user_id"),
	}
	if v := vals.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid page %q", v)
		}
		p.Page = n
	}
	if v := vals.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid limit %q", v)
		}
		p.Limit = n
	}
	if v := vals.Get("sortBy"); v != "" {
		p.SortBy = v
	}
	if v := vals.Get("sortOrder"); v != "" {
		if v != "asc" && v != "desc" {
			return nil, fmt.Errorf("invalid sortOrder %q", v)
		}
		p.SortOrder = v
	}
	p.Categories = compact(vals["category"])
	p.Statuses = compact(vals["status"])
	if v := vals.Get("dateFrom"); v != "" {
		t, err := ParseDate(v)
		if err != nil {
			return nil, err
		}
		p.DateFrom = &t
	}
	if v := vals.Get("dateTo"); v != "" {
		t, err := ParseDate(v)
		if err != nil {
			return nil, err
		}
		p.DateTo = &t
	}
	if v := vals.Get("amountMin"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid amountMin %q", v)
		}
		p.AmountMin = &d
	}
	if v := vals.Get("amountMax"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid amountMax %q", v)
		}
		p.AmountMax = &d
	}
	return p, nil
}

// Scope applies the filter predicate only, so count queries and page
// queries share it.
func (p *ListParams) Scope(db *gorm.DB) *gorm.DB {
	if p.UserID != "" {
		db = db.Where("user_id = ?", p.UserID)
	}
	switch len(p.Categories) {
	case 0:
	case 1:
		db = db.Where("category = ?", p.Categories[0])
	default:
		db = db.Where("category IN ?", p.Categories)
	}
	switch len(p.Statuses) {
	case 0:
	case 1:
		db = db.Where("status = ?", p.Statuses[0])
	default:
		db = db.Where("status IN ?", p.Statuses)
	}
	if p.DateFrom != nil {
		db = db.Where("date >= ?", *p.DateFrom)
	}
	if p.DateTo != nil {
		db = db.Where("date <= ?", *p.DateTo)
	}
	if p.AmountMin != nil {
		db = db.Where("amount >= ?", *p.AmountMin)
	}
	if p.AmountMax != nil {
		db = db.Where("amount <= ?", *p.AmountMax)
	}
	return db
}

// OrderClause returns the ORDER BY expression. Unknown sort keys pass
// through literally, but only identifier characters are allowed into
// SQL; anything else falls back to the date column.
func (p *ListParams) OrderClause() string {
	field := p.SortBy
	if !isIdent(field) {
		field = DefaultSortBy
	}
	dir := "DESC"
	if p.SortOrder == "asc" {
		dir = "ASC"
	}
	return field + " " + dir
}

// Offset is the row offset for the requested page.
func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the page metadata returned alongside a listing.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPagination derives the page count by ceiling division of total
// matches by limit.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// ExportFilter mirrors the CSV export form: exact category/status match,
// a date range whose upper bound covers the whole day, an amount range
// and a free-text search term (applied in memory, see csvexport).
type ExportFilter struct {
	Category   string `json:"category"`
	Status     string `json:"status"`
	DateFrom   string `json:"dateFrom"`
	DateTo     string `json:"dateTo"`
	AmountMin  string `json:"amountMin"`
	AmountMax  string `json:"amountMax"`
	SearchTerm string `json:"searchTerm"`
}

// Scope applies the store-level part of the export filter.
func (f *ExportFilter) Scope(db *gorm.DB) (*gorm.DB, error) {
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.DateFrom != "" {
		t, err := ParseDate(f.DateFrom)
		if err != nil {
			return nil, err
		}
		db = db.Where("date >= ?", t)
	}
	if f.DateTo != "" {
		t, err := ParseDate(f.DateTo)
		if err != nil {
			return nil, err
		}
		db = db.Where("date <= ?", EndOfDay(t))
	}
	if f.AmountMin != "" {
		d, err := decimal.NewFromString(f.AmountMin)
		if err != nil {
			return nil, fmt.Errorf("invalid amountMin %q", f.AmountMin)
		}
		db = db.Where("amount >= ?", d)
	}
	if f.AmountMax != "" {
		d, err := decimal.NewFromString(f.AmountMax)
		if err != nil {
			return nil, fmt.Errorf("invalid amountMax %q", f.AmountMax)
		}
		db = db.Where("amount <= ?", d)
	}
	return db, nil
}

// ParseDate accepts a calendar date or a full RFC3339 timestamp.
func ParseDate(v string) (time.Time, error) {
	if t, err := time.Parse(dateOnly, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", v)
	}
	return t, nil
}

// EndOfDay returns the last millisecond of t's calendar day, so an upper
// date bound is inclusive through 23:59:59.999.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func compact(vals []string) []string {
	var out []string
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
