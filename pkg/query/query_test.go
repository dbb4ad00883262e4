package query

import (
	"net/url"
	"testing"
	"time"
)

func TestParseListParamsDefaults(t *testing.T) {
	p, err := ParseListParams(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Page != 1 || p.Limit != 10 {
		t.Errorf("defaults page=%d limit=%d, want 1/10", p.Page, p.Limit)
	}
	if p.SortBy != "date" || p.SortOrder != "desc" {
		t.Errorf("default sort %s %s, want date desc", p.SortBy, p.SortOrder)
	}
	if p.DateFrom != nil || p.DateTo != nil || p.AmountMin != nil || p.AmountMax != nil {
		t.Error("absent fields should impose no constraint")
	}
	if len(p.Categories) != 0 || len(p.Statuses) != 0 {
		t.Error("expected empty category/status sets")
	}
}

func TestParseListParamsInvalid(t *testing.T) {
	cases := []url.Values{
		{"page": {"0"}},
		{"page": {"abc"}},
		{"limit": {"0"}},
		{"limit": {"-3"}},
		{"sortOrder": {"sideways"}},
		{"dateFrom": {"not-a-date"}},
		{"amountMin": {"lots"}},
	}
	for _, vals := range cases {
		if _, err := ParseListParams(vals); err == nil {
			t.Errorf("ParseListParams(%v) accepted invalid input", vals)
		}
	}
}

func TestParseListParamsSets(t *testing.T) {
	vals := url.Values{
		"category": {"Salary", "Freelance", ""},
		"status":   {"completed"},
		"user_id":  {"user_001"},
	}
	p, err := ParseListParams(vals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Categories) != 2 {
		t.Errorf("got %d categories, want 2 (blank dropped)", len(p.Categories))
	}
	if len(p.Statuses) != 1 || p.Statuses[0] != "completed" {
		t.Errorf("statuses = %v", p.Statuses)
	}
	if p.UserID != "user_001" {
		t.Errorf("user id = %q", p.UserID)
	}
}

func TestParseListParamsHalfOpenRange(t *testing.T) {
	p, err := ParseListParams(url.Values{"dateFrom": {"2024-01-01"}, "amountMax": {"99.50"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DateFrom == nil || p.DateTo != nil {
		t.Error("dateFrom only should yield a half-open date constraint")
	}
	if p.AmountMin != nil || p.AmountMax == nil {
		t.Error("amountMax only should yield a half-open amount constraint")
	}
	if p.AmountMax.String() != "99.5" {
		t.Errorf("amountMax = %s", p.AmountMax)
	}
}

func TestOrderClause(t *testing.T) {
	cases := []struct {
		sortBy, sortOrder, want string
	}{
		{"date", "desc", "date DESC"},
		{"amount", "asc", "amount ASC"},
		{"made_up_field", "asc", "made_up_field ASC"}, // looseness: unknown but clean keys pass through
		{"amount; drop table users", "asc", "date ASC"},
		{"", "desc", "date DESC"},
	}
	for _, c := range cases {
		p := &ListParams{SortBy: c.sortBy, SortOrder: c.sortOrder}
		if got := p.OrderClause(); got != c.want {
			t.Errorf("OrderClause(%q,%q) = %q, want %q", c.sortBy, c.sortOrder, got, c.want)
		}
	}
}

func TestOffset(t *testing.T) {
	p := &ListParams{Page: 3, Limit: 25}
	if got := p.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}
}

func TestNewPagination(t *testing.T) {
	cases := []struct {
		page, limit int
		total       int64
		totalPages  int
		hasNext     bool
		hasPrev     bool
	}{
		{1, 10, 0, 0, false, false},
		{1, 10, 10, 1, false, false},
		{1, 10, 11, 2, true, false},
		{2, 10, 11, 2, false, true},
		{2, 10, 45, 5, true, true},
		{5, 10, 45, 5, false, true},
		{7, 10, 45, 5, false, true}, // past the end: no next page
	}
	for _, c := range cases {
		got := NewPagination(c.page, c.limit, c.total)
		if got.TotalPages != c.totalPages {
			t.Errorf("page=%d limit=%d total=%d: totalPages = %d, want %d",
				c.page, c.limit, c.total, got.TotalPages, c.totalPages)
		}
		if got.HasNextPage != c.hasNext || got.HasPrevPage != c.hasPrev {
			t.Errorf("page=%d limit=%d total=%d: hasNext=%v hasPrev=%v, want %v/%v",
				c.page, c.limit, c.total, got.HasNextPage, got.HasPrevPage, c.hasNext, c.hasPrev)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.January || d.Day() != 15 {
		t.Errorf("got %v", d)
	}
	if _, err := ParseDate("2024-01-15T10:30:00Z"); err != nil {
		t.Errorf("RFC3339 rejected: %v", err)
	}
	if _, err := ParseDate("15/01/2024"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2024, time.March, 5, 9, 12, 0, 0, time.UTC)
	got := EndOfDay(in)
	want := time.Date(2024, time.March, 5, 23, 59, 59, 999000000, time.UTC)
	if !got.Equal(want) {
		t.Errorf("EndOfDay = %v, want %v", got, want)
	}
	// a record later the same day is included, the next day is not
	if sameDay := time.Date(2024, time.March, 5, 23, 0, 0, 0, time.UTC); sameDay.After(got) {
		t.Error("same-day record fell outside the bound")
	}
	if nextDay := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC); !nextDay.After(got) {
		t.Error("next-day record fell inside the bound")
	}
}
