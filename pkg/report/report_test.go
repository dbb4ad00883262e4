package report

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFinalizeStatsEmptySet(t *testing.T) {
	// SQL aggregates return NULL over an empty set; the consumer must
	// still see zeroes.
	s := finalizeStats(0, nil, nil, nil, nil)
	if s.TotalTransactions != 0 {
		t.Errorf("count = %d", s.TotalTransactions)
	}
	for name, v := range map[string]decimal.Decimal{
		"total": s.TotalAmount,
		"avg":   s.AvgAmount,
		"min":   s.MinAmount,
		"max":   s.MaxAmount,
	} {
		if !v.IsZero() {
			t.Errorf("%s = %s, want 0", name, v)
		}
	}
}

func TestFinalizeStatsPassthrough(t *testing.T) {
	total := decimal.RequireFromString("100.50")
	avg := decimal.RequireFromString("50.25")
	min := decimal.RequireFromString("-10")
	max := decimal.RequireFromString("110.50")
	s := finalizeStats(2, &total, &avg, &min, &max)
	if s.TotalTransactions != 2 || !s.TotalAmount.Equal(total) || !s.AvgAmount.Equal(avg) ||
		!s.MinAmount.Equal(min) || !s.MaxAmount.Equal(max) {
		t.Errorf("stats = %+v", s)
	}
}
