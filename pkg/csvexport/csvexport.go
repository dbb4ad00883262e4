// Package csvexport renders filtered transaction sets as delimited text
// for download. Every cell is wrapped in double quotes; date cells use
// the abbreviated US form and amount cells US-locale currency, so the
// output is a pure projection of the stored values.
package csvexport

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"finanalyst/models"
)

// Column describes one exportable column for the config endpoint.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Config is the caller-supplied export configuration.
type Config struct {
	Columns        []string `json:"columns"`
	DateFormat     string   `json:"dateFormat,omitempty"`
	IncludeHeaders bool     `json:"includeHeaders"`
	Delimiter      string   `json:"delimiter,omitempty"`
}

// AvailableColumns lists every exportable column in default order.
func AvailableColumns() []Column {
	return []Column{
		{Key: "id", Label: "ID", Type: "number"},
		{Key: "date", Label: "Date", Type: "date"},
		{Key: "amount", Label: "Amount", Type: "number"},
		{Key: "category", Label: "Category", Type: "string"},
		{Key: "status", Label: "Status", Type: "string"},
		{Key: "user_id", Label: "User ID", Type: "string"},
	}
}

// DefaultConfig matches what the export dialog preselects.
func DefaultConfig() Config {
	return Config{
		Columns:        []string{"date", "amount", "category", "status"},
		DateFormat:     "US",
		IncludeHeaders: true,
		Delimiter:      ",",
	}
}

// Generate renders rows into CSV text in the order given, with one cell
// per selected column. The header row holds the literal column keys.
func Generate(rows []models.Transaction, columns []string, includeHeaders bool) string {
	var b strings.Builder
	lines := 0
	writeRow := func(cells []string) {
		if lines > 0 {
			b.WriteByte('\n')
		}
		for i, cell := range cells {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(cell)
			b.WriteByte('"')
		}
		lines++
	}
	if includeHeaders {
		writeRow(columns)
	}
	cells := make([]string, len(columns))
	for _, tx := range rows {
		for i, col := range columns {
			cells[i] = cellValue(tx, col)
		}
		writeRow(cells)
	}
	return b.String()
}

func cellValue(tx models.Transaction, col string) string {
	switch col {
	case "id":
		return strconv.FormatUint(uint64(tx.ID), 10)
	case "date":
		return tx.Date.Format("Jan 02, 2006")
	case "amount":
		return FormatCurrency(tx.Amount)
	case "category":
		return tx.Category
	case "status":
		return tx.Status
	case "user_id":
		return tx.UserID
	default:
		return ""
	}
}

// FormatCurrency renders d as en-US currency, e.g. -1234.5 -> "-$1,234.50".
func FormatCurrency(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]
	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteString(frac)
	return b.String()
}

// MatchesSearch reports whether term occurs, case-insensitively, in the
// record's owner id, status, category or decimal amount string.
func MatchesSearch(tx models.Transaction, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range []string{tx.UserID, tx.Status, tx.Category, tx.Amount.String()} {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// FilterBySearch keeps the rows matching term, preserving order.
func FilterBySearch(rows []models.Transaction, term string) []models.Transaction {
	if strings.TrimSpace(term) == "" {
		return rows
	}
	out := make([]models.Transaction, 0, len(rows))
	for _, tx := range rows {
		if MatchesSearch(tx, term) {
			out = append(out, tx)
		}
	}
	return out
}
