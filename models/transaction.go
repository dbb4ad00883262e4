package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single financial record belonging to exactly one user.
// The composite indexes back the owner-scoped list, filter and breakdown
// queries.
type Transaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
	UserID    string          `gorm:"size:36;not null;index:idx_tx_user_date;index:idx_tx_user_category;index:idx_tx_user_status" json:"user_id"`
	Date      time.Time       `gorm:"not null;index:idx_tx_user_date" json:"date"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Category  string          `gorm:"size:255;not null;index:idx_tx_user_category" json:"category"`
	Status    string          `gorm:"size:64;not null;index:idx_tx_user_status" json:"status"`
}
