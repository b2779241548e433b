package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a spending ceiling for one category in one month. At most one
// budget exists per (CategoryID, Month) pair; storage enforces this.
type Budget struct {
	CreatedAt  time.Time
	ID         string
	CategoryID string
	Amount     decimal.Decimal
	Month      Month
}
