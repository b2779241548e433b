package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target the user is working toward.
type Goal struct {
	CreatedAt       time.Time
	Deadline        time.Time // zero if open-ended
	ID              string
	Name            string
	TargetAmount    decimal.Decimal
	CurrentAmount   decimal.Decimal
	Icon            string
	TargetAccountID string // where the saved money is kept
}

// Progress returns completion as a fraction in [0, 1]. Overfunded goals cap at 1.
func (g *Goal) Progress() decimal.Decimal {
	if g.TargetAmount.Sign() <= 0 {
		return decimal.Zero
	}
	p := g.CurrentAmount.Div(g.TargetAmount)
	if p.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return p
}
