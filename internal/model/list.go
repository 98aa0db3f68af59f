package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// ShoppingList is a named, user-owned list with an estimated total.
//
// TotalAmount is always the sum of the items' totals. FinalAmount and
// CompletedAt are set only while Status is ListStatusCompleted.
type ShoppingList struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	TotalAmount float64    `json:"total_amount"`
	FinalAmount *float64   `json:"final_amount,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// List statuses.
const (
	ListStatusActive    = "active"
	ListStatusCompleted = "completed"
)

// CopySuffix is appended to the name of a list created by reusing another one.
const CopySuffix = " (Cópia)"

// Completed reports whether the list has been finalized.
func (l *ShoppingList) Completed() bool {
	return l.Status == ListStatusCompleted
}

// Savings returns estimated minus paid, rounded to cents. A negative value
// means more was paid than estimated. ok is false for lists that were not
// finalized with a paid amount.
func (l *ShoppingList) Savings() (savings decimal.Decimal, ok bool) {
	if !l.Completed() || l.FinalAmount == nil {
		return decimal.Zero, false
	}
	estimated := decimal.NewFromFloat(l.TotalAmount)
	paid := decimal.NewFromFloat(*l.FinalAmount)
	return estimated.Sub(paid).Round(2), true
}

// SavingsPercent returns Savings as a percentage of the estimated total,
// rounded to one decimal place. Lists with no estimate report zero.
func (l *ShoppingList) SavingsPercent() decimal.Decimal {
	s, ok := l.Savings()
	if !ok || l.TotalAmount == 0 {
		return decimal.Zero
	}
	return s.Div(decimal.NewFromFloat(l.TotalAmount)).Mul(decimal.NewFromInt(100)).Round(1)
}

// ValidateFinalAmount checks the amount recorded when completing a list.
func ValidateFinalAmount(amount float64) error {
	if !(amount > 0) || math.IsInf(amount, 0) {
		return ErrInvalidAmount
	}
	return nil
}
