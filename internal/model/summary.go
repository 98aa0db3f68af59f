package model

import "github.com/shopspring/decimal"

// Summary aggregates the outcome of finalized lists.
type Summary struct {
	Completed int             `json:"completed"`
	Estimated decimal.Decimal `json:"estimated"`
	Paid      decimal.Decimal `json:"paid"`
	Saved     decimal.Decimal `json:"saved"`
	Overspent decimal.Decimal `json:"overspent"`
}

// Summarize totals savings and overspending across lists. Lists that are not
// completed with a paid amount are ignored.
func Summarize(lists []ShoppingList) Summary {
	s := Summary{
		Estimated: decimal.Zero,
		Paid:      decimal.Zero,
		Saved:     decimal.Zero,
		Overspent: decimal.Zero,
	}
	for i := range lists {
		delta, ok := lists[i].Savings()
		if !ok {
			continue
		}
		s.Completed++
		s.Estimated = s.Estimated.Add(decimal.NewFromFloat(lists[i].TotalAmount))
		s.Paid = s.Paid.Add(decimal.NewFromFloat(*lists[i].FinalAmount))
		if delta.IsNegative() {
			s.Overspent = s.Overspent.Add(delta.Neg())
		} else {
			s.Saved = s.Saved.Add(delta)
		}
	}
	s.Estimated = s.Estimated.Round(2)
	s.Paid = s.Paid.Round(2)
	return s
}
