package report

import (
	"sort"

	"github.com/vijaysanthoshp/fintrack/internal/model"
)

// Palette is the fixed set of display colors assigned to category slices by
// cyclic index.
var Palette = [7]string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FECA57", "#FF8A65", "#BA68C8"}

// maxCategorySlices caps the breakdown at the top spending categories.
const maxCategorySlices = 5

// CategorySlice is one category's share of expense spending.
type CategorySlice struct {
	Name   string
	Color  string
	Amount float64
}

// CategoryBreakdown groups expense transactions by category name, sums their
// absolute amounts, and returns the top five slices sorted by descending sum.
// A transaction whose category never resolved falls under "Other". Ties sort
// by name so the result is stable across runs.
func CategoryBreakdown(transactions []model.Transaction) []CategorySlice {
	totals := make(map[string]float64)
	for _, tx := range transactions {
		if tx.Type != model.TransactionTypeExpense {
			continue
		}
		name := tx.CategoryName
		if name == "" || name == model.UncategorizedName {
			name = "Other"
		}
		totals[name] += tx.Amount
	}
	if len(totals) == 0 {
		return nil
	}

	slices := make([]CategorySlice, 0, len(totals))
	for name, amount := range totals {
		slices = append(slices, CategorySlice{Name: name, Amount: amount})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Amount != slices[j].Amount {
			return slices[i].Amount > slices[j].Amount
		}
		return slices[i].Name < slices[j].Name
	})

	if len(slices) > maxCategorySlices {
		slices = slices[:maxCategorySlices]
	}
	for i := range slices {
		slices[i].Color = Palette[i%len(Palette)]
	}
	return slices
}
