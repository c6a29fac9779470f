package normalize

import (
	"strings"

	"github.com/vijaysanthoshp/fintrack/internal/model"
)

// Category normalizes a single raw category record.
func Category(raw map[string]any) model.Category {
	catType := model.CategoryTypeExpense
	if strings.EqualFold(pickString(raw, "category_type", "categoryType", "type"), "income") {
		catType = model.CategoryTypeIncome
	}
	return model.Category{
		ID:   pickString(raw, "category_id", "categoryId", "id"),
		Name: pickString(raw, "category_name", "categoryName", "name"),
		Type: catType,
	}
}

// Categories normalizes a list of extracted category records.
func Categories(records []any) []model.Category {
	categories := make([]model.Category, 0, len(records))
	for _, rec := range records {
		raw, ok := asRecord(rec)
		if !ok {
			continue
		}
		categories = append(categories, Category(raw))
	}
	return categories
}
