package model

// CategoryType indicates whether a category groups income or expenses.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a transaction category used for grouping and filtering.
type Category struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Type CategoryType `json:"type"`
}

// UncategorizedName is the placeholder used when a transaction's category
// reference cannot be resolved.
const UncategorizedName = "Uncategorized"

// UnknownAccountName is the placeholder used when a transaction's account
// reference cannot be resolved.
const UnknownAccountName = "Unknown Account"
