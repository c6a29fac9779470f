package normalize

import "github.com/vijaysanthoshp/fintrack/internal/model"

// Lookups carries already-normalized collections used to resolve the
// references on a transaction. Either map may be nil.
type Lookups struct {
	Accounts   map[string]model.Account
	Categories map[string]model.Category
}

// NewLookups indexes accounts and categories by identifier.
func NewLookups(accounts []model.Account, categories []model.Category) Lookups {
	l := Lookups{
		Accounts:   make(map[string]model.Account, len(accounts)),
		Categories: make(map[string]model.Category, len(categories)),
	}
	for _, a := range accounts {
		l.Accounts[a.ID] = a
	}
	for _, c := range categories {
		l.Categories[c.ID] = c
	}
	return l
}

// Transaction normalizes a single raw transaction record, resolving its
// account and category references against lookups. Unresolvable references
// get placeholder names rather than failing.
func Transaction(raw map[string]any, lookups Lookups) model.Transaction {
	amount, rawAmount := pickNumber(raw, "amount")
	if amount < 0 {
		amount = -amount
	}
	if kept := pickString(raw, "raw_amount", "rawAmount"); kept != "" {
		rawAmount = kept
	}

	tx := model.Transaction{
		ID:          pickString(raw, "transaction_id", "transactionId", "id"),
		AccountID:   pickString(raw, "account_id", "accountId"),
		CategoryID:  pickString(raw, "category_id", "categoryId"),
		Type:        model.ParseTransactionType(pickString(raw, "transaction_type", "transactionType", "type")),
		Amount:      amount,
		RawAmount:   rawAmount,
		Date:        pickDate(raw, "transaction_date", "transactionDate", "date"),
		Description: pickString(raw, "description"),
		Notes:       pickString(raw, "notes"),
	}

	tx.CategoryName = categoryName(raw, tx.CategoryID, lookups)
	tx.AccountName = accountName(raw, tx.AccountID, lookups)
	return tx
}

// Transactions normalizes a list of extracted transaction records.
func Transactions(records []any, lookups Lookups) []model.Transaction {
	transactions := make([]model.Transaction, 0, len(records))
	for _, rec := range records {
		raw, ok := asRecord(rec)
		if !ok {
			continue
		}
		transactions = append(transactions, Transaction(raw, lookups))
	}
	return transactions
}

// categoryName resolves the category display name: an inline name on the
// record wins, then a lookup by identifier, then the placeholder.
func categoryName(raw map[string]any, categoryID string, lookups Lookups) string {
	if name := pickString(raw, "category_name", "categoryName"); name != "" {
		return name
	}
	// The category field itself may be a plain name or an embedded object.
	switch cat := raw["category"].(type) {
	case string:
		if cat != "" {
			return cat
		}
	case map[string]any:
		if name := pickString(cat, "name", "category_name"); name != "" {
			return name
		}
	}
	if c, ok := lookups.Categories[categoryID]; ok && c.Name != "" {
		return c.Name
	}
	return model.UncategorizedName
}

func accountName(raw map[string]any, accountID string, lookups Lookups) string {
	if name := pickString(raw, "account_name", "accountName"); name != "" {
		return name
	}
	if a, ok := lookups.Accounts[accountID]; ok && a.Name != "" {
		return a.Name
	}
	return model.UnknownAccountName
}
