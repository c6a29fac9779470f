package normalize

import "github.com/vijaysanthoshp/fintrack/internal/model"

// Account normalizes a single raw account record.
func Account(raw map[string]any) model.Account {
	acctType := model.ParseAccountType(pickString(raw, "account_type", "accountType", "type"))

	balance, rawBalance := pickNumber(raw, "current_balance", "currentBalance", "balance", "initial_balance", "initialBalance")
	if kept := pickString(raw, "raw_balance", "rawBalance"); kept != "" {
		rawBalance = kept
	}

	isAsset, ok := pickBool(raw, "is_asset", "isAsset")
	if !ok {
		isAsset = model.IsAssetType(acctType)
	}

	return model.Account{
		ID:          pickString(raw, "account_id", "accountId", "id"),
		Name:        pickString(raw, "account_name", "accountName", "name"),
		Type:        acctType,
		Balance:     balance,
		RawBalance:  rawBalance,
		IsAsset:     isAsset,
		Number:      pickString(raw, "account_number", "accountNumber"),
		Description: pickString(raw, "description", "notes"),
	}
}

// Accounts normalizes a list of extracted account records. Non-object
// elements are skipped.
func Accounts(records []any) []model.Account {
	accounts := make([]model.Account, 0, len(records))
	for _, rec := range records {
		raw, ok := asRecord(rec)
		if !ok {
			continue
		}
		accounts = append(accounts, Account(raw))
	}
	return accounts
}
