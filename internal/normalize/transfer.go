package normalize

import "github.com/vijaysanthoshp/fintrack/internal/model"

// Transfer normalizes a single raw transfer record. Source and destination
// references may arrive flat or as embedded account objects.
func Transfer(raw map[string]any) model.Transfer {
	amount, _ := pickNumber(raw, "amount")
	if amount < 0 {
		amount = -amount
	}
	fee, _ := pickNumber(raw, "fee_amount", "feeAmount")
	if fee < 0 {
		fee = -fee
	}

	from := pickString(raw, "from_account_id", "fromAccountId")
	if from == "" {
		from = embeddedID(raw, "fromAccount", "from_account")
	}
	to := pickString(raw, "to_user_id", "toUserId", "to_account_id", "toAccountId")
	if to == "" {
		to = embeddedID(raw, "toAccount", "to_account", "toUser", "to_user")
	}

	return model.Transfer{
		ID:            pickString(raw, "transfer_id", "transferId", "id"),
		FromAccountID: from,
		ToUserID:      to,
		Amount:        amount,
		Fee:           fee,
		Date:          pickDate(raw, "transfer_date", "transferDate", "date"),
		Description:   pickString(raw, "description"),
		Notes:         pickString(raw, "notes"),
	}
}

// Transfers normalizes a list of extracted transfer records.
func Transfers(records []any) []model.Transfer {
	transfers := make([]model.Transfer, 0, len(records))
	for _, rec := range records {
		raw, ok := asRecord(rec)
		if !ok {
			continue
		}
		transfers = append(transfers, Transfer(raw))
	}
	return transfers
}

func embeddedID(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if obj, ok := raw[key].(map[string]any); ok {
			if id := pickString(obj, "account_id", "accountId", "user_id", "userId", "id"); id != "" {
				return id
			}
		}
	}
	return ""
}
