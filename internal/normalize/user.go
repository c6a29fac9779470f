package normalize

import "github.com/vijaysanthoshp/fintrack/internal/model"

// User normalizes a single raw user record.
func User(raw map[string]any) model.User {
	return model.User{
		ID:        pickString(raw, "user_id", "userId", "id"),
		Username:  pickString(raw, "username", "userName"),
		Email:     pickString(raw, "email"),
		FirstName: pickString(raw, "first_name", "firstName"),
		LastName:  pickString(raw, "last_name", "lastName"),
	}
}

// Users normalizes a list of extracted user records.
func Users(records []any) []model.User {
	users := make([]model.User, 0, len(records))
	for _, rec := range records {
		raw, ok := asRecord(rec)
		if !ok {
			continue
		}
		users = append(users, User(raw))
	}
	return users
}
