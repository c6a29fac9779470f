package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijaysanthoshp/fintrack/internal/model"
	"github.com/vijaysanthoshp/fintrack/internal/normalize"
	"github.com/vijaysanthoshp/fintrack/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *session.Session) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	sess := session.New("", model.User{})
	return NewClient(server.URL, DefaultTimeout, sess), sess
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		wantMessage string
		status      int
		wantKind    ErrorKind
	}{
		{
			name:        "unauthorized",
			status:      http.StatusUnauthorized,
			wantKind:    KindAuth,
			wantMessage: "Session expired. Please login again.",
		},
		{
			name:        "forbidden",
			status:      http.StatusForbidden,
			wantKind:    KindForbidden,
			wantMessage: "Access denied. You do not have permission to perform this action.",
		},
		{
			name:        "not found",
			status:      http.StatusNotFound,
			wantKind:    KindNotFound,
			wantMessage: "Resource not found.",
		},
		{
			name:        "validation without server message",
			status:      http.StatusUnprocessableEntity,
			wantKind:    KindValidation,
			wantMessage: "Validation error occurred.",
		},
		{
			name:        "rate limited",
			status:      http.StatusTooManyRequests,
			wantKind:    KindRateLimit,
			wantMessage: "Too many requests. Please try again later.",
		},
		{
			name:        "server error",
			status:      http.StatusInternalServerError,
			wantKind:    KindServer,
			wantMessage: "Server error. Please try again later.",
		},
		{
			name:        "bad gateway is still a server error",
			status:      http.StatusBadGateway,
			wantKind:    KindServer,
			wantMessage: "Server error. Please try again later.",
		},
		{
			name:        "teapot falls through",
			status:      http.StatusTeapot,
			wantKind:    KindUnexpected,
			wantMessage: "An unexpected error occurred.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := client.Accounts(context.Background())
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.status, apiErr.Status)
		})
	}
}

func TestUnauthorizedInvalidatesSession(t *testing.T) {
	client, sess := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	sess.Establish("stale-token", model.User{ID: "u1", Username: "alex"})

	notified := false
	sess.OnInvalidate(func() { notified = true })

	_, err := client.Accounts(context.Background())
	require.Error(t, err)

	assert.False(t, sess.Authenticated())
	assert.True(t, notified, "invalidation observers should fire on 401")
}

func TestForbiddenKeepsSession(t *testing.T) {
	client, sess := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	sess.Establish("good-token", model.User{ID: "u1"})

	_, err := client.Accounts(context.Background())
	require.Error(t, err)
	assert.True(t, sess.Authenticated(), "only a 401 may tear down the session")
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":{"accounts":[]}}`))
	})

	_, err := client.Accounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "anonymous requests carry no Authorization header")

	sess.Establish("tok-123", model.User{})
	_, err = client.Accounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestAccountsEnvelopeShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "preferred key", body: `{"accounts":[{"id":"a1"},{"id":"a2"}]}`, want: 2},
		{name: "data key", body: `{"data":[{"id":"a1"}]}`, want: 1},
		{name: "nested data", body: `{"data":{"accounts":[{"id":"a1"}]}}`, want: 1},
		{name: "root array", body: `[{"id":"a1"},{"id":"a2"},{"id":"a3"}]`, want: 3},
		{name: "shape mismatch is empty not error", body: `{"status":"ok"}`, want: 0},
		{name: "non-json body is empty not error", body: `<html>oops</html>`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			accounts, err := client.Accounts(context.Background())
			require.NoError(t, err)
			assert.Len(t, accounts, tt.want)
		})
	}
}

func TestCreateTransactionPayload(t *testing.T) {
	var got map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transactions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.CreateTransaction(context.Background(), TransactionParams{
		AccountID:   "acc-1",
		CategoryID:  "cat-9",
		Type:        model.TransactionTypeExpense,
		Amount:      -42.5,
		Description: "Groceries",
		Date:        "2026-08-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "acc-1", got["accountId"])
	assert.Equal(t, "cat-9", got["categoryId"])
	assert.Equal(t, "EXPENSE", got["transactionType"])
	assert.InDelta(t, 42.5, got["amount"], 0.001, "amount goes over the wire unsigned")
	assert.Equal(t, "2026-08-15", got["transactionDate"])
	assert.NotContains(t, got, "notes", "empty notes are omitted")
}

func TestCreateBudgetPayload(t *testing.T) {
	var got map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.CreateBudget(context.Background(), BudgetParams{
		Name:      "Food",
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
		Limit:     600,
		Notes:     "lean month",
	})
	require.NoError(t, err)

	assert.Equal(t, "Food", got["budgetName"])
	assert.Equal(t, "2026-08-01", got["startDate"])
	assert.Equal(t, "2026-08-31", got["endDate"])
	assert.InDelta(t, 600.0, got["totalLimit"], 0.001)
	assert.Equal(t, "lean month", got["notes"])
}

func TestCreateTransferPayload(t *testing.T) {
	var got map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.CreateTransfer(context.Background(), TransferParams{
		FromAccountID: "acc-1",
		ToUserID:      "u2",
		Amount:        100,
		Fee:           2.5,
		Description:   "Rent split",
		Date:          "2026-09-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "acc-1", got["fromAccountId"])
	assert.Equal(t, "u2", got["toUserId"])
	assert.InDelta(t, 100.0, got["amount"], 0.001)
	assert.InDelta(t, 2.5, got["feeAmount"], 0.001)
	assert.Equal(t, "2026-09-01", got["transferDate"])
}

func TestValidationFieldErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{
			"message": "Budget dates are invalid",
			"errors": {
				"startDate": ["must be before end date"],
				"endDate": "must be after start date"
			}
		}`))
	})

	err := client.CreateBudget(context.Background(), BudgetParams{Name: "Broken"})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.Equal(t, "Budget dates are invalid", apiErr.Message)
	assert.Equal(t, []string{
		"must be after start date",
		"must be before end date",
	}, apiErr.FieldMessages())
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // nothing listening anymore

	client := NewClient(server.URL, DefaultTimeout, session.New("", model.User{}))
	_, err := client.Accounts(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindNetwork, apiErr.Kind)
	assert.Equal(t, "Network error. Please check your internet connection.", apiErr.Message)
	assert.Error(t, errors.Unwrap(apiErr))
}

func TestLoginEstablishesSession(t *testing.T) {
	client, sess := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		var creds map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alex@example.com", creds["usernameOrEmail"])
		_, _ = w.Write([]byte(`{
			"data": {
				"token": "jwt-xyz",
				"user": {"user_id": "u1", "username": "alex", "first_name": "Alex"}
			}
		}`))
	})

	user, err := client.Login(context.Background(), Credentials{
		UsernameOrEmail: "alex@example.com",
		Password:        "hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "alex", user.Username)
	assert.True(t, sess.Authenticated())
	assert.Equal(t, "jwt-xyz", sess.Token())
}

func TestLoginWithoutTokenFails(t *testing.T) {
	client, sess := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"user":{"id":"u1"}}}`))
	})

	_, err := client.Login(context.Background(), Credentials{UsernameOrEmail: "x", Password: "y"})
	require.Error(t, err)
	assert.False(t, sess.Authenticated())
}

func TestLogoutInvalidatesEvenOnServerError(t *testing.T) {
	client, sess := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	sess.Establish("tok", model.User{ID: "u1"})

	err := client.Logout(context.Background())
	require.Error(t, err)
	assert.False(t, sess.Authenticated(), "logout always clears local state")
}

func TestTransactionsResolveLookups(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"data": {
				"transactions": [
					{"transaction_id": "t1", "account_id": "a1", "category_id": "c1",
					 "amount": 25, "transaction_type": "EXPENSE", "transaction_date": "2026-08-10"}
				]
			}
		}`))
	})

	lookups := normalize.NewLookups(
		[]model.Account{{ID: "a1", Name: "Everyday Checking"}},
		[]model.Category{{ID: "c1", Name: "Groceries"}},
	)

	transactions, err := client.Transactions(context.Background(), lookups)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Everyday Checking", transactions[0].AccountName)
	assert.Equal(t, "Groceries", transactions[0].CategoryName)
	assert.Equal(t, model.TransactionTypeExpense, transactions[0].Type)
}
