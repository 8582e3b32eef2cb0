package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caiorodriguesslv/planwise-backend/internal/auth"
	"github.com/caiorodriguesslv/planwise-backend/internal/ledger"
	"github.com/caiorodriguesslv/planwise-backend/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts, _ := newTestServerWithAuth(t)
	return ts
}

// newTestServerWithAuth also exposes the auth service so tests can bootstrap
// accounts outside the HTTP surface.
func newTestServerWithAuth(t *testing.T) (*httptest.Server, *auth.Service) {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))

	issuer, err := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	require.NoError(t, err)

	authSvc := auth.NewService(store, issuer)
	server := NewServer(
		issuer,
		authSvc,
		ledger.NewCategoryService(store),
		ledger.NewTransactionService(store),
		ledger.NewGoalService(store),
		ledger.NewReportService(store),
	)

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts, authSvc
}

// doJSON fires a request with an optional token and decodes the response.
func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body any, dest any) *http.Response {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if dest != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
	}
	return resp
}

// registerTestUser signs up and returns a bearer token.
func registerTestUser(t *testing.T, ts *httptest.Server, email string) string {
	t.Helper()

	var out struct {
		Token string `json:"token"`
	}
	resp := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "correct horse battery",
	}, &out)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func createCategoryViaAPI(t *testing.T, ts *httptest.Server, token, name, kind string) int64 {
	t.Helper()

	var out struct {
		ID int64 `json:"id"`
	}
	resp := doJSON(t, ts, http.MethodPost, "/api/categories", token,
		map[string]string{"name": name, "type": kind}, &out)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return out.ID
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	paths := []string{
		"/api/categories",
		"/api/incomes",
		"/api/goals",
		"/api/reports/financial-summary",
		"/api/users/me",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			resp := doJSON(t, ts, http.MethodGet, path, "", nil, nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}

	// A garbage token is refused the same way.
	resp := doJSON(t, ts, http.MethodGet, "/api/categories", "not-a-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterLoginMe(t *testing.T) {
	ts := newTestServer(t)
	token := registerTestUser(t, ts, "alice@example.com")

	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	resp := doJSON(t, ts, http.MethodGet, "/api/users/me", token, nil, &me)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice@example.com", me.Email)
	assert.Equal(t, "USER", me.Role)

	var login struct {
		Token string `json:"token"`
	}
	resp = doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "correct horse battery",
	}, &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, login.Token)

	resp = doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Blank credentials are a validation failure, not a server error.
	resp = doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "",
		"password": "whatever123",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListUsersAdminOnly(t *testing.T) {
	ts, authSvc := newTestServerWithAuth(t)
	token := registerTestUser(t, ts, "alice@example.com")

	// Regular accounts cannot enumerate users.
	resp := doJSON(t, ts, http.MethodGet, "/api/users", token, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	require.NoError(t, authSvc.EnsureAdmin(context.Background(), "Admin", "admin@example.com", "admin password"))

	var login struct {
		Token string `json:"token"`
	}
	resp = doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "admin password",
	}, &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	resp = doJSON(t, ts, http.MethodGet, "/api/users", login.Token, nil, &users)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, users, 2)
	assert.Equal(t, "alice@example.com", users[0].Email)
	assert.Equal(t, "ADMIN", users[1].Role)
}

func TestCategoryEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := registerTestUser(t, ts, "alice@example.com")

	id := createCategoryViaAPI(t, ts, token, "Groceries", "EXPENSE")

	// Duplicate name is a conflict.
	resp := doJSON(t, ts, http.MethodPost, "/api/categories", token,
		map[string]string{"name": "Groceries", "type": "INCOME"}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Unknown kind is a validation failure.
	resp = doJSON(t, ts, http.MethodPost, "/api/categories", token,
		map[string]string{"name": "Other", "type": "SIDEWAYS"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var byKind []struct {
		Name string `json:"name"`
	}
	resp = doJSON(t, ts, http.MethodGet, "/api/categories/type/EXPENSE", token, nil, &byKind)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, byKind, 1)
	assert.Equal(t, "Groceries", byKind[0].Name)

	// Another user cannot see the category.
	otherToken := registerTestUser(t, ts, "bob@example.com")
	resp = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/categories/%d", id), otherToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, ts, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), token, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/categories/%d", id), token, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTransactionEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := registerTestUser(t, ts, "alice@example.com")

	expenseCat := createCategoryViaAPI(t, ts, token, "Groceries", "EXPENSE")
	incomeCat := createCategoryViaAPI(t, ts, token, "Salary", "INCOME")

	var created struct {
		ID     string  `json:"id"`
		Amount float64 `json:"amount"`
	}
	resp := doJSON(t, ts, http.MethodPost, "/api/expenses", token, map[string]any{
		"description": "Weekly shop",
		"amount":      "157.50",
		"date":        "2025-06-15",
		"categoryId":  expenseCat,
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.InDelta(t, 157.50, created.Amount, 0.001)

	// Filing an expense under an income category is a conflict.
	resp = doJSON(t, ts, http.MethodPost, "/api/expenses", token, map[string]any{
		"description": "Mistake",
		"amount":      "10.00",
		"date":        "2025-06-15",
		"categoryId":  incomeCat,
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// A non-positive amount never reaches storage.
	resp = doJSON(t, ts, http.MethodPost, "/api/expenses", token, map[string]any{
		"description": "Free lunch",
		"amount":      "0.00",
		"date":        "2025-06-15",
		"categoryId":  expenseCat,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var list []struct {
		ID string `json:"id"`
	}
	resp = doJSON(t, ts, http.MethodGet, "/api/expenses", token, nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)

	var total struct {
		Total float64 `json:"total"`
	}
	resp = doJSON(t, ts, http.MethodGet, "/api/expenses/total", token, nil, &total)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 157.50, total.Total, 0.001)

	// The record is an expense; the income route cannot see it.
	resp = doJSON(t, ts, http.MethodGet, "/api/incomes/"+created.ID, token, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, ts, http.MethodDelete, "/api/expenses/"+created.ID, token, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestGoalEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := registerTestUser(t, ts, "alice@example.com")

	deadline := time.Now().UTC().AddDate(1, 0, 0).Format("2006-01-02")

	var goal struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	resp := doJSON(t, ts, http.MethodPost, "/api/goals", token, map[string]any{
		"description": "Emergency fund",
		"targetValue": "2000.00",
		"deadline":    deadline,
	}, &goal)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "IN_PROGRESS", goal.Status)

	var updated struct {
		Status   string  `json:"status"`
		Progress float64 `json:"progress"`
	}
	resp = doJSON(t, ts, http.MethodPut, "/api/goals/"+goal.ID+"/progress", token,
		map[string]any{"value": "500.00"}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "IN_PROGRESS", updated.Status)
	assert.InDelta(t, 25.0, updated.Progress, 0.0001)

	resp = doJSON(t, ts, http.MethodPut, "/api/goals/"+goal.ID+"/add-progress", token,
		map[string]any{"value": "1500.00"}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ACHIEVED", updated.Status)

	// Negative absolute progress is refused.
	resp = doJSON(t, ts, http.MethodPut, "/api/goals/"+goal.ID+"/progress", token,
		map[string]any{"value": "-1.00"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count struct {
		Count int64 `json:"count"`
	}
	resp = doJSON(t, ts, http.MethodGet, "/api/goals/count/status/ACHIEVED", token, nil, &count)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), count.Count)

	var sweep struct {
		Updated int `json:"updated"`
	}
	resp = doJSON(t, ts, http.MethodPost, "/api/goals/update-expired", token, nil, &sweep)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, sweep.Updated)
}

func TestReportEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := registerTestUser(t, ts, "alice@example.com")

	salaryCat := createCategoryViaAPI(t, ts, token, "Salary", "INCOME")
	rentCat := createCategoryViaAPI(t, ts, token, "Rent", "EXPENSE")

	resp := doJSON(t, ts, http.MethodPost, "/api/incomes", token, map[string]any{
		"description": "Paycheck",
		"amount":      "5000.00",
		"date":        "2024-02-29",
		"categoryId":  salaryCat,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, ts, http.MethodPost, "/api/expenses", token, map[string]any{
		"description": "February rent",
		"amount":      "1800.00",
		"date":        "2024-02-01",
		"categoryId":  rentCat,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var summary struct {
		TotalIncomes  float64 `json:"totalIncomes"`
		TotalExpenses float64 `json:"totalExpenses"`
		Balance       float64 `json:"balance"`
	}
	resp = doJSON(t, ts, http.MethodGet, "/api/reports/financial-summary", token, nil, &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 5000.0, summary.TotalIncomes, 0.001)
	assert.InDelta(t, 1800.0, summary.TotalExpenses, 0.001)
	assert.InDelta(t, 3200.0, summary.Balance, 0.001)

	// The leap day lands inside February's report.
	var monthly struct {
		TotalIncomes float64 `json:"totalIncomes"`
		IncomeCount  int64   `json:"incomeCount"`
	}
	resp = doJSON(t, ts, http.MethodGet, "/api/reports/monthly-summary?year=2024&month=2", token, nil, &monthly)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 5000.0, monthly.TotalIncomes, 0.001)
	assert.Equal(t, int64(1), monthly.IncomeCount)

	resp = doJSON(t, ts, http.MethodGet, "/api/reports/monthly-summary?year=2024&month=13", token, nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var goals struct {
		Total int64 `json:"total"`
	}
	resp = doJSON(t, ts, http.MethodGet, "/api/reports/goals-summary", token, nil, &goals)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, goals.Total)
}
