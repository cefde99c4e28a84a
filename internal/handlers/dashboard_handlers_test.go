package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (a *testApp) getAuthed(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+a.token(t))
	return a.do(t, req)
}

func (a *testApp) postJSONAuthed(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token(t))
	return a.do(t, req)
}

func TestDashboardStatsEndpoint(t *testing.T) {
	app := newTestApp(t)
	createTestProduct(t, app)

	now := time.Now()
	_, err := app.store.DB.Exec(
		`INSERT INTO orders (order_date, customer_name, customer_phone, contacted) VALUES (?, 'Alice', '111', 0)`,
		now.AddDate(0, 0, -1))
	require.NoError(t, err)
	_, err = app.store.DB.Exec(
		`INSERT INTO orders (order_date, customer_name, customer_phone, contacted) VALUES (?, 'Carol', '333', 1)`,
		now.AddDate(0, 0, -60))
	require.NoError(t, err)

	rec := app.getAuthed(t, "/v1/admin/dashboard-stats")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["total_products"])
	assert.Equal(t, float64(1), body["new_customers"])
	assert.Equal(t, float64(1), body["unresolved_tickets"])
}

func TestUnresolvedContactsEndpoint(t *testing.T) {
	app := newTestApp(t)

	res, err := app.store.DB.Exec(
		`INSERT INTO orders (order_date, customer_name, customer_phone, contacted) VALUES (?, 'Alice', '111', 0)`,
		time.Now())
	require.NoError(t, err)
	orderID, err := res.LastInsertId()
	require.NoError(t, err)
	_, err = app.store.DB.Exec(
		`INSERT INTO order_items (order_id, product_id, quantity) VALUES (?, 1, 2)`, orderID)
	require.NoError(t, err)

	rec := app.getAuthed(t, "/v1/admin/contacts/unresolved")
	require.Equal(t, http.StatusOK, rec.Code)

	var contacts []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contacts))
	require.Len(t, contacts, 1)
	assert.Equal(t, float64(orderID), contacts[0]["order_id"])
	assert.Equal(t, "Alice", contacts[0]["customer_name"])

	// Resolve it, then the list is empty.
	rec = app.postJSONAuthed(t, "/v1/admin/contacts/resolve", map[string]interface{}{"order_id": orderID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])

	// Resolving again reports no change.
	rec = app.postJSONAuthed(t, "/v1/admin/contacts/resolve", map[string]interface{}{"order_id": orderID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])

	rec = app.getAuthed(t, "/v1/admin/contacts/unresolved")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestResolveContactValidation(t *testing.T) {
	app := newTestApp(t)

	rec := app.postJSONAuthed(t, "/v1/admin/contacts/resolve", map[string]interface{}{"order_id": 0})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or missing order_id", decodeBody(t, rec)["message"])
}
