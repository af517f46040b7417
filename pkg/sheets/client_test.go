package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	service, err := sheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return &Client{service: service}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	assert.Error(t, err)
}

func TestEnsureTabAddsMissingTab(t *testing.T) {
	var added string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `{"sheets":[{"properties":{"title":"Sheet1"}}]}`)
		case http.MethodPost:
			var req sheets.BatchUpdateSpreadsheetRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if assert.Len(t, req.Requests, 1) {
				added = req.Requests[0].AddSheet.Properties.Title
			}
			_, _ = io.WriteString(w, `{}`)
		}
	})

	require.NoError(t, c.EnsureTab(context.Background(), "doc", "Alerts"))
	assert.Equal(t, "Alerts", added)
}

func TestEnsureTabKeepsExistingTab(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = io.WriteString(w, `{"sheets":[{"properties":{"title":"Alerts"}}]}`)
	})

	require.NoError(t, c.EnsureTab(context.Background(), "doc", "Alerts"))
}

func TestAppendValuesSendsRows(t *testing.T) {
	var got sheets.ValueRange
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))
		assert.Equal(t, "INSERT_ROWS", r.URL.Query().Get("insertDataOption"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{}`)
	})

	err := c.AppendValues(context.Background(), "doc", "Alerts!A1", [][]interface{}{{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{{"a", "b"}}, got.Values)
}

func TestAppendValuesWrapsAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"denied"}}`)
	})

	err := c.AppendValues(context.Background(), "doc", "Alerts!A1", [][]interface{}{{"a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Alerts!A1")
}
