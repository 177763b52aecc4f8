package sheetsclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
)

type staticTokenSource struct {
	token string
	err   error
}

func (s *staticTokenSource) Token() (string, error) {
	return s.token, s.err
}

func newTestConfig(baseURL string) *config.Config {
	return &config.Config{
		Sheets: config.Sheets{
			BaseURL:       baseURL,
			SpreadsheetID: "sheet-123",
		},
	}
}

func TestGetValues(t *testing.T) {
	var gotPath, gotAuth, gotRender string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotRender = r.URL.Query().Get("valueRenderOption")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"range": "Transactions!A1:C3",
			"majorDimension": "ROWS",
			"values": [["Member ID", "Date", "Value"], ["M1", "05/03/2025", "100,50"]]
		}`))
	}))
	defer server.Close()

	client := NewClient(newTestConfig(server.URL), &staticTokenSource{token: "tok-abc"})

	values, err := client.GetValues(context.Background(), "Transactions!A:U")

	assert.NoError(t, err)
	assert.Equal(t, "/v4/spreadsheets/sheet-123/values/Transactions!A:U", gotPath)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.Equal(t, "FORMATTED_VALUE", gotRender)
	assert.Equal(t, [][]string{
		{"Member ID", "Date", "Value"},
		{"M1", "05/03/2025", "100,50"},
	}, values)
}

func TestGetValuesRespostaSemValores(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"range": "Cohorts!A:G"}`))
	}))
	defer server.Close()

	client := NewClient(newTestConfig(server.URL), &staticTokenSource{token: "tok"})

	values, err := client.GetValues(context.Background(), "Cohorts!A:G")

	assert.NoError(t, err)
	assert.Nil(t, values)
}

func TestGetValuesStatusNaoOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(newTestConfig(server.URL), &staticTokenSource{token: "tok"})

	values, err := client.GetValues(context.Background(), "Transactions!A:U")

	assert.Error(t, err)
	assert.Nil(t, values)
	assert.Contains(t, err.Error(), "403")
}

func TestGetValuesFalhaDeToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("a requisição não deveria ser executada sem token")
	}))
	defer server.Close()

	client := NewClient(newTestConfig(server.URL), &staticTokenSource{err: assert.AnError})

	values, err := client.GetValues(context.Background(), "Transactions!A:U")

	assert.Error(t, err)
	assert.Nil(t, values)
}
