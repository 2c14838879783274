package appsscript

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fabricioasv/gestao-financeira/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) *Client {
	return New(baseURL, 5*time.Second, zap.NewNop())
}

func TestFetchSheetAddsQueryParam(t *testing.T) {
	var gotSheet string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSheet = r.URL.Query().Get("sheet")
		w.Write([]byte(`[{"Alias": "x"}]`))
	}))
	defer server.Close()

	data, err := newTestClient(server.URL).FetchSheet(context.Background(), "Cartão-Detalhe")
	require.NoError(t, err)
	assert.Equal(t, "Cartão-Detalhe", gotSheet)
	assert.JSONEq(t, `[{"Alias": "x"}]`, string(data))
}

func TestFetchSheetPreservesExistingQuery(t *testing.T) {
	var gotURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL + "/exec?token=abc").FetchSheet(context.Background(), "Proventos")
	require.NoError(t, err)
	assert.Contains(t, gotURL, "token=abc")
	assert.Contains(t, gotURL, "sheet=Proventos")
}

func TestFetchRawWithoutSheetParam(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("sheet"))
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	data, err := newTestClient(server.URL).FetchRaw(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(data))
}

func TestFetchDetectsLoginPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<!DOCTYPE html><html><body>Fazer login</body></html>"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchRaw(context.Background())
	assert.ErrorIs(t, err, ErrLoginPage)
}

func TestFetchDetectsNonJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("isto não é json"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchRaw(context.Background())
	assert.ErrorIs(t, err, ErrNotJSON)
}

func TestFetchRejectsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchRaw(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchAllSheetsIsTolerant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("sheet") == "Proventos" {
			w.Write([]byte("<html>login</html>"))
			return
		}
		w.Write([]byte(`[{"Alias": "ok"}]`))
	}))
	defer server.Close()

	out := newTestClient(server.URL).FetchAllSheets(context.Background())
	require.Len(t, out, len(AvailableSheets))

	// A aba que falhou vira marcador inline; as demais carregam o payload.
	failed, ok := out["Proventos"].(domain.SheetError)
	require.True(t, ok)
	assert.True(t, failed.Error)
	assert.NotEmpty(t, failed.Message)

	data, ok := out["Consolidado"].(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `[{"Alias": "ok"}]`, string(data))
}
