package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efreitasn/miniledger/internal/domain"
	"github.com/efreitasn/miniledger/internal/engine"
	"github.com/efreitasn/miniledger/internal/report"
	"github.com/efreitasn/miniledger/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	notices := report.NewMemoryReporter()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := engine.New(engine.DefaultWindowSize, notices, logger)
	svc := service.NewLedgerService(eng, notices)
	srv := httptest.NewServer(NewRouter(svc, logger))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, srv *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSubmit_DepositAccepted(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv, "/transactions", map[string]any{
		"type": "deposit", "client": 1, "tx": 1, "amount": "1000.5",
	})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/accounts/1")
	require.NoError(t, err)
	snap := decode[domain.Snapshot](t, resp)
	assert.Equal(t, "1000.5000", snap.Available)
	assert.Equal(t, "1000.5000", snap.Total)
	assert.False(t, snap.Locked)
}

func TestSubmit_EngineRejectionReturns422(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv, "/transactions", map[string]any{
		"type": "withdrawal", "client": 1, "tx": 1, "amount": "10",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	notice := decode[report.Notice](t, resp)
	assert.Equal(t, domain.ErrInsufficientFunds.Error(), notice.Reason)

	// The rejection shows up on the diagnostics endpoint.
	resp, err := http.Get(srv.URL + "/notices")
	require.NoError(t, err)
	notices := decode[[]report.Notice](t, resp)
	require.Len(t, notices, 1)
	assert.Equal(t, domain.ErrInsufficientFunds.Error(), notices[0].Reason)
}

func TestSubmit_ValidationErrors(t *testing.T) {
	srv := newTestServer(t)
	cases := []struct {
		name string
		body map[string]any
	}{
		{"unknown type", map[string]any{"type": "transfer", "client": 1, "tx": 1, "amount": "1"}},
		{"missing amount", map[string]any{"type": "deposit", "client": 1, "tx": 1}},
		{"amount on dispute", map[string]any{"type": "dispute", "client": 1, "tx": 1, "amount": "1"}},
		{"too many decimals", map[string]any{"type": "deposit", "client": 1, "tx": 1, "amount": "1.00001"}},
		{"negative deposit", map[string]any{"type": "deposit", "client": 1, "tx": 1, "amount": "-10"}},
		{"negative withdrawal", map[string]any{"type": "withdrawal", "client": 1, "tx": 1, "amount": "-100"}},
		{"unknown field", map[string]any{"type": "deposit", "client": 1, "tx": 1, "amount": "1", "extra": true}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp := postJSON(t, srv, "/transactions", c.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			resp.Body.Close()
		})
	}
}

func TestSubmit_RequiresJSONContentType(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/transactions", "text/plain", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListAccounts_FullDisputeFlow(t *testing.T) {
	srv := newTestServer(t)
	for _, body := range []map[string]any{
		{"type": "deposit", "client": 1, "tx": 1, "amount": "1000"},
		{"type": "withdrawal", "client": 1, "tx": 2, "amount": "1000"},
		{"type": "dispute", "client": 1, "tx": 1},
		{"type": "chargeback", "client": 1, "tx": 1},
	} {
		resp := postJSON(t, srv, "/transactions", body)
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err := http.Get(srv.URL + "/accounts")
	require.NoError(t, err)
	snaps := decode[[]domain.Snapshot](t, resp)
	require.Len(t, snaps, 1)
	assert.Equal(t, "-1000.0000", snaps[0].Available)
	assert.Equal(t, "0.0000", snaps[0].Held)
	assert.Equal(t, "-1000.0000", snaps[0].Total)
	assert.True(t, snaps[0].Locked)
}

func TestGetAccount_NotFound(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/accounts/9")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetAccount_BadClientID(t *testing.T) {
	srv := newTestServer(t)
	for _, raw := range []string{"abc", "-1", "70000"} {
		resp, err := http.Get(srv.URL + "/accounts/" + raw)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "client_id %q", raw)
		resp.Body.Close()
	}
}

func TestListNotices_EmptyIsArray(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/notices")
	require.NoError(t, err)
	notices := decode[[]report.Notice](t, resp)
	assert.Empty(t, notices)
}
