package admind_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennydo/mochizuki"
	"github.com/kennydo/mochizuki/admind"
	"github.com/kennydo/mochizuki/config"
)

func newTestAdmin(t *testing.T) *httptest.Server {
	cfg := config.Default()
	cfg.Server.Name = "admin.test.local"
	cfg.Server.Port = 0

	srv, err := mochizuki.NewServer(cfg)
	require.NoError(t, err)
	require.NoError(t, srv.Start())
	t.Cleanup(func() { srv.Stop() })

	ts := httptest.NewServer(admind.New(srv).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := newTestAdmin(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStatus(t *testing.T) {
	ts := newTestAdmin(t)

	resp, err := http.Get(ts.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "admin.test.local", status["server"])
	assert.Contains(t, status, "clients")
	assert.Contains(t, status, "uptime_seconds")
}

func TestMetrics(t *testing.T) {
	ts := newTestAdmin(t)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
