package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_ReturnsOK(t *testing.T) {
	e := newEnv(t)
	hc := NewHealthController(e.view, e.flow, e.cache)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp, "uptime")
	assert.Contains(t, resp, "uptime_seconds")
	assert.Equal(t, false, resp["has_voted"])
	assert.Equal(t, float64(2), resp["candidates"])
	assert.Equal(t, "idle", resp["flow_state"])
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	e := newEnv(t)
	hc := NewHealthController(e.view, e.flow, e.cache)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHealth_ReflectsVoteStatus(t *testing.T) {
	e := newEnv(t)
	e.view.RestoreVoted()
	hc := NewHealthController(e.view, e.flow, e.cache)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["has_voted"])
	assert.Equal(t, "locked", resp["flow_state"])
}

func TestHealth_ReportsCachedFragments(t *testing.T) {
	e := newEnv(t)
	e.cache.Set("ballot:1", []byte("<tr></tr>"))
	e.cache.Set("results:1", []byte("<tr></tr>"))
	hc := NewHealthController(e.view, e.flow, e.cache)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["cached_fragments"])
	assert.Equal(t, "0s", resp["uptime"])
}
