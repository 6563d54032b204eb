package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-grc/resilscore/pkg/assess"
	"github.com/meridian-grc/resilscore/pkg/catalog"
	"github.com/meridian-grc/resilscore/pkg/mappings"
	"github.com/meridian-grc/resilscore/pkg/snapshot"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	assessor := assess.New(catalog.DefaultRegistry(), mappings.DefaultGraph(), nil)
	tracker := snapshot.NewTracker(snapshot.NewMemoryStore(), nil)
	srv := New(assessor, mappings.DefaultGraph(), tracker, nil)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	ts := testServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAssessEndpoint(t *testing.T) {
	ts := testServer(t)

	resp := postJSON(t, ts.URL+"/assessments", map[string]any{
		"framework":       "dora",
		"organization_id": "org-1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var res assess.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, catalog.FrameworkDORA, res.Framework)
	assert.Len(t, res.Requirements, 18)
}

func TestAssessEndpointValidation(t *testing.T) {
	ts := testServer(t)

	resp := postJSON(t, ts.URL+"/assessments", map[string]any{"framework": "dora"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/assessments", map[string]any{
		"framework":       "cobit",
		"organization_id": "org-1",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSnapshotConflictOnSameDay(t *testing.T) {
	ts := testServer(t)
	body := map[string]any{
		"framework":       "dora",
		"organization_id": "org-1",
	}

	first := postJSON(t, ts.URL+"/snapshots", body)
	assert.Equal(t, http.StatusCreated, first.StatusCode)

	second := postJSON(t, ts.URL+"/snapshots", body)
	assert.Equal(t, http.StatusConflict, second.StatusCode)
}

func TestCoverageEndpoint(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/coverage?source=iso27001&target=dora&compliance=80&requirement=DORA-ART9")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var tr mappings.TransferResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr))
	assert.GreaterOrEqual(t, tr.TransferredPercent, 0.0)

	resp, err = http.Get(ts.URL + "/coverage?target=dora")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTrendEndpoint(t *testing.T) {
	ts := testServer(t)

	// Seed one snapshot so the trend has something to look at.
	resp := postJSON(t, ts.URL+"/snapshots", map[string]any{
		"framework":       "dora",
		"organization_id": "org-1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err := http.Get(ts.URL + "/trend?organization_id=org-1&from=2020-01-01&to=2030-01-01&target=4")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var trend snapshot.Trend
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&trend))
	assert.Equal(t, snapshot.Stable, trend.Direction, "a single snapshot cannot move")
}

func TestTrendEndpointValidation(t *testing.T) {
	ts := testServer(t)

	for _, url := range []string{
		"/trend?organization_id=org-1&from=last-tuesday",
		"/trend?organization_id=org-1&to=2026/01/01",
		"/trend?organization_id=org-1&target=7",
		"/trend?organization_id=org-1&target=abc",
	} {
		resp, err := http.Get(ts.URL + url)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, url)
	}
}

func TestLatestSnapshotNotFound(t *testing.T) {
	ts := testServer(t)
	resp, err := http.Get(ts.URL + "/snapshots/latest?organization_id=nobody")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
