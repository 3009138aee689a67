package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/canfly/subdomain-router/internal/api/http/dto"
	"github.com/canfly/subdomain-router/internal/api/http/handler"
	"github.com/canfly/subdomain-router/internal/catalog"
	"github.com/canfly/subdomain-router/internal/metrics"
	"github.com/canfly/subdomain-router/internal/subdomain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupServer(t *testing.T) http.Handler {
	t.Helper()

	cat, err := catalog.New([]catalog.Service{
		{Name: "mail", Title: "Mail"},
		{Name: "docs", Title: "Docs"},
	})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	srvs := &Services{
		Catalog:   cat,
		Metrics:   metrics.New(reg),
		Gatherer:  reg,
		Subdomain: subdomain.DefaultConfig(),
	}

	engine := gin.New()
	SetupRoute(engine, srvs)
	return NewHandler(engine, srvs)
}

func doRequest(h http.Handler, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	h := setupServer(t)

	w := doRequest(h, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Services)
}

func TestServiceList(t *testing.T) {
	h := setupServer(t)

	for _, target := range []string{"/i", "/i/"} {
		w := doRequest(h, target, nil)
		require.Equal(t, http.StatusOK, w.Code, target)

		var resp dto.ServicesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
		assert.Equal(t, "docs", resp.Services[0].Name)
		assert.Equal(t, "/i/docs/", resp.Services[0].URL)
	}
}

func TestDispatchFromPath(t *testing.T) {
	h := setupServer(t)

	w := doRequest(h, "/i/mail/inbox?x=1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.DispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "mail", resp.Service)
	assert.Equal(t, handler.SourcePath, resp.Source)
	assert.Equal(t, "/i/inbox", resp.Path)
	assert.Equal(t, "x=1", resp.Query)
}

func TestDispatchServiceRoot(t *testing.T) {
	h := setupServer(t)

	w := doRequest(h, "/i/docs", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.DispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "docs", resp.Service)
	assert.Equal(t, "/i", resp.Path)
}

func TestDispatchFromHeader(t *testing.T) {
	h := setupServer(t)

	w := doRequest(h, "/settings", map[string]string{"X-Original-Host": "mail.example.org"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.DispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "mail", resp.Service)
	assert.Equal(t, handler.SourceHeader, resp.Source)
	assert.Equal(t, "/settings", resp.Path)
}

func TestDispatchPathWinsOverHeader(t *testing.T) {
	h := setupServer(t)

	w := doRequest(h, "/i/docs/page", map[string]string{"X-Original-Host": "mail.example.org"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.DispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "docs", resp.Service)
	assert.Equal(t, "docs", resp.SubdomainFromPath)
	assert.Equal(t, "mail", resp.SubdomainFromHeader)
}

func TestDispatchRootHostNotFound(t *testing.T) {
	h := setupServer(t)

	w := doRequest(h, "/somewhere", map[string]string{"X-Original-Host": "example.org"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDispatchUnknownService(t *testing.T) {
	h := setupServer(t)

	w := doRequest(h, "/i/calendar/today", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "calendar")
}

func TestMetricsEndpoint(t *testing.T) {
	h := setupServer(t)

	doRequest(h, "/i/mail/inbox", nil)
	w := doRequest(h, "/metrics", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `subdomain_router_path_resolutions_total{outcome="rewritten"} 1`), body)
}

func TestRouterEndpointsOnSubdomainAreDispatched(t *testing.T) {
	h := setupServer(t)

	for _, target := range []string{"/metrics", "/health"} {
		w := doRequest(h, target, map[string]string{"X-Original-Host": "mail.example.org"})

		require.Equal(t, http.StatusOK, w.Code, target)
		var resp dto.DispatchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), target)
		assert.Equal(t, "mail", resp.Service, target)
		assert.Equal(t, handler.SourceHeader, resp.Source, target)
		assert.Equal(t, target, resp.Path, target)
		assert.NotContains(t, w.Body.String(), "subdomain_router_", target)
	}

	w := doRequest(h, "/metrics", map[string]string{"X-Original-Host": "example.org"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "subdomain_router_")
}

func TestRequestIDHeader(t *testing.T) {
	h := setupServer(t)

	w := doRequest(h, "/health", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = doRequest(h, "/health", map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
