package tests

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/canfly/subdomain-router/internal/api/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T, baseURL string) {
	resp := get(t, baseURL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServiceList(t *testing.T, baseURL string) {
	for _, path := range []string{"/i", "/i/", "//i//"} {
		resp := get(t, baseURL+path, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)

		var body dto.ServicesResponse
		decode(t, resp, &body)
		assert.Equal(t, 3, body.Count, path)
	}
}

func TestPathRouting(t *testing.T, baseURL string) {
	t.Run("rewrites and keeps query", func(t *testing.T) {
		resp := get(t, baseURL+"/i/mail/inbox?x=1&y=%2F", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body dto.DispatchResponse
		decode(t, resp, &body)
		assert.Equal(t, "mail", body.Service)
		assert.Equal(t, "path", body.Source)
		assert.Equal(t, "/i/inbox", body.Path)
		assert.Equal(t, "x=1&y=%2F", body.Query)
	})

	t.Run("service root", func(t *testing.T) {
		resp := get(t, baseURL+"/i/docs/", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body dto.DispatchResponse
		decode(t, resp, &body)
		assert.Equal(t, "docs", body.Service)
		assert.Equal(t, "/i", body.Path)
	})

	t.Run("unknown service", func(t *testing.T) {
		resp := get(t, baseURL+"/i/calendar/today", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("no marker", func(t *testing.T) {
		resp := get(t, baseURL+"/mail/inbox", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHeaderRouting(t *testing.T, baseURL string) {
	t.Run("subdomain", func(t *testing.T) {
		resp := get(t, baseURL+"/inbox", map[string]string{"X-Original-Host": "mail.canfly.org"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body dto.DispatchResponse
		decode(t, resp, &body)
		assert.Equal(t, "mail", body.Service)
		assert.Equal(t, "header", body.Source)
		assert.Equal(t, "/inbox", body.Path)
	})

	t.Run("nested subdomain", func(t *testing.T) {
		resp := get(t, baseURL+"/", map[string]string{"X-Original-Host": "eu.mail.canfly.org"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body dto.DispatchResponse
		decode(t, resp, &body)
		assert.Equal(t, "eu.mail", body.Service)
	})

	t.Run("root host", func(t *testing.T) {
		resp := get(t, baseURL+"/inbox", map[string]string{"X-Original-Host": "canfly.org"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("foreign host", func(t *testing.T) {
		resp := get(t, baseURL+"/inbox", map[string]string{"X-Original-Host": "mail.evil.com"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestParallelRouting(t *testing.T, baseURL string) {
	services := []string{"mail", "docs"}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pathSvc := services[i%2]
			headerSvc := services[(i+1)%2]

			req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/i/%s/item/%d?n=%d", baseURL, pathSvc, i, i), nil)
			if !assert.NoError(t, err) {
				return
			}
			req.Header.Set("X-Original-Host", headerSvc+".canfly.org")

			resp, err := http.DefaultClient.Do(req)
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()

			var body dto.DispatchResponse
			if !assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body)) {
				return
			}
			assert.Equal(t, pathSvc, body.Service)
			assert.Equal(t, headerSvc, body.SubdomainFromHeader)
			assert.Equal(t, fmt.Sprintf("/i/item/%d", i), body.Path)
			assert.Equal(t, fmt.Sprintf("n=%d", i), body.Query)
		}(i)
	}
	wg.Wait()
}

func get(t *testing.T, url string, header map[string]string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	})
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
