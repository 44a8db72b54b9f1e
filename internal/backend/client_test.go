// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/memdeck/internal/config"
)

// =============================================================================
// RESPONSE DECODING TESTS
// =============================================================================

func TestDo_DecodesJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/memory/stats", r.URL.Path)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"total": 12, "types": ["semantic", "episodic"]}`))
	}))
	defer server.Close()

	got, err := NewClient(server.URL).Do(context.Background(), http.MethodGet, "/memory/stats", nil)
	require.NoError(t, err)

	want := map[string]any{"total": 12.0, "types": []any{"semantic", "episodic"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded body mismatch (-want +got):\n%s", diff)
	}
}

func TestDo_PlainTextPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(`{"looks": "like json"}`))
	}))
	defer server.Close()

	got, err := NewClient(server.URL).Do(context.Background(), http.MethodGet, "/version", nil)
	require.NoError(t, err)
	assert.Equal(t, `{"looks": "like json"}`, got)
}

func TestDo_MalformedJSONReturnsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"broken":`))
	}))
	defer server.Close()

	got, err := NewClient(server.URL).Do(context.Background(), http.MethodGet, "/x", nil)
	require.NoError(t, err)
	assert.Equal(t, `{"broken":`, got)
}

// =============================================================================
// REQUEST TESTS
// =============================================================================

func TestPost_SendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "deploys", body["query"])
		assert.Equal(t, 5.0, body["limit"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"memories": []}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Do(context.Background(), http.MethodPost, "/memory/search", map[string]any{"query": "deploys", "limit": 5})
	require.NoError(t, err)
}

func TestGet_SendsNoBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		assert.Empty(t, data)
		assert.Empty(t, r.Header.Get("Content-Type"))
		assert.Equal(t, "thread_id=t1", r.URL.RawQuery)
	}))
	defer server.Close()

	_, err := NewClient(server.URL+"/").Do(context.Background(), http.MethodGet, "checkpoints?thread_id=t1", nil)
	require.NoError(t, err)
}

func TestDo_RejectsUnsupportedMethod(t *testing.T) {
	_, err := NewClient("").Do(context.Background(), http.MethodPatch, "/x", nil)
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

// =============================================================================
// ERROR RESPONSE TESTS
// =============================================================================

func TestDo_ErrorCarriesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Memory not found"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Do(context.Background(), http.MethodGet, "/memory/missing", nil)
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, `{"detail":"Memory not found"}`, err.Error())
}

func TestDo_ErrorFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Do(context.Background(), http.MethodGet, "/health", nil)
	require.Error(t, err)
	assert.Equal(t, "Service Unavailable", err.Error())
}

func TestDo_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url).Do(context.Background(), http.MethodGet, "/health", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL).WithTimeout(50 * time.Millisecond)
	_, err := client.Do(context.Background(), http.MethodGet, "/slow", nil)
	assert.Error(t, err)
}

// =============================================================================
// BASE URL TESTS
// =============================================================================

func TestNewClient_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8000", NewClient("").BaseURL())
	assert.Equal(t, "http://agents:9000", NewClient(" http://agents:9000/ ").BaseURL())
}

func TestSetBaseURL(t *testing.T) {
	c := NewClient("")

	assert.ErrorIs(t, c.SetBaseURL("  "), ErrEmptyBaseURL)
	assert.ErrorIs(t, c.SetBaseURL("localhost:8000"), ErrInvalidBaseURL)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	require.NoError(t, c.SetBaseURL("https://agents.example.com/api/"))
	assert.Equal(t, "https://agents.example.com/api", c.BaseURL())
}

func TestSetBaseURL_Concurrent(t *testing.T) {
	c := NewClient("")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.SetBaseURL("http://other:8000")
		}()
		go func() {
			defer wg.Done()
			_ = c.resolve("/health")
		}()
	}
	wg.Wait()
}

// =============================================================================
// RATE LIMIT TESTS
// =============================================================================

func TestRateLimit_CancelledContext(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := NewClient(server.URL).WithRateLimit(0.001, 1)
	_, err := client.Do(context.Background(), http.MethodGet, "/a", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.Do(ctx, http.MethodGet, "/b", nil)
	assert.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default().Backend
	cfg.URL = "http://configured:8000"
	cfg.TimeoutSecs = 5

	c := NewFromConfig(cfg, nil)
	assert.Equal(t, "http://configured:8000", c.BaseURL())
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.NotNil(t, c.limiter)

	cfg.RateLimit = 0
	assert.Nil(t, NewFromConfig(cfg, nil).limiter)
}

func TestHTTPError_Message(t *testing.T) {
	assert.Equal(t, "boom", (&HTTPError{StatusCode: 500, Body: " boom\n"}).Error())
	assert.Equal(t, "Not Found", (&HTTPError{StatusCode: 404}).Error())
	assert.Equal(t, "599 Custom", (&HTTPError{StatusCode: 599, Status: "599 Custom"}).Error())
}
