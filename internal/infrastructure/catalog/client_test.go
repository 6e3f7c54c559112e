package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasmrqs/financial-football/internal/platform/logging"
	"github.com/lucasmrqs/financial-football/internal/platform/resilience"
)

const catalogPayload = `[
	{"id": 1, "name": "Tesouro Selic", "type": "Renda Fixa", "suitability": 10, "return": 20, "safety": 100, "description": "Segurança máxima."},
	{"id": 13, "name": "Bitcoin", "type": "Cripto", "suitability": 90, "return": 95, "safety": 10, "description": "Ouro digital."}
]`

func newTestClient(url string, retries int) *Client {
	return NewClient(ClientConfig{
		URL:        url,
		Timeout:    2 * time.Second,
		MaxRetries: retries,
		CacheTTL:   time.Minute,
		Logger:     logging.NewNop(),
	})
}

func TestLoadAssetsParsesArrayPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogPayload))
	}))
	defer srv.Close()

	assets, err := newTestClient(srv.URL, 0).LoadAssets(context.Background())
	require.NoError(t, err)

	require.Len(t, assets, 2)
	assert.Equal(t, "Tesouro Selic", assets[0].Name)
	assert.Equal(t, 90, assets[1].Suitability)
}

func TestLoadAssetsParsesEnvelopePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"assets": ` + catalogPayload + `}`))
	}))
	defer srv.Close()

	assets, err := newTestClient(srv.URL, 0).LoadAssets(context.Background())
	require.NoError(t, err)
	assert.Len(t, assets, 2)
}

func TestLoadAssetsCachesResponse(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(catalogPayload))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0)
	ctx := context.Background()

	_, err := client.LoadAssets(ctx)
	require.NoError(t, err)
	_, err = client.LoadAssets(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), hits.Load())
}

func TestLoadAssetsRetriesServerErrors(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(catalogPayload))
	}))
	defer srv.Close()

	assets, err := newTestClient(srv.URL, 2).LoadAssets(context.Background())
	require.NoError(t, err)
	assert.Len(t, assets, 2)
	assert.Equal(t, int64(2), hits.Load())
}

func TestLoadAssetsRejectsBadRequestWithoutRetry(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).LoadAssets(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int64(1), hits.Load())
}

func TestLoadAssetsRejectsEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).LoadAssets(context.Background())
	assert.Error(t, err)
}

func TestLoadAssetsOpenBreakerShortCircuits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		URL:     srv.URL,
		Timeout: time.Second,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
	ctx := context.Background()

	_, err := client.LoadAssets(ctx)
	require.Error(t, err)

	_, err = client.LoadAssets(ctx)
	require.Error(t, err)
	assert.Equal(t, resilience.CircuitStateOpen, client.breaker.State())
}
