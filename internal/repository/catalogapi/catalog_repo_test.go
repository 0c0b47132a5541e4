package catalogapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront-gateway/internal/cfg"
	"github.com/DRSN-tech/storefront-gateway/internal/domain"
	"github.com/DRSN-tech/storefront-gateway/internal/usecase"
	"github.com/DRSN-tech/storefront-gateway/pkg/clients"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

func newTestRepo(t *testing.T, handler http.Handler) *CatalogRepo {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backendCfg := &cfg.BackendCfg{
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 1, // в тестах без повторов, чтобы не ждать backoff
	}

	return NewCatalogRepo(clients.NewBackendClient(backendCfg), backendCfg, nopLogger{})
}

func TestCatalogRepoLoad(t *testing.T) {
	t.Run("EnvelopeResponse", func(t *testing.T) {
		repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products", r.URL.Path)
			assert.Equal(t, "electronics", r.URL.Query().Get("category"))
			w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"Monitor","price":120}]}`))
		}))

		snap, err := repo.Load(context.Background(), usecase.LoadQuery{Category: "electronics"})
		require.NoError(t, err)

		assert.Equal(t, domain.SourceLive, snap.Source)
		require.Len(t, snap.Products, 1)
		assert.Equal(t, "Monitor", snap.Products[0].Name)
		assert.Equal(t, int64(12000), snap.Products[0].Price)
	})

	t.Run("LegacyBareArrayResponse", func(t *testing.T) {
		repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`[{"id":"a","name":"Keyboard","image_url":"/img/k.jpg"}]`))
		}))

		snap, err := repo.Load(context.Background(), usecase.LoadQuery{})
		require.NoError(t, err)

		assert.Equal(t, domain.SourceLive, snap.Source)
		require.Len(t, snap.Products, 1)
		assert.Equal(t, "/img/k.jpg", snap.Products[0].Image)
	})

	t.Run("BackendDownServesSeed", func(t *testing.T) {
		repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		snap, err := repo.Load(context.Background(), usecase.LoadQuery{})
		require.NoError(t, err)

		assert.Equal(t, domain.SourceFallback, snap.Source)
		assert.NotEmpty(t, snap.Products)
	})

	t.Run("MalformedBodyServesSeed", func(t *testing.T) {
		repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`not json at all`))
		}))

		snap, err := repo.Load(context.Background(), usecase.LoadQuery{})
		require.NoError(t, err)
		assert.Equal(t, domain.SourceFallback, snap.Source)
	})
}

func TestCatalogRepoLoadAll(t *testing.T) {
	t.Run("MergesCategories", func(t *testing.T) {
		repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/products":
				w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"Monitor","categories":["electronics"]}]}`))
			case "/api/categories":
				w.Write([]byte(`{"success":true,"data":[{"id":"electronics","name":"Electronics"}]}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))

		snap, err := repo.LoadAll(context.Background())
		require.NoError(t, err)

		assert.Equal(t, domain.SourceLive, snap.Source)
		require.Len(t, snap.Categories, 1)
		assert.Equal(t, "Electronics", snap.Categories[0].Name)
	})

	t.Run("CategoriesFailureIsNotFatal", func(t *testing.T) {
		repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/products" {
				w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"Monitor"}]}`))
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
		}))

		snap, err := repo.LoadAll(context.Background())
		require.NoError(t, err)

		assert.Equal(t, domain.SourceLive, snap.Source)
		assert.Empty(t, snap.Categories)
		require.Len(t, snap.Products, 1)
	})
}

func TestCatalogRepoLoadProduct(t *testing.T) {
	t.Run("Live", func(t *testing.T) {
		repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products/42", r.URL.Path)
			w.Write([]byte(`{"success":true,"data":{"id":42,"name":"Monitor"}}`))
		}))

		product, source, err := repo.LoadProduct(context.Background(), "42")
		require.NoError(t, err)
		assert.Equal(t, domain.SourceLive, source)
		assert.Equal(t, "Monitor", product.Name)
	})

	t.Run("BackendDownFindsSeedProduct", func(t *testing.T) {
		repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))

		product, source, err := repo.LoadProduct(context.Background(), "seed-1")
		require.NoError(t, err)
		assert.Equal(t, domain.SourceFallback, source)
		assert.Equal(t, "Wireless Headphones", product.Name)
	})

	t.Run("BackendDownUnknownIDNotFound", func(t *testing.T) {
		repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))

		_, _, err := repo.LoadProduct(context.Background(), "nope")
		assert.Error(t, err)
	})
}

func TestCatalogRepoRetries(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"Monitor"}]}`))
	}))
	t.Cleanup(srv.Close)

	backendCfg := &cfg.BackendCfg{
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 3,
	}
	repo := NewCatalogRepo(clients.NewBackendClient(backendCfg), backendCfg, nopLogger{})

	snap, err := repo.Load(context.Background(), usecase.LoadQuery{})
	require.NoError(t, err)

	assert.Equal(t, domain.SourceLive, snap.Source)
	assert.Equal(t, 3, calls)
}
