package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DRSN-tech/storefront-gateway/internal/domain"
	"github.com/DRSN-tech/storefront-gateway/internal/usecase"
	"github.com/DRSN-tech/storefront-gateway/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalogUC struct {
	browseFn   func(ctx context.Context, req *usecase.BrowseReq) (*usecase.BrowseRes, error)
	searchFn   func(ctx context.Context, req *usecase.SearchReq) (*usecase.SearchRes, error)
	productFn  func(ctx context.Context, req *usecase.ProductReq) (*usecase.ProductRes, error)
	facetsFn   func(ctx context.Context) (*usecase.FacetsRes, error)
	searchesFn func(ctx context.Context, clientID string) ([]string, error)
	viewedFn   func(ctx context.Context, clientID string) ([]string, error)
}

func (s *stubCatalogUC) Browse(ctx context.Context, req *usecase.BrowseReq) (*usecase.BrowseRes, error) {
	return s.browseFn(ctx, req)
}

func (s *stubCatalogUC) Search(ctx context.Context, req *usecase.SearchReq) (*usecase.SearchRes, error) {
	return s.searchFn(ctx, req)
}

func (s *stubCatalogUC) Product(ctx context.Context, req *usecase.ProductReq) (*usecase.ProductRes, error) {
	return s.productFn(ctx, req)
}

func (s *stubCatalogUC) Facets(ctx context.Context) (*usecase.FacetsRes, error) {
	return s.facetsFn(ctx)
}

func (s *stubCatalogUC) Categories(context.Context) ([]usecase.CategoryInfo, error) {
	return []usecase.CategoryInfo{{ID: "electronics", Name: "Electronics", Count: 2}}, nil
}

func (s *stubCatalogUC) RecentSearches(ctx context.Context, clientID string) ([]string, error) {
	return s.searchesFn(ctx, clientID)
}

func (s *stubCatalogUC) RecentViewed(ctx context.Context, clientID string) ([]string, error) {
	return s.viewedFn(ctx, clientID)
}

func (s *stubCatalogUC) InvalidateCatalog() {}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{})        {}
func (nopLogger) Infof(string, ...interface{})         {}
func (nopLogger) Warnf(string, ...interface{})         {}
func (nopLogger) Errorf(error, string, ...interface{}) {}

func newTestRouter(uc usecase.CatalogUC) *chi.Mux {
	mux := chi.NewRouter()
	NewRouter(mux, nopLogger{}).Init(uc)
	return mux
}

func sampleProduct() domain.Product {
	return domain.Product{
		ID:         "p-1",
		Name:       "Smart Lamp",
		Price:      59999,
		OldPrice:   79999,
		Categories: []string{"electronics"},
		Image:      "/img/lamp.jpg",
		InStock:    true,
		Quantity:   4,
		Rating:     4.5,
	}
}

func TestBrowseCatalog_OK(t *testing.T) {
	uc := &stubCatalogUC{
		browseFn: func(_ context.Context, req *usecase.BrowseReq) (*usecase.BrowseRes, error) {
			assert.Equal(t, []string{"electronics"}, req.Filter.Categories)
			assert.Equal(t, domain.SortPriceLow, req.Filter.Sort)
			return &usecase.BrowseRes{
				Items:      []domain.Product{sampleProduct()},
				TotalCount: 1,
				TotalPages: 1,
				Page:       1,
				Source:     domain.SourceLive,
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/?category=electronics&sort=price-low", nil)
	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var page PageView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "p-1", page.Items[0].ID)
	assert.Equal(t, "599.99", page.Items[0].Price)
	assert.Equal(t, "799.99", page.Items[0].OldPrice)
	assert.True(t, page.Items[0].OnSale)
	assert.Equal(t, domain.SourceLive, page.Source)
}

func TestBrowseCatalog_InvalidPrice(t *testing.T) {
	uc := &stubCatalogUC{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/?price_min=abc", nil)
	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errRes ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errRes))
	assert.Equal(t, e.ErrInvalidPriceRange.Error(), errRes.Message)
}

func TestSearchCatalog_PassesClientID(t *testing.T) {
	var gotClientID string
	uc := &stubCatalogUC{
		searchFn: func(_ context.Context, req *usecase.SearchReq) (*usecase.SearchRes, error) {
			gotClientID = req.ClientID
			assert.Equal(t, "lamp", req.Term)
			return &usecase.SearchRes{Items: []domain.Product{}, TotalPages: 1, Page: 1, Source: domain.SourceLive}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/search?q=lamp", nil)
	req.AddCookie(&http.Cookie{Name: clientCookieName, Value: "client-42"})
	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "client-42", gotClientID)
}

func TestSearchCatalog_TooShortTerm(t *testing.T) {
	uc := &stubCatalogUC{
		searchFn: func(context.Context, *usecase.SearchReq) (*usecase.SearchRes, error) {
			return nil, e.ErrSearchTermTooShort
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/search?q=a", nil)
	newTestRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProduct_NotFound(t *testing.T) {
	uc := &stubCatalogUC{
		productFn: func(context.Context, *usecase.ProductReq) (*usecase.ProductRes, error) {
			return nil, e.ErrProductNotFound
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/ghost", nil)
	newTestRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProduct_OK(t *testing.T) {
	product := sampleProduct()
	uc := &stubCatalogUC{
		productFn: func(_ context.Context, req *usecase.ProductReq) (*usecase.ProductRes, error) {
			assert.Equal(t, "p-1", req.ID)
			return &usecase.ProductRes{Product: &product, Source: domain.SourceLive}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/p-1", nil)
	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var view ProductView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "Smart Lamp", view.Name)
	assert.Equal(t, int64(59999), view.PriceCents)
}

func TestGetFacets_OK(t *testing.T) {
	uc := &stubCatalogUC{
		facetsFn: func(context.Context) (*usecase.FacetsRes, error) {
			return &usecase.FacetsRes{
				Categories: []usecase.CategoryInfo{{ID: "electronics", Name: "Electronics", Count: 3}},
				Price:      domain.PriceRange{Min: 1999, Max: 89999},
				Source:     domain.SourceLive,
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/facets", nil)
	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var facets FacetsView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &facets))
	require.Len(t, facets.Categories, 1)
	assert.Equal(t, "19.99", facets.PriceMin)
	assert.Equal(t, "899.99", facets.PriceMax)
}

func TestHistory_NoCookieReturnsEmpty(t *testing.T) {
	uc := &stubCatalogUC{
		searchesFn: func(_ context.Context, clientID string) ([]string, error) {
			// middleware выдает новому клиенту UUID, история при этом пуста
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/history/searches", nil)
	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var history HistoryView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Equal(t, []string{}, history.Items)
}

func TestHistory_ReturnsItems(t *testing.T) {
	uc := &stubCatalogUC{
		viewedFn: func(_ context.Context, clientID string) ([]string, error) {
			assert.Equal(t, "client-42", clientID)
			return []string{"p-2", "p-1"}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/history/viewed", nil)
	req.AddCookie(&http.Cookie{Name: clientCookieName, Value: "client-42"})
	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var history HistoryView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Equal(t, []string{"p-2", "p-1"}, history.Items)
}

func TestClientIDMiddleware_SetsCookie(t *testing.T) {
	uc := &stubCatalogUC{
		facetsFn: func(context.Context) (*usecase.FacetsRes, error) {
			return &usecase.FacetsRes{Source: domain.SourceLive}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/facets", nil)
	newTestRouter(uc).ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == clientCookieName && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found)
}
