package http

import (
	"net/http"

	_ "github.com/DRSN-tech/storefront-gateway/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/storefront-gateway/internal/usecase"
	"github.com/DRSN-tech/storefront-gateway/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC) {
	r.router.Use(LoggingMiddleware(r.logger))
	r.router.Use(ClientIDMiddleware)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.router.Route("/api/v1", func(v1 chi.Router) {
		catalogHandler := NewCatalogHandler(catalogUC, r.logger)
		historyHandler := NewHistoryHandler(catalogUC, r.logger)
		registerCatalogRoutes(v1, catalogHandler)
		registerHistoryRoutes(v1, historyHandler)
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Route("/catalog", func(cat chi.Router) {
		cat.Get("/", h.browseCatalog)
		cat.Get("/search", h.searchCatalog)
		cat.Get("/facets", h.getFacets)
	})

	router.Route("/products", func(pr chi.Router) {
		pr.Get("/{id}", h.getProduct)
	})

	router.Get("/categories", h.getCategories)
}

func registerHistoryRoutes(router chi.Router, h *HistoryHandler) {
	router.Route("/history", func(hist chi.Router) {
		hist.Get("/searches", h.getRecentSearches)
		hist.Get("/viewed", h.getRecentViewed)
	})
}
