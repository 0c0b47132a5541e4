package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront-gateway/internal/usecase"
	"github.com/DRSN-tech/storefront-gateway/pkg/logger"
)

type HistoryHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewHistoryHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *HistoryHandler {
	return &HistoryHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// HistoryView — упорядоченный список истории, новые записи первыми.
type HistoryView struct {
	Items []string `json:"items"`
}

// getRecentSearches
//
//	@Summary		Недавние поисковые запросы клиента
//	@Tags			history
//	@Produce		json
//	@Success		200	{object}	HistoryView
//	@Router			/history/searches [get]
func (h *HistoryHandler) getRecentSearches(w http.ResponseWriter, r *http.Request) {
	id := clientID(r)
	if id == "" {
		WriteSuccess(w, http.StatusOK, &HistoryView{Items: []string{}})
		return
	}

	items, err := h.catalogUsecase.RecentSearches(r.Context(), id)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}
	if items == nil {
		items = []string{}
	}

	WriteSuccess(w, http.StatusOK, &HistoryView{Items: items})
}

// getRecentViewed
//
//	@Summary		Недавно просмотренные товары клиента
//	@Tags			history
//	@Produce		json
//	@Success		200	{object}	HistoryView
//	@Router			/history/viewed [get]
func (h *HistoryHandler) getRecentViewed(w http.ResponseWriter, r *http.Request) {
	id := clientID(r)
	if id == "" {
		WriteSuccess(w, http.StatusOK, &HistoryView{Items: []string{}})
		return
	}

	items, err := h.catalogUsecase.RecentViewed(r.Context(), id)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}
	if items == nil {
		items = []string{}
	}

	WriteSuccess(w, http.StatusOK, &HistoryView{Items: items})
}
