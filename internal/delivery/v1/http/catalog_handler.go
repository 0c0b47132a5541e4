package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront-gateway/internal/domain"
	"github.com/DRSN-tech/storefront-gateway/internal/usecase"
	"github.com/DRSN-tech/storefront-gateway/pkg/e"
	"github.com/DRSN-tech/storefront-gateway/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// ProductView — представление товара в ответе API.
type ProductView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price"`
	PriceCents  int64    `json:"price_cents"`
	OldPrice    string   `json:"old_price,omitempty"`
	OnSale      bool     `json:"on_sale"`
	Categories  []string `json:"categories"`
	Image       string   `json:"image"`
	Gallery     []string `json:"gallery,omitempty"`
	InStock     bool     `json:"in_stock"`
	Quantity    int      `json:"quantity"`
	Trending    bool     `json:"trending,omitempty"`
	BestSeller  bool     `json:"best_seller,omitempty"`
	NewArrival  bool     `json:"new_arrival,omitempty"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
}

// PageView — страница товаров с арифметикой пагинации.
type PageView struct {
	Items      []ProductView `json:"items"`
	TotalCount int           `json:"total_count"`
	TotalPages int           `json:"total_pages"`
	Page       int           `json:"page"`
	Source     string        `json:"source"`
}

// CategoryView — опция фасета категории.
type CategoryView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FacetsView — данные панели фильтров.
type FacetsView struct {
	Categories []CategoryView `json:"categories"`
	PriceMin   string         `json:"price_min"`
	PriceMax   string         `json:"price_max"`
	Source     string         `json:"source"`
}

func newProductView(p *domain.Product) ProductView {
	view := ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       formatCents(p.Price),
		PriceCents:  p.Price,
		OnSale:      p.OnSale(),
		Categories:  p.Categories,
		Image:       p.Image,
		Gallery:     p.Gallery,
		InStock:     p.InStock,
		Quantity:    p.Quantity,
		Trending:    p.Trending,
		BestSeller:  p.BestSeller,
		NewArrival:  p.NewArrival,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
	}
	if p.OnSale() {
		view.OldPrice = formatCents(p.OldPrice)
	}

	return view
}

func newPageView(items []domain.Product, totalCount, totalPages, page int, source string) *PageView {
	views := make([]ProductView, 0, len(items))
	for i := range items {
		views = append(views, newProductView(&items[i]))
	}

	return &PageView{
		Items:      views,
		TotalCount: totalCount,
		TotalPages: totalPages,
		Page:       page,
		Source:     source,
	}
}

// browseCatalog
//
//	@Summary		Страница каталога
//	@Description	Возвращает страницу товаров с учётом фильтров, сортировки и пагинации
//	@Tags			catalog
//	@Produce		json
//	@Param			category	query		string	false	"Идентификаторы категорий через запятую"
//	@Param			price_min	query		number	false	"Нижняя граница цены"
//	@Param			price_max	query		number	false	"Верхняя граница цены"
//	@Param			in_stock	query		bool	false	"Только товары в наличии"
//	@Param			on_sale		query		bool	false	"Только товары со скидкой"
//	@Param			new_arrival	query		bool	false	"Только новинки"
//	@Param			sort		query		string	false	"Порядок сортировки"	Enums(default, price-low, price-high, name-asc, name-desc, newest)
//	@Param			page		query		int		false	"Номер страницы"
//	@Success		200			{object}	PageView
//	@Failure		400			{object}	ErrorResponse
//	@Router			/catalog [get]
func (h *CatalogHandler) browseCatalog(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilterState(r.URL.Query())
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := h.catalogUsecase.Browse(r.Context(), usecase.NewBrowseReq(filter))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newPageView(res.Items, res.TotalCount, res.TotalPages, res.Page, res.Source))
}

// searchCatalog
//
//	@Summary		Поиск по каталогу
//	@Description	Ранжированный поиск по названию, описанию и категориям товаров
//	@Tags			catalog
//	@Produce		json
//	@Param			q		query		string	true	"Поисковый запрос (минимум 2 символа)"
//	@Param			page	query		int		false	"Номер страницы"
//	@Success		200		{object}	PageView
//	@Failure		400		{object}	ErrorResponse
//	@Router			/catalog/search [get]
func (h *CatalogHandler) searchCatalog(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r.URL.Query().Get("page"))
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	req := usecase.NewSearchReq(r.URL.Query().Get("q"), page, domain.DefaultPageSize, clientID(r))

	res, err := h.catalogUsecase.Search(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newPageView(res.Items, res.TotalCount, res.TotalPages, res.Page, res.Source))
}

// getProduct
//
//	@Summary		Карточка товара
//	@Tags			catalog
//	@Produce		json
//	@Param			id	path		string	true	"Идентификатор товара"
//	@Success		200	{object}	ProductView
//	@Failure		404	{object}	ErrorResponse
//	@Router			/products/{id} [get]
func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res, err := h.catalogUsecase.Product(r.Context(), usecase.NewProductReq(id, clientID(r)))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductView(res.Product))
}

// getFacets
//
//	@Summary		Данные панели фильтров
//	@Description	Категории с количеством товаров и границы цен по каталогу
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	FacetsView
//	@Router			/catalog/facets [get]
func (h *CatalogHandler) getFacets(w http.ResponseWriter, r *http.Request) {
	res, err := h.catalogUsecase.Facets(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	categories := make([]CategoryView, 0, len(res.Categories))
	for _, c := range res.Categories {
		categories = append(categories, CategoryView{ID: c.ID, Name: c.Name, Count: c.Count})
	}

	WriteSuccess(w, http.StatusOK, &FacetsView{
		Categories: categories,
		PriceMin:   formatCents(res.Price.Min),
		PriceMax:   formatCents(res.Price.Max),
		Source:     res.Source,
	})
}

// getCategories
//
//	@Summary		Категории каталога
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}	CategoryView
//	@Router			/categories [get]
func (h *CatalogHandler) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogUsecase.Categories(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, CategoryView{ID: c.ID, Name: c.Name, Count: c.Count})
	}

	WriteSuccess(w, http.StatusOK, views)
}
