package usecase

import "github.com/DRSN-tech/storefront-gateway/internal/domain"

// CATALOG USECASE

// CatalogSnapshot — неизменяемый срез каталога, единица хранения кэша запросов.
// Categories заполняется только для полного (нефильтрованного) среза.
type CatalogSnapshot struct {
	Products   []domain.Product
	Categories []domain.Category
	Source     string // domain.SourceLive | domain.SourceFallback
}

// LoadQuery — параметры, пробрасываемые в каталоговый API бэкенда.
// Остальные фасеты применяются локально над нормализованным срезом.
type LoadQuery struct {
	Category   string
	Search     string
	NewArrival bool
}

// BrowseReq — запрос страницы витрины.
type BrowseReq struct {
	Filter domain.FilterState
}

// BrowseRes — страница витрины с арифметикой пагинации.
type BrowseRes struct {
	Items      []domain.Product
	TotalCount int
	TotalPages int
	Page       int
	Source     string
}

// SearchReq — поисковый запрос.
type SearchReq struct {
	Term     string
	Page     int
	PageSize int
	ClientID string // для записи в историю; пустой — история не ведётся
}

// SearchRes — ранжированный результат поиска.
type SearchRes struct {
	Items      []domain.Product
	TotalCount int
	TotalPages int
	Page       int
	Source     string
}

// ProductReq — запрос карточки товара.
type ProductReq struct {
	ID       string
	ClientID string
}

// ProductRes — карточка товара.
type ProductRes struct {
	Product *domain.Product
	Source  string
}

// CategoryInfo — опция фасета категории с числом товаров каталога.
type CategoryInfo struct {
	ID    string
	Name  string
	Count int
}

// FacetsRes — данные для отрисовки панели фильтров.
type FacetsRes struct {
	Categories []CategoryInfo
	Price      domain.PriceRange // границы цен по всему каталогу
	Source     string
}

// MAPPERS

func NewBrowseReq(filter domain.FilterState) *BrowseReq {
	return &BrowseReq{Filter: filter}
}

func NewSearchReq(term string, page, pageSize int, clientID string) *SearchReq {
	return &SearchReq{
		Term:     term,
		Page:     page,
		PageSize: pageSize,
		ClientID: clientID,
	}
}

func NewProductReq(id, clientID string) *ProductReq {
	return &ProductReq{
		ID:       id,
		ClientID: clientID,
	}
}

func NewCatalogSnapshot(products []domain.Product, categories []domain.Category, source string) *CatalogSnapshot {
	return &CatalogSnapshot{
		Products:   products,
		Categories: categories,
		Source:     source,
	}
}
