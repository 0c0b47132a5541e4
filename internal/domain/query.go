package domain

import (
	"fmt"
	"sort"
	"strings"
)

// SortOrder — порядок сортировки результата.
type SortOrder string

const (
	SortDefault   SortOrder = "default" // порядок каталога (featured)
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortNameAsc   SortOrder = "name-asc"
	SortNameDesc  SortOrder = "name-desc"
	SortNewest    SortOrder = "newest"
)

// ParseSortOrder возвращает известный порядок сортировки, иначе SortDefault.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortPriceLow, SortPriceHigh, SortNameAsc, SortNameDesc, SortNewest:
		return SortOrder(s)
	default:
		return SortDefault
	}
}

const (
	// DefaultPageSize — размер страницы витрины.
	DefaultPageSize = 9

	// MinSearchTermLength — минимальная длина поискового запроса.
	MinSearchTermLength = 2

	// AllProductsSignature — ключ выделенной записи кэша с полным каталогом.
	AllProductsSignature = "catalog:all"
)

// PriceRange — диапазон цен в копейках, границы включительно.
// Max == 0 означает отсутствие верхней границы.
type PriceRange struct {
	Min int64
	Max int64
}

// FilterState — полное состояние запроса витрины.
// Совокупность полей образует сигнатуру, по которой кэшируются результаты.
type FilterState struct {
	Categories []string
	Price      PriceRange
	InStock    bool
	OnSale     bool
	NewArrival bool
	SearchTerm string
	Sort       SortOrder
	Page       int
	PageSize   int
}

// NewFilterState возвращает состояние без активных фасетов.
func NewFilterState() FilterState {
	return FilterState{
		Sort:     SortDefault,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// Normalized приводит состояние к каноническому виду: страница не меньше 1,
// размер страницы по умолчанию, подрезанный поисковый запрос.
func (f FilterState) Normalized() FilterState {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.Sort == "" {
		f.Sort = SortDefault
	}
	f.SearchTerm = strings.TrimSpace(f.SearchTerm)

	return f
}

// Signature возвращает канонический ключ кэша запроса.
// Два состояния равны тогда и только тогда, когда равны все поля;
// порядок выбранных категорий значения не имеет.
func (f FilterState) Signature() string {
	f = f.Normalized()

	cats := make([]string, len(f.Categories))
	copy(cats, f.Categories)
	sort.Strings(cats)

	return fmt.Sprintf(
		"cat=%s|price=%d-%d|stock=%t|sale=%t|new=%t|q=%s|sort=%s|page=%d|size=%d",
		strings.Join(cats, ","),
		f.Price.Min, f.Price.Max,
		f.InStock, f.OnSale, f.NewArrival,
		strings.ToLower(f.SearchTerm),
		f.Sort,
		f.Page, f.PageSize,
	)
}
