package usecase

import (
	"sort"
	"strings"

	"github.com/DRSN-tech/storefront-gateway/internal/domain"
)

// facetPage — результат применения фасетов к срезу каталога.
type facetPage struct {
	Items      []domain.Product
	TotalCount int
	TotalPages int
	Page       int
}

// applyFacets применяет к срезу каталога все активные фасеты конъюнктивно,
// затем сортировку и пагинацию. Исходный срез не изменяется.
func applyFacets(products []domain.Product, f domain.FilterState) facetPage {
	f = f.Normalized()

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchesFacets(&p, &f) {
			filtered = append(filtered, p)
		}
	}

	sortProducts(filtered, f.Sort)

	items, totalPages, page := paginate(filtered, f.Page, f.PageSize)

	return facetPage{
		Items:      items,
		TotalCount: len(filtered),
		TotalPages: totalPages,
		Page:       page,
	}
}

// matchesFacets проверяет товар на соответствие каждому активному фасету.
func matchesFacets(p *domain.Product, f *domain.FilterState) bool {
	// Пустой выбор категорий означает «все категории».
	if len(f.Categories) > 0 {
		found := false
		for _, id := range f.Categories {
			if p.HasCategory(id) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	// Границы диапазона включительно; Max == 0 — верхней границы нет.
	if p.Price < f.Price.Min {
		return false
	}
	if f.Price.Max > 0 && p.Price > f.Price.Max {
		return false
	}

	if f.InStock && !p.InStock {
		return false
	}

	if f.OnSale && !p.OnSale() {
		return false
	}

	if f.NewArrival && !p.NewArrival {
		return false
	}

	return true
}

// sortProducts сортирует товары на месте. Сортировка стабильная:
// равные элементы сохраняют порядок каталога.
func sortProducts(items []domain.Product, order domain.SortOrder) {
	switch order {
	case domain.SortPriceLow:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price < items[j].Price
		})
	case domain.SortPriceHigh:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price > items[j].Price
		})
	case domain.SortNameAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	case domain.SortNameDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) > strings.ToLower(items[j].Name)
		})
	case domain.SortNewest:
		// Новинки поднимаются наверх, остальной порядок сохраняется.
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].NewArrival && !items[j].NewArrival
		})
	default:
		// SortDefault — порядок бэкенда (featured), без пересортировки.
	}
}

// paginate возвращает страницу, общее число страниц и фактический номер страницы.
// Запрос страницы за пределами диапазона возвращает первую страницу.
func paginate(items []domain.Product, page, pageSize int) ([]domain.Product, int, int) {
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return items[start:end], totalPages, page
}

// categoryFacets считает опции фасета категорий по нефильтрованному каталогу.
// Счётчики намеренно отражают весь каталог, а не текущую выборку.
func categoryFacets(products []domain.Product, categories []domain.Category) []CategoryInfo {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, p := range products {
		for _, id := range p.Categories {
			if _, ok := counts[id]; !ok {
				order = append(order, id)
			}
			counts[id]++
		}
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	// Категории бэкенда идут первыми в его порядке, затем категории,
	// встреченные только в товарах.
	result := make([]CategoryInfo, 0, len(counts))
	seen := make(map[string]bool, len(counts))
	for _, c := range categories {
		result = append(result, CategoryInfo{
			ID:    c.ID,
			Name:  displayName(c.ID, names),
			Count: counts[c.ID],
		})
		seen[c.ID] = true
	}
	for _, id := range order {
		if seen[id] {
			continue
		}
		result = append(result, CategoryInfo{
			ID:    id,
			Name:  displayName(id, names),
			Count: counts[id],
		})
	}

	return result
}

func displayName(id string, names map[string]string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return domain.CategoryNameFromSlug(id)
}

// priceBounds возвращает минимальную и максимальную цену каталога.
func priceBounds(products []domain.Product) domain.PriceRange {
	if len(products) == 0 {
		return domain.PriceRange{}
	}

	bounds := domain.PriceRange{Min: products[0].Price, Max: products[0].Price}
	for _, p := range products[1:] {
		if p.Price < bounds.Min {
			bounds.Min = p.Price
		}
		if p.Price > bounds.Max {
			bounds.Max = p.Price
		}
	}

	return bounds
}
