package usecase

import (
	"fmt"
	"testing"

	"github.com/DRSN-tech/storefront-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixedCatalog() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Monitor", Price: 12000, Categories: []string{"electronics"}, InStock: true},
		{ID: "2", Name: "Keyboard", Price: 7000, Categories: []string{"electronics"}, InStock: true, OldPrice: 9000},
		{ID: "3", Name: "Backpack", Price: 8000, Categories: []string{"bags"}, InStock: true},
		{ID: "4", Name: "Webcam", Price: 4000, Categories: []string{"electronics"}, InStock: false, NewArrival: true},
		{ID: "5", Name: "Desk Mat", Price: 2500, Categories: []string{"office"}, InStock: true},
	}
}

func TestApplyFacets(t *testing.T) {
	t.Run("CategoryAndPriceWithSort", func(t *testing.T) {
		f := domain.NewFilterState()
		f.Categories = []string{"electronics"}
		f.Price = domain.PriceRange{Min: 5000, Max: 15000}
		f.Sort = domain.SortPriceLow

		page := applyFacets(mixedCatalog(), f)

		// Только электроника в диапазоне 50–150, по возрастанию цены.
		require.Equal(t, 2, page.TotalCount)
		assert.Equal(t, "2", page.Items[0].ID)
		assert.Equal(t, "1", page.Items[1].ID)
	})

	t.Run("ConjunctiveAcrossFacets", func(t *testing.T) {
		f := domain.NewFilterState()
		f.Categories = []string{"electronics"}
		f.InStock = true
		f.OnSale = true

		page := applyFacets(mixedCatalog(), f)

		require.Equal(t, 1, page.TotalCount)
		assert.Equal(t, "2", page.Items[0].ID)
	})

	t.Run("RelaxingFacetNeverShrinksResult", func(t *testing.T) {
		strict := domain.NewFilterState()
		strict.Categories = []string{"electronics"}
		strict.InStock = true
		strict.Price = domain.PriceRange{Min: 5000, Max: 15000}

		strictCount := applyFacets(mixedCatalog(), strict).TotalCount

		relaxations := []domain.FilterState{
			func() domain.FilterState { f := strict; f.Categories = nil; return f }(),
			func() domain.FilterState { f := strict; f.InStock = false; return f }(),
			func() domain.FilterState { f := strict; f.Price = domain.PriceRange{}; return f }(),
		}

		for i, relaxed := range relaxations {
			count := applyFacets(mixedCatalog(), relaxed).TotalCount
			assert.GreaterOrEqual(t, count, strictCount, "relaxation %d", i)
		}
	})

	t.Run("EmptyCategorySelectionMeansAll", func(t *testing.T) {
		page := applyFacets(mixedCatalog(), domain.NewFilterState())
		assert.Equal(t, 5, page.TotalCount)
	})

	t.Run("NewArrivalFlag", func(t *testing.T) {
		f := domain.NewFilterState()
		f.NewArrival = true

		page := applyFacets(mixedCatalog(), f)

		require.Equal(t, 1, page.TotalCount)
		assert.Equal(t, "4", page.Items[0].ID)
	})

	t.Run("InclusiveBounds", func(t *testing.T) {
		f := domain.NewFilterState()
		f.Price = domain.PriceRange{Min: 2500, Max: 4000}

		page := applyFacets(mixedCatalog(), f)

		assert.Equal(t, 2, page.TotalCount)
	})

	t.Run("EmptyResultIsValid", func(t *testing.T) {
		f := domain.NewFilterState()
		f.Price = domain.PriceRange{Min: 1_000_000, Max: 0}

		page := applyFacets(mixedCatalog(), f)

		assert.Equal(t, 0, page.TotalCount)
		assert.Equal(t, 1, page.TotalPages)
		assert.Empty(t, page.Items)
	})
}

func TestSortProducts(t *testing.T) {
	t.Run("NameAscDesc", func(t *testing.T) {
		items := mixedCatalog()
		sortProducts(items, domain.SortNameAsc)
		assert.Equal(t, "Backpack", items[0].Name)

		sortProducts(items, domain.SortNameDesc)
		assert.Equal(t, "Webcam", items[0].Name)
	})

	t.Run("NewestIsStable", func(t *testing.T) {
		items := mixedCatalog()
		sortProducts(items, domain.SortNewest)

		// Новинка впереди, остальные сохраняют порядок каталога.
		assert.Equal(t, "4", items[0].ID)
		assert.Equal(t, "1", items[1].ID)
		assert.Equal(t, "2", items[2].ID)
	})

	t.Run("DefaultKeepsCatalogOrder", func(t *testing.T) {
		items := mixedCatalog()
		sortProducts(items, domain.SortDefault)
		assert.Equal(t, "1", items[0].ID)
		assert.Equal(t, "5", items[4].ID)
	})
}

func TestPaginate(t *testing.T) {
	catalog := make([]domain.Product, 23)
	for i := range catalog {
		catalog[i] = domain.Product{ID: fmt.Sprintf("p%d", i)}
	}

	t.Run("TotalPagesArithmetic", func(t *testing.T) {
		items, totalPages, page := paginate(catalog, 1, 9)
		assert.Len(t, items, 9)
		assert.Equal(t, 3, totalPages)
		assert.Equal(t, 1, page)

		items, _, _ = paginate(catalog, 3, 9)
		assert.Len(t, items, 5)
	})

	t.Run("PageBeyondRangeClampsToFirst", func(t *testing.T) {
		first, _, _ := paginate(catalog, 1, 9)
		clamped, totalPages, page := paginate(catalog, 5, 9)

		assert.Equal(t, 3, totalPages)
		assert.Equal(t, 1, page)
		assert.Equal(t, first, clamped)
	})

	t.Run("EmptyListSinglePage", func(t *testing.T) {
		items, totalPages, page := paginate(nil, 1, 9)
		assert.Empty(t, items)
		assert.Equal(t, 1, totalPages)
		assert.Equal(t, 1, page)
	})
}

func TestCategoryFacets(t *testing.T) {
	products := mixedCatalog()
	categories := []domain.Category{
		{ID: "electronics", Name: "Electronics"},
		{ID: "bags", Name: ""},
	}

	facets := categoryFacets(products, categories)

	require.Len(t, facets, 3)
	assert.Equal(t, CategoryInfo{ID: "electronics", Name: "Electronics", Count: 3}, facets[0])
	// Имя без отображаемого значения выводится из слага.
	assert.Equal(t, CategoryInfo{ID: "bags", Name: "Bags", Count: 1}, facets[1])
	// Категория, встреченная только в товарах, тоже попадает в опции.
	assert.Equal(t, CategoryInfo{ID: "office", Name: "Office", Count: 1}, facets[2])
}

func TestPriceBounds(t *testing.T) {
	bounds := priceBounds(mixedCatalog())
	assert.Equal(t, domain.PriceRange{Min: 2500, Max: 12000}, bounds)

	assert.Equal(t, domain.PriceRange{}, priceBounds(nil))
}
