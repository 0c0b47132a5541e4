package usecase

import (
	"testing"

	"github.com/DRSN-tech/storefront-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedNames(products []domain.Product) []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}

func TestRankProducts(t *testing.T) {
	catalog := []domain.Product{
		{ID: "1", Name: "Wireless Headphones", Description: "noise cancelling"},
		{ID: "2", Name: "Wireless Mouse"},
		{ID: "3", Name: "Leather Backpack"},
	}

	t.Run("MultiTermConjunctive", func(t *testing.T) {
		result := rankProducts(catalog, nil, "wireless headphones")

		// Оба терма встречаются только у первого товара; товар,
		// совпавший лишь по одному терму, в выдачу не попадает.
		require.Len(t, result, 1)
		assert.Equal(t, "1", result[0].ID)
	})

	t.Run("SingleTermSubstring", func(t *testing.T) {
		result := rankProducts(catalog, nil, "wireless")

		require.Len(t, result, 2)
		assert.Equal(t, []string{"Wireless Headphones", "Wireless Mouse"}, rankedNames(result))
	})

	t.Run("HigherScoreRanksFirst", func(t *testing.T) {
		products := []domain.Product{
			{ID: "1", Name: "Office Chair", Description: "ergonomic"},
			{ID: "2", Name: "Desk", Description: "pairs well with an office chair"},
		}

		result := rankProducts(products, nil, "chair")

		// Совпадение по имени (10) весит больше совпадения по описанию (5).
		require.Len(t, result, 2)
		assert.Equal(t, "1", result[0].ID)
	})

	t.Run("ExactAndPrefixBoost", func(t *testing.T) {
		products := []domain.Product{
			{ID: "1", Name: "Smart Lamp"},
			{ID: "2", Name: "Lamp"},
			{ID: "3", Name: "Lamp Shade"},
		}

		result := rankProducts(products, nil, "lamp")

		require.Len(t, result, 3)
		// Точное совпадение и префикс "lamp " получают добавку,
		// при равных очках сохраняется порядок каталога.
		assert.Equal(t, []string{"Lamp", "Lamp Shade", "Smart Lamp"}, rankedNames(result))
	})

	t.Run("TiesPreserveCatalogOrder", func(t *testing.T) {
		products := []domain.Product{
			{ID: "a", Name: "USB Cable Type-C"},
			{ID: "b", Name: "USB Cable Micro"},
			{ID: "c", Name: "USB Cable Lightning"},
		}

		result := rankProducts(products, nil, "cable")

		require.Len(t, result, 3)
		assert.Equal(t, "a", result[0].ID)
		assert.Equal(t, "b", result[1].ID)
		assert.Equal(t, "c", result[2].ID)
	})

	t.Run("CategoryNameMatch", func(t *testing.T) {
		products := []domain.Product{
			{ID: "1", Name: "Quantum X200", Categories: []string{"headphones"}},
			{ID: "2", Name: "Leather Wallet", Categories: []string{"accessories"}},
		}
		names := map[string]string{
			"headphones":  "headphones",
			"accessories": "accessories",
		}

		result := rankProducts(products, names, "headphones")

		require.Len(t, result, 1)
		assert.Equal(t, "1", result[0].ID)
	})

	t.Run("CategoryNameFallsBackToSlug", func(t *testing.T) {
		products := []domain.Product{
			{ID: "1", Name: "Soundbar", Categories: []string{"home-audio"}},
		}

		result := rankProducts(products, nil, "audio")

		require.Len(t, result, 1)
	})

	t.Run("EmptyQueryReturnsNothing", func(t *testing.T) {
		assert.Empty(t, rankProducts(catalog, nil, ""))
		assert.Empty(t, rankProducts(catalog, nil, "   "))
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		result := rankProducts(catalog, nil, "WIRELESS Mouse")

		require.Len(t, result, 1)
		assert.Equal(t, "2", result[0].ID)
	})
}
