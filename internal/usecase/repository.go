package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront-gateway/internal/domain"
)

type CatalogRepository interface {
	// Load возвращает нормализованный срез каталога по параметрам запроса.
	// При недоступности бэкенда возвращается резервный каталог
	// с Source == domain.SourceFallback, а не ошибка.
	Load(ctx context.Context, query LoadQuery) (*CatalogSnapshot, error)
	LoadAll(ctx context.Context) (*CatalogSnapshot, error)
	LoadProduct(ctx context.Context, id string) (*domain.Product, string, error)
}

type QueryCache interface {
	Get(signature string) (*CatalogSnapshot, bool)
	Put(signature string, snap *CatalogSnapshot)
	InvalidateAll()
}

type HistoryRepository interface {
	PushSearch(ctx context.Context, clientID, term string) error
	RecentSearches(ctx context.Context, clientID string) ([]string, error)
	PushViewed(ctx context.Context, clientID, productID string) error
	RecentViewed(ctx context.Context, clientID string) ([]string, error)
}
