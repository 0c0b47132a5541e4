// Package catalogapi реализует загрузчик каталога поверх HTTP API бэкенда.
package catalogapi

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/DRSN-tech/storefront-gateway/internal/cfg"
	"github.com/DRSN-tech/storefront-gateway/internal/domain"
	"github.com/DRSN-tech/storefront-gateway/internal/repository/catalogapi/converter"
	"github.com/DRSN-tech/storefront-gateway/internal/usecase"
	"github.com/DRSN-tech/storefront-gateway/pkg/clients"
	"github.com/DRSN-tech/storefront-gateway/pkg/e"
	"github.com/DRSN-tech/storefront-gateway/pkg/jitter"
	"github.com/DRSN-tech/storefront-gateway/pkg/logger"
)

const (
	productsPath   = "/api/products"
	categoriesPath = "/api/categories"

	baseBackoff = 200 * time.Millisecond
	maxBackoff  = 2 * time.Second
)

// CatalogRepo — единственный производитель канонических записей каталога.
// При полной недоступности бэкенда отдаёт встроенный резервный каталог
// с пометкой domain.SourceFallback вместо ошибки.
type CatalogRepo struct {
	client *clients.BackendClient
	cfg    *cfg.BackendCfg
	logger logger.Logger
}

func NewCatalogRepo(client *clients.BackendClient, cfg *cfg.BackendCfg, logger logger.Logger) *CatalogRepo {
	return &CatalogRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Load возвращает нормализованный срез каталога по параметрам запроса.
func (r *CatalogRepo) Load(ctx context.Context, query usecase.LoadQuery) (*usecase.CatalogSnapshot, error) {
	const op = "CatalogRepo.Load"

	values := url.Values{}
	if query.Category != "" {
		values.Set("category", query.Category)
	}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	if query.NewArrival {
		values.Set("new_arrival", "true")
	}

	products, ok := r.loadProducts(ctx, op, values)
	if !ok {
		return r.seedSnapshot(), nil
	}

	return usecase.NewCatalogSnapshot(products, nil, domain.SourceLive), nil
}

// LoadAll возвращает полный срез каталога вместе с категориями.
func (r *CatalogRepo) LoadAll(ctx context.Context) (*usecase.CatalogSnapshot, error) {
	const op = "CatalogRepo.LoadAll"

	products, ok := r.loadProducts(ctx, op, nil)
	if !ok {
		return r.seedSnapshot(), nil
	}

	// Категории — вспомогательные данные: их отказ не роняет срез,
	// имена восстановимы из слагов.
	var categories []domain.Category
	if body, err := r.fetch(ctx, categoriesPath, nil); err != nil {
		r.logger.Warnf("Failed to load categories, falling back to slugs: %v", e.Wrap(op, err))
	} else if data, err := converter.DecodeList(body); err != nil {
		r.logger.Warnf("Unexpected categories payload: %v", e.Wrap(op, err))
	} else if categories, err = converter.ToCategories(data); err != nil {
		r.logger.Warnf("Failed to parse categories: %v", e.Wrap(op, err))
	}

	return usecase.NewCatalogSnapshot(products, categories, domain.SourceLive), nil
}

// LoadProduct возвращает одну карточку товара.
// При недоступности бэкенда товар ищется в резервном каталоге.
func (r *CatalogRepo) LoadProduct(ctx context.Context, id string) (*domain.Product, string, error) {
	const op = "CatalogRepo.LoadProduct"

	body, err := r.fetch(ctx, productsPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		r.logger.Warnf("Catalog backend unavailable, searching seed catalog: %v", e.Wrap(op, err))
		for i := range seedProducts {
			if seedProducts[i].ID == id {
				return &seedProducts[i], domain.SourceFallback, nil
			}
		}
		return nil, "", e.ErrProductNotFound
	}

	data, err := converter.DecodeItem(body)
	if err != nil {
		return nil, "", e.Wrap(op, err)
	}

	var payload converter.ProductPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, "", e.Wrap(op, err)
	}

	product, err := converter.ToProduct(&payload)
	if err != nil {
		return nil, "", e.Wrap(op, e.ErrProductNotFound)
	}

	return product, domain.SourceLive, nil
}

// loadProducts загружает и нормализует список товаров.
// Второй результат false означает деградацию до резервного каталога.
func (r *CatalogRepo) loadProducts(ctx context.Context, op string, values url.Values) ([]domain.Product, bool) {
	body, err := r.fetch(ctx, productsPath, values)
	if err != nil {
		r.logger.Warnf("Catalog backend unavailable, serving seed catalog: %v", e.Wrap(op, err))
		return nil, false
	}

	data, err := converter.DecodeList(body)
	if err != nil {
		r.logger.Warnf("Unexpected products payload, serving seed catalog: %v", e.Wrap(op, err))
		return nil, false
	}

	products, skipped, err := converter.ToProducts(data)
	if err != nil {
		r.logger.Warnf("Failed to parse products, serving seed catalog: %v", e.Wrap(op, err))
		return nil, false
	}

	if len(skipped) > 0 {
		r.logger.Warnf("Skipped %d unusable product records (%v)", len(skipped), skipped)
	}

	return products, true
}

// fetch выполняет запрос с повторами и экспоненциальной задержкой с джиттером.
func (r *CatalogRepo) fetch(ctx context.Context, path string, values url.Values) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < r.cfg.MaxRetries; attempt++ {
		body, err := r.client.GetJSON(ctx, path, values)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt == r.cfg.MaxRetries-1 {
			break
		}

		sleepTime := jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter)
		r.logger.Warnf("Catalog backend request failed, retrying in %v (attempt %d): %v", sleepTime, attempt+1, err)

		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

func (r *CatalogRepo) seedSnapshot() *usecase.CatalogSnapshot {
	return usecase.NewCatalogSnapshot(seedProducts, seedCategories, domain.SourceFallback)
}
