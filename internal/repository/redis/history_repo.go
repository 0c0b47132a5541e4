package redis

import (
	"context"
	"fmt"
	"strings"

	"github.com/DRSN-tech/storefront-gateway/internal/cfg"
	"github.com/DRSN-tech/storefront-gateway/pkg/clients"
	"github.com/DRSN-tech/storefront-gateway/pkg/e"
	"github.com/DRSN-tech/storefront-gateway/pkg/logger"
	"github.com/jimlawless/whereami"
)

// HistoryRepo хранит историю клиента витрины в Redis: недавние поисковые
// запросы и просмотренные товары, ограниченными списками от новых к старым.
// Потеря истории некритична, поэтому ошибки записи логируются и глушатся.
type HistoryRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewHistoryRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *HistoryRepo {
	return &HistoryRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// PushSearch добавляет поисковый запрос в начало истории клиента.
// Повтор существующего запроса поднимает его наверх, список подрезается до лимита.
func (r *HistoryRepo) PushSearch(ctx context.Context, clientID, term string) error {
	term = strings.TrimSpace(strings.ToLower(term))
	if clientID == "" || term == "" {
		return nil
	}

	r.pushBounded(ctx, r.searchKey(clientID), term, r.cfg.SearchCap)
	return nil
}

// RecentSearches возвращает недавние поисковые запросы, новые первыми.
func (r *HistoryRepo) RecentSearches(ctx context.Context, clientID string) ([]string, error) {
	return r.recent(ctx, r.searchKey(clientID), r.cfg.SearchCap)
}

// PushViewed добавляет товар в начало списка просмотренных.
func (r *HistoryRepo) PushViewed(ctx context.Context, clientID, productID string) error {
	if clientID == "" || productID == "" {
		return nil
	}

	r.pushBounded(ctx, r.viewedKey(clientID), productID, r.cfg.ViewedCap)
	return nil
}

// RecentViewed возвращает идентификаторы недавно просмотренных товаров.
func (r *HistoryRepo) RecentViewed(ctx context.Context, clientID string) ([]string, error) {
	return r.recent(ctx, r.viewedKey(clientID), r.cfg.ViewedCap)
}

// pushBounded атомарно (pipeline) поднимает значение в начало списка,
// подрезает список до лимита и продлевает TTL истории.
func (r *HistoryRepo) pushBounded(ctx context.Context, key, value string, limit int) {
	pipeline := r.client.Client.Pipeline()
	pipeline.LRem(ctx, key, 0, value)
	pipeline.LPush(ctx, key, value)
	pipeline.LTrim(ctx, key, 0, int64(limit-1))
	pipeline.Expire(ctx, key, r.cfg.HistoryTTL)

	if _, err := pipeline.Exec(ctx); err != nil {
		r.logger.Warnf("History pipeline failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

func (r *HistoryRepo) recent(ctx context.Context, key string, limit int) ([]string, error) {
	values, err := r.client.Client.LRange(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		r.logger.Warnf("Redis LRANGE failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return values, nil
}

// searchKey возвращает Redis-ключ истории поиска клиента.
func (r *HistoryRepo) searchKey(clientID string) string {
	return fmt.Sprintf("history:search:%s", clientID)
}

// viewedKey возвращает Redis-ключ истории просмотров клиента.
func (r *HistoryRepo) viewedKey(clientID string) string {
	return fmt.Sprintf("history:viewed:%s", clientID)
}
