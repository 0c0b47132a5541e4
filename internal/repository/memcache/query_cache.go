// Package memcache реализует кэш запросов каталога в памяти процесса.
package memcache

import (
	"sync"
	"time"

	"github.com/DRSN-tech/storefront-gateway/internal/usecase"
	"github.com/DRSN-tech/storefront-gateway/pkg/logger"
)

type entry struct {
	snap       *usecase.CatalogSnapshot
	insertedAt time.Time
}

// QueryCache хранит срезы каталога по сигнатуре запроса с общим TTL.
// Записи не изменяются на месте: обновление — это замена записи целиком.
// Гонка «промах — загрузка — запись» у конкурентных вызывающих допустима:
// повторная запись перезаписывает эквивалентный срез, в худшем случае
// бэкенд получает лишний запрос.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
	logger  logger.Logger
}

func NewQueryCache(ttl time.Duration, logger logger.Logger) *QueryCache {
	return &QueryCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
}

// Get возвращает срез по сигнатуре. Запись старше TTL считается промахом
// и удаляется.
func (c *QueryCache) Get(signature string) (*usecase.CatalogSnapshot, bool) {
	c.mu.RLock()
	ent, ok := c.entries[signature]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.now().Sub(ent.insertedAt) >= c.ttl {
		c.mu.Lock()
		// Запись могли успеть заменить свежей.
		if cur, ok := c.entries[signature]; ok && cur.insertedAt.Equal(ent.insertedAt) {
			delete(c.entries, signature)
		}
		c.mu.Unlock()

		return nil, false
	}

	return ent.snap, true
}

// Put сохраняет срез, заменяя предыдущую запись с той же сигнатурой.
func (c *QueryCache) Put(signature string, snap *usecase.CatalogSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[signature] = entry{
		snap:       snap,
		insertedAt: c.now(),
	}
}

// InvalidateAll очищает кэш целиком.
func (c *QueryCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]entry)

	if n > 0 {
		c.logger.Debugf("Query cache cleared: %d entries dropped", n)
	}
}

// Len возвращает число записей, включая устаревшие, но ещё не вычищенные.
func (c *QueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
