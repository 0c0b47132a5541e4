package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront-gateway/internal/domain"
	"github.com/DRSN-tech/storefront-gateway/pkg/debounce"
	"github.com/DRSN-tech/storefront-gateway/pkg/e"
	"github.com/DRSN-tech/storefront-gateway/pkg/logger"
)

// CatalogUseCase реализует запросный движок каталога: кэширование срезов,
// поиск с ранжированием и фасетную фильтрацию с сортировкой и пагинацией.
type CatalogUseCase struct {
	catalogRepo  CatalogRepository
	cache        QueryCache
	historyRepo  HistoryRepository
	debouncer    *debounce.Debouncer
	searchSettle time.Duration
	logger       logger.Logger

	liveTermsMu sync.Mutex
	liveTerms   map[string]string // clientID -> последний введённый запрос
}

func NewCatalogUC(
	catalogRepo CatalogRepository,
	cache QueryCache,
	historyRepo HistoryRepository,
	debouncer *debounce.Debouncer,
	searchSettle time.Duration,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		catalogRepo:  catalogRepo,
		cache:        cache,
		historyRepo:  historyRepo,
		debouncer:    debouncer,
		searchSettle: searchSettle,
		logger:       logger,
		liveTerms:    make(map[string]string),
	}
}

// Browse возвращает страницу витрины по состоянию фильтров.
// Срез каталога берётся из кэша по сигнатуре запроса; при промахе или
// устаревании загружается заново и кэшируется.
func (u *CatalogUseCase) Browse(ctx context.Context, req *BrowseReq) (*BrowseRes, error) {
	const op = "CatalogUseCase.Browse"

	filter := req.Filter.Normalized()

	snap, err := u.snapshot(ctx, filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	page := applyFacets(snap.Products, filter)

	return &BrowseRes{
		Items:      page.Items,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		Source:     snap.Source,
	}, nil
}

// Search возвращает товары, ранжированные по релевантности запросу.
// Устоявшийся запрос фоном записывается в историю клиента: фиксация
// откладывается на searchSettle и отменяется каждым новым запросом,
// так что серия быстрых вводов оставляет в истории только последний.
func (u *CatalogUseCase) Search(ctx context.Context, req *SearchReq) (*SearchRes, error) {
	const op = "CatalogUseCase.Search"

	term := strings.TrimSpace(req.Term)
	if len([]rune(term)) < domain.MinSearchTermLength {
		return nil, e.Wrap(op, e.ErrSearchTermTooShort)
	}

	snap, err := u.allProducts(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ranked := rankProducts(snap.Products, categoryNameIndex(snap.Categories), term)
	items, totalPages, page := paginate(ranked, req.Page, req.PageSize)

	if req.ClientID != "" {
		u.scheduleSearchHistory(req.ClientID, term)
	}

	return &SearchRes{
		Items:      items,
		TotalCount: len(ranked),
		TotalPages: totalPages,
		Page:       page,
		Source:     snap.Source,
	}, nil
}

// Product возвращает карточку товара и фоном фиксирует просмотр в истории.
func (u *CatalogUseCase) Product(ctx context.Context, req *ProductReq) (*ProductRes, error) {
	const op = "CatalogUseCase.Product"

	if req.ID == "" {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	product, source, err := u.findProduct(ctx, req.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if req.ClientID != "" {
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := u.historyRepo.PushViewed(bgCtx, req.ClientID, req.ID); err != nil {
				u.logger.Warnf("Failed to record viewed product: %v", e.Wrap(op, err))
			}
		}()
	}

	return &ProductRes{Product: product, Source: source}, nil
}

// Facets возвращает данные панели фильтров: опции категорий со счётчиками
// по нефильтрованному каталогу и границы цен.
func (u *CatalogUseCase) Facets(ctx context.Context) (*FacetsRes, error) {
	const op = "CatalogUseCase.Facets"

	snap, err := u.allProducts(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &FacetsRes{
		Categories: categoryFacets(snap.Products, snap.Categories),
		Price:      priceBounds(snap.Products),
		Source:     snap.Source,
	}, nil
}

// Categories возвращает опции фасета категорий.
func (u *CatalogUseCase) Categories(ctx context.Context) ([]CategoryInfo, error) {
	const op = "CatalogUseCase.Categories"

	snap, err := u.allProducts(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categoryFacets(snap.Products, snap.Categories), nil
}

// RecentSearches возвращает недавние поисковые запросы клиента.
func (u *CatalogUseCase) RecentSearches(ctx context.Context, clientID string) ([]string, error) {
	const op = "CatalogUseCase.RecentSearches"

	terms, err := u.historyRepo.RecentSearches(ctx, clientID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return terms, nil
}

// RecentViewed возвращает идентификаторы недавно просмотренных товаров.
func (u *CatalogUseCase) RecentViewed(ctx context.Context, clientID string) ([]string, error) {
	const op = "CatalogUseCase.RecentViewed"

	ids, err := u.historyRepo.RecentViewed(ctx, clientID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return ids, nil
}

// InvalidateCatalog сбрасывает кэш запросов целиком.
// Вызывается после любых операций, способных изменить каталог на бэкенде.
func (u *CatalogUseCase) InvalidateCatalog() {
	u.cache.InvalidateAll()
	u.logger.Infof("Catalog query cache invalidated")
}

// snapshot возвращает срез каталога по сигнатуре запроса через кэш.
// Гонка «промах — загрузка — запись» у конкурентных вызовов допустима:
// повторная загрузка идемпотентна и просто перезапишет эквивалентный срез.
func (u *CatalogUseCase) snapshot(ctx context.Context, filter domain.FilterState) (*CatalogSnapshot, error) {
	sig := filter.Signature()

	if snap, ok := u.cache.Get(sig); ok {
		return snap, nil
	}

	snap, err := u.catalogRepo.Load(ctx, loadQueryFrom(filter))
	if err != nil {
		return nil, err
	}

	u.cache.Put(sig, snap)

	return snap, nil
}

// allProducts возвращает выделенный полный срез каталога.
func (u *CatalogUseCase) allProducts(ctx context.Context) (*CatalogSnapshot, error) {
	if snap, ok := u.cache.Get(domain.AllProductsSignature); ok {
		return snap, nil
	}

	snap, err := u.catalogRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	u.cache.Put(domain.AllProductsSignature, snap)

	return snap, nil
}

// findProduct ищет товар в полном срезе, если тот уже в кэше,
// иначе запрашивает карточку у бэкенда.
func (u *CatalogUseCase) findProduct(ctx context.Context, id string) (*domain.Product, string, error) {
	if snap, ok := u.cache.Get(domain.AllProductsSignature); ok {
		for i := range snap.Products {
			if snap.Products[i].ID == id {
				return &snap.Products[i], snap.Source, nil
			}
		}
		if snap.Source == domain.SourceFallback {
			return nil, "", e.ErrProductNotFound
		}
	}

	return u.catalogRepo.LoadProduct(ctx, id)
}

// scheduleSearchHistory откладывает запись запроса в историю до устояния ввода.
// При срабатывании запрос сверяется с последним введённым: устаревший
// (перекрытый более новым вводом) отбрасывается.
func (u *CatalogUseCase) scheduleSearchHistory(clientID, term string) {
	const op = "CatalogUseCase.scheduleSearchHistory"

	u.liveTermsMu.Lock()
	u.liveTerms[clientID] = term
	u.liveTermsMu.Unlock()

	u.debouncer.Schedule(clientID, u.searchSettle, func() {
		u.liveTermsMu.Lock()
		live := u.liveTerms[clientID]
		u.liveTermsMu.Unlock()

		if live != term {
			return
		}

		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := u.historyRepo.PushSearch(bgCtx, clientID, term); err != nil {
			u.logger.Warnf("Failed to record search term: %v", e.Wrap(op, err))
		}
	})
}

// loadQueryFrom отбирает фасеты, которые понимает каталоговый API.
// Остальные предикаты всё равно применяются локально.
func loadQueryFrom(f domain.FilterState) LoadQuery {
	q := LoadQuery{
		Search:     f.SearchTerm,
		NewArrival: f.NewArrival,
	}

	// API принимает одну категорию; при множественном выборе
	// фильтрация категорий выполняется только локально.
	if len(f.Categories) == 1 {
		q.Category = f.Categories[0]
	}

	return q
}
