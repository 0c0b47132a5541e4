package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/storefront-gateway/internal/cfg"
	v1Http "github.com/DRSN-tech/storefront-gateway/internal/delivery/v1/http"
	"github.com/DRSN-tech/storefront-gateway/internal/infrastructure/kafka"
	"github.com/DRSN-tech/storefront-gateway/internal/repository/catalogapi"
	"github.com/DRSN-tech/storefront-gateway/internal/repository/memcache"
	redisRepo "github.com/DRSN-tech/storefront-gateway/internal/repository/redis"
	"github.com/DRSN-tech/storefront-gateway/internal/usecase"
	"github.com/DRSN-tech/storefront-gateway/pkg/clients"
	"github.com/DRSN-tech/storefront-gateway/pkg/closer"
	"github.com/DRSN-tech/storefront-gateway/pkg/debounce"
	"github.com/DRSN-tech/storefront-gateway/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// App собирает и запускает шлюз витрины: HTTP-сервер, консьюмер событий
// каталога и фоновые ресурсы с управляемым порядком остановки.
type App struct {
	cfg      *config.Config
	logger   logger.Logger
	closer   *closer.Closer
	httpSrv  *v1Http.Server
	consumer *kafka.Consumer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(2 * time.Second)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, err
	}
	cl.Add(func(context.Context) error {
		return redisClient.Client.Close()
	})

	historyRepo := redisRepo.NewHistoryRepo(redisClient, cfg.Redis, log)
	queryCache := memcache.NewQueryCache(cfg.Catalog.CacheTTL, log)

	backendClient := clients.NewBackendClient(cfg.Backend)
	catalogRepo := catalogapi.NewCatalogRepo(backendClient, cfg.Backend, log)

	debouncer := debounce.New()
	cl.Add(func(context.Context) error {
		debouncer.Stop()
		return nil
	})

	catalogUC := usecase.NewCatalogUC(
		catalogRepo,
		queryCache,
		historyRepo,
		debouncer,
		cfg.Catalog.SearchSettle,
		log,
	)

	consumer := kafka.NewConsumer(cfg.Kafka, catalogUC, log)
	cl.Add(func(context.Context) error {
		return consumer.Close()
	})

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(catalogUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	return &App{
		cfg:      cfg,
		logger:   log,
		closer:   cl,
		httpSrv:  httpSrv,
		consumer: consumer,
	}, nil
}

// Run блокируется до сигнала остановки или фатальной ошибки сервера,
// затем гасит ресурсы в обратном порядке регистрации.
func (a *App) Run() error {
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	go func() {
		a.logger.Infof("Catalog events consumer started: topic=%s", a.cfg.Kafka.Topic)
		a.consumer.Run(consumerCtx)
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	consumerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("Resource close error: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}
