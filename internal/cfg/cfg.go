package cfg

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront-gateway/pkg/e"
	"github.com/DRSN-tech/storefront-gateway/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Http    *HTTPConfig
	Backend *BackendCfg
	Catalog *CatalogCfg
	Redis   *RedisCfg
	Kafka   *KafkaCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type BackendCfg struct {
	BaseURL    string // Адрес каталогового API бэкенда
	Timeout    time.Duration
	MaxRetries int
}

type CatalogCfg struct {
	CacheTTL     time.Duration // Время жизни записи кэша запросов
	SearchSettle time.Duration // Пауза до фиксации поискового запроса в истории
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	HistoryTTL  time.Duration // Время жизни истории клиента
	SearchCap   int           // Максимум сохраняемых поисковых запросов
	ViewedCap   int           // Максимум сохраняемых просмотренных товаров
}

type KafkaCfg struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	httpCfg, err := loadHTTPCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	backend, err := loadBackendCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	catalog, err := loadCatalogCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:    httpCfg,
		Backend: backend,
		Catalog: catalog,
		Redis:   redis,
		Kafka:   loadKafkaCfg(),
	}, nil
}

func loadHTTPCfg(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 10 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("HTTP_IDLE_TIMEOUT", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_IDLE_TIMEOUT")
		return nil, err
	}

	return &HTTPConfig{
		Port:         getEnvOrDefault("HTTP_PORT", defaultPort),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadBackendCfg(log logger.Logger) (*BackendCfg, error) {
	const (
		defaultBaseURL    = "http://catalog-backend:3000"
		defaultTimeout    = 5 * time.Second
		defaultMaxRetries = 3
	)

	timeout, err := parseDurationEnv("BACKEND_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid BACKEND_TIMEOUT")
		return nil, err
	}

	maxRetries, err := parseIntEnv("BACKEND_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid BACKEND_MAX_RETRIES")
		return nil, err
	}

	return &BackendCfg{
		BaseURL:    getEnvOrDefault("BACKEND_BASE_URL", defaultBaseURL),
		Timeout:    timeout,
		MaxRetries: maxRetries,
	}, nil
}

func loadCatalogCfg(log logger.Logger) (*CatalogCfg, error) {
	const (
		defaultCacheTTL     = 5 * time.Minute
		defaultSearchSettle = 300 * time.Millisecond
	)

	cacheTTL, err := parseDurationEnv("CATALOG_CACHE_TTL", defaultCacheTTL)
	if err != nil {
		log.Errorf(err, "invalid CATALOG_CACHE_TTL")
		return nil, err
	}

	searchSettle, err := parseDurationEnv("SEARCH_SETTLE", defaultSearchSettle)
	if err != nil {
		log.Errorf(err, "invalid SEARCH_SETTLE")
		return nil, err
	}

	return &CatalogCfg{
		CacheTTL:     cacheTTL,
		SearchSettle: searchSettle,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr        = "redis:6379"
		defaultDB          = 0
		defaultMaxRetries  = 3
		defaultDialTimeout = 5 * time.Second
		defaultTimeout     = 3 * time.Second
		defaultHistoryTTL  = 30 * 24 * time.Hour
		defaultSearchCap   = 10
		defaultViewedCap   = 8
	)

	db, err := parseIntEnv("REDIS_DB", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB")
		return nil, err
	}

	maxRetries, err := parseIntEnv("REDIS_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid REDIS_MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("REDIS_DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DIAL_TIMEOUT")
		return nil, err
	}

	timeout, err := parseDurationEnv("REDIS_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid REDIS_TIMEOUT")
		return nil, err
	}

	historyTTL, err := parseDurationEnv("HISTORY_TTL", defaultHistoryTTL)
	if err != nil {
		log.Errorf(err, "invalid HISTORY_TTL")
		return nil, err
	}

	searchCap, err := parseIntEnv("HISTORY_SEARCH_CAP", defaultSearchCap)
	if err != nil {
		log.Errorf(err, "invalid HISTORY_SEARCH_CAP")
		return nil, err
	}

	viewedCap, err := parseIntEnv("HISTORY_VIEWED_CAP", defaultViewedCap)
	if err != nil {
		log.Errorf(err, "invalid HISTORY_VIEWED_CAP")
		return nil, err
	}

	return &RedisCfg{
		Addr:        getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		HistoryTTL:  historyTTL,
		SearchCap:   searchCap,
		ViewedCap:   viewedCap,
	}, nil
}

func loadKafkaCfg() *KafkaCfg {
	const (
		defaultBrokers = "kafka:9092"
		defaultTopic   = "catalog.events"
		defaultGroupID = "storefront-gateway"
	)

	brokers := strings.Split(getEnvOrDefault("KAFKA_BROKERS", defaultBrokers), ",")

	return &KafkaCfg{
		Brokers: brokers,
		Topic:   getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		GroupID: getEnvOrDefault("KAFKA_GROUP_ID", defaultGroupID),
	}
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
