package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config captures runtime configuration for the storefront service.
type Config struct {
	HTTP      HTTPConfig
	Cart      CartConfig
	Catalog   CatalogConfig
	Checkout  CheckoutConfig
	Database  DatabaseConfig
	Telemetry TelemetryConfig
	Service   ServiceConfig
}

type HTTPConfig struct {
	Port          int
	ShutdownGrace int
}

// CartStore names the backend holding the cart snapshot.
type CartStore string

const (
	CartStoreMemory   CartStore = "memory"
	CartStoreFile     CartStore = "file"
	CartStorePostgres CartStore = "postgres"
)

type CartConfig struct {
	Store      CartStore
	StorageKey string
	FilePath   string
}

type CatalogConfig struct {
	// Path to a YAML catalog. Empty loads the embedded seed.
	Path string
}

type CheckoutConfig struct {
	FreeShippingThreshold decimal.Decimal
	IdempotencyTTL        time.Duration
}

type DatabaseConfig struct {
	URL            string
	AutoMigrate    bool
	MigrationsPath string
}

type TelemetryConfig struct {
	LogLevel      string
	OTelEndpoint  string
	EnableTracing bool
	EnableMetrics bool
	SampleRate    float64
}

type ServiceConfig struct {
	Name        string
	Version     string
	Environment string
}

const (
	defaultHTTPPort              = 8080
	defaultShutdownGrace         = 15
	defaultCartStore             = CartStoreMemory
	defaultCartStorageKey        = "tomoca-cart"
	defaultCartFilePath          = "data/cart.json"
	defaultFreeShippingThreshold = "50.00"
	defaultIdempotencyTTL        = 24 * time.Hour
	defaultMigrationsPath        = "migrations"
	defaultAutoMigrate           = true
	defaultServiceName           = "tomoca-storefront"
	defaultServiceVersion        = "0.1.0"
	defaultEnvironment           = "development"
	defaultLogLevel              = "info"
	defaultOTelSampleRate        = 1.0
)

// Load reads configuration from environment variables, applying defaults when needed.
func Load() (*Config, error) {
	httpCfg, err := loadHTTPConfig()
	if err != nil {
		return nil, fmt.Errorf("loading HTTP config: %w", err)
	}

	cartCfg, err := loadCartConfig()
	if err != nil {
		return nil, fmt.Errorf("loading cart config: %w", err)
	}

	checkoutCfg, err := loadCheckoutConfig()
	if err != nil {
		return nil, fmt.Errorf("loading checkout config: %w", err)
	}

	telCfg, err := loadTelemetryConfig()
	if err != nil {
		return nil, fmt.Errorf("loading telemetry config: %w", err)
	}

	return &Config{
		HTTP:      httpCfg,
		Cart:      cartCfg,
		Catalog:   CatalogConfig{Path: os.Getenv("CATALOG_PATH")},
		Checkout:  checkoutCfg,
		Database:  loadDatabaseConfig(),
		Telemetry: telCfg,
		Service:   loadServiceConfig(),
	}, nil
}

func loadHTTPConfig() (HTTPConfig, error) {
	port, err := getIntEnv("API_HTTP_PORT", defaultHTTPPort)
	if err != nil {
		return HTTPConfig{}, err
	}

	shutdownGrace, err := getIntEnv("API_SHUTDOWN_GRACE_SECONDS", defaultShutdownGrace)
	if err != nil {
		return HTTPConfig{}, err
	}

	return HTTPConfig{
		Port:          port,
		ShutdownGrace: shutdownGrace,
	}, nil
}

func loadCartConfig() (CartConfig, error) {
	store := CartStore(getEnvOrDefault("CART_STORE", string(defaultCartStore)))
	switch store {
	case CartStoreMemory, CartStoreFile, CartStorePostgres:
	default:
		return CartConfig{}, fmt.Errorf("invalid CART_STORE %q: want memory, file or postgres", store)
	}

	return CartConfig{
		Store:      store,
		StorageKey: getEnvOrDefault("CART_STORAGE_KEY", defaultCartStorageKey),
		FilePath:   getEnvOrDefault("CART_FILE_PATH", defaultCartFilePath),
	}, nil
}

func loadCheckoutConfig() (CheckoutConfig, error) {
	threshold, err := decimal.NewFromString(getEnvOrDefault("FREE_SHIPPING_THRESHOLD", defaultFreeShippingThreshold))
	if err != nil {
		return CheckoutConfig{}, fmt.Errorf("invalid FREE_SHIPPING_THRESHOLD: %w", err)
	}
	if !threshold.IsPositive() {
		return CheckoutConfig{}, fmt.Errorf("invalid FREE_SHIPPING_THRESHOLD: must be positive")
	}

	ttl := defaultIdempotencyTTL
	if value := os.Getenv("IDEMPOTENCY_TTL"); value != "" {
		ttl, err = time.ParseDuration(value)
		if err != nil {
			return CheckoutConfig{}, fmt.Errorf("invalid IDEMPOTENCY_TTL: %w", err)
		}
	}

	return CheckoutConfig{FreeShippingThreshold: threshold, IdempotencyTTL: ttl}, nil
}

func loadDatabaseConfig() DatabaseConfig {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = buildDatabaseURL()
	}

	return DatabaseConfig{
		URL:            databaseURL,
		AutoMigrate:    getBoolEnv("AUTO_MIGRATE", defaultAutoMigrate),
		MigrationsPath: getEnvOrDefault("MIGRATIONS_PATH", defaultMigrationsPath),
	}
}

func loadTelemetryConfig() (TelemetryConfig, error) {
	sampleRate := defaultOTelSampleRate
	if value, ok := os.LookupEnv("OTEL_SAMPLE_RATE"); ok {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return TelemetryConfig{}, fmt.Errorf("invalid OTEL_SAMPLE_RATE: %w", err)
		}
		sampleRate = parsed
	}

	return TelemetryConfig{
		LogLevel:      getEnvOrDefault("LOG_LEVEL", defaultLogLevel),
		OTelEndpoint:  getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		EnableTracing: getBoolEnv("OTEL_ENABLE_TRACING", true),
		EnableMetrics: getBoolEnv("OTEL_ENABLE_METRICS", true),
		SampleRate:    sampleRate,
	}, nil
}

func loadServiceConfig() ServiceConfig {
	return ServiceConfig{
		Name:        getEnvOrDefault("API_SERVICE_NAME", defaultServiceName),
		Version:     getEnvOrDefault("SERVICE_VERSION", defaultServiceVersion),
		Environment: getEnvOrDefault("ENVIRONMENT", defaultEnvironment),
	}
}

func buildDatabaseURL() string {
	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "postgres")
	password := getEnvOrDefault("DB_PASSWORD", "postgres")
	dbName := getEnvOrDefault("DB_NAME", "tomoca")
	sslMode := getEnvOrDefault("DB_SSLMODE", "disable")

	maxConns := getEnvOrDefault("DB_MAX_CONNS", "10")
	minConns := getEnvOrDefault("DB_MIN_CONNS", "1")
	maxLifetime := getEnvOrDefault("DB_MAX_CONN_LIFETIME", "5m")

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&pool_max_conns=%s&pool_min_conns=%s&pool_max_conn_lifetime=%s",
		user, password, host, port, dbName, sslMode, maxConns, minConns, maxLifetime,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		return value == "true"
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
