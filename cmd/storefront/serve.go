package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	cartadapters "github.com/dejobratic/tomoca/internal/cart/adapters"
	cartfile "github.com/dejobratic/tomoca/internal/cart/adapters/file"
	carthttp "github.com/dejobratic/tomoca/internal/cart/adapters/http"
	cartmemory "github.com/dejobratic/tomoca/internal/cart/adapters/memory"
	cartpostgres "github.com/dejobratic/tomoca/internal/cart/adapters/postgres"
	"github.com/dejobratic/tomoca/internal/cart/adapters/snapshot"
	cartapp "github.com/dejobratic/tomoca/internal/cart/app"
	cartmetrics "github.com/dejobratic/tomoca/internal/cart/metrics"
	cartports "github.com/dejobratic/tomoca/internal/cart/ports"
	cataloghttp "github.com/dejobratic/tomoca/internal/catalog/adapters/http"
	catalogmemory "github.com/dejobratic/tomoca/internal/catalog/adapters/memory"
	"github.com/dejobratic/tomoca/internal/catalog/adapters/seed"
	checkouthttp "github.com/dejobratic/tomoca/internal/checkout/adapters/http"
	checkoutapp "github.com/dejobratic/tomoca/internal/checkout/app"
	checkoutdomain "github.com/dejobratic/tomoca/internal/checkout/domain"
	checkoutmetrics "github.com/dejobratic/tomoca/internal/checkout/metrics"
	checkoutports "github.com/dejobratic/tomoca/internal/checkout/ports"
	"github.com/dejobratic/tomoca/internal/config"
	"github.com/dejobratic/tomoca/internal/database"
	"github.com/dejobratic/tomoca/internal/events"
	"github.com/dejobratic/tomoca/internal/httpserver"
	idemmemory "github.com/dejobratic/tomoca/internal/idempotency/memory"
	idempostgres "github.com/dejobratic/tomoca/internal/idempotency/postgres"
	quizhttp "github.com/dejobratic/tomoca/internal/quiz/adapters/http"
	quizapp "github.com/dejobratic/tomoca/internal/quiz/app"
	"github.com/dejobratic/tomoca/internal/telemetry"
)

const meterName = "github.com/dejobratic/tomoca"

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, stop, cfg, logger)
		},
	}
}

func serve(ctx context.Context, stop context.CancelFunc, cfg *config.Config, logger *slog.Logger) error {
	tel, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Environment:    cfg.Service.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
		EnableTracing:  cfg.Telemetry.EnableTracing,
		EnableMetrics:  cfg.Telemetry.EnableMetrics,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", "error", err)
		}
	}()
	meter := tel.Meter(meterName)

	cat, err := seed.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	products, err := catalogmemory.NewRepository(cat)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", "products", len(cat.Products), "plans", len(cat.Plans))

	storageMetrics, err := database.NewMetrics(meter)
	if err != nil {
		return err
	}
	stores, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stores.close()

	eventMetrics, err := events.NewMetrics(meter)
	if err != nil {
		return err
	}
	bus := events.NewObservableBus(events.NewLogBus(logger), eventMetrics)

	cartMetrics, err := cartmetrics.NewMetrics(meter)
	if err != nil {
		return err
	}
	repo := snapshot.NewRepository(
		cartadapters.NewObservableStore(stores.snapshots, string(cfg.Cart.Store), storageMetrics),
		cfg.Cart.StorageKey,
		logger,
	)
	carts := cartapp.NewService(repo, products, bus, logger, cartMetrics)
	if err := carts.Hydrate(ctx); err != nil {
		return fmt.Errorf("hydrate cart: %w", err)
	}
	logger.Info("cart hydrated", "store", cfg.Cart.Store, "key", cfg.Cart.StorageKey, "items", len(carts.State().Items))

	checkoutMetrics, err := checkoutmetrics.NewMetrics(meter)
	if err != nil {
		return err
	}
	checkout := checkoutapp.NewService(
		carts,
		bus,
		stores.idempotency,
		checkoutdomain.NewShippingPolicy(cfg.Checkout.FreeShippingThreshold),
		logger,
		checkoutMetrics,
	)

	httpMetrics, err := httpserver.NewMetrics(meter)
	if err != nil {
		return err
	}
	router := httpserver.NewRouter(httpserver.Config{
		Logger:  logger,
		Metrics: httpMetrics,
		Ready:   stores.ready,
		Groups: []httpserver.RouteRegistrar{
			cataloghttp.NewHandler(products),
			carthttp.NewHandler(carts),
			checkouthttp.NewHandler(checkout),
			quizhttp.NewHandler(quizapp.NewService(products, carts, logger)),
		},
	})

	srv := httpserver.NewServer(cfg.HTTP.Port, router)
	go func() {
		logger.Info("http server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownGrace)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}

// backingStores is the storage chosen by CART_STORE.
type backingStores struct {
	snapshots   cartports.SnapshotStore
	idempotency checkoutports.IdempotencyStore
	ready       func(ctx context.Context) error
	close       func()
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backingStores, error) {
	switch cfg.Cart.Store {
	case config.CartStoreFile:
		return &backingStores{
			snapshots:   cartfile.NewStore(cfg.Cart.FilePath),
			idempotency: idemmemory.NewStore(cfg.Checkout.IdempotencyTTL),
			close:       func() {},
		}, nil
	case config.CartStorePostgres:
		pool, err := openPool(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return &backingStores{
			snapshots:   cartpostgres.NewStore(pool),
			idempotency: idempostgres.NewStore(pool, cfg.Checkout.IdempotencyTTL),
			ready: func(ctx context.Context) error {
				return database.CheckHealth(ctx, pool)
			},
			close: pool.Close,
		}, nil
	default:
		return &backingStores{
			snapshots:   cartmemory.NewStore(),
			idempotency: idemmemory.NewStore(cfg.Checkout.IdempotencyTTL),
			close:       func() {},
		}, nil
	}
}

func openPool(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.Database.AutoMigrate {
		logger.Info("running database migrations", "path", cfg.Database.MigrationsPath)
		version, err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath)
		if err != nil {
			return nil, err
		}
		logger.Info("migrations completed", "version", version)
	}

	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}
	return pool, nil
}
