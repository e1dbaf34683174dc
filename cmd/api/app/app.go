package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"

	"github.com/pelyams/product_store/internal/adapters/cache"
	"github.com/pelyams/product_store/internal/adapters/repository"
	"github.com/pelyams/product_store/internal/config"
	"github.com/pelyams/product_store/internal/ports"
	"github.com/pelyams/product_store/internal/routing"
	"github.com/pelyams/product_store/internal/service"
)

type App struct {
	config      *config.Config
	db          *repository.GormRepository
	redisClient *redis.Client
	cache       ports.Cache
	service     ports.ProductUsecase
	logger      *routing.Logger
	server      *http.Server
}

// New builds every dependency explicitly; nothing is constructed at package load.
func New(cfg *config.Config) (*App, error) {
	logger, err := routing.NewLogger(0, cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
	}
	log := logger.Logrus()

	gormDB, err := openDatabase(cfg)
	if err != nil {
		logger.Close()
		return nil, err
	}
	repo := repository.NewGormRepository(gormDB)
	if err := repo.Migrate(context.Background()); err != nil {
		repo.Close()
		logger.Close()
		return nil, err
	}

	a := &App{
		config: cfg,
		db:     repo,
		logger: logger,
		cache:  cache.NopCache{},
	}
	if cfg.CacheEnabled() {
		a.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		a.redisClient.ConfigSet(context.Background(), "maxmemory", "10mb")
		a.redisClient.ConfigSet(context.Background(), "maxmemory-policy", "allkeys-lru")
		a.cache = cache.NewRedisCache(a.redisClient, cfg.CacheTTL)
		log.WithField("addr", a.redisClient.Options().Addr).Info("redis cache enabled")
	} else {
		log.Info("redis cache disabled")
	}

	a.service = service.NewProductUsecase(repo, a.cache, log)
	handler := routing.NewProductHandler(a.service, repo)
	router := routing.NewRouter(handler, logger, routing.NewMetrics()).SetupRoutes()

	a.server = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(router, "product-store"),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		return repository.OpenSQLite(cfg.SQLitePath, cfg.DatabaseDebug)
	default:
		dsn := repository.PostgresDSN(
			cfg.DatabaseUser,
			cfg.DatabasePassword,
			cfg.DatabaseHost,
			cfg.DatabasePort,
			cfg.DatabaseName,
		)
		return repository.OpenPostgres(dsn, cfg.DatabaseDebug)
	}
}

func (a *App) Log() *logrus.Logger {
	return a.logger.Logrus()
}

// Run blocks serving HTTP until Shutdown is called.
func (a *App) Run() error {
	a.Log().WithFields(logrus.Fields{
		"addr":   a.server.Addr,
		"driver": a.config.DatabaseDriver,
	}).Info("starting http server")
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then releases the database, the cache
// client and the log file.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http server: %w", err))
	}
	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	a.Log().Info("shutdown complete")
	a.logger.Close()
	return errors.Join(errs...)
}
