package initializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finledger/infra"
	infra_cache "github.com/amirasaad/finledger/infra/cache"
	infra_provider "github.com/amirasaad/finledger/infra/provider"
	infra_repository "github.com/amirasaad/finledger/infra/repository"
	"github.com/amirasaad/finledger/pkg/app"
	"github.com/amirasaad/finledger/pkg/cache"
	"github.com/amirasaad/finledger/pkg/config"
	"github.com/amirasaad/finledger/pkg/exchange"
	"github.com/amirasaad/finledger/pkg/provider"
	"github.com/amirasaad/finledger/pkg/repository"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	var closers []func() error
	deps.Close = func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}
	defer func() {
		if err != nil {
			_ = deps.Close()
		}
	}()

	store, closeStore, err := newRecordStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize record store: %w", err)
	}
	closers = append(closers, closeStore)
	deps.Store = store

	rateCache, closeCache, err := newRateCache(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rate cache: %w", err)
	}
	closers = append(closers, closeCache)

	deps.RateFetchers = rateFetchers(cfg.ExchangeRateAPIProviders, logger)
	esplora, err := infra_provider.NewEsploraClient(cfg.Bitcoin, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chain source: %w", err)
	}
	deps.ChainSource = esplora
	deps.Network = esplora.Network()

	opts := []exchange.Option{exchange.WithCache(rateCache)}
	if cfg.ExchangeRate.SeedDefaults {
		opts = append(opts, exchange.WithDefaultRates())
	}
	deps.Exchange = exchange.New(logger, deps.RateFetchers, opts...)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := deps.Exchange.Warm(ctx); err != nil {
		// Don't fail startup; the table fills on the first refresh
		logger.Warn("Failed to restore rate table", "error", err)
	}
	return deps, nil
}

func newRecordStore(cfg *config.App, logger *slog.Logger) (repository.RecordStore, func() error, error) {
	if cfg.DB == nil || cfg.DB.Url == "memory://" {
		logger.Warn("Using in-memory record store; records are lost on restart")
		return infra_repository.NewMemoryStore(), func() error { return nil }, nil
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := infra_repository.Migrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	return infra_repository.NewGormStore(db, logger), sqlDB.Close, nil
}

func newRateCache(cfg *config.App, logger *slog.Logger) (cache.RateTableCache, func() error, error) {
	if cfg.Redis == nil || cfg.Redis.URL == "" {
		return infra_cache.NewMemoryCache(), func() error { return nil }, nil
	}
	r := cfg.Redis
	client, err := infra_cache.NewRedisClient(r.URL, r.PoolSize, r.DialTimeout, r.ReadTimeout, r.WriteTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Redis client: %w", err)
	}
	logger.Info("Rate table cached in Redis", "key_prefix", r.KeyPrefix)
	return infra_cache.NewRedisRateCache(client, r.KeyPrefix, cfg.ExchangeRate.CacheKey, logger), client.Close, nil
}

// rateFetchers returns the upstream rate sources. Without an
// exchangerate-api key the fiat default quotes stand in, so refreshes still
// produce a complete table.
func rateFetchers(cfg *config.ExchangeRateProviders, logger *slog.Logger) []provider.RateFetcher {
	var fetchers []provider.RateFetcher
	if cfg.ExchangeRateApi != nil && cfg.ExchangeRateApi.ApiKey != "" {
		fetchers = append(fetchers, infra_provider.NewExchangeRateAPIProvider(cfg.ExchangeRateApi, logger))
	} else {
		logger.Warn("No exchangerate-api key configured, using static fiat rates")
		fetchers = append(fetchers, infra_provider.NewStaticRates("static-fiat", fiatQuotes(exchange.DefaultQuotes())))
	}
	if cfg.CoinGecko != nil {
		fetchers = append(fetchers, infra_provider.NewCoinGeckoProvider(cfg.CoinGecko, logger))
	}
	return fetchers
}

func fiatQuotes(quotes []provider.Quote) []provider.Quote {
	var out []provider.Quote
	for _, q := range quotes {
		if !q.From.IsCrypto() && !q.To.IsCrypto() {
			out = append(out, q)
		}
	}
	return out
}
