package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/lucasmrqs/financial-football/internal/config"
	"github.com/lucasmrqs/financial-football/internal/domain/asset"
	"github.com/lucasmrqs/financial-football/internal/domain/game"
	"github.com/lucasmrqs/financial-football/internal/domain/gamelog"
	"github.com/lucasmrqs/financial-football/internal/domain/manualstock"
	"github.com/lucasmrqs/financial-football/internal/domain/prize"
	"github.com/lucasmrqs/financial-football/internal/domain/settings"
	"github.com/lucasmrqs/financial-football/internal/infrastructure/catalog"
	cacherepo "github.com/lucasmrqs/financial-football/internal/infrastructure/repository/cache"
	"github.com/lucasmrqs/financial-football/internal/infrastructure/repository/fsjson"
	"github.com/lucasmrqs/financial-football/internal/infrastructure/repository/memory"
	"github.com/lucasmrqs/financial-football/internal/infrastructure/repository/postgres"
	"github.com/lucasmrqs/financial-football/internal/interfaces/httpapi"
	"github.com/lucasmrqs/financial-football/internal/platform/cache"
	idgen "github.com/lucasmrqs/financial-football/internal/platform/id"
	"github.com/lucasmrqs/financial-football/internal/platform/logging"
	"github.com/lucasmrqs/financial-football/internal/platform/ratelimit"
	"github.com/lucasmrqs/financial-football/internal/platform/resilience"
	"github.com/lucasmrqs/financial-football/internal/usecase"
)

const (
	limiterSweepInterval = 5 * time.Minute
	repoCacheTTL         = 30 * time.Second
)

// App bundles the HTTP server with the resources it owns. Close drains the
// award worker and releases storage handles, so records written during
// shutdown still land.
type App struct {
	Server *http.Server

	award *usecase.AwardService
	db    *sqlx.DB
	stop  chan struct{}
}

type repositories struct {
	prizes    prize.Repository
	games     gamelog.Repository
	config    settings.Repository
	stock     manualstock.Repository
	positions asset.PositionsRepository
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	repos, db, err := openRepositories(cfg)
	if err != nil {
		return nil, err
	}

	var source asset.CatalogSource
	if cfg.CatalogURL != "" {
		source = catalog.NewClient(catalog.ClientConfig{
			URL:        cfg.CatalogURL,
			Timeout:    cfg.CatalogTimeout,
			MaxRetries: cfg.CatalogMaxRetries,
			CacheTTL:   cfg.CatalogCacheTTL,
			Logger:     logging.Default(),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.CatalogCircuitEnabled,
				FailureThreshold: cfg.CatalogCircuitFailureCount,
				OpenTimeout:      cfg.CatalogCircuitOpenTimeout,
			},
		})
	} else {
		source = memory.NewCatalogSource(nil)
	}

	location, err := time.LoadLocation(cfg.RankingTimezone)
	if err != nil {
		return nil, fmt.Errorf("load ranking timezone %q: %w", cfg.RankingTimezone, err)
	}

	catalogSvc := usecase.NewCatalogService(source, repos.positions, logger)
	configSvc := usecase.NewConfigService(repos.config, logger)
	prizeSvc := usecase.NewPrizeService(repos.prizes, logger)

	awardSvc, err := usecase.NewAwardService(repos.prizes, repos.games, repos.config, logger)
	if err != nil {
		return nil, fmt.Errorf("create award service: %w", err)
	}

	rankingSvc := usecase.NewRankingService(repos.games, location, cfg.RankingSize, logger)
	matchSvc := usecase.NewMatchService(
		memory.NewMatchRepository(),
		catalogSvc,
		repos.config,
		awardSvc,
		game.DefaultRules(),
		idgen.NewRandomGenerator(),
		logger,
	)
	stockSvc := usecase.NewManualStockService(repos.stock, logger)

	handler := httpapi.NewHandler(
		catalogSvc,
		configSvc,
		prizeSvc,
		awardSvc,
		rankingSvc,
		matchSvc,
		stockSvc,
		logger,
	)

	limits := httpapi.RateLimits{
		Award:   ratelimit.NewFixedWindow(cfg.AwardRateLimitMax, cfg.RateLimitWindow),
		Ranking: ratelimit.NewFixedWindow(cfg.RankingRateLimitMax, cfg.RateLimitWindow),
	}

	stop := make(chan struct{})
	limits.Award.StartSweeper(limiterSweepInterval, stop)
	limits.Ranking.StartSweeper(limiterSweepInterval, stop)

	router := httpapi.NewRouter(handler, cfg.AdminAPIKey, limits, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		close(stop)
		awardSvc.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server: server,
		award:  awardSvc,
		db:     db,
		stop:   stop,
	}, nil
}

func (a *App) Close() {
	close(a.stop)
	a.award.Close()
	if a.db != nil {
		_ = a.db.Close()
	}
}

func openRepositories(cfg config.Config) (repositories, *sqlx.DB, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		return repositories{
			prizes:    memory.NewPrizeRepository(memory.SeedPrizes()),
			games:     memory.NewGameLogRepository(),
			config:    memory.NewSettingsRepository(),
			stock:     memory.NewManualStockRepository(),
			positions: memory.NewPositionsRepository(),
		}, nil, nil

	case config.StorageFSJSON:
		store, err := fsjson.NewStore(cfg.DataDir)
		if err != nil {
			return repositories{}, nil, fmt.Errorf("open data dir %q: %w", cfg.DataDir, err)
		}
		return withReadCache(repositories{
			prizes:    fsjson.NewPrizeRepository(store, memory.SeedPrizes()),
			games:     fsjson.NewGameLogRepository(store),
			config:    fsjson.NewSettingsRepository(store),
			stock:     fsjson.NewManualStockRepository(store),
			positions: fsjson.NewPositionsRepository(store),
		}), nil, nil

	case config.StoragePostgres:
		dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
		db, err := otelsqlx.Connect("postgres", dbURL,
			otelsql.WithDBSystem("postgresql"),
			otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return repositories{}, nil, fmt.Errorf("connect to postgres: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := postgres.SeedPrizes(ctx, db, memory.SeedPrizes()); err != nil {
			_ = db.Close()
			return repositories{}, nil, fmt.Errorf("seed prizes: %w", err)
		}

		return withReadCache(repositories{
			prizes:    postgres.NewPrizeRepository(db),
			games:     postgres.NewGameLogRepository(db),
			config:    postgres.NewSettingsRepository(db),
			stock:     postgres.NewManualStockRepository(db),
			positions: postgres.NewPositionsRepository(db),
		}), db, nil

	default:
		return repositories{}, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// withReadCache shields persistent backends from per-request reads of the
// prize, settings and positions documents. All writes go through the same
// decorators, which invalidate on success.
func withReadCache(repos repositories) repositories {
	store := cache.NewStore(repoCacheTTL)
	repos.prizes = cacherepo.NewPrizeRepository(repos.prizes, store)
	repos.config = cacherepo.NewSettingsRepository(repos.config, store)
	repos.positions = cacherepo.NewPositionsRepository(repos.positions, store)
	return repos
}
