// Package app assembles repositories, services and the HTTP surface.
package app

import (
	"fmt"
	"net/http"

	"github.com/fantaleague/fantacalcio/internal/config"
	"github.com/fantaleague/fantacalcio/internal/domain/league"
	"github.com/fantaleague/fantacalcio/internal/domain/lineup"
	"github.com/fantaleague/fantacalcio/internal/domain/matchevent"
	"github.com/fantaleague/fantacalcio/internal/domain/matchresult"
	"github.com/fantaleague/fantacalcio/internal/domain/player"
	"github.com/fantaleague/fantacalcio/internal/domain/roster"
	"github.com/fantaleague/fantacalcio/internal/domain/rules"
	"github.com/fantaleague/fantacalcio/internal/domain/team"
	"github.com/fantaleague/fantacalcio/internal/infrastructure/account"
	cacherepo "github.com/fantaleague/fantacalcio/internal/infrastructure/repository/cache"
	"github.com/fantaleague/fantacalcio/internal/infrastructure/repository/memory"
	"github.com/fantaleague/fantacalcio/internal/infrastructure/repository/postgres"
	"github.com/fantaleague/fantacalcio/internal/interfaces/httpapi"
	"github.com/fantaleague/fantacalcio/internal/platform/cache"
	idgen "github.com/fantaleague/fantacalcio/internal/platform/id"
	"github.com/fantaleague/fantacalcio/internal/platform/logging"
	"github.com/fantaleague/fantacalcio/internal/platform/resilience"
	"github.com/fantaleague/fantacalcio/internal/usecase"
)

type repositories struct {
	leagues league.Repository
	teams   team.Repository
	players player.Repository
	rosters roster.Repository
	lineups lineup.Repository
	events  matchevent.Repository
	results matchresult.Repository
	rules   rules.Repository
}

// NewHTTPServer builds the fully wired API server. The returned cleanup
// releases the settlement pool and the database handle.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, closeDB, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var rulesCache, tableCache *cache.Store
	if cfg.CacheEnabled {
		rulesCache = cache.NewStore(cfg.CacheTTL)
		tableCache = cache.NewStore(cfg.CacheTTL)
		repos.players = cacherepo.NewPlayerRepository(repos.players, cache.NewStore(cfg.CacheTTL))
	}

	settlementSvc, err := usecase.NewSettlementService(
		repos.leagues, repos.teams, repos.lineups, repos.players, repos.events, repos.results, repos.rules,
		rulesCache, tableCache, cfg.SettlePoolSize,
	)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("build settlement service: %w", err)
	}

	handler := httpapi.NewHandler(
		usecase.NewLeagueService(repos.leagues, repos.teams, repos.rules, idgen.NewRandomGenerator(), rulesCache),
		usecase.NewAuctionService(repos.leagues, repos.teams, repos.players, repos.rosters),
		usecase.NewLineupService(repos.leagues, repos.teams, repos.rosters, repos.players, repos.lineups),
		settlementSvc,
		usecase.NewStandingsService(repos.leagues, repos.teams, repos.results, tableCache),
		usecase.NewIngestionService(repos.players, repos.events),
		usecase.NewPlayerService(repos.players),
		logger,
	)

	verifier := account.NewClient(account.Config{
		BaseURL:        cfg.AccountBaseURL,
		IntrospectPath: cfg.AccountIntrospectPath,
		Timeout:        cfg.AccountTimeout,
		CacheTTL:       cfg.AccountCacheTTL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:     cfg.AccountCircuitEnabled,
			MaxFailures: cfg.AccountCircuitMaxFailures,
			Cooldown:    cfg.AccountCircuitCooldown,
			ProbeLimit:  cfg.AccountCircuitProbeLimit,
		},
	}, logger)

	if cfg.HTTPAddr == "" {
		settlementSvc.Close()
		closeDB()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, verifier, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	cleanup := func() {
		settlementSvc.Close()
		closeDB()
	}

	return server, cleanup, nil
}

// buildRepositories picks the backing store: Postgres when DB_URL is set,
// seeded in-memory repositories otherwise.
func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func(), error) {
	if cfg.DBURL == "" {
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")
		return repositories{
			leagues: memory.NewLeagueRepository(),
			teams:   memory.NewTeamRepository(),
			players: memory.NewPlayerRepository(memory.SeedPlayers()),
			rosters: memory.NewRosterRepository(),
			lineups: memory.NewLineupRepository(),
			events:  memory.NewMatchEventRepository(),
			results: memory.NewMatchResultRepository(),
			rules:   memory.NewRulesRepository(),
		}, func() {}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, nil, err
	}
	logger.Info("using postgres repositories", "database", dbNameFromURL(cfg.DBURL))

	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error("close database", "error", err)
		}
	}

	return repositories{
		leagues: postgres.NewLeagueRepository(db),
		teams:   postgres.NewTeamRepository(db),
		players: postgres.NewPlayerRepository(db),
		rosters: postgres.NewRosterRepository(db),
		lineups: postgres.NewLineupRepository(db),
		events:  postgres.NewMatchEventRepository(db),
		results: postgres.NewMatchResultRepository(db),
		rules:   postgres.NewRulesRepository(db),
	}, closeDB, nil
}
