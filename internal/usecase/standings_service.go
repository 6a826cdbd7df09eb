package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fantaleague/fantacalcio/internal/domain/league"
	"github.com/fantaleague/fantacalcio/internal/domain/matchresult"
	"github.com/fantaleague/fantacalcio/internal/domain/scoring"
	"github.com/fantaleague/fantacalcio/internal/domain/team"
	"github.com/fantaleague/fantacalcio/internal/platform/cache"
)

// StandingsService serves the league table. The table is always a fresh
// fold over the persisted results; the cache only spares repeated reads
// between settlements and is invalidated when a matchday settles.
type StandingsService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	resultRepo matchresult.Repository
	tableCache *cache.Store
}

func NewStandingsService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	resultRepo matchresult.Repository,
	tableCache *cache.Store,
) *StandingsService {
	return &StandingsService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		resultRepo: resultRepo,
		tableCache: tableCache,
	}
}

func (s *StandingsService) GetStandings(ctx context.Context, leagueID string) ([]scoring.StandingsRow, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.GetStandings")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if _, exists, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	load := func(ctx context.Context) (any, error) {
		return s.computeStandings(ctx, leagueID)
	}

	if s.tableCache == nil {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]scoring.StandingsRow), nil
	}

	value, err := s.tableCache.GetOrLoad(ctx, standingsCacheKey(leagueID), load)
	if err != nil {
		return nil, err
	}

	return value.([]scoring.StandingsRow), nil
}

func (s *StandingsService) computeStandings(ctx context.Context, leagueID string) ([]scoring.StandingsRow, error) {
	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league teams: %w", err)
	}

	results, err := s.resultRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league results: %w", err)
	}

	return scoring.ComputeStandings(teams, results), nil
}

func standingsCacheKey(leagueID string) string {
	return "standings:" + leagueID
}
