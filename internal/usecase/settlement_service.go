package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/fantaleague/fantacalcio/internal/domain/league"
	"github.com/fantaleague/fantacalcio/internal/domain/lineup"
	"github.com/fantaleague/fantacalcio/internal/domain/matchevent"
	"github.com/fantaleague/fantacalcio/internal/domain/matchresult"
	"github.com/fantaleague/fantacalcio/internal/domain/player"
	"github.com/fantaleague/fantacalcio/internal/domain/rules"
	"github.com/fantaleague/fantacalcio/internal/domain/scoring"
	"github.com/fantaleague/fantacalcio/internal/domain/team"
	"github.com/fantaleague/fantacalcio/internal/platform/cache"
	"github.com/fantaleague/fantacalcio/internal/platform/resilience"
)

const defaultSettlePoolSize = 8

// TeamMatchdayScore is one team's settled outcome for a matchday: the
// fantasy total, the converted goals, and the slot-by-slot trace of what
// happened to each starter.
type TeamMatchdayScore struct {
	TeamID   string
	TeamName string
	Total    float64
	Goals    int
	Trace    []scoring.SubstitutionEntry
}

// MatchdaySettlement is the full output of settling one (league, matchday).
type MatchdaySettlement struct {
	LeagueID string
	Matchday int
	Scores   []TeamMatchdayScore
	Results  []matchresult.Result
}

// SettlementService turns raw matchday events into persisted head-to-head
// results. Team totals are computed concurrently on a worker pool; a
// singleflight per (league, matchday) makes a double-submit settle once.
type SettlementService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	lineupRepo lineup.Repository
	playerRepo player.Repository
	eventRepo  matchevent.Repository
	resultRepo matchresult.Repository
	rulesRepo  rules.Repository
	rulesCache *cache.Store
	tableCache *cache.Store
	pool       *ants.Pool
	flight     resilience.SingleFlight
	now        func() time.Time
}

func NewSettlementService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	lineupRepo lineup.Repository,
	playerRepo player.Repository,
	eventRepo matchevent.Repository,
	resultRepo matchresult.Repository,
	rulesRepo rules.Repository,
	rulesCache *cache.Store,
	tableCache *cache.Store,
	poolSize int,
) (*SettlementService, error) {
	if poolSize < 1 {
		poolSize = defaultSettlePoolSize
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("create settlement pool: %w", err)
	}

	return &SettlementService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		lineupRepo: lineupRepo,
		playerRepo: playerRepo,
		eventRepo:  eventRepo,
		resultRepo: resultRepo,
		rulesRepo:  rulesRepo,
		rulesCache: rulesCache,
		tableCache: tableCache,
		pool:       pool,
		now:        time.Now,
	}, nil
}

func (s *SettlementService) Close() {
	s.pool.Release()
}

// SettleMatchday scores every lineup in the league for the matchday, pairs
// teams sequentially in creation order, converts totals to goals and
// persists the results. Admin only; the league's current matchday only.
func (s *SettlementService) SettleMatchday(ctx context.Context, userID, leagueID string, matchday int) (MatchdaySettlement, error) {
	ctx, span := startUsecaseSpan(ctx, "SettlementService.SettleMatchday")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return MatchdaySettlement{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		return MatchdaySettlement{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if matchday <= 0 {
		return MatchdaySettlement{}, fmt.Errorf("%w: matchday must be greater than zero", ErrInvalidInput)
	}

	key := fmt.Sprintf("settle:%s:%d", leagueID, matchday)
	value, err, _ := s.flight.Do(key, func() (any, error) {
		return s.settle(ctx, userID, leagueID, matchday)
	})
	if err != nil {
		return MatchdaySettlement{}, err
	}

	return value.(MatchdaySettlement), nil
}

// ListResults returns the league's persisted results, optionally filtered
// to one matchday (matchday <= 0 means all).
func (s *SettlementService) ListResults(ctx context.Context, leagueID string, matchday int) ([]matchresult.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "SettlementService.ListResults")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if matchday > 0 {
		items, err := s.resultRepo.ListByLeagueAndMatchday(ctx, leagueID, matchday)
		if err != nil {
			return nil, fmt.Errorf("list results by matchday: %w", err)
		}
		return items, nil
	}

	items, err := s.resultRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return items, nil
}

func (s *SettlementService) settle(ctx context.Context, userID, leagueID string, matchday int) (MatchdaySettlement, error) {
	leagueItem, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return MatchdaySettlement{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return MatchdaySettlement{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if leagueItem.AdminUserID != userID {
		return MatchdaySettlement{}, fmt.Errorf("%w: only the league admin settles matchdays", ErrUnauthorized)
	}
	if leagueItem.Status != league.StatusActive {
		return MatchdaySettlement{}, fmt.Errorf("%w: league %s is not active", ErrConflict, leagueItem.ID)
	}
	if matchday != leagueItem.CurrentMatchday {
		return MatchdaySettlement{}, fmt.Errorf("%w: matchday %d is not the current matchday %d", ErrConflict, matchday, leagueItem.CurrentMatchday)
	}

	settled, err := s.resultRepo.ListByLeagueAndMatchday(ctx, leagueID, matchday)
	if err != nil {
		return MatchdaySettlement{}, fmt.Errorf("list settled results: %w", err)
	}
	if len(settled) > 0 {
		return MatchdaySettlement{}, fmt.Errorf("%w: matchday %d is already settled", ErrConflict, matchday)
	}

	ruleSet, err := resolveLeagueRules(ctx, s.rulesRepo, s.rulesCache, leagueID)
	if err != nil {
		return MatchdaySettlement{}, err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return MatchdaySettlement{}, fmt.Errorf("list league teams: %w", err)
	}
	if len(teams) < 2 {
		return MatchdaySettlement{}, fmt.Errorf("%w: league needs at least 2 teams to settle", ErrConflict)
	}

	lookup, roles, err := s.buildRatingLookup(ctx, matchday, ruleSet)
	if err != nil {
		return MatchdaySettlement{}, err
	}

	scores, err := s.scoreTeams(ctx, teams, matchday, lookup, roles, ruleSet)
	if err != nil {
		return MatchdaySettlement{}, err
	}

	results := pairResults(leagueID, matchday, scores, s.now().UTC())
	for _, result := range results {
		if err := s.resultRepo.Upsert(ctx, result); err != nil {
			return MatchdaySettlement{}, fmt.Errorf("upsert result: %w", err)
		}
	}

	leagueItem.CurrentMatchday++
	leagueItem.UpdatedAt = s.now().UTC()
	if err := s.leagueRepo.Update(ctx, leagueItem); err != nil {
		return MatchdaySettlement{}, fmt.Errorf("update league: %w", err)
	}

	if s.tableCache != nil {
		s.tableCache.Invalidate(ctx, standingsCacheKey(leagueID))
	}

	return MatchdaySettlement{
		LeagueID: leagueID,
		Matchday: matchday,
		Scores:   scores,
		Results:  results,
	}, nil
}

// buildRatingLookup loads the matchday's events once and precomputes every
// rating, so concurrent team scoring reads an immutable map.
func (s *SettlementService) buildRatingLookup(ctx context.Context, matchday int, ruleSet rules.RuleSet) (scoring.RatingLookup, map[string]player.Role, error) {
	events, err := s.eventRepo.ListByMatchday(ctx, matchday)
	if err != nil {
		return nil, nil, fmt.Errorf("list matchday events: %w", err)
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list players: %w", err)
	}
	roles := make(map[string]player.Role, len(players))
	for _, p := range players {
		roles[p.ID] = p.Role
	}

	ratings := make(map[string]scoring.Rating, len(events))
	for i := range events {
		event := events[i]
		ratings[event.PlayerID] = scoring.Rate(&event, roles[event.PlayerID], ruleSet)
	}

	lookup := func(playerID string) scoring.Rating {
		return ratings[playerID]
	}
	return lookup, roles, nil
}

// scoreTeams fans team aggregation out over the worker pool. Each task is
// independent and deterministic; output order follows the input team order.
func (s *SettlementService) scoreTeams(
	ctx context.Context,
	teams []team.Team,
	matchday int,
	lookup scoring.RatingLookup,
	roles map[string]player.Role,
	ruleSet rules.RuleSet,
) ([]TeamMatchdayScore, error) {
	scores := make([]TeamMatchdayScore, len(teams))
	errs := make([]error, len(teams))

	var wg sync.WaitGroup
	for i := range teams {
		i := i
		t := teams[i]
		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()
			scores[i], errs[i] = s.scoreTeam(ctx, t, matchday, lookup, roles, ruleSet)
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = fmt.Errorf("%w: submit scoring task: %v", ErrDependencyUnavailable, submitErr)
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return scores, nil
}

func (s *SettlementService) scoreTeam(
	ctx context.Context,
	t team.Team,
	matchday int,
	lookup scoring.RatingLookup,
	roles map[string]player.Role,
	ruleSet rules.RuleSet,
) (TeamMatchdayScore, error) {
	item, exists, err := s.lineupRepo.GetByTeamAndMatchday(ctx, t.ID, matchday)
	if err != nil {
		return TeamMatchdayScore{}, fmt.Errorf("get lineup for team %s: %w", t.ID, err)
	}
	if !exists {
		// No lineup submitted: the team forfeits the matchday with zero.
		return TeamMatchdayScore{TeamID: t.ID, TeamName: t.Name}, nil
	}

	starters := slotsFor(item.StarterIDs, roles)
	bench := slotsFor(item.BenchIDs, roles)
	total, trace := scoring.AggregateTeamScore(starters, bench, lookup, ruleSet)

	return TeamMatchdayScore{
		TeamID:   t.ID,
		TeamName: t.Name,
		Total:    total,
		Goals:    scoring.GoalsFromScore(total, ruleSet),
		Trace:    trace,
	}, nil
}

// pairResults matches teams sequentially in stored order: first vs second,
// third vs fourth, and so on. With an odd count the last team sits out.
func pairResults(leagueID string, matchday int, scores []TeamMatchdayScore, settledAt time.Time) []matchresult.Result {
	results := make([]matchresult.Result, 0, len(scores)/2)
	for i := 0; i+1 < len(scores); i += 2 {
		home, away := scores[i], scores[i+1]
		results = append(results, matchresult.Result{
			LeagueID:   leagueID,
			Matchday:   matchday,
			HomeTeamID: home.TeamID,
			AwayTeamID: away.TeamID,
			HomeScore:  home.Total,
			AwayScore:  away.Total,
			HomeGoals:  home.Goals,
			AwayGoals:  away.Goals,
			SettledAt:  settledAt,
		})
	}
	return results
}

func slotsFor(playerIDs []string, roles map[string]player.Role) []scoring.Slot {
	slots := make([]scoring.Slot, 0, len(playerIDs))
	for _, id := range playerIDs {
		slots = append(slots, scoring.Slot{PlayerID: id, Role: roles[id]})
	}
	return slots
}
