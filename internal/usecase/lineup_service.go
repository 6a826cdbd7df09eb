package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fantaleague/fantacalcio/internal/domain/league"
	"github.com/fantaleague/fantacalcio/internal/domain/lineup"
	"github.com/fantaleague/fantacalcio/internal/domain/player"
	"github.com/fantaleague/fantacalcio/internal/domain/roster"
	"github.com/fantaleague/fantacalcio/internal/domain/team"
)

// formationQuotas maps each allowed formation to its outfield role counts.
// Every formation implies exactly one goalkeeper and eleven starters.
var formationQuotas = map[string]map[player.Role]int{
	"3-4-3": {player.RoleDefender: 3, player.RoleMidfielder: 4, player.RoleForward: 3},
	"3-5-2": {player.RoleDefender: 3, player.RoleMidfielder: 5, player.RoleForward: 2},
	"4-3-3": {player.RoleDefender: 4, player.RoleMidfielder: 3, player.RoleForward: 3},
	"4-4-2": {player.RoleDefender: 4, player.RoleMidfielder: 4, player.RoleForward: 2},
	"4-5-1": {player.RoleDefender: 4, player.RoleMidfielder: 5, player.RoleForward: 1},
	"5-3-2": {player.RoleDefender: 5, player.RoleMidfielder: 3, player.RoleForward: 2},
	"5-4-1": {player.RoleDefender: 5, player.RoleMidfielder: 4, player.RoleForward: 1},
}

const startersPerLineup = 11

type SubmitLineupInput struct {
	UserID     string
	LeagueID   string
	Matchday   int
	Formation  string
	StarterIDs []string
	BenchIDs   []string
}

// LineupService validates and stores matchday selections. Starter and bench
// order is preserved as submitted; settlement depends on it.
type LineupService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	rosterRepo roster.Repository
	playerRepo player.Repository
	lineupRepo lineup.Repository
	now        func() time.Time
}

func NewLineupService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	rosterRepo roster.Repository,
	playerRepo player.Repository,
	lineupRepo lineup.Repository,
) *LineupService {
	return &LineupService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		rosterRepo: rosterRepo,
		playerRepo: playerRepo,
		lineupRepo: lineupRepo,
		now:        time.Now,
	}
}

// SubmitLineup stores the caller's selection for a matchday, replacing any
// earlier submission. The lineup must respect the declared formation, use
// only rostered players, and target the league's current or a future
// matchday; settled matchdays are closed.
func (s *LineupService) SubmitLineup(ctx context.Context, input SubmitLineupInput) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.SubmitLineup")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.Formation = strings.TrimSpace(input.Formation)
	if input.UserID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.LeagueID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.Matchday <= 0 {
		return lineup.Lineup{}, fmt.Errorf("%w: matchday must be greater than zero", ErrInvalidInput)
	}

	quotas, ok := formationQuotas[input.Formation]
	if !ok {
		return lineup.Lineup{}, fmt.Errorf("%w: formation %q is not allowed", ErrInvalidInput, input.Formation)
	}
	if len(input.StarterIDs) != startersPerLineup {
		return lineup.Lineup{}, fmt.Errorf("%w: a lineup needs %d starters, got %d", ErrInvalidInput, startersPerLineup, len(input.StarterIDs))
	}

	leagueItem, exists, err := s.leagueRepo.GetByID(ctx, input.LeagueID)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return lineup.Lineup{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}
	if leagueItem.Status != league.StatusActive {
		return lineup.Lineup{}, fmt.Errorf("%w: league %s is not active", ErrConflict, leagueItem.ID)
	}
	if input.Matchday < leagueItem.CurrentMatchday {
		return lineup.Lineup{}, fmt.Errorf("%w: matchday %d is already settled", ErrConflict, input.Matchday)
	}

	teamItem, exists, err := s.teamRepo.GetByUserAndLeague(ctx, input.UserID, leagueItem.ID)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get team by user: %w", err)
	}
	if !exists {
		return lineup.Lineup{}, fmt.Errorf("%w: user has no team in league %s", ErrNotFound, leagueItem.ID)
	}

	selected, err := s.resolveSelection(ctx, teamItem.ID, input.StarterIDs, input.BenchIDs)
	if err != nil {
		return lineup.Lineup{}, err
	}
	if err := checkFormation(input.StarterIDs, selected, quotas); err != nil {
		return lineup.Lineup{}, err
	}

	item := lineup.Lineup{
		TeamID:     teamItem.ID,
		Matchday:   input.Matchday,
		Formation:  input.Formation,
		StarterIDs: append([]string(nil), input.StarterIDs...),
		BenchIDs:   append([]string(nil), input.BenchIDs...),
		UpdatedAt:  s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return lineup.Lineup{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.lineupRepo.Upsert(ctx, item); err != nil {
		return lineup.Lineup{}, fmt.Errorf("upsert lineup: %w", err)
	}

	return item, nil
}

func (s *LineupService) GetLineup(ctx context.Context, teamID string, matchday int) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.GetLineup")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if matchday <= 0 {
		return lineup.Lineup{}, fmt.Errorf("%w: matchday must be greater than zero", ErrInvalidInput)
	}

	item, exists, err := s.lineupRepo.GetByTeamAndMatchday(ctx, teamID, matchday)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get lineup: %w", err)
	}
	if !exists {
		return lineup.Lineup{}, fmt.Errorf("%w: no lineup for team=%s matchday=%d", ErrNotFound, teamID, matchday)
	}

	return item, nil
}

// resolveSelection checks that the selection is duplicate-free and fully
// rostered, and returns the role of every selected player.
func (s *LineupService) resolveSelection(ctx context.Context, teamID string, starterIDs, benchIDs []string) (map[string]player.Role, error) {
	seen := make(map[string]struct{}, len(starterIDs)+len(benchIDs))
	for _, id := range append(append([]string(nil), starterIDs...), benchIDs...) {
		if id == "" {
			return nil, fmt.Errorf("%w: empty player id in selection", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: player %s selected twice", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	entries, err := s.rosterRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list roster entries: %w", err)
	}
	rostered := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		rostered[entry.PlayerID] = struct{}{}
	}
	for id := range seen {
		if _, ok := rostered[id]; !ok {
			return nil, fmt.Errorf("%w: player %s is not on the roster", ErrInvalidInput, id)
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	players, err := s.playerRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	roles := make(map[string]player.Role, len(players))
	for _, p := range players {
		roles[p.ID] = p.Role
	}
	for id := range seen {
		if _, ok := roles[id]; !ok {
			return nil, fmt.Errorf("%w: player=%s", ErrNotFound, id)
		}
	}

	return roles, nil
}

func checkFormation(starterIDs []string, roles map[string]player.Role, quotas map[player.Role]int) error {
	counts := make(map[player.Role]int, 4)
	for _, id := range starterIDs {
		counts[roles[id]]++
	}

	if counts[player.RoleGoalkeeper] != 1 {
		return fmt.Errorf("%w: a lineup needs exactly one goalkeeper, got %d", ErrInvalidInput, counts[player.RoleGoalkeeper])
	}
	for role, want := range quotas {
		if counts[role] != want {
			return fmt.Errorf("%w: formation requires %d players in role %s, got %d", ErrInvalidInput, want, role, counts[role])
		}
	}

	return nil
}
