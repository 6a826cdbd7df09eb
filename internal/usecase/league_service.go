package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fantaleague/fantacalcio/internal/domain/league"
	"github.com/fantaleague/fantacalcio/internal/domain/rules"
	"github.com/fantaleague/fantacalcio/internal/domain/team"
	"github.com/fantaleague/fantacalcio/internal/platform/cache"
)

// IDGenerator mints league, team and invite identifiers.
type IDGenerator interface {
	NewID() (string, error)
	NewInviteCode() (string, error)
}

type CreateLeagueInput struct {
	AdminUserID string
	Name        string
	TeamName    string
	MaxTeams    int
	Budget      int64
}

type JoinLeagueInput struct {
	UserID     string
	InviteCode string
	TeamName   string
}

// LeagueService owns the league lifecycle: creation, membership through
// invite codes, the draft -> auction -> active transitions, and per-league
// rule overrides.
type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	rulesRepo  rules.Repository
	idGen      IDGenerator
	rulesCache *cache.Store
	now        func() time.Time
}

func NewLeagueService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	rulesRepo rules.Repository,
	idGen IDGenerator,
	rulesCache *cache.Store,
) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		rulesRepo:  rulesRepo,
		idGen:      idGen,
		rulesCache: rulesCache,
		now:        time.Now,
	}
}

// CreateLeague opens a new league in draft status. The creator becomes its
// admin and gets the first team right away.
func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.CreateLeague")
	defer span.End()

	input.AdminUserID = strings.TrimSpace(input.AdminUserID)
	input.Name = strings.TrimSpace(input.Name)
	input.TeamName = strings.TrimSpace(input.TeamName)
	if input.AdminUserID == "" {
		return league.League{}, fmt.Errorf("%w: admin user id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	if input.TeamName == "" {
		input.TeamName = input.Name + " FC"
	}
	if input.MaxTeams == 0 {
		input.MaxTeams = league.MaxTeams
	}
	if input.Budget == 0 {
		input.Budget = league.DefaultBudget
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}
	inviteCode, err := s.idGen.NewInviteCode()
	if err != nil {
		return league.League{}, fmt.Errorf("generate invite code: %w", err)
	}

	now := s.now().UTC()
	item := league.League{
		ID:              leagueID,
		Name:            input.Name,
		AdminUserID:     input.AdminUserID,
		InviteCode:      inviteCode,
		MaxTeams:        input.MaxTeams,
		Budget:          input.Budget,
		Status:          league.StatusDraft,
		CurrentMatchday: 1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := item.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.leagueRepo.Create(ctx, item); err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	if _, err := s.createTeam(ctx, item, input.AdminUserID, input.TeamName); err != nil {
		return league.League{}, err
	}

	return item, nil
}

// JoinLeague adds a user's team to a draft league via its invite code.
func (s *LeagueService) JoinLeague(ctx context.Context, input JoinLeagueInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.JoinLeague")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.InviteCode = strings.TrimSpace(input.InviteCode)
	input.TeamName = strings.TrimSpace(input.TeamName)
	if input.UserID == "" {
		return team.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.InviteCode == "" {
		return team.Team{}, fmt.Errorf("%w: invite code is required", ErrInvalidInput)
	}
	if input.TeamName == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByInviteCode(ctx, input.InviteCode)
	if err != nil {
		return team.Team{}, fmt.Errorf("get league by invite code: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: invite code is not valid", ErrNotFound)
	}
	if item.Status != league.StatusDraft {
		return team.Team{}, fmt.Errorf("%w: league %s is no longer accepting teams", ErrConflict, item.ID)
	}

	if _, exists, err = s.teamRepo.GetByUserAndLeague(ctx, input.UserID, item.ID); err != nil {
		return team.Team{}, fmt.Errorf("get team by user: %w", err)
	} else if exists {
		return team.Team{}, fmt.Errorf("%w: user already has a team in league %s", ErrConflict, item.ID)
	}

	members, err := s.teamRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return team.Team{}, fmt.Errorf("list league teams: %w", err)
	}
	if len(members) >= item.MaxTeams {
		return team.Team{}, fmt.Errorf("%w: league %s is full", ErrConflict, item.ID)
	}

	return s.createTeam(ctx, item, input.UserID, input.TeamName)
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.GetLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	return item, nil
}

func (s *LeagueService) ListLeaguesByUser(ctx context.Context, userID string) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.ListLeaguesByUser")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.leagueRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list leagues by user: %w", err)
	}

	return items, nil
}

// StartAuction moves a draft league into auction status. Admin only; at
// least two teams must have joined.
func (s *LeagueService) StartAuction(ctx context.Context, userID, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.StartAuction")
	defer span.End()

	item, err := s.getAdministeredLeague(ctx, userID, leagueID)
	if err != nil {
		return league.League{}, err
	}
	if item.Status != league.StatusDraft {
		return league.League{}, fmt.Errorf("%w: league %s is not in draft", ErrConflict, item.ID)
	}

	members, err := s.teamRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return league.League{}, fmt.Errorf("list league teams: %w", err)
	}
	if len(members) < 2 {
		return league.League{}, fmt.Errorf("%w: league needs at least 2 teams to start the auction", ErrConflict)
	}

	item.Status = league.StatusAuction
	item.UpdatedAt = s.now().UTC()
	if err := s.leagueRepo.Update(ctx, item); err != nil {
		return league.League{}, fmt.Errorf("update league: %w", err)
	}

	return item, nil
}

// StartSeason closes the auction and activates head-to-head play.
func (s *LeagueService) StartSeason(ctx context.Context, userID, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.StartSeason")
	defer span.End()

	item, err := s.getAdministeredLeague(ctx, userID, leagueID)
	if err != nil {
		return league.League{}, err
	}
	if item.Status != league.StatusAuction {
		return league.League{}, fmt.Errorf("%w: league %s has no auction in progress", ErrConflict, item.ID)
	}

	item.Status = league.StatusActive
	item.UpdatedAt = s.now().UTC()
	if err := s.leagueRepo.Update(ctx, item); err != nil {
		return league.League{}, fmt.Errorf("update league: %w", err)
	}

	return item, nil
}

// GetRules resolves the league's effective rule set: its stored override
// normalized against defaults, or the defaults when none exists.
func (s *LeagueService) GetRules(ctx context.Context, leagueID string) (rules.RuleSet, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.GetRules")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return rules.RuleSet{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	return resolveLeagueRules(ctx, s.rulesRepo, s.rulesCache, leagueID)
}

// UpdateRules stores an admin's rule override for the league. Zero fields
// inherit the defaults; bounds are validated before anything persists.
func (s *LeagueService) UpdateRules(ctx context.Context, userID, leagueID string, override rules.RuleSet) (rules.RuleSet, error) {
	ctx, span := startUsecaseSpan(ctx, "LeagueService.UpdateRules")
	defer span.End()

	item, err := s.getAdministeredLeague(ctx, userID, leagueID)
	if err != nil {
		return rules.RuleSet{}, err
	}

	normalized := override.Normalize()
	if err := normalized.Validate(); err != nil {
		return rules.RuleSet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.rulesRepo.Upsert(ctx, item.ID, normalized); err != nil {
		return rules.RuleSet{}, fmt.Errorf("upsert rules: %w", err)
	}
	if s.rulesCache != nil {
		s.rulesCache.Invalidate(ctx, rulesCacheKey(item.ID))
	}

	return normalized, nil
}

func (s *LeagueService) getAdministeredLeague(ctx context.Context, userID, leagueID string) (league.League, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, err := s.GetLeague(ctx, leagueID)
	if err != nil {
		return league.League{}, err
	}
	if item.AdminUserID != userID {
		return league.League{}, fmt.Errorf("%w: only the league admin may do this", ErrUnauthorized)
	}

	return item, nil
}

func (s *LeagueService) createTeam(ctx context.Context, item league.League, userID, name string) (team.Team, error) {
	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	entry := team.Team{
		ID:        teamID,
		LeagueID:  item.ID,
		UserID:    userID,
		Name:      name,
		Budget:    item.Budget,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := entry.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, entry); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	return entry, nil
}

func rulesCacheKey(leagueID string) string {
	return "rules:" + leagueID
}

// resolveLeagueRules is shared by every service that needs the effective
// rule set; the cache collapses concurrent cold lookups to one repo hit.
func resolveLeagueRules(ctx context.Context, repo rules.Repository, store *cache.Store, leagueID string) (rules.RuleSet, error) {
	load := func(ctx context.Context) (any, error) {
		override, exists, err := repo.GetByLeague(ctx, leagueID)
		if err != nil {
			return rules.RuleSet{}, fmt.Errorf("get rules by league: %w", err)
		}
		if !exists {
			return rules.Default(), nil
		}
		normalized := override.Normalize()
		if err := normalized.Validate(); err != nil {
			return rules.RuleSet{}, fmt.Errorf("stored rules for league %s are invalid: %w", leagueID, err)
		}
		return normalized, nil
	}

	if store == nil {
		value, err := load(ctx)
		if err != nil {
			return rules.RuleSet{}, err
		}
		return value.(rules.RuleSet), nil
	}

	value, err := store.GetOrLoad(ctx, rulesCacheKey(leagueID), load)
	if err != nil {
		return rules.RuleSet{}, err
	}

	return value.(rules.RuleSet), nil
}
