package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fantaleague/fantacalcio/internal/domain/league"
	"github.com/fantaleague/fantacalcio/internal/domain/player"
	"github.com/fantaleague/fantacalcio/internal/domain/roster"
	"github.com/fantaleague/fantacalcio/internal/domain/team"
)

type BuyPlayerInput struct {
	UserID   string
	LeagueID string
	TeamID   string
	PlayerID string
	Price    int64
}

// RosterItem joins a roster entry with the player behind it.
type RosterItem struct {
	Entry  roster.Entry
	Player player.Player
}

// AuctionService assigns real players to teams while the league auction is
// open, enforcing budget, exclusivity and squad composition limits.
type AuctionService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
	limits     roster.Limits
	now        func() time.Time
}

func NewAuctionService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
) *AuctionService {
	return &AuctionService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		limits:     roster.DefaultLimits(),
		now:        time.Now,
	}
}

// BuyPlayer records an auction purchase: the player joins the team roster
// and the price leaves the team budget. League admins settle the auction
// room outcome through this call, one purchase at a time.
func (s *AuctionService) BuyPlayer(ctx context.Context, input BuyPlayerInput) (roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "AuctionService.BuyPlayer")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	if input.UserID == "" {
		return roster.Entry{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.LeagueID == "" {
		return roster.Entry{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.TeamID == "" {
		return roster.Entry{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.PlayerID == "" {
		return roster.Entry{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if input.Price <= 0 {
		return roster.Entry{}, fmt.Errorf("%w: price must be greater than zero", ErrInvalidInput)
	}

	leagueItem, exists, err := s.leagueRepo.GetByID(ctx, input.LeagueID)
	if err != nil {
		return roster.Entry{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return roster.Entry{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}
	if leagueItem.AdminUserID != input.UserID {
		return roster.Entry{}, fmt.Errorf("%w: only the league admin records purchases", ErrUnauthorized)
	}
	if leagueItem.Status != league.StatusAuction {
		return roster.Entry{}, fmt.Errorf("%w: league %s has no auction in progress", ErrConflict, leagueItem.ID)
	}

	teamItem, exists, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return roster.Entry{}, fmt.Errorf("get team: %w", err)
	}
	if !exists || teamItem.LeagueID != leagueItem.ID {
		return roster.Entry{}, fmt.Errorf("%w: team=%s league=%s", ErrNotFound, input.TeamID, leagueItem.ID)
	}
	if teamItem.Budget < input.Price {
		return roster.Entry{}, fmt.Errorf("%w: team budget %d cannot cover price %d", ErrConflict, teamItem.Budget, input.Price)
	}

	playerItem, exists, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		return roster.Entry{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return roster.Entry{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
	}
	if !playerItem.Active {
		return roster.Entry{}, fmt.Errorf("%w: player %s is not available", ErrConflict, playerItem.ID)
	}

	if err := s.checkExclusivity(ctx, leagueItem.ID, playerItem.ID); err != nil {
		return roster.Entry{}, err
	}
	if err := s.checkSquadLimits(ctx, teamItem.ID, playerItem.Role); err != nil {
		return roster.Entry{}, err
	}

	entry := roster.Entry{
		TeamID:        teamItem.ID,
		PlayerID:      playerItem.ID,
		PurchasePrice: input.Price,
		CreatedAt:     s.now().UTC(),
	}
	if err := entry.Validate(); err != nil {
		return roster.Entry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.rosterRepo.Create(ctx, entry); err != nil {
		return roster.Entry{}, fmt.Errorf("create roster entry: %w", err)
	}

	teamItem.Budget -= input.Price
	teamItem.UpdatedAt = s.now().UTC()
	if err := s.teamRepo.Update(ctx, teamItem); err != nil {
		return roster.Entry{}, fmt.Errorf("update team budget: %w", err)
	}

	return entry, nil
}

// ListRoster returns a team's purchases joined with player details.
func (s *AuctionService) ListRoster(ctx context.Context, teamID string) ([]RosterItem, error) {
	ctx, span := startUsecaseSpan(ctx, "AuctionService.ListRoster")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	if _, exists, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	entries, err := s.rosterRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list roster entries: %w", err)
	}

	playerIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		playerIDs = append(playerIDs, entry.PlayerID)
	}
	players, err := s.playerRepo.ListByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	items := make([]RosterItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, RosterItem{Entry: entry, Player: byID[entry.PlayerID]})
	}

	return items, nil
}

func (s *AuctionService) checkExclusivity(ctx context.Context, leagueID, playerID string) error {
	members, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("list league teams: %w", err)
	}
	teamIDs := make([]string, 0, len(members))
	for _, member := range members {
		teamIDs = append(teamIDs, member.ID)
	}

	owner, owned, err := s.rosterRepo.FindOwner(ctx, teamIDs, playerID)
	if err != nil {
		return fmt.Errorf("find player owner: %w", err)
	}
	if owned {
		return fmt.Errorf("%w: player %s already belongs to team %s", ErrConflict, playerID, owner.TeamID)
	}

	return nil
}

func (s *AuctionService) checkSquadLimits(ctx context.Context, teamID string, role player.Role) error {
	entries, err := s.rosterRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("list roster entries: %w", err)
	}
	if len(entries) >= s.limits.Total {
		return fmt.Errorf("%w: roster is full (%d players)", ErrConflict, s.limits.Total)
	}

	playerIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		playerIDs = append(playerIDs, entry.PlayerID)
	}
	players, err := s.playerRepo.ListByIDs(ctx, playerIDs)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}

	inRole := 0
	for _, p := range players {
		if p.Role == role {
			inRole++
		}
	}
	if limit, ok := s.limits.PerRole[role]; ok && inRole >= limit {
		return fmt.Errorf("%w: role %s quota of %d is already filled", ErrConflict, role, limit)
	}

	return nil
}
