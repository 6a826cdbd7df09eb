package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fantaleague/fantacalcio/internal/domain/league"
	"github.com/fantaleague/fantacalcio/internal/domain/rules"
	"github.com/fantaleague/fantacalcio/internal/infrastructure/repository/memory"
	"github.com/fantaleague/fantacalcio/internal/platform/cache"
)

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("id-%d", g.n), nil
}

func (g *seqIDGen) NewInviteCode() (string, error) {
	g.n++
	return fmt.Sprintf("inv-%d", g.n), nil
}

func newLeagueService() (*LeagueService, *memory.LeagueRepository, *memory.TeamRepository) {
	leagueRepo := memory.NewLeagueRepository()
	teamRepo := memory.NewTeamRepository()
	rulesRepo := memory.NewRulesRepository()
	return NewLeagueService(leagueRepo, teamRepo, rulesRepo, &seqIDGen{}, cache.NewStore(time.Minute)), leagueRepo, teamRepo
}

func TestCreateLeague_AdminGetsATeam(t *testing.T) {
	t.Parallel()

	svc, _, teamRepo := newLeagueService()
	ctx := context.Background()

	created, err := svc.CreateLeague(ctx, CreateLeagueInput{
		AdminUserID: "u-admin",
		Name:        "Lega Amici",
		TeamName:    "AC Divano",
	})
	if err != nil {
		t.Fatalf("CreateLeague: %v", err)
	}
	if created.Status != league.StatusDraft {
		t.Fatalf("new league must be draft, got %s", created.Status)
	}
	if created.InviteCode == "" {
		t.Fatal("new league must carry an invite code")
	}
	if created.CurrentMatchday != 1 {
		t.Fatalf("new league starts at matchday 1, got %d", created.CurrentMatchday)
	}

	adminTeam, exists, err := teamRepo.GetByUserAndLeague(ctx, "u-admin", created.ID)
	if err != nil || !exists {
		t.Fatalf("admin team missing: exists=%v err=%v", exists, err)
	}
	if adminTeam.Budget != created.Budget {
		t.Fatalf("admin team budget %d, want league budget %d", adminTeam.Budget, created.Budget)
	}
}

func TestJoinLeague(t *testing.T) {
	t.Parallel()

	svc, _, _ := newLeagueService()
	ctx := context.Background()

	created, err := svc.CreateLeague(ctx, CreateLeagueInput{AdminUserID: "u-admin", Name: "Lega"})
	if err != nil {
		t.Fatalf("CreateLeague: %v", err)
	}

	joined, err := svc.JoinLeague(ctx, JoinLeagueInput{UserID: "u-2", InviteCode: created.InviteCode, TeamName: "Real Scampia"})
	if err != nil {
		t.Fatalf("JoinLeague: %v", err)
	}
	if joined.LeagueID != created.ID || joined.UserID != "u-2" {
		t.Fatalf("unexpected team: %+v", joined)
	}

	if _, err := svc.JoinLeague(ctx, JoinLeagueInput{UserID: "u-2", InviteCode: created.InviteCode, TeamName: "Doppione"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("second team for same user must conflict, got %v", err)
	}

	if _, err := svc.JoinLeague(ctx, JoinLeagueInput{UserID: "u-3", InviteCode: "nope", TeamName: "Ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("bad invite code must be not found, got %v", err)
	}
}

func TestJoinLeague_ClosedAfterAuctionStarts(t *testing.T) {
	t.Parallel()

	svc, _, _ := newLeagueService()
	ctx := context.Background()

	created, err := svc.CreateLeague(ctx, CreateLeagueInput{AdminUserID: "u-admin", Name: "Lega"})
	if err != nil {
		t.Fatalf("CreateLeague: %v", err)
	}
	if _, err := svc.JoinLeague(ctx, JoinLeagueInput{UserID: "u-2", InviteCode: created.InviteCode, TeamName: "Secondi"}); err != nil {
		t.Fatalf("JoinLeague: %v", err)
	}
	if _, err := svc.StartAuction(ctx, "u-admin", created.ID); err != nil {
		t.Fatalf("StartAuction: %v", err)
	}

	if _, err := svc.JoinLeague(ctx, JoinLeagueInput{UserID: "u-3", InviteCode: created.InviteCode, TeamName: "Terzi"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("joining after the auction opened must conflict, got %v", err)
	}
}

func TestStartAuction(t *testing.T) {
	t.Parallel()

	svc, _, _ := newLeagueService()
	ctx := context.Background()

	created, err := svc.CreateLeague(ctx, CreateLeagueInput{AdminUserID: "u-admin", Name: "Lega"})
	if err != nil {
		t.Fatalf("CreateLeague: %v", err)
	}

	// Only the admin team has joined so far.
	if _, err := svc.StartAuction(ctx, "u-admin", created.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("auction with one team must conflict, got %v", err)
	}

	if _, err := svc.JoinLeague(ctx, JoinLeagueInput{UserID: "u-2", InviteCode: created.InviteCode, TeamName: "Secondi"}); err != nil {
		t.Fatalf("JoinLeague: %v", err)
	}

	if _, err := svc.StartAuction(ctx, "u-2", created.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-admin start must be unauthorized, got %v", err)
	}

	updated, err := svc.StartAuction(ctx, "u-admin", created.ID)
	if err != nil {
		t.Fatalf("StartAuction: %v", err)
	}
	if updated.Status != league.StatusAuction {
		t.Fatalf("league should be in auction, got %s", updated.Status)
	}

	active, err := svc.StartSeason(ctx, "u-admin", created.ID)
	if err != nil {
		t.Fatalf("StartSeason: %v", err)
	}
	if active.Status != league.StatusActive {
		t.Fatalf("league should be active, got %s", active.Status)
	}
}

func TestGetRules_DefaultsWhenNoOverride(t *testing.T) {
	t.Parallel()

	svc, _, _ := newLeagueService()
	ctx := context.Background()

	created, err := svc.CreateLeague(ctx, CreateLeagueInput{AdminUserID: "u-admin", Name: "Lega"})
	if err != nil {
		t.Fatalf("CreateLeague: %v", err)
	}

	got, err := svc.GetRules(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetRules: %v", err)
	}
	if got != rules.Default() {
		t.Fatalf("expected default rules, got %+v", got)
	}
}

func TestUpdateRules(t *testing.T) {
	t.Parallel()

	svc, _, _ := newLeagueService()
	ctx := context.Background()

	created, err := svc.CreateLeague(ctx, CreateLeagueInput{AdminUserID: "u-admin", Name: "Lega"})
	if err != nil {
		t.Fatalf("CreateLeague: %v", err)
	}

	// Prime the cache with the defaults, then override.
	if _, err := svc.GetRules(ctx, created.ID); err != nil {
		t.Fatalf("GetRules: %v", err)
	}

	override := rules.RuleSet{GoalThreshold: 70}
	updated, err := svc.UpdateRules(ctx, "u-admin", created.ID, override)
	if err != nil {
		t.Fatalf("UpdateRules: %v", err)
	}
	if updated.GoalThreshold != 70 {
		t.Fatalf("override not applied: %+v", updated)
	}
	if updated.GoalInterval != rules.Default().GoalInterval {
		t.Fatalf("unset fields must inherit defaults: %+v", updated)
	}

	// The cache must serve the override, not the stale defaults.
	got, err := svc.GetRules(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetRules: %v", err)
	}
	if got.GoalThreshold != 70 {
		t.Fatalf("cache served stale rules: %+v", got)
	}

	if _, err := svc.UpdateRules(ctx, "u-2", created.ID, override); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-admin rules update must be unauthorized, got %v", err)
	}

	bad := rules.RuleSet{MinScore: 11, MaxScore: 10}
	if _, err := svc.UpdateRules(ctx, "u-admin", created.ID, bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("invalid bounds must be rejected, got %v", err)
	}
}
