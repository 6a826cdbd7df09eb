package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fantaleague/fantacalcio/internal/domain/league"
	"github.com/fantaleague/fantacalcio/internal/domain/roster"
	"github.com/fantaleague/fantacalcio/internal/domain/team"
	"github.com/fantaleague/fantacalcio/internal/infrastructure/repository/memory"
)

type lineupFixture struct {
	svc        *LineupService
	leagueRepo *memory.LeagueRepository
}

// starters1 is a valid 4-3-3 from the seed pool; bench1 covers every role.
var starters1 = []string{
	"p-gk-01",
	"p-df-01", "p-df-02", "p-df-03", "p-df-04",
	"p-mf-01", "p-mf-02", "p-mf-03",
	"p-fw-01", "p-fw-02", "p-fw-03",
}

var bench1 = []string{"p-gk-02", "p-df-05", "p-mf-04", "p-fw-04"}

func newLineupFixture(t *testing.T) lineupFixture {
	t.Helper()
	ctx := context.Background()

	leagueRepo := memory.NewLeagueRepository()
	teamRepo := memory.NewTeamRepository()
	rosterRepo := memory.NewRosterRepository()
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	lineupRepo := memory.NewLineupRepository()

	if err := leagueRepo.Create(ctx, league.League{
		ID:              "l1",
		Name:            "Lega",
		AdminUserID:     "u-admin",
		InviteCode:      "inv",
		MaxTeams:        8,
		Budget:          500,
		Status:          league.StatusActive,
		CurrentMatchday: 1,
	}); err != nil {
		t.Fatalf("create league: %v", err)
	}
	if err := teamRepo.Create(ctx, team.Team{ID: "t1", LeagueID: "l1", UserID: "u1", Name: "Squadra", Budget: 100}); err != nil {
		t.Fatalf("create team: %v", err)
	}
	for _, playerID := range append(append([]string(nil), starters1...), bench1...) {
		if err := rosterRepo.Create(ctx, roster.Entry{TeamID: "t1", PlayerID: playerID, PurchasePrice: 1, CreatedAt: time.Now()}); err != nil {
			t.Fatalf("create roster entry: %v", err)
		}
	}

	return lineupFixture{
		svc:        NewLineupService(leagueRepo, teamRepo, rosterRepo, playerRepo, lineupRepo),
		leagueRepo: leagueRepo,
	}
}

func TestSubmitLineup(t *testing.T) {
	t.Parallel()

	fx := newLineupFixture(t)
	ctx := context.Background()

	item, err := fx.svc.SubmitLineup(ctx, SubmitLineupInput{
		UserID:     "u1",
		LeagueID:   "l1",
		Matchday:   1,
		Formation:  "4-3-3",
		StarterIDs: starters1,
		BenchIDs:   bench1,
	})
	if err != nil {
		t.Fatalf("SubmitLineup: %v", err)
	}
	if item.TeamID != "t1" || item.Matchday != 1 {
		t.Fatalf("unexpected lineup: %+v", item)
	}

	got, err := fx.svc.GetLineup(ctx, "t1", 1)
	if err != nil {
		t.Fatalf("GetLineup: %v", err)
	}
	if len(got.StarterIDs) != 11 || got.StarterIDs[0] != "p-gk-01" {
		t.Fatalf("starter order not preserved: %+v", got.StarterIDs)
	}
}

func TestSubmitLineup_Validation(t *testing.T) {
	t.Parallel()

	fx := newLineupFixture(t)
	ctx := context.Background()

	base := SubmitLineupInput{
		UserID:     "u1",
		LeagueID:   "l1",
		Matchday:   1,
		Formation:  "4-3-3",
		StarterIDs: starters1,
		BenchIDs:   bench1,
	}

	tests := []struct {
		name      string
		mutate    func(*SubmitLineupInput)
		targetErr error
	}{
		{
			name:      "unknown formation",
			mutate:    func(in *SubmitLineupInput) { in.Formation = "2-5-3" },
			targetErr: ErrInvalidInput,
		},
		{
			name:      "too few starters",
			mutate:    func(in *SubmitLineupInput) { in.StarterIDs = starters1[:10] },
			targetErr: ErrInvalidInput,
		},
		{
			name: "two goalkeepers",
			mutate: func(in *SubmitLineupInput) {
				ids := append([]string(nil), starters1...)
				ids[1] = "p-gk-02" // replaces a defender
				in.StarterIDs = ids
			},
			targetErr: ErrInvalidInput,
		},
		{
			name: "formation quota broken",
			mutate: func(in *SubmitLineupInput) {
				in.Formation = "3-4-3" // starters carry 4 defenders and 3 midfielders
			},
			targetErr: ErrInvalidInput,
		},
		{
			name: "player selected twice",
			mutate: func(in *SubmitLineupInput) {
				in.BenchIDs = []string{"p-df-01"}
			},
			targetErr: ErrInvalidInput,
		},
		{
			name: "player not on roster",
			mutate: func(in *SubmitLineupInput) {
				ids := append([]string(nil), starters1...)
				ids[10] = "p-fw-09" // never bought
				in.StarterIDs = ids
			},
			targetErr: ErrInvalidInput,
		},
		{
			name:      "user without a team",
			mutate:    func(in *SubmitLineupInput) { in.UserID = "u-stranger" },
			targetErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := base
			tt.mutate(&input)
			if _, err := fx.svc.SubmitLineup(ctx, input); !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestSubmitLineup_SettledMatchdayIsClosed(t *testing.T) {
	t.Parallel()

	fx := newLineupFixture(t)
	ctx := context.Background()

	item, _, err := fx.leagueRepo.GetByID(ctx, "l1")
	if err != nil {
		t.Fatalf("get league: %v", err)
	}
	item.CurrentMatchday = 3
	if err := fx.leagueRepo.Update(ctx, item); err != nil {
		t.Fatalf("update league: %v", err)
	}

	_, err = fx.svc.SubmitLineup(ctx, SubmitLineupInput{
		UserID:     "u1",
		LeagueID:   "l1",
		Matchday:   2,
		Formation:  "4-3-3",
		StarterIDs: starters1,
		BenchIDs:   bench1,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("past matchday must conflict, got %v", err)
	}

	// The current and future matchdays stay open.
	if _, err := fx.svc.SubmitLineup(ctx, SubmitLineupInput{
		UserID:     "u1",
		LeagueID:   "l1",
		Matchday:   4,
		Formation:  "4-3-3",
		StarterIDs: starters1,
		BenchIDs:   bench1,
	}); err != nil {
		t.Fatalf("future matchday submit: %v", err)
	}
}
