package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fantaleague/fantacalcio/internal/domain/league"
	"github.com/fantaleague/fantacalcio/internal/domain/lineup"
	"github.com/fantaleague/fantacalcio/internal/domain/matchevent"
	"github.com/fantaleague/fantacalcio/internal/domain/scoring"
	"github.com/fantaleague/fantacalcio/internal/domain/team"
	"github.com/fantaleague/fantacalcio/internal/infrastructure/repository/memory"
	"github.com/fantaleague/fantacalcio/internal/platform/cache"
)

var starters2 = []string{
	"p-gk-03",
	"p-df-06", "p-df-07", "p-df-08", "p-df-09",
	"p-mf-05", "p-mf-06", "p-mf-07",
	"p-fw-05", "p-fw-06", "p-fw-07",
}

var bench2 = []string{"p-gk-04", "p-df-10", "p-mf-08", "p-fw-08"}

type settlementFixture struct {
	svc        *SettlementService
	standings  *StandingsService
	leagueRepo *memory.LeagueRepository
	eventRepo  *memory.MatchEventRepository
}

// newSettlementFixture builds an active two-team league for matchday 1.
// Team t1 fields a full lineup whose keeper concedes once; team t2 is
// missing its keeper (no eligible backup) and has one midfielder covered
// from the bench.
func newSettlementFixture(t *testing.T) settlementFixture {
	t.Helper()
	ctx := context.Background()

	leagueRepo := memory.NewLeagueRepository()
	teamRepo := memory.NewTeamRepository()
	lineupRepo := memory.NewLineupRepository()
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	eventRepo := memory.NewMatchEventRepository()
	resultRepo := memory.NewMatchResultRepository()
	rulesRepo := memory.NewRulesRepository()

	require.NoError(t, leagueRepo.Create(ctx, league.League{
		ID:              "l1",
		Name:            "Lega",
		AdminUserID:     "u-admin",
		InviteCode:      "inv",
		MaxTeams:        8,
		Budget:          500,
		Status:          league.StatusActive,
		CurrentMatchday: 1,
	}))
	require.NoError(t, teamRepo.Create(ctx, team.Team{ID: "t1", LeagueID: "l1", UserID: "u-admin", Name: "Avanti", Budget: 1}))
	require.NoError(t, teamRepo.Create(ctx, team.Team{ID: "t2", LeagueID: "l1", UserID: "u2", Name: "Indietro", Budget: 1}))

	require.NoError(t, lineupRepo.Upsert(ctx, lineup.Lineup{
		TeamID: "t1", Matchday: 1, Formation: "4-3-3", StarterIDs: starters1, BenchIDs: bench1,
	}))
	require.NoError(t, lineupRepo.Upsert(ctx, lineup.Lineup{
		TeamID: "t2", Matchday: 1, Formation: "4-3-3", StarterIDs: starters2, BenchIDs: bench2,
	}))

	// Every t1 starter plays the full match; the keeper concedes once
	// (6 + 0.5 - 1 = 5.5). Outfielders rate 6.5 each.
	for _, id := range starters1 {
		event := matchevent.Event{PlayerID: id, Matchday: 1, Minutes: 90}
		if id == "p-gk-01" {
			event.GoalsConceded = 1
		}
		require.NoError(t, eventRepo.Upsert(ctx, event))
	}

	// t2: keeper and p-mf-05 sit out. The bench keeper also has no rating,
	// but p-mf-08 played and can cover the midfield slot.
	for _, id := range starters2 {
		if id == "p-gk-03" || id == "p-mf-05" {
			continue
		}
		require.NoError(t, eventRepo.Upsert(ctx, matchevent.Event{PlayerID: id, Matchday: 1, Minutes: 90}))
	}
	require.NoError(t, eventRepo.Upsert(ctx, matchevent.Event{PlayerID: "p-mf-08", Matchday: 1, Minutes: 90}))

	rulesCache := cache.NewStore(time.Minute)
	tableCache := cache.NewStore(time.Minute)

	svc, err := NewSettlementService(leagueRepo, teamRepo, lineupRepo, playerRepo, eventRepo, resultRepo, rulesRepo, rulesCache, tableCache, 4)
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	return settlementFixture{
		svc:        svc,
		standings:  NewStandingsService(leagueRepo, teamRepo, resultRepo, tableCache),
		leagueRepo: leagueRepo,
		eventRepo:  eventRepo,
	}
}

func TestSettleMatchday(t *testing.T) {
	t.Parallel()

	fx := newSettlementFixture(t)
	ctx := context.Background()

	settlement, err := fx.svc.SettleMatchday(ctx, "u-admin", "l1", 1)
	require.NoError(t, err)
	require.Len(t, settlement.Scores, 2)
	require.Len(t, settlement.Results, 1)

	// t1: 10 outfielders at 6.5 plus the keeper at 5.5.
	home := settlement.Scores[0]
	require.Equal(t, "t1", home.TeamID)
	require.InDelta(t, 70.5, home.Total, 1e-9)
	require.Equal(t, 1, home.Goals)

	// t2: nine outfield starters plus one bench cover, empty keeper slot.
	away := settlement.Scores[1]
	require.Equal(t, "t2", away.TeamID)
	require.InDelta(t, 65.0, away.Total, 1e-9)
	require.Equal(t, 0, away.Goals)

	var substituted, uncovered int
	for _, entry := range away.Trace {
		switch entry.Reason {
		case scoring.ReasonSubstituted:
			substituted++
			require.Equal(t, "p-mf-05", entry.OutPlayerID)
			require.Equal(t, "p-mf-08", entry.InPlayerID)
		case scoring.ReasonNoSubstitute:
			uncovered++
			require.Equal(t, "p-gk-03", entry.OutPlayerID)
		}
	}
	require.Equal(t, 1, substituted)
	require.Equal(t, 1, uncovered)

	result := settlement.Results[0]
	require.Equal(t, "t1", result.HomeTeamID)
	require.Equal(t, "t2", result.AwayTeamID)
	require.Equal(t, 1, result.HomeGoals)
	require.Equal(t, 0, result.AwayGoals)

	// Settling advances the league clock.
	item, exists, err := fx.leagueRepo.GetByID(ctx, "l1")
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, 2, item.CurrentMatchday)
}

func TestSettleMatchday_Guards(t *testing.T) {
	t.Parallel()

	fx := newSettlementFixture(t)
	ctx := context.Background()

	_, err := fx.svc.SettleMatchday(ctx, "u2", "l1", 1)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = fx.svc.SettleMatchday(ctx, "u-admin", "l1", 2)
	require.ErrorIs(t, err, ErrConflict)

	_, err = fx.svc.SettleMatchday(ctx, "u-admin", "l1", 1)
	require.NoError(t, err)

	// The matchday is closed once settled.
	_, err = fx.svc.SettleMatchday(ctx, "u-admin", "l1", 1)
	require.ErrorIs(t, err, ErrConflict)
}

func TestSettleMatchday_FeedsStandings(t *testing.T) {
	t.Parallel()

	fx := newSettlementFixture(t)
	ctx := context.Background()

	// Warm the standings cache with the empty table, then settle. The
	// settlement must invalidate it so the new table is served.
	before, err := fx.standings.GetStandings(ctx, "l1")
	require.NoError(t, err)
	require.Zero(t, before[0].Played)

	_, err = fx.svc.SettleMatchday(ctx, "u-admin", "l1", 1)
	require.NoError(t, err)

	table, err := fx.standings.GetStandings(ctx, "l1")
	require.NoError(t, err)
	require.Len(t, table, 2)
	require.Equal(t, "t1", table[0].TeamID)
	require.Equal(t, 3, table[0].LeaguePoints)
	require.InDelta(t, 70.5, table[0].FantasyPoints, 1e-9)
	require.Equal(t, "t2", table[1].TeamID)
	require.Equal(t, 1, table[1].Lost)
}

func TestListResults(t *testing.T) {
	t.Parallel()

	fx := newSettlementFixture(t)
	ctx := context.Background()

	_, err := fx.svc.SettleMatchday(ctx, "u-admin", "l1", 1)
	require.NoError(t, err)

	all, err := fx.svc.ListResults(ctx, "l1", 0)
	require.NoError(t, err)
	require.Len(t, all, 1)

	matchdayOne, err := fx.svc.ListResults(ctx, "l1", 1)
	require.NoError(t, err)
	require.Len(t, matchdayOne, 1)

	empty, err := fx.svc.ListResults(ctx, "l1", 7)
	require.NoError(t, err)
	require.Empty(t, empty)
}
