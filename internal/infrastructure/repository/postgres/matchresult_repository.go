package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fantaleague/fantacalcio/internal/domain/matchresult"
	qb "github.com/fantaleague/fantacalcio/internal/platform/querybuilder"
)

const matchResultTable = "fl_match_results"

type matchResultTableModel struct {
	LeagueID   string    `db:"league_id"`
	Matchday   int       `db:"matchday"`
	HomeTeamID string    `db:"home_team_id"`
	AwayTeamID string    `db:"away_team_id"`
	HomeScore  float64   `db:"home_score"`
	AwayScore  float64   `db:"away_score"`
	HomeGoals  int       `db:"home_goals"`
	AwayGoals  int       `db:"away_goals"`
	SettledAt  time.Time `db:"settled_at"`
}

func (m matchResultTableModel) toDomain() matchresult.Result {
	return matchresult.Result{
		LeagueID:   m.LeagueID,
		Matchday:   m.Matchday,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
		HomeGoals:  m.HomeGoals,
		AwayGoals:  m.AwayGoals,
		SettledAt:  m.SettledAt,
	}
}

type MatchResultRepository struct {
	db *sqlx.DB
}

func NewMatchResultRepository(db *sqlx.DB) *MatchResultRepository {
	return &MatchResultRepository{db: db}
}

func (r *MatchResultRepository) ListByLeague(ctx context.Context, leagueID string) ([]matchresult.Result, error) {
	query, args, err := qb.Select("*").From(matchResultTable).
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("matchday", "home_team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list results query: %w", err)
	}

	var rows []matchResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list results by league: %w", err)
	}

	out := make([]matchresult.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *MatchResultRepository) ListByLeagueAndMatchday(ctx context.Context, leagueID string, matchday int) ([]matchresult.Result, error) {
	query, args, err := qb.Select("*").From(matchResultTable).
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("matchday", matchday),
		).
		OrderBy("home_team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list results by matchday query: %w", err)
	}

	var rows []matchResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list results by league and matchday: %w", err)
	}

	out := make([]matchresult.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *MatchResultRepository) Upsert(ctx context.Context, result matchresult.Result) error {
	query, args, err := qb.InsertInto(matchResultTable).
		Columns("league_id", "matchday", "home_team_id", "away_team_id",
			"home_score", "away_score", "home_goals", "away_goals", "settled_at").
		Values(result.LeagueID, result.Matchday, result.HomeTeamID, result.AwayTeamID,
			result.HomeScore, result.AwayScore, result.HomeGoals, result.AwayGoals, result.SettledAt).
		Suffix(`ON CONFLICT (league_id, matchday, home_team_id, away_team_id) DO UPDATE SET
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			home_goals = EXCLUDED.home_goals,
			away_goals = EXCLUDED.away_goals,
			settled_at = EXCLUDED.settled_at`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert result query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert result: %w", err)
	}

	return nil
}
