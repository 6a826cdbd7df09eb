package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/fantaleague/fantacalcio/internal/domain/lineup"
	qb "github.com/fantaleague/fantacalcio/internal/platform/querybuilder"
)

const lineupTable = "fl_lineups"

// Starter and bench ids are stored as text arrays; element order carries
// the substitution priority and must survive the round trip.
type lineupTableModel struct {
	TeamID     string         `db:"team_id"`
	Matchday   int            `db:"matchday"`
	Formation  string         `db:"formation"`
	StarterIDs pq.StringArray `db:"starter_ids"`
	BenchIDs   pq.StringArray `db:"bench_ids"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (m lineupTableModel) toDomain() lineup.Lineup {
	return lineup.Lineup{
		TeamID:     m.TeamID,
		Matchday:   m.Matchday,
		Formation:  m.Formation,
		StarterIDs: []string(m.StarterIDs),
		BenchIDs:   []string(m.BenchIDs),
		UpdatedAt:  m.UpdatedAt,
	}
}

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) GetByTeamAndMatchday(ctx context.Context, teamID string, matchday int) (lineup.Lineup, bool, error) {
	query, args, err := qb.Select("*").From(lineupTable).
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("matchday", matchday),
		).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *LineupRepository) ListByMatchday(ctx context.Context, matchday int) ([]lineup.Lineup, error) {
	query, args, err := qb.Select("*").From(lineupTable).
		Where(qb.Eq("matchday", matchday)).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups query: %w", err)
	}

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups by matchday: %w", err)
	}

	out := make([]lineup.Lineup, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *LineupRepository) Upsert(ctx context.Context, item lineup.Lineup) error {
	query, args, err := qb.InsertInto(lineupTable).
		Columns("team_id", "matchday", "formation", "starter_ids", "bench_ids", "updated_at").
		Values(item.TeamID, item.Matchday, item.Formation, pq.StringArray(item.StarterIDs), pq.StringArray(item.BenchIDs), item.UpdatedAt).
		Suffix(`ON CONFLICT (team_id, matchday) DO UPDATE SET
			formation = EXCLUDED.formation,
			starter_ids = EXCLUDED.starter_ids,
			bench_ids = EXCLUDED.bench_ids,
			updated_at = EXCLUDED.updated_at`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert lineup query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert lineup: %w", err)
	}

	return nil
}
