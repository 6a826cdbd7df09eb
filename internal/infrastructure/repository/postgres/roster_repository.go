package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fantaleague/fantacalcio/internal/domain/roster"
	qb "github.com/fantaleague/fantacalcio/internal/platform/querybuilder"
)

const rosterTable = "fl_roster_entries"

type rosterTableModel struct {
	TeamID        string    `db:"team_id"`
	PlayerID      string    `db:"player_id"`
	PurchasePrice int64     `db:"purchase_price"`
	CreatedAt     time.Time `db:"created_at"`
}

func (m rosterTableModel) toDomain() roster.Entry {
	return roster.Entry{
		TeamID:        m.TeamID,
		PlayerID:      m.PlayerID,
		PurchasePrice: m.PurchasePrice,
		CreatedAt:     m.CreatedAt,
	}
}

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListByTeam(ctx context.Context, teamID string) ([]roster.Entry, error) {
	query, args, err := qb.Select("*").From(rosterTable).
		Where(qb.Eq("team_id", teamID)).
		OrderBy("created_at", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list roster query: %w", err)
	}

	var rows []rosterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list roster by team: %w", err)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

// FindOwner looks for the player across the given teams; the caller passes
// all team ids of one league to enforce auction exclusivity.
func (r *RosterRepository) FindOwner(ctx context.Context, teamIDs []string, playerID string) (roster.Entry, bool, error) {
	if len(teamIDs) == 0 {
		return roster.Entry{}, false, nil
	}

	ids := make([]any, 0, len(teamIDs))
	for _, id := range teamIDs {
		ids = append(ids, id)
	}
	query, args, err := qb.Select("*").From(rosterTable).
		Where(
			qb.In("team_id", ids),
			qb.Eq("player_id", playerID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return roster.Entry{}, false, fmt.Errorf("build find owner query: %w", err)
	}

	var row rosterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Entry{}, false, nil
		}
		return roster.Entry{}, false, fmt.Errorf("find player owner: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *RosterRepository) Create(ctx context.Context, entry roster.Entry) error {
	query, args, err := qb.InsertModel(rosterTable, rosterTableModel{
		TeamID:        entry.TeamID,
		PlayerID:      entry.PlayerID,
		PurchasePrice: entry.PurchasePrice,
		CreatedAt:     entry.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert roster entry query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("player %s already rostered by team %s: %w", entry.PlayerID, entry.TeamID, err)
		}
		return fmt.Errorf("insert roster entry: %w", err)
	}

	return nil
}
