package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fantaleague/fantacalcio/internal/domain/matchevent"
	qb "github.com/fantaleague/fantacalcio/internal/platform/querybuilder"
)

const matchEventTable = "fl_match_events"

type matchEventTableModel struct {
	PlayerID        string `db:"player_id"`
	Matchday        int    `db:"matchday"`
	Minutes         int    `db:"minutes"`
	Goals           int    `db:"goals"`
	Assists         int    `db:"assists"`
	YellowCards     int    `db:"yellow_cards"`
	RedCard         bool   `db:"red_card"`
	OwnGoals        int    `db:"own_goals"`
	PenaltiesScored int    `db:"penalties_scored"`
	PenaltyMissed   int    `db:"penalties_missed"`
	PenaltySaved    int    `db:"penalties_saved"`
	GoalsConceded   int    `db:"goals_conceded"`
}

func (m matchEventTableModel) toDomain() matchevent.Event {
	return matchevent.Event{
		PlayerID:        m.PlayerID,
		Matchday:        m.Matchday,
		Minutes:         m.Minutes,
		Goals:           m.Goals,
		Assists:         m.Assists,
		YellowCards:     m.YellowCards,
		RedCard:         m.RedCard,
		OwnGoals:        m.OwnGoals,
		PenaltiesScored: m.PenaltiesScored,
		PenaltyMissed:   m.PenaltyMissed,
		PenaltySaved:    m.PenaltySaved,
		GoalsConceded:   m.GoalsConceded,
	}
}

type MatchEventRepository struct {
	db *sqlx.DB
}

func NewMatchEventRepository(db *sqlx.DB) *MatchEventRepository {
	return &MatchEventRepository{db: db}
}

func (r *MatchEventRepository) GetByPlayerAndMatchday(ctx context.Context, playerID string, matchday int) (matchevent.Event, bool, error) {
	query, args, err := qb.Select("*").From(matchEventTable).
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("matchday", matchday),
		).
		ToSQL()
	if err != nil {
		return matchevent.Event{}, false, fmt.Errorf("build get event query: %w", err)
	}

	var row matchEventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchevent.Event{}, false, nil
		}
		return matchevent.Event{}, false, fmt.Errorf("get event: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *MatchEventRepository) ListByMatchday(ctx context.Context, matchday int) ([]matchevent.Event, error) {
	query, args, err := qb.Select("*").From(matchEventTable).
		Where(qb.Eq("matchday", matchday)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events query: %w", err)
	}

	var rows []matchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events by matchday: %w", err)
	}

	out := make([]matchevent.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *MatchEventRepository) Upsert(ctx context.Context, event matchevent.Event) error {
	query, args, err := qb.InsertInto(matchEventTable).
		Columns("player_id", "matchday", "minutes", "goals", "assists", "yellow_cards",
			"red_card", "own_goals", "penalties_scored", "penalties_missed", "penalties_saved", "goals_conceded").
		Values(event.PlayerID, event.Matchday, event.Minutes, event.Goals, event.Assists, event.YellowCards,
			event.RedCard, event.OwnGoals, event.PenaltiesScored, event.PenaltyMissed, event.PenaltySaved, event.GoalsConceded).
		Suffix(`ON CONFLICT (player_id, matchday) DO UPDATE SET
			minutes = EXCLUDED.minutes,
			goals = EXCLUDED.goals,
			assists = EXCLUDED.assists,
			yellow_cards = EXCLUDED.yellow_cards,
			red_card = EXCLUDED.red_card,
			own_goals = EXCLUDED.own_goals,
			penalties_scored = EXCLUDED.penalties_scored,
			penalties_missed = EXCLUDED.penalties_missed,
			penalties_saved = EXCLUDED.penalties_saved,
			goals_conceded = EXCLUDED.goals_conceded`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert event query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert event: %w", err)
	}

	return nil
}
