package postgres

import (
	"time"

	"github.com/fantaleague/fantacalcio/internal/domain/team"
)

type teamTableModel struct {
	ID        string    `db:"id"`
	LeagueID  string    `db:"league_id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Budget    int64     `db:"budget"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:        m.ID,
		LeagueID:  m.LeagueID,
		UserID:    m.UserID,
		Name:      m.Name,
		Budget:    m.Budget,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toTeamModel(item team.Team) teamTableModel {
	return teamTableModel{
		ID:        item.ID,
		LeagueID:  item.LeagueID,
		UserID:    item.UserID,
		Name:      item.Name,
		Budget:    item.Budget,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
