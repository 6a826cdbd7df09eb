package postgres

import "github.com/fantaleague/fantacalcio/internal/domain/player"

type playerTableModel struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Role     string `db:"role"`
	RealTeam string `db:"real_team"`
	Active   bool   `db:"active"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:       m.ID,
		Name:     m.Name,
		Role:     player.Role(m.Role),
		RealTeam: m.RealTeam,
		Active:   m.Active,
	}
}
