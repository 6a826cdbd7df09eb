package postgres

import (
	"time"

	"github.com/fantaleague/fantacalcio/internal/domain/league"
)

type leagueTableModel struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	AdminUserID     string    `db:"admin_user_id"`
	InviteCode      string    `db:"invite_code"`
	MaxTeams        int       `db:"max_teams"`
	Budget          int64     `db:"budget"`
	Status          string    `db:"status"`
	CurrentMatchday int       `db:"current_matchday"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:              m.ID,
		Name:            m.Name,
		AdminUserID:     m.AdminUserID,
		InviteCode:      m.InviteCode,
		MaxTeams:        m.MaxTeams,
		Budget:          m.Budget,
		Status:          league.Status(m.Status),
		CurrentMatchday: m.CurrentMatchday,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toLeagueModel(item league.League) leagueTableModel {
	return leagueTableModel{
		ID:              item.ID,
		Name:            item.Name,
		AdminUserID:     item.AdminUserID,
		InviteCode:      item.InviteCode,
		MaxTeams:        item.MaxTeams,
		Budget:          item.Budget,
		Status:          string(item.Status),
		CurrentMatchday: item.CurrentMatchday,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}
