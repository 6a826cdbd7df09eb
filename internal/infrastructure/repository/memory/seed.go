package memory

import "github.com/fantaleague/fantacalcio/internal/domain/player"

// SeedPlayers is a small Serie A pool for dev mode, enough to run a full
// auction and field valid lineups without a database.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "p-gk-01", Name: "Maignan", Role: player.RoleGoalkeeper, RealTeam: "Milan", Active: true},
		{ID: "p-gk-02", Name: "Sommer", Role: player.RoleGoalkeeper, RealTeam: "Inter", Active: true},
		{ID: "p-gk-03", Name: "Di Gregorio", Role: player.RoleGoalkeeper, RealTeam: "Juventus", Active: true},
		{ID: "p-gk-04", Name: "Svilar", Role: player.RoleGoalkeeper, RealTeam: "Roma", Active: true},
		{ID: "p-gk-05", Name: "Meret", Role: player.RoleGoalkeeper, RealTeam: "Napoli", Active: true},
		{ID: "p-gk-06", Name: "Provedel", Role: player.RoleGoalkeeper, RealTeam: "Lazio", Active: true},

		{ID: "p-df-01", Name: "Bastoni", Role: player.RoleDefender, RealTeam: "Inter", Active: true},
		{ID: "p-df-02", Name: "Bremer", Role: player.RoleDefender, RealTeam: "Juventus", Active: true},
		{ID: "p-df-03", Name: "Theo Hernandez", Role: player.RoleDefender, RealTeam: "Milan", Active: true},
		{ID: "p-df-04", Name: "Di Lorenzo", Role: player.RoleDefender, RealTeam: "Napoli", Active: true},
		{ID: "p-df-05", Name: "Dimarco", Role: player.RoleDefender, RealTeam: "Inter", Active: true},
		{ID: "p-df-06", Name: "Tomori", Role: player.RoleDefender, RealTeam: "Milan", Active: true},
		{ID: "p-df-07", Name: "Buongiorno", Role: player.RoleDefender, RealTeam: "Napoli", Active: true},
		{ID: "p-df-08", Name: "Scalvini", Role: player.RoleDefender, RealTeam: "Atalanta", Active: true},
		{ID: "p-df-09", Name: "Romagnoli", Role: player.RoleDefender, RealTeam: "Lazio", Active: true},
		{ID: "p-df-10", Name: "Ndicka", Role: player.RoleDefender, RealTeam: "Roma", Active: true},
		{ID: "p-df-11", Name: "Calafiori", Role: player.RoleDefender, RealTeam: "Bologna", Active: true},
		{ID: "p-df-12", Name: "Dodo", Role: player.RoleDefender, RealTeam: "Fiorentina", Active: true},

		{ID: "p-mf-01", Name: "Barella", Role: player.RoleMidfielder, RealTeam: "Inter", Active: true},
		{ID: "p-mf-02", Name: "Calhanoglu", Role: player.RoleMidfielder, RealTeam: "Inter", Active: true},
		{ID: "p-mf-03", Name: "Reijnders", Role: player.RoleMidfielder, RealTeam: "Milan", Active: true},
		{ID: "p-mf-04", Name: "Koopmeiners", Role: player.RoleMidfielder, RealTeam: "Juventus", Active: true},
		{ID: "p-mf-05", Name: "Pellegrini", Role: player.RoleMidfielder, RealTeam: "Roma", Active: true},
		{ID: "p-mf-06", Name: "Anguissa", Role: player.RoleMidfielder, RealTeam: "Napoli", Active: true},
		{ID: "p-mf-07", Name: "Ederson", Role: player.RoleMidfielder, RealTeam: "Atalanta", Active: true},
		{ID: "p-mf-08", Name: "Zaccagni", Role: player.RoleMidfielder, RealTeam: "Lazio", Active: true},
		{ID: "p-mf-09", Name: "Ferguson", Role: player.RoleMidfielder, RealTeam: "Bologna", Active: true},
		{ID: "p-mf-10", Name: "Frattesi", Role: player.RoleMidfielder, RealTeam: "Inter", Active: true},
		{ID: "p-mf-11", Name: "Loftus-Cheek", Role: player.RoleMidfielder, RealTeam: "Milan", Active: true},
		{ID: "p-mf-12", Name: "Thuram K.", Role: player.RoleMidfielder, RealTeam: "Juventus", Active: true},

		{ID: "p-fw-01", Name: "Lautaro Martinez", Role: player.RoleForward, RealTeam: "Inter", Active: true},
		{ID: "p-fw-02", Name: "Vlahovic", Role: player.RoleForward, RealTeam: "Juventus", Active: true},
		{ID: "p-fw-03", Name: "Leao", Role: player.RoleForward, RealTeam: "Milan", Active: true},
		{ID: "p-fw-04", Name: "Kvaratskhelia", Role: player.RoleForward, RealTeam: "Napoli", Active: true},
		{ID: "p-fw-05", Name: "Dybala", Role: player.RoleForward, RealTeam: "Roma", Active: true},
		{ID: "p-fw-06", Name: "Lookman", Role: player.RoleForward, RealTeam: "Atalanta", Active: true},
		{ID: "p-fw-07", Name: "Castellanos", Role: player.RoleForward, RealTeam: "Lazio", Active: true},
		{ID: "p-fw-08", Name: "Retegui", Role: player.RoleForward, RealTeam: "Atalanta", Active: true},
		{ID: "p-fw-09", Name: "Thuram M.", Role: player.RoleForward, RealTeam: "Inter", Active: true},
		{ID: "p-fw-10", Name: "Pulisic", Role: player.RoleForward, RealTeam: "Milan", Active: true},
	}
}
