package team

import (
	"fmt"
	"time"
)

// Team is one user's fantasy squad entry in a league. A user owns at most
// one team per league.
type Team struct {
	ID        string
	LeagueID  string
	UserID    string
	Name      string
	Budget    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}
	if t.UserID == "" {
		return fmt.Errorf("team user id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Budget < 0 {
		return fmt.Errorf("team budget cannot be negative")
	}

	return nil
}
