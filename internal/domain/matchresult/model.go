package matchresult

import (
	"fmt"
	"time"
)

// Result is one settled head-to-head fixture: both teams' fantasy totals
// plus the goal tallies they converted to. Standings read goals, never
// fantasy points, to decide win/draw/loss.
type Result struct {
	LeagueID   string
	Matchday   int
	HomeTeamID string
	AwayTeamID string
	HomeScore  float64
	AwayScore  float64
	HomeGoals  int
	AwayGoals  int
	SettledAt  time.Time
}

func (r Result) Validate() error {
	if r.LeagueID == "" {
		return fmt.Errorf("result league id is required")
	}
	if r.Matchday <= 0 {
		return fmt.Errorf("result matchday must be greater than zero")
	}
	if r.HomeTeamID == "" || r.AwayTeamID == "" {
		return fmt.Errorf("result team ids are required")
	}
	if r.HomeTeamID == r.AwayTeamID {
		return fmt.Errorf("result teams must differ")
	}
	if r.HomeGoals < 0 || r.AwayGoals < 0 {
		return fmt.Errorf("result goals cannot be negative")
	}

	return nil
}
