package matchevent

import "fmt"

// Event is the raw per-player tally for one matchday. Only recorded facts
// live here; the fantavoto is always derived, never stored.
// Identity is (player, matchday): at most one record per pair.
type Event struct {
	PlayerID string
	Matchday int

	Minutes     int
	Goals       int
	Assists     int
	YellowCards int
	RedCard     bool
	OwnGoals    int

	// Universal penalty tallies.
	PenaltiesScored int
	PenaltyMissed   int

	// Goalkeeper-only tallies, zero for outfield players.
	PenaltySaved  int
	GoalsConceded int
}

func (e Event) Validate() error {
	if e.PlayerID == "" {
		return fmt.Errorf("event player id is required")
	}
	if e.Matchday <= 0 {
		return fmt.Errorf("event matchday must be greater than zero")
	}
	if e.Minutes < 0 {
		return fmt.Errorf("event minutes cannot be negative")
	}

	return nil
}
