package lineup

import (
	"fmt"
	"time"
)

// Lineup is one team's declared selection for a matchday: ordered starters,
// ordered bench, and the formation string the starters were validated
// against (e.g. "3-4-3"). Order matters for deterministic substitution.
type Lineup struct {
	TeamID     string
	Matchday   int
	Formation  string
	StarterIDs []string
	BenchIDs   []string
	UpdatedAt  time.Time
}

func (l Lineup) Validate() error {
	if l.TeamID == "" {
		return fmt.Errorf("lineup team id is required")
	}
	if l.Matchday <= 0 {
		return fmt.Errorf("lineup matchday must be greater than zero")
	}
	if l.Formation == "" {
		return fmt.Errorf("lineup formation is required")
	}
	if len(l.StarterIDs) == 0 {
		return fmt.Errorf("lineup starters are required")
	}

	return nil
}
