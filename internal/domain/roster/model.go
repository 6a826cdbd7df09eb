package roster

import (
	"fmt"
	"time"

	"github.com/fantaleague/fantacalcio/internal/domain/player"
)

// Entry records one auction purchase: a player owned by a team at a price.
// Identity is (team, player); a player is owned at most once per league.
type Entry struct {
	TeamID        string
	PlayerID      string
	PurchasePrice int64
	CreatedAt     time.Time
}

func (e Entry) Validate() error {
	if e.TeamID == "" {
		return fmt.Errorf("roster entry team id is required")
	}
	if e.PlayerID == "" {
		return fmt.Errorf("roster entry player id is required")
	}
	if e.PurchasePrice <= 0 {
		return fmt.Errorf("roster entry purchase price must be greater than zero")
	}

	return nil
}

// Limits caps the roster per role and in total, classic 25-man squad.
type Limits struct {
	PerRole map[player.Role]int
	Total   int
}

func DefaultLimits() Limits {
	return Limits{
		PerRole: map[player.Role]int{
			player.RoleGoalkeeper: 3,
			player.RoleDefender:   8,
			player.RoleMidfielder: 8,
			player.RoleForward:    6,
		},
		Total: 25,
	}
}
