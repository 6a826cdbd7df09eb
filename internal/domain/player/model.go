package player

import "fmt"

// Role represents the classic fantacalcio role letters:
// P portiere (goalkeeper), D difensore (defender),
// C centrocampista (midfielder), A attaccante (forward).
type Role string

const (
	RoleGoalkeeper Role = "P"
	RoleDefender   Role = "D"
	RoleMidfielder Role = "C"
	RoleForward    Role = "A"
)

var AllRoles = map[Role]struct{}{
	RoleGoalkeeper: {},
	RoleDefender:   {},
	RoleMidfielder: {},
	RoleForward:    {},
}

// Player is a real footballer available in the auction pool.
type Player struct {
	ID       string
	Name     string
	Role     Role
	RealTeam string
	Active   bool
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("invalid player role: %s", p.Role)
	}

	return nil
}
