package league

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusAuction  Status = "auction"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

var AllStatuses = map[Status]struct{}{
	StatusDraft:    {},
	StatusAuction:  {},
	StatusActive:   {},
	StatusFinished: {},
}

const (
	MinTeams      = 4
	MaxTeams      = 12
	DefaultBudget = 500
)

// League is one private fantacalcio league: a group of user teams playing
// head-to-head fixtures over a season of matchdays.
type League struct {
	ID              string
	Name            string
	AdminUserID     string
	InviteCode      string
	MaxTeams        int
	Budget          int64
	Status          Status
	CurrentMatchday int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.AdminUserID == "" {
		return fmt.Errorf("league admin user id is required")
	}
	if l.MaxTeams < MinTeams || l.MaxTeams > MaxTeams {
		return fmt.Errorf("league max teams must be between %d and %d", MinTeams, MaxTeams)
	}
	if l.Budget <= 0 {
		return fmt.Errorf("league budget must be greater than zero")
	}
	if _, ok := AllStatuses[l.Status]; !ok {
		return fmt.Errorf("invalid league status: %s", l.Status)
	}

	return nil
}
