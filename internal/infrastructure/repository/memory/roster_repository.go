package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/fantaleague/fantacalcio/internal/domain/roster"
)

type RosterRepository struct {
	mu      sync.RWMutex
	entries []roster.Entry
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{}
}

func (r *RosterRepository) ListByTeam(_ context.Context, teamID string) ([]roster.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Entry, 0)
	for _, entry := range r.entries {
		if entry.TeamID == teamID {
			out = append(out, entry)
		}
	}

	return out, nil
}

func (r *RosterRepository) FindOwner(_ context.Context, teamIDs []string, playerID string) (roster.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make(map[string]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		members[id] = struct{}{}
	}

	for _, entry := range r.entries {
		if entry.PlayerID != playerID {
			continue
		}
		if _, ok := members[entry.TeamID]; ok {
			return entry, true, nil
		}
	}

	return roster.Entry{}, false, nil
}

func (r *RosterRepository) Create(_ context.Context, entry roster.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.entries {
		if existing.TeamID == entry.TeamID && existing.PlayerID == entry.PlayerID {
			return fmt.Errorf("player %s is already on team %s", entry.PlayerID, entry.TeamID)
		}
	}
	r.entries = append(r.entries, entry)

	return nil
}
