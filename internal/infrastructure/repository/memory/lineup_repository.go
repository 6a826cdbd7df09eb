package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/fantaleague/fantacalcio/internal/domain/lineup"
)

type LineupRepository struct {
	mu    sync.RWMutex
	items map[string]lineup.Lineup
	order []string
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{items: make(map[string]lineup.Lineup)}
}

func lineupKey(teamID string, matchday int) string {
	return fmt.Sprintf("%s:%d", teamID, matchday)
}

func (r *LineupRepository) GetByTeamAndMatchday(_ context.Context, teamID string, matchday int) (lineup.Lineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[lineupKey(teamID, matchday)]
	if !ok {
		return lineup.Lineup{}, false, nil
	}

	return cloneLineup(item), true, nil
}

func (r *LineupRepository) ListByMatchday(_ context.Context, matchday int) ([]lineup.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lineup.Lineup, 0)
	for _, key := range r.order {
		if item := r.items[key]; item.Matchday == matchday {
			out = append(out, cloneLineup(item))
		}
	}

	return out, nil
}

func (r *LineupRepository) Upsert(_ context.Context, item lineup.Lineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := lineupKey(item.TeamID, item.Matchday)
	if _, exists := r.items[key]; !exists {
		r.order = append(r.order, key)
	}
	r.items[key] = cloneLineup(item)

	return nil
}

// cloneLineup copies the slices so callers cannot mutate stored state.
func cloneLineup(item lineup.Lineup) lineup.Lineup {
	item.StarterIDs = append([]string(nil), item.StarterIDs...)
	item.BenchIDs = append([]string(nil), item.BenchIDs...)
	return item
}
