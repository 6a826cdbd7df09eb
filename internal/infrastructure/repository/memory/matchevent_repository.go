package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/fantaleague/fantacalcio/internal/domain/matchevent"
)

type MatchEventRepository struct {
	mu    sync.RWMutex
	items map[string]matchevent.Event
	order []string
}

func NewMatchEventRepository() *MatchEventRepository {
	return &MatchEventRepository{items: make(map[string]matchevent.Event)}
}

func eventKey(playerID string, matchday int) string {
	return fmt.Sprintf("%s:%d", playerID, matchday)
}

func (r *MatchEventRepository) GetByPlayerAndMatchday(_ context.Context, playerID string, matchday int) (matchevent.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[eventKey(playerID, matchday)]
	if !ok {
		return matchevent.Event{}, false, nil
	}

	return item, true, nil
}

func (r *MatchEventRepository) ListByMatchday(_ context.Context, matchday int) ([]matchevent.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchevent.Event, 0)
	for _, key := range r.order {
		if item := r.items[key]; item.Matchday == matchday {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *MatchEventRepository) Upsert(_ context.Context, event matchevent.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := eventKey(event.PlayerID, event.Matchday)
	if _, exists := r.items[key]; !exists {
		r.order = append(r.order, key)
	}
	r.items[key] = event

	return nil
}
