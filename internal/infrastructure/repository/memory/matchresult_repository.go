package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/fantaleague/fantacalcio/internal/domain/matchresult"
)

type MatchResultRepository struct {
	mu    sync.RWMutex
	items map[string]matchresult.Result
	order []string
}

func NewMatchResultRepository() *MatchResultRepository {
	return &MatchResultRepository{items: make(map[string]matchresult.Result)}
}

func resultKey(item matchresult.Result) string {
	return fmt.Sprintf("%s:%d:%s:%s", item.LeagueID, item.Matchday, item.HomeTeamID, item.AwayTeamID)
}

func (r *MatchResultRepository) ListByLeague(_ context.Context, leagueID string) ([]matchresult.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchresult.Result, 0)
	for _, key := range r.order {
		if item := r.items[key]; item.LeagueID == leagueID {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *MatchResultRepository) ListByLeagueAndMatchday(_ context.Context, leagueID string, matchday int) ([]matchresult.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchresult.Result, 0)
	for _, key := range r.order {
		item := r.items[key]
		if item.LeagueID == leagueID && item.Matchday == matchday {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *MatchResultRepository) Upsert(_ context.Context, result matchresult.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := resultKey(result)
	if _, exists := r.items[key]; !exists {
		r.order = append(r.order, key)
	}
	r.items[key] = result

	return nil
}
