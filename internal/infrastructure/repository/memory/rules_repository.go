package memory

import (
	"context"
	"sync"

	"github.com/fantaleague/fantacalcio/internal/domain/rules"
)

type RulesRepository struct {
	mu    sync.RWMutex
	items map[string]rules.RuleSet
}

func NewRulesRepository() *RulesRepository {
	return &RulesRepository{items: make(map[string]rules.RuleSet)}
}

func (r *RulesRepository) GetByLeague(_ context.Context, leagueID string) (rules.RuleSet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[leagueID]
	if !ok {
		return rules.RuleSet{}, false, nil
	}

	return item, true, nil
}

func (r *RulesRepository) Upsert(_ context.Context, leagueID string, ruleSet rules.RuleSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[leagueID] = ruleSet

	return nil
}
