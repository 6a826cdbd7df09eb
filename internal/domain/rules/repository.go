package rules

import "context"

// Repository is the rule source: it returns a league's override when one
// exists. Callers fall back to Default() when the league has none.
type Repository interface {
	GetByLeague(ctx context.Context, leagueID string) (RuleSet, bool, error)
	Upsert(ctx context.Context, leagueID string, ruleSet RuleSet) error
}
