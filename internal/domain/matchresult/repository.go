package matchresult

import "context"

// Repository is the result sink and the standings input.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Result, error)
	ListByLeagueAndMatchday(ctx context.Context, leagueID string, matchday int) ([]Result, error)
	Upsert(ctx context.Context, result Result) error
}
