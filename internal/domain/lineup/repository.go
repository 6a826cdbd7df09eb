package lineup

import "context"

// Repository exposes lineup persistence keyed by (team, matchday).
type Repository interface {
	GetByTeamAndMatchday(ctx context.Context, teamID string, matchday int) (Lineup, bool, error)
	ListByMatchday(ctx context.Context, matchday int) ([]Lineup, error)
	Upsert(ctx context.Context, item Lineup) error
}
