package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	GetByUserAndLeague(ctx context.Context, userID, leagueID string) (Team, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
	Create(ctx context.Context, item Team) error
	Update(ctx context.Context, item Team) error
}
