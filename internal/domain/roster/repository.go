package roster

import "context"

// Repository describes roster persistence needs from use cases.
type Repository interface {
	ListByTeam(ctx context.Context, teamID string) ([]Entry, error)
	FindOwner(ctx context.Context, teamIDs []string, playerID string) (Entry, bool, error)
	Create(ctx context.Context, entry Entry) error
}
