package player

import "context"

// Repository describes player pool persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	ListByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	List(ctx context.Context) ([]Player, error)
}
