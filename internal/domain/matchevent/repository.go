package matchevent

import "context"

// Repository is the event source. GetByPlayerAndMatchday returns the record
// or absent; scoring treats absent and zero minutes identically.
type Repository interface {
	GetByPlayerAndMatchday(ctx context.Context, playerID string, matchday int) (Event, bool, error)
	ListByMatchday(ctx context.Context, matchday int) ([]Event, error)
	Upsert(ctx context.Context, event Event) error
}
