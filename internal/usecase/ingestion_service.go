package usecase

import (
	"context"
	"fmt"

	"github.com/fantaleague/fantacalcio/internal/domain/matchevent"
	"github.com/fantaleague/fantacalcio/internal/domain/player"
)

// IngestionService imports raw matchday statistics from the real-football
// data feed. Re-importing the same (player, matchday) overwrites the
// earlier record, so corrected feeds can simply be replayed.
type IngestionService struct {
	playerRepo player.Repository
	eventRepo  matchevent.Repository
}

func NewIngestionService(playerRepo player.Repository, eventRepo matchevent.Repository) *IngestionService {
	return &IngestionService{
		playerRepo: playerRepo,
		eventRepo:  eventRepo,
	}
}

// ImportEvents validates and upserts a batch of matchday events. The batch
// is all-or-nothing up to the first failure; events are applied in order.
func (s *IngestionService) ImportEvents(ctx context.Context, events []matchevent.Event) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.ImportEvents")
	defer span.End()

	if len(events) == 0 {
		return 0, fmt.Errorf("%w: no events to import", ErrInvalidInput)
	}

	for i, event := range events {
		if err := event.Validate(); err != nil {
			return 0, fmt.Errorf("%w: event %d: %v", ErrInvalidInput, i, err)
		}
		if _, exists, err := s.playerRepo.GetByID(ctx, event.PlayerID); err != nil {
			return 0, fmt.Errorf("get player: %w", err)
		} else if !exists {
			return 0, fmt.Errorf("%w: event %d references unknown player %s", ErrNotFound, i, event.PlayerID)
		}
	}

	for i, event := range events {
		if err := s.eventRepo.Upsert(ctx, event); err != nil {
			return i, fmt.Errorf("upsert event for player %s: %w", event.PlayerID, err)
		}
	}

	return len(events), nil
}
