package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fantaleague/fantacalcio/internal/domain/matchevent"
	"github.com/fantaleague/fantacalcio/internal/infrastructure/repository/memory"
)

func TestImportEvents(t *testing.T) {
	t.Parallel()

	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	eventRepo := memory.NewMatchEventRepository()
	svc := NewIngestionService(playerRepo, eventRepo)
	ctx := context.Background()

	count, err := svc.ImportEvents(ctx, []matchevent.Event{
		{PlayerID: "p-fw-01", Matchday: 1, Minutes: 90, Goals: 2},
		{PlayerID: "p-gk-01", Matchday: 1, Minutes: 90, GoalsConceded: 1},
	})
	if err != nil {
		t.Fatalf("ImportEvents: %v", err)
	}
	if count != 2 {
		t.Fatalf("imported %d events, want 2", count)
	}

	stored, exists, err := eventRepo.GetByPlayerAndMatchday(ctx, "p-fw-01", 1)
	if err != nil || !exists {
		t.Fatalf("event missing: exists=%v err=%v", exists, err)
	}
	if stored.Goals != 2 {
		t.Fatalf("unexpected event: %+v", stored)
	}

	// A replay overwrites the earlier record.
	if _, err := svc.ImportEvents(ctx, []matchevent.Event{
		{PlayerID: "p-fw-01", Matchday: 1, Minutes: 90, Goals: 3},
	}); err != nil {
		t.Fatalf("ImportEvents replay: %v", err)
	}
	stored, _, _ = eventRepo.GetByPlayerAndMatchday(ctx, "p-fw-01", 1)
	if stored.Goals != 3 {
		t.Fatalf("replay did not overwrite: %+v", stored)
	}
}

func TestImportEvents_Rejections(t *testing.T) {
	t.Parallel()

	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	svc := NewIngestionService(playerRepo, memory.NewMatchEventRepository())
	ctx := context.Background()

	if _, err := svc.ImportEvents(ctx, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty batch must be invalid, got %v", err)
	}

	if _, err := svc.ImportEvents(ctx, []matchevent.Event{
		{PlayerID: "p-nobody", Matchday: 1, Minutes: 90},
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown player must be not found, got %v", err)
	}

	if _, err := svc.ImportEvents(ctx, []matchevent.Event{
		{PlayerID: "p-fw-01", Matchday: 0, Minutes: 90},
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("invalid event must be rejected, got %v", err)
	}
}
