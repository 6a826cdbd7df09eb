package cache

import (
	"context"
	"testing"
	"time"

	"github.com/fantaleague/fantacalcio/internal/domain/player"
	basecache "github.com/fantaleague/fantacalcio/internal/platform/cache"
)

type countingPlayerRepo struct {
	players map[string]player.Player
	getHits int
	ids     int
	lists   int
}

func (r *countingPlayerRepo) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.getHits++
	p, ok := r.players[playerID]
	return p, ok, nil
}

func (r *countingPlayerRepo) ListByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.ids++
	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := r.players[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *countingPlayerRepo) List(_ context.Context) ([]player.Player, error) {
	r.lists++
	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	return out, nil
}

func TestPlayerRepository_GetByIDCachesHitsAndMisses(t *testing.T) {
	t.Parallel()

	backend := &countingPlayerRepo{players: map[string]player.Player{
		"p-1": {ID: "p-1", Name: "Barella", Role: player.RoleMidfielder},
	}}
	repo := NewPlayerRepository(backend, basecache.NewStore(time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p, ok, err := repo.GetByID(ctx, "p-1")
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if !ok || p.Name != "Barella" {
			t.Fatalf("unexpected player %+v ok=%t", p, ok)
		}
	}
	if backend.getHits != 1 {
		t.Fatalf("backend hit %d times, want 1", backend.getHits)
	}

	// Misses are cached too, so an unknown id does not hammer the store.
	for i := 0; i < 3; i++ {
		if _, ok, err := repo.GetByID(ctx, "p-missing"); err != nil || ok {
			t.Fatalf("want cached miss, got ok=%t err=%v", ok, err)
		}
	}
	if backend.getHits != 2 {
		t.Fatalf("backend hit %d times, want 2", backend.getHits)
	}
}

func TestPlayerRepository_ListByIDsKeyIgnoresOrder(t *testing.T) {
	t.Parallel()

	backend := &countingPlayerRepo{players: map[string]player.Player{
		"p-1": {ID: "p-1"},
		"p-2": {ID: "p-2"},
	}}
	repo := NewPlayerRepository(backend, basecache.NewStore(time.Minute))
	ctx := context.Background()

	if _, err := repo.ListByIDs(ctx, []string{"p-1", "p-2"}); err != nil {
		t.Fatalf("ListByIDs: %v", err)
	}
	if _, err := repo.ListByIDs(ctx, []string{"p-2", "p-1"}); err != nil {
		t.Fatalf("ListByIDs: %v", err)
	}
	if backend.ids != 1 {
		t.Fatalf("backend queried %d times, want 1", backend.ids)
	}

	if items, err := repo.ListByIDs(ctx, nil); err != nil || items != nil {
		t.Fatalf("empty request should short-circuit, got %v err=%v", items, err)
	}
	if backend.ids != 1 {
		t.Fatalf("backend queried %d times after empty request, want 1", backend.ids)
	}
}

func TestPlayerRepository_ListReturnsCopies(t *testing.T) {
	t.Parallel()

	backend := &countingPlayerRepo{players: map[string]player.Player{
		"p-1": {ID: "p-1", Name: "Leao"},
	}}
	repo := NewPlayerRepository(backend, basecache.NewStore(time.Minute))
	ctx := context.Background()

	first, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	first[0].Name = "mutated"

	second, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if second[0].Name != "Leao" {
		t.Fatalf("cached value leaked a caller mutation: %+v", second[0])
	}
	if backend.lists != 1 {
		t.Fatalf("backend listed %d times, want 1", backend.lists)
	}
}
