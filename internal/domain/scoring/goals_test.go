package scoring

import (
	"testing"

	"github.com/fantaleague/fantacalcio/internal/domain/rules"
)

func TestGoalsFromScore(t *testing.T) {
	t.Parallel()

	rs := rules.Default()

	tests := []struct {
		total float64
		want  int
	}{
		{total: 0, want: 0},
		{total: 65, want: 0},
		{total: 65.5, want: 0},
		{total: 66, want: 1},
		{total: 71.5, want: 1},
		{total: 72, want: 2},
		{total: 77.5, want: 2},
		{total: 78, want: 3},
		{total: 90, want: 5},
	}

	for _, tt := range tests {
		if got := GoalsFromScore(tt.total, rs); got != tt.want {
			t.Fatalf("GoalsFromScore(%v) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestGoalsFromScore_NonDecreasing(t *testing.T) {
	t.Parallel()

	rs := rules.Default()
	previous := 0
	for total := 0.0; total <= 120; total += 0.5 {
		got := GoalsFromScore(total, rs)
		if got < previous {
			t.Fatalf("goals decreased at total=%v: got=%d previous=%d", total, got, previous)
		}
		previous = got
	}
}

func TestGoalsFromScore_CustomInterval(t *testing.T) {
	t.Parallel()

	rs := rules.Default()
	rs.GoalThreshold = 60
	rs.GoalInterval = 4

	if got := GoalsFromScore(59.5, rs); got != 0 {
		t.Fatalf("below threshold must be 0, got %d", got)
	}
	if got := GoalsFromScore(60, rs); got != 1 {
		t.Fatalf("at threshold must be 1, got %d", got)
	}
	if got := GoalsFromScore(67.5, rs); got != 2 {
		t.Fatalf("one full interval above must be 2, got %d", got)
	}
}
