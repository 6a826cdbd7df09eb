package rules

import (
	"errors"
	"testing"

	"github.com/fantaleague/fantacalcio/internal/domain/player"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	if err := Default().Validate(); err != nil {
		t.Fatalf("default rule set must validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*RuleSet)
		targetErr error
	}{
		{
			name:      "valid",
			mutate:    func(_ *RuleSet) {},
			targetErr: nil,
		},
		{
			name: "min above max",
			mutate: func(rs *RuleSet) {
				rs.MinScore = 11
			},
			targetErr: ErrInvalidScoreBounds,
		},
		{
			name: "zero goal interval",
			mutate: func(rs *RuleSet) {
				rs.GoalInterval = 0
			},
			targetErr: ErrInvalidGoalInterval,
		},
		{
			name: "negative substitution cap",
			mutate: func(rs *RuleSet) {
				rs.MaxSubstitutions = -1
			},
			targetErr: ErrNegativeSubCap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rs := Default()
			tt.mutate(&rs)

			err := rs.Validate()
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected error %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestNormalizeFillsUnsetFields(t *testing.T) {
	t.Parallel()

	partial := RuleSet{GoalThreshold: 70, MaxSubstitutions: 5}
	got := partial.Normalize()

	if got.GoalThreshold != 70 {
		t.Fatalf("override lost in normalize: %+v", got)
	}
	if got.MaxSubstitutions != 5 {
		t.Fatalf("override lost in normalize: %+v", got)
	}

	want := Default()
	want.GoalThreshold = 70
	want.MaxSubstitutions = 5
	if got != want {
		t.Fatalf("normalize mismatch: got=%+v want=%+v", got, want)
	}
}

func TestGoalBonusCoversEveryRole(t *testing.T) {
	t.Parallel()

	rs := Default()
	wantByRole := map[player.Role]float64{
		player.RoleGoalkeeper: 6,
		player.RoleDefender:   6,
		player.RoleMidfielder: 4,
		player.RoleForward:    3,
	}

	for role, want := range wantByRole {
		if got := rs.GoalBonus(role); got != want {
			t.Fatalf("goal bonus mismatch for %s: got=%v want=%v", role, got, want)
		}
	}

	if got := rs.GoalBonus(player.Role("??")); got != rs.GoalBonusForward {
		t.Fatalf("unknown role must fall back to the forward bonus, got %v", got)
	}
}
