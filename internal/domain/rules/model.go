package rules

import (
	"errors"
	"fmt"

	"github.com/fantaleague/fantacalcio/internal/domain/player"
)

var (
	ErrInvalidScoreBounds  = errors.New("min score cannot exceed max score")
	ErrInvalidGoalInterval = errors.New("goal interval must be greater than zero")
	ErrNegativeSubCap      = errors.New("substitution cap cannot be negative")
)

// RuleSet is the full numeric configuration governing scoring and goal
// conversion for one league. Every bonus and malus kind is a named field so
// a missing key can never silently become zero inside the scoring path.
// Malus values are stored positive and subtracted during calculation.
type RuleSet struct {
	BaseRating       float64
	MinutesThreshold int
	MinutesBonus     float64

	GoalBonusGoalkeeper float64
	GoalBonusDefender   float64
	GoalBonusMidfielder float64
	GoalBonusForward    float64

	AssistBonus        float64
	YellowCardMalus    float64
	RedCardMalus       float64
	OwnGoalMalus       float64
	PenaltyScoredBonus float64
	PenaltyMissedMalus float64
	PenaltySavedBonus  float64
	GoalConcededMalus  float64
	CleanSheetBonus    float64

	MinScore float64
	MaxScore float64

	GoalThreshold float64
	GoalInterval  float64

	MaxSubstitutions int
}

// Default returns the classic fantacalcio constants used when a league has
// no override.
func Default() RuleSet {
	return RuleSet{
		BaseRating:          6.0,
		MinutesThreshold:    60,
		MinutesBonus:        0.5,
		GoalBonusGoalkeeper: 6,
		GoalBonusDefender:   6,
		GoalBonusMidfielder: 4,
		GoalBonusForward:    3,
		AssistBonus:         1,
		YellowCardMalus:     0.5,
		RedCardMalus:        1,
		OwnGoalMalus:        2,
		PenaltyScoredBonus:  3,
		PenaltyMissedMalus:  3,
		PenaltySavedBonus:   3,
		GoalConcededMalus:   1,
		CleanSheetBonus:     1,
		MinScore:            3,
		MaxScore:            10,
		GoalThreshold:       66,
		GoalInterval:        6,
		MaxSubstitutions:    3,
	}
}

// GoalBonus resolves the per-role goal bonus. An unknown role falls back to
// the forward bonus, never to zero, so a goal's contribution is never erased.
func (r RuleSet) GoalBonus(role player.Role) float64 {
	switch role {
	case player.RoleGoalkeeper:
		return r.GoalBonusGoalkeeper
	case player.RoleDefender:
		return r.GoalBonusDefender
	case player.RoleMidfielder:
		return r.GoalBonusMidfielder
	case player.RoleForward:
		return r.GoalBonusForward
	default:
		return r.GoalBonusForward
	}
}

// Normalize fills any unset field from the defaults. A zero value means
// "unset" for every field except MinScore, which legitimately defaults
// through the zero check as well because the default minimum is positive.
func (r RuleSet) Normalize() RuleSet {
	d := Default()
	out := r
	if out.BaseRating == 0 {
		out.BaseRating = d.BaseRating
	}
	if out.MinutesThreshold == 0 {
		out.MinutesThreshold = d.MinutesThreshold
	}
	if out.MinutesBonus == 0 {
		out.MinutesBonus = d.MinutesBonus
	}
	if out.GoalBonusGoalkeeper == 0 {
		out.GoalBonusGoalkeeper = d.GoalBonusGoalkeeper
	}
	if out.GoalBonusDefender == 0 {
		out.GoalBonusDefender = d.GoalBonusDefender
	}
	if out.GoalBonusMidfielder == 0 {
		out.GoalBonusMidfielder = d.GoalBonusMidfielder
	}
	if out.GoalBonusForward == 0 {
		out.GoalBonusForward = d.GoalBonusForward
	}
	if out.AssistBonus == 0 {
		out.AssistBonus = d.AssistBonus
	}
	if out.YellowCardMalus == 0 {
		out.YellowCardMalus = d.YellowCardMalus
	}
	if out.RedCardMalus == 0 {
		out.RedCardMalus = d.RedCardMalus
	}
	if out.OwnGoalMalus == 0 {
		out.OwnGoalMalus = d.OwnGoalMalus
	}
	if out.PenaltyScoredBonus == 0 {
		out.PenaltyScoredBonus = d.PenaltyScoredBonus
	}
	if out.PenaltyMissedMalus == 0 {
		out.PenaltyMissedMalus = d.PenaltyMissedMalus
	}
	if out.PenaltySavedBonus == 0 {
		out.PenaltySavedBonus = d.PenaltySavedBonus
	}
	if out.GoalConcededMalus == 0 {
		out.GoalConcededMalus = d.GoalConcededMalus
	}
	if out.CleanSheetBonus == 0 {
		out.CleanSheetBonus = d.CleanSheetBonus
	}
	if out.MinScore == 0 {
		out.MinScore = d.MinScore
	}
	if out.MaxScore == 0 {
		out.MaxScore = d.MaxScore
	}
	if out.GoalThreshold == 0 {
		out.GoalThreshold = d.GoalThreshold
	}
	if out.GoalInterval == 0 {
		out.GoalInterval = d.GoalInterval
	}
	if out.MaxSubstitutions == 0 {
		out.MaxSubstitutions = d.MaxSubstitutions
	}

	return out
}

// Validate rejects configurations the scoring engine assumes impossible.
// It must run at the rule-source boundary, before a RuleSet reaches scoring.
func (r RuleSet) Validate() error {
	if r.MinScore > r.MaxScore {
		return fmt.Errorf("%w: min=%v max=%v", ErrInvalidScoreBounds, r.MinScore, r.MaxScore)
	}
	if r.GoalInterval <= 0 {
		return fmt.Errorf("%w: interval=%v", ErrInvalidGoalInterval, r.GoalInterval)
	}
	if r.MaxSubstitutions < 0 {
		return fmt.Errorf("%w: cap=%d", ErrNegativeSubCap, r.MaxSubstitutions)
	}

	return nil
}
