package scoring

import (
	"github.com/fantaleague/fantacalcio/internal/domain/matchevent"
	"github.com/fantaleague/fantacalcio/internal/domain/player"
	"github.com/fantaleague/fantacalcio/internal/domain/rules"
)

// Rating is a player's fantavoto for one matchday. The zero value is the
// "senza voto" sentinel: the player did not play and contributes nothing,
// leaving the slot eligible for bench substitution.
type Rating struct {
	Value  float64
	Played bool
}

// NoRating is the senza-voto sentinel.
var NoRating = Rating{}

// Rate derives the fantavoto from a raw event tally, the player's role and
// the league rule set. A nil event or zero minutes means the player did not
// play; this is the single did-not-play gate, every other rule runs only
// once it passes. Rate never fails: it is a total function of its inputs.
func Rate(event *matchevent.Event, role player.Role, rs rules.RuleSet) Rating {
	if event == nil || event.Minutes == 0 {
		return NoRating
	}

	score := rs.BaseRating

	if event.Minutes >= rs.MinutesThreshold {
		score += rs.MinutesBonus
	}

	score += float64(event.Goals) * rs.GoalBonus(role)
	score += float64(event.Assists) * rs.AssistBonus

	score -= float64(event.YellowCards) * rs.YellowCardMalus
	if event.RedCard {
		// A second yellow converting to red arrives as the boolean flag,
		// so the red malus is applied exactly once.
		score -= rs.RedCardMalus
	}
	score -= float64(event.OwnGoals) * rs.OwnGoalMalus

	if role == player.RoleGoalkeeper {
		score += float64(event.PenaltySaved) * rs.PenaltySavedBonus
		score -= float64(event.GoalsConceded) * rs.GoalConcededMalus

		// Porta inviolata: zero conceded and at least the minutes threshold.
		if event.GoalsConceded == 0 && event.Minutes >= rs.MinutesThreshold {
			score += rs.CleanSheetBonus
		}
	}

	score += float64(event.PenaltiesScored) * rs.PenaltyScoredBonus
	score -= float64(event.PenaltyMissed) * rs.PenaltyMissedMalus

	// Clamp is the last operation; nothing is evaluated post-clamp.
	if score < rs.MinScore {
		score = rs.MinScore
	}
	if score > rs.MaxScore {
		score = rs.MaxScore
	}

	return Rating{Value: score, Played: true}
}
