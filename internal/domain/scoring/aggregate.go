package scoring

import (
	"github.com/fantaleague/fantacalcio/internal/domain/player"
	"github.com/fantaleague/fantacalcio/internal/domain/rules"
)

// Slot pairs a lineup player with their role.
type Slot struct {
	PlayerID string
	Role     player.Role
}

// RatingLookup resolves a player's rating for the matchday being aggregated.
type RatingLookup func(playerID string) Rating

type SubstitutionReason string

const (
	ReasonPlayed       SubstitutionReason = "played"
	ReasonSubstituted  SubstitutionReason = "substituted"
	ReasonNoSubstitute SubstitutionReason = "no_substitute"
	ReasonCapReached   SubstitutionReason = "cap_reached"
)

// SubstitutionEntry is one audit row of the aggregation: what happened to a
// starter slot. InPlayerID is set only when a bench player came on.
type SubstitutionEntry struct {
	OutPlayerID string
	InPlayerID  string
	Reason      SubstitutionReason
}

// AggregateTeamScore totals a lineup for one matchday with automatic bench
// substitution. Starters are walked in stored order; a starter without a
// rating is replaced by the first same-role bench player (in bench order)
// who has a rating and has not already come on, until the substitution cap
// is reached. A slot with no eligible substitute contributes zero.
// The result is fully deterministic for fixed inputs.
func AggregateTeamScore(starters, bench []Slot, lookup RatingLookup, rs rules.RuleSet) (float64, []SubstitutionEntry) {
	total := 0.0
	subsUsed := 0
	usedBench := make(map[string]struct{}, len(bench))
	trace := make([]SubstitutionEntry, 0, len(starters))

	for _, starter := range starters {
		rating := lookup(starter.PlayerID)
		if rating.Played {
			total += rating.Value
			trace = append(trace, SubstitutionEntry{
				OutPlayerID: starter.PlayerID,
				Reason:      ReasonPlayed,
			})
			continue
		}

		if subsUsed >= rs.MaxSubstitutions {
			trace = append(trace, SubstitutionEntry{
				OutPlayerID: starter.PlayerID,
				Reason:      ReasonCapReached,
			})
			continue
		}

		substitute, ok := findSubstitute(bench, starter.Role, usedBench, lookup)
		if !ok {
			trace = append(trace, SubstitutionEntry{
				OutPlayerID: starter.PlayerID,
				Reason:      ReasonNoSubstitute,
			})
			continue
		}

		usedBench[substitute.PlayerID] = struct{}{}
		subsUsed++
		total += lookup(substitute.PlayerID).Value
		trace = append(trace, SubstitutionEntry{
			OutPlayerID: starter.PlayerID,
			InPlayerID:  substitute.PlayerID,
			Reason:      ReasonSubstituted,
		})
	}

	return total, trace
}

func findSubstitute(bench []Slot, role player.Role, used map[string]struct{}, lookup RatingLookup) (Slot, bool) {
	for _, candidate := range bench {
		if candidate.Role != role {
			continue
		}
		if _, taken := used[candidate.PlayerID]; taken {
			continue
		}
		if !lookup(candidate.PlayerID).Played {
			continue
		}
		return candidate, true
	}

	return Slot{}, false
}
