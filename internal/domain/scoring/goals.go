package scoring

import (
	"math"

	"github.com/fantaleague/fantacalcio/internal/domain/rules"
)

// GoalsFromScore converts a team's fantasy total into simulated goals for
// head-to-head fixtures: zero below the threshold, then one goal plus one
// more per full interval above it. Floor division, not truncation, because
// totals carry half-point increments.
func GoalsFromScore(total float64, rs rules.RuleSet) int {
	if total < rs.GoalThreshold {
		return 0
	}

	return 1 + int(math.Floor((total-rs.GoalThreshold)/rs.GoalInterval))
}
