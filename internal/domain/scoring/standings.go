package scoring

import (
	"sort"

	"github.com/fantaleague/fantacalcio/internal/domain/matchresult"
	"github.com/fantaleague/fantacalcio/internal/domain/team"
)

// StandingsRow is one league-table line, recomputed fresh from the full set
// of persisted match results on every query. Nothing is incrementally
// mutated, so the table can never drift from the results.
type StandingsRow struct {
	TeamID        string
	TeamName      string
	Played        int
	Won           int
	Drawn         int
	Lost          int
	LeaguePoints  int
	FantasyPoints float64
}

// ComputeStandings folds a season's results into an ordered table.
// Converted goals decide win/draw/loss; league points are 3/1/0; total
// fantasy points break ties, then team id for a reproducible order.
func ComputeStandings(teams []team.Team, results []matchresult.Result) []StandingsRow {
	table := make([]StandingsRow, 0, len(teams))

	for _, t := range teams {
		row := StandingsRow{TeamID: t.ID, TeamName: t.Name}

		for _, r := range results {
			var ownGoals, oppGoals int
			var ownScore float64
			switch t.ID {
			case r.HomeTeamID:
				ownGoals, oppGoals, ownScore = r.HomeGoals, r.AwayGoals, r.HomeScore
			case r.AwayTeamID:
				ownGoals, oppGoals, ownScore = r.AwayGoals, r.HomeGoals, r.AwayScore
			default:
				continue
			}

			row.Played++
			row.FantasyPoints += ownScore

			switch {
			case ownGoals > oppGoals:
				row.Won++
			case ownGoals == oppGoals:
				row.Drawn++
			default:
				row.Lost++
			}
		}

		row.LeaguePoints = row.Won*3 + row.Drawn
		table = append(table, row)
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].LeaguePoints != table[j].LeaguePoints {
			return table[i].LeaguePoints > table[j].LeaguePoints
		}
		if table[i].FantasyPoints != table[j].FantasyPoints {
			return table[i].FantasyPoints > table[j].FantasyPoints
		}
		return table[i].TeamID < table[j].TeamID
	})

	return table
}
