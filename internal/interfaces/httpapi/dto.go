package httpapi

import (
	"time"

	"github.com/fantaleague/fantacalcio/internal/domain/league"
	"github.com/fantaleague/fantacalcio/internal/domain/lineup"
	"github.com/fantaleague/fantacalcio/internal/domain/matchevent"
	"github.com/fantaleague/fantacalcio/internal/domain/matchresult"
	"github.com/fantaleague/fantacalcio/internal/domain/player"
	"github.com/fantaleague/fantacalcio/internal/domain/rules"
	"github.com/fantaleague/fantacalcio/internal/domain/scoring"
	"github.com/fantaleague/fantacalcio/internal/domain/team"
	"github.com/fantaleague/fantacalcio/internal/usecase"
)

type createLeagueRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=64"`
	TeamName string `json:"teamName" validate:"omitempty,min=2,max=64"`
	MaxTeams int    `json:"maxTeams" validate:"omitempty,min=4,max=12"`
	Budget   int64  `json:"budget" validate:"omitempty,min=1"`
}

type joinLeagueRequest struct {
	InviteCode string `json:"inviteCode" validate:"required"`
	TeamName   string `json:"teamName" validate:"required,min=2,max=64"`
}

type buyPlayerRequest struct {
	TeamID   string `json:"teamId" validate:"required"`
	PlayerID string `json:"playerId" validate:"required"`
	Price    int64  `json:"price" validate:"required,min=1"`
}

type submitLineupRequest struct {
	Formation string   `json:"formation" validate:"required"`
	Starters  []string `json:"starters" validate:"required,min=1,dive,required"`
	Bench     []string `json:"bench" validate:"omitempty,dive,required"`
}

type matchEventRequest struct {
	PlayerID        string `json:"playerId" validate:"required"`
	Minutes         int    `json:"minutes" validate:"min=0,max=120"`
	Goals           int    `json:"goals" validate:"min=0"`
	Assists         int    `json:"assists" validate:"min=0"`
	YellowCards     int    `json:"yellowCards" validate:"min=0,max=2"`
	RedCard         bool   `json:"redCard"`
	OwnGoals        int    `json:"ownGoals" validate:"min=0"`
	PenaltiesScored int    `json:"penaltiesScored" validate:"min=0"`
	PenaltiesMissed int    `json:"penaltiesMissed" validate:"min=0"`
	PenaltiesSaved  int    `json:"penaltiesSaved" validate:"min=0"`
	GoalsConceded   int    `json:"goalsConceded" validate:"min=0"`
}

type importEventsRequest struct {
	Events []matchEventRequest `json:"events" validate:"required,min=1,dive"`
}

// ruleSetPayload doubles as the rules read model and the override request
// body. A zero field in an update means "use the default".
type ruleSetPayload struct {
	BaseRating       float64 `json:"baseRating" validate:"min=0"`
	MinutesThreshold int     `json:"minutesThreshold" validate:"min=0"`
	MinutesBonus     float64 `json:"minutesBonus" validate:"min=0"`

	GoalBonusGoalkeeper float64 `json:"goalBonusGoalkeeper" validate:"min=0"`
	GoalBonusDefender   float64 `json:"goalBonusDefender" validate:"min=0"`
	GoalBonusMidfielder float64 `json:"goalBonusMidfielder" validate:"min=0"`
	GoalBonusForward    float64 `json:"goalBonusForward" validate:"min=0"`

	AssistBonus        float64 `json:"assistBonus" validate:"min=0"`
	YellowCardMalus    float64 `json:"yellowCardMalus" validate:"min=0"`
	RedCardMalus       float64 `json:"redCardMalus" validate:"min=0"`
	OwnGoalMalus       float64 `json:"ownGoalMalus" validate:"min=0"`
	PenaltyScoredBonus float64 `json:"penaltyScoredBonus" validate:"min=0"`
	PenaltyMissedMalus float64 `json:"penaltyMissedMalus" validate:"min=0"`
	PenaltySavedBonus  float64 `json:"penaltySavedBonus" validate:"min=0"`
	GoalConcededMalus  float64 `json:"goalConcededMalus" validate:"min=0"`
	CleanSheetBonus    float64 `json:"cleanSheetBonus" validate:"min=0"`

	MinScore float64 `json:"minScore" validate:"min=0"`
	MaxScore float64 `json:"maxScore" validate:"min=0"`

	GoalThreshold float64 `json:"goalThreshold" validate:"min=0"`
	GoalInterval  float64 `json:"goalInterval" validate:"min=0"`

	MaxSubstitutions int `json:"maxSubstitutions" validate:"min=0"`
}

type leagueResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	AdminUserID     string    `json:"adminUserId"`
	InviteCode      string    `json:"inviteCode"`
	MaxTeams        int       `json:"maxTeams"`
	Budget          int64     `json:"budget"`
	Status          string    `json:"status"`
	CurrentMatchday int       `json:"currentMatchday"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type teamResponse struct {
	ID        string    `json:"id"`
	LeagueID  string    `json:"leagueId"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Budget    int64     `json:"budget"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type playerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	RealTeam string `json:"realTeam"`
	Active   bool   `json:"active"`
}

type rosterEntryResponse struct {
	TeamID        string    `json:"teamId"`
	PlayerID      string    `json:"playerId"`
	PurchasePrice int64     `json:"purchasePrice"`
	AcquiredAt    time.Time `json:"acquiredAt"`
}

type rosterItemResponse struct {
	Player        playerResponse `json:"player"`
	PurchasePrice int64          `json:"purchasePrice"`
	AcquiredAt    time.Time      `json:"acquiredAt"`
}

type lineupResponse struct {
	TeamID    string    `json:"teamId"`
	Matchday  int       `json:"matchday"`
	Formation string    `json:"formation"`
	Starters  []string  `json:"starters"`
	Bench     []string  `json:"bench"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type resultResponse struct {
	LeagueID   string    `json:"leagueId"`
	Matchday   int       `json:"matchday"`
	HomeTeamID string    `json:"homeTeamId"`
	AwayTeamID string    `json:"awayTeamId"`
	HomeScore  float64   `json:"homeScore"`
	AwayScore  float64   `json:"awayScore"`
	HomeGoals  int       `json:"homeGoals"`
	AwayGoals  int       `json:"awayGoals"`
	SettledAt  time.Time `json:"settledAt"`
}

type standingsRowResponse struct {
	TeamID        string  `json:"teamId"`
	TeamName      string  `json:"teamName"`
	Played        int     `json:"played"`
	Won           int     `json:"won"`
	Drawn         int     `json:"drawn"`
	Lost          int     `json:"lost"`
	Points        int     `json:"points"`
	FantasyPoints float64 `json:"fantasyPoints"`
}

type substitutionResponse struct {
	OutPlayerID string `json:"outPlayerId"`
	InPlayerID  string `json:"inPlayerId,omitempty"`
	Reason      string `json:"reason"`
}

type teamScoreResponse struct {
	TeamID        string                 `json:"teamId"`
	TeamName      string                 `json:"teamName"`
	Total         float64                `json:"total"`
	Goals         int                    `json:"goals"`
	Substitutions []substitutionResponse `json:"substitutions"`
}

type settlementResponse struct {
	LeagueID string              `json:"leagueId"`
	Matchday int                 `json:"matchday"`
	Scores   []teamScoreResponse `json:"scores"`
	Results  []resultResponse    `json:"results"`
}

type importEventsResponse struct {
	Imported int `json:"imported"`
}

func toCreateLeagueInput(userID string, req createLeagueRequest) usecase.CreateLeagueInput {
	return usecase.CreateLeagueInput{
		AdminUserID: userID,
		Name:        req.Name,
		TeamName:    req.TeamName,
		MaxTeams:    req.MaxTeams,
		Budget:      req.Budget,
	}
}

func toJoinLeagueInput(userID string, req joinLeagueRequest) usecase.JoinLeagueInput {
	return usecase.JoinLeagueInput{
		UserID:     userID,
		InviteCode: req.InviteCode,
		TeamName:   req.TeamName,
	}
}

func toLeagueResponse(l league.League) leagueResponse {
	return leagueResponse{
		ID:              l.ID,
		Name:            l.Name,
		AdminUserID:     l.AdminUserID,
		InviteCode:      l.InviteCode,
		MaxTeams:        l.MaxTeams,
		Budget:          l.Budget,
		Status:          string(l.Status),
		CurrentMatchday: l.CurrentMatchday,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

func toLeagueResponses(items []league.League) []leagueResponse {
	out := make([]leagueResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toLeagueResponse(item))
	}

	return out
}

func toTeamResponse(t team.Team) teamResponse {
	return teamResponse{
		ID:        t.ID,
		LeagueID:  t.LeagueID,
		UserID:    t.UserID,
		Name:      t.Name,
		Budget:    t.Budget,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toPlayerResponse(p player.Player) playerResponse {
	return playerResponse{
		ID:       p.ID,
		Name:     p.Name,
		Role:     string(p.Role),
		RealTeam: p.RealTeam,
		Active:   p.Active,
	}
}

func toRosterResponses(items []usecase.RosterItem) []rosterItemResponse {
	out := make([]rosterItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, rosterItemResponse{
			Player:        toPlayerResponse(item.Player),
			PurchasePrice: item.Entry.PurchasePrice,
			AcquiredAt:    item.Entry.CreatedAt,
		})
	}

	return out
}

func toLineupResponse(l lineup.Lineup) lineupResponse {
	return lineupResponse{
		TeamID:    l.TeamID,
		Matchday:  l.Matchday,
		Formation: l.Formation,
		Starters:  l.StarterIDs,
		Bench:     l.BenchIDs,
		UpdatedAt: l.UpdatedAt,
	}
}

func toResultResponses(items []matchresult.Result) []resultResponse {
	out := make([]resultResponse, 0, len(items))
	for _, item := range items {
		out = append(out, resultResponse{
			LeagueID:   item.LeagueID,
			Matchday:   item.Matchday,
			HomeTeamID: item.HomeTeamID,
			AwayTeamID: item.AwayTeamID,
			HomeScore:  item.HomeScore,
			AwayScore:  item.AwayScore,
			HomeGoals:  item.HomeGoals,
			AwayGoals:  item.AwayGoals,
			SettledAt:  item.SettledAt,
		})
	}

	return out
}

func toStandingsResponses(rows []scoring.StandingsRow) []standingsRowResponse {
	out := make([]standingsRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingsRowResponse{
			TeamID:        row.TeamID,
			TeamName:      row.TeamName,
			Played:        row.Played,
			Won:           row.Won,
			Drawn:         row.Drawn,
			Lost:          row.Lost,
			Points:        row.LeaguePoints,
			FantasyPoints: row.FantasyPoints,
		})
	}

	return out
}

func toSettlementResponse(s usecase.MatchdaySettlement) settlementResponse {
	scores := make([]teamScoreResponse, 0, len(s.Scores))
	for _, score := range s.Scores {
		subs := make([]substitutionResponse, 0, len(score.Trace))
		for _, entry := range score.Trace {
			subs = append(subs, substitutionResponse{
				OutPlayerID: entry.OutPlayerID,
				InPlayerID:  entry.InPlayerID,
				Reason:      string(entry.Reason),
			})
		}
		scores = append(scores, teamScoreResponse{
			TeamID:        score.TeamID,
			TeamName:      score.TeamName,
			Total:         score.Total,
			Goals:         score.Goals,
			Substitutions: subs,
		})
	}

	return settlementResponse{
		LeagueID: s.LeagueID,
		Matchday: s.Matchday,
		Scores:   scores,
		Results:  toResultResponses(s.Results),
	}
}

func toRuleSetPayload(rs rules.RuleSet) ruleSetPayload {
	return ruleSetPayload{
		BaseRating:          rs.BaseRating,
		MinutesThreshold:    rs.MinutesThreshold,
		MinutesBonus:        rs.MinutesBonus,
		GoalBonusGoalkeeper: rs.GoalBonusGoalkeeper,
		GoalBonusDefender:   rs.GoalBonusDefender,
		GoalBonusMidfielder: rs.GoalBonusMidfielder,
		GoalBonusForward:    rs.GoalBonusForward,
		AssistBonus:         rs.AssistBonus,
		YellowCardMalus:     rs.YellowCardMalus,
		RedCardMalus:        rs.RedCardMalus,
		OwnGoalMalus:        rs.OwnGoalMalus,
		PenaltyScoredBonus:  rs.PenaltyScoredBonus,
		PenaltyMissedMalus:  rs.PenaltyMissedMalus,
		PenaltySavedBonus:   rs.PenaltySavedBonus,
		GoalConcededMalus:   rs.GoalConcededMalus,
		CleanSheetBonus:     rs.CleanSheetBonus,
		MinScore:            rs.MinScore,
		MaxScore:            rs.MaxScore,
		GoalThreshold:       rs.GoalThreshold,
		GoalInterval:        rs.GoalInterval,
		MaxSubstitutions:    rs.MaxSubstitutions,
	}
}

func (p ruleSetPayload) toRuleSet() rules.RuleSet {
	return rules.RuleSet{
		BaseRating:          p.BaseRating,
		MinutesThreshold:    p.MinutesThreshold,
		MinutesBonus:        p.MinutesBonus,
		GoalBonusGoalkeeper: p.GoalBonusGoalkeeper,
		GoalBonusDefender:   p.GoalBonusDefender,
		GoalBonusMidfielder: p.GoalBonusMidfielder,
		GoalBonusForward:    p.GoalBonusForward,
		AssistBonus:         p.AssistBonus,
		YellowCardMalus:     p.YellowCardMalus,
		RedCardMalus:        p.RedCardMalus,
		OwnGoalMalus:        p.OwnGoalMalus,
		PenaltyScoredBonus:  p.PenaltyScoredBonus,
		PenaltyMissedMalus:  p.PenaltyMissedMalus,
		PenaltySavedBonus:   p.PenaltySavedBonus,
		GoalConcededMalus:   p.GoalConcededMalus,
		CleanSheetBonus:     p.CleanSheetBonus,
		MinScore:            p.MinScore,
		MaxScore:            p.MaxScore,
		GoalThreshold:       p.GoalThreshold,
		GoalInterval:        p.GoalInterval,
		MaxSubstitutions:    p.MaxSubstitutions,
	}
}

func (r matchEventRequest) toEvent(matchday int) matchevent.Event {
	return matchevent.Event{
		PlayerID:        r.PlayerID,
		Matchday:        matchday,
		Minutes:         r.Minutes,
		Goals:           r.Goals,
		Assists:         r.Assists,
		YellowCards:     r.YellowCards,
		RedCard:         r.RedCard,
		OwnGoals:        r.OwnGoals,
		PenaltiesScored: r.PenaltiesScored,
		PenaltyMissed:   r.PenaltiesMissed,
		PenaltySaved:    r.PenaltiesSaved,
		GoalsConceded:   r.GoalsConceded,
	}
}
