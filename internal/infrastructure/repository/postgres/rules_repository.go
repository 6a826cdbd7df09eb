package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fantaleague/fantacalcio/internal/domain/rules"
	qb "github.com/fantaleague/fantacalcio/internal/platform/querybuilder"
)

const rulesTable = "fl_league_rules"

type rulesTableModel struct {
	LeagueID string `db:"league_id"`

	BaseRating       float64 `db:"base_rating"`
	MinutesThreshold int     `db:"minutes_threshold"`
	MinutesBonus     float64 `db:"minutes_bonus"`

	GoalBonusGoalkeeper float64 `db:"goal_bonus_gk"`
	GoalBonusDefender   float64 `db:"goal_bonus_def"`
	GoalBonusMidfielder float64 `db:"goal_bonus_mid"`
	GoalBonusForward    float64 `db:"goal_bonus_fwd"`

	AssistBonus        float64 `db:"assist_bonus"`
	YellowCardMalus    float64 `db:"yellow_card_malus"`
	RedCardMalus       float64 `db:"red_card_malus"`
	OwnGoalMalus       float64 `db:"own_goal_malus"`
	PenaltyScoredBonus float64 `db:"penalty_scored_bonus"`
	PenaltyMissedMalus float64 `db:"penalty_missed_malus"`
	PenaltySavedBonus  float64 `db:"penalty_saved_bonus"`
	GoalConcededMalus  float64 `db:"goal_conceded_malus"`
	CleanSheetBonus    float64 `db:"clean_sheet_bonus"`

	MinScore float64 `db:"min_score"`
	MaxScore float64 `db:"max_score"`

	GoalThreshold float64 `db:"goal_threshold"`
	GoalInterval  float64 `db:"goal_interval"`

	MaxSubstitutions int `db:"max_substitutions"`
}

func (m rulesTableModel) toDomain() rules.RuleSet {
	return rules.RuleSet{
		BaseRating:          m.BaseRating,
		MinutesThreshold:    m.MinutesThreshold,
		MinutesBonus:        m.MinutesBonus,
		GoalBonusGoalkeeper: m.GoalBonusGoalkeeper,
		GoalBonusDefender:   m.GoalBonusDefender,
		GoalBonusMidfielder: m.GoalBonusMidfielder,
		GoalBonusForward:    m.GoalBonusForward,
		AssistBonus:         m.AssistBonus,
		YellowCardMalus:     m.YellowCardMalus,
		RedCardMalus:        m.RedCardMalus,
		OwnGoalMalus:        m.OwnGoalMalus,
		PenaltyScoredBonus:  m.PenaltyScoredBonus,
		PenaltyMissedMalus:  m.PenaltyMissedMalus,
		PenaltySavedBonus:   m.PenaltySavedBonus,
		GoalConcededMalus:   m.GoalConcededMalus,
		CleanSheetBonus:     m.CleanSheetBonus,
		MinScore:            m.MinScore,
		MaxScore:            m.MaxScore,
		GoalThreshold:       m.GoalThreshold,
		GoalInterval:        m.GoalInterval,
		MaxSubstitutions:    m.MaxSubstitutions,
	}
}

func toRulesModel(leagueID string, rs rules.RuleSet) rulesTableModel {
	return rulesTableModel{
		LeagueID:            leagueID,
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

type RulesRepository struct {
	db *sqlx.DB
}

func NewRulesRepository(db *sqlx.DB) *RulesRepository {
	return &RulesRepository{db: db}
}

func (r *RulesRepository) GetByLeague(ctx context.Context, leagueID string) (rules.RuleSet, bool, error) {
	query, args, err := qb.Select("*").From(rulesTable).
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return rules.RuleSet{}, false, fmt.Errorf("build get rules query: %w", err)
	}

	var row rulesTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rules.RuleSet{}, false, nil
		}
		return rules.RuleSet{}, false, fmt.Errorf("get rules by league: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *RulesRepository) Upsert(ctx context.Context, leagueID string, ruleSet rules.RuleSet) error {
	query, args, err := qb.InsertModel(rulesTable, toRulesModel(leagueID, ruleSet),
		`ON CONFLICT (league_id) DO UPDATE SET
			base_rating = EXCLUDED.base_rating,
			minutes_threshold = EXCLUDED.minutes_threshold,
			minutes_bonus = EXCLUDED.minutes_bonus,
			goal_bonus_gk = EXCLUDED.goal_bonus_gk,
			goal_bonus_def = EXCLUDED.goal_bonus_def,
			goal_bonus_mid = EXCLUDED.goal_bonus_mid,
			goal_bonus_fwd = EXCLUDED.goal_bonus_fwd,
			assist_bonus = EXCLUDED.assist_bonus,
			yellow_card_malus = EXCLUDED.yellow_card_malus,
			red_card_malus = EXCLUDED.red_card_malus,
			own_goal_malus = EXCLUDED.own_goal_malus,
			penalty_scored_bonus = EXCLUDED.penalty_scored_bonus,
			penalty_missed_malus = EXCLUDED.penalty_missed_malus,
			penalty_saved_bonus = EXCLUDED.penalty_saved_bonus,
			goal_conceded_malus = EXCLUDED.goal_conceded_malus,
			clean_sheet_bonus = EXCLUDED.clean_sheet_bonus,
			min_score = EXCLUDED.min_score,
			max_score = EXCLUDED.max_score,
			goal_threshold = EXCLUDED.goal_threshold,
			goal_interval = EXCLUDED.goal_interval,
			max_substitutions = EXCLUDED.max_substitutions`)
	if err != nil {
		return fmt.Errorf("build upsert rules query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert rules: %w", err)
	}

	return nil
}
