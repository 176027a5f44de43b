package progress

import (
	"sort"

	"github.com/crisnc100/flexbreak/internal/domain"
	"github.com/crisnc100/flexbreak/internal/infra/metrics"
)

// AchievementEvaluator re-scans the catalog against current statistics.
// It reads only Statistics — never raw activity history.
type AchievementEvaluator struct {
	clock domain.Clock
}

// NewAchievementEvaluator creates an evaluator on the given clock.
func NewAchievementEvaluator(clock domain.Clock) *AchievementEvaluator {
	return &AchievementEvaluator{clock: clock}
}

// EvalResult reports the outcome of one evaluation pass.
type EvalResult struct {
	XPEarned int64
	Unlocked []domain.AchievementState
}

// Evaluate recomputes progress for every incomplete achievement and unlocks
// newly satisfied ones, routing reward XP through ApplyXP so cumulative
// XP and level reflect all unlocks made in this pass. Completed
// achievements are never touched (ratchet invariant). Idempotent: a second
// call with unchanged statistics is a no-op.
func (e *AchievementEvaluator) Evaluate(rec *domain.ProgressRecord) EvalResult {
	var result EvalResult
	now := e.clock.Now()

	// Map iteration order is arbitrary; catalog order keeps unlock order
	// stable (rewards are additive, so any fixed order is acceptable).
	ids := make([]string, 0, len(rec.Achievements))
	for id := range rec.Achievements {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		st := rec.Achievements[id]
		if st.Completed {
			continue
		}

		st.Progress = progressFor(st.AchievementDef, &rec.Statistics)

		if st.Progress >= st.Requirement {
			st.Completed = true
			at := now
			st.DateCompleted = &at
			rec.Achievements[id] = st

			ApplyXP(rec, st.RewardXP, domain.XPAchievement, st.Title, now)
			result.XPEarned += st.RewardXP
			result.Unlocked = append(result.Unlocked, st)
			metrics.AchievementsUnlocked.WithLabelValues(string(st.Kind)).Inc()
			continue
		}

		rec.Achievements[id] = st
	}

	return result
}

// ResetStreakAchievements zeroes progress for incomplete streak-kind
// achievements. Completed ones are permanently retained — the one sanctioned
// exception to the ratchet works only on in-progress entries.
func ResetStreakAchievements(rec *domain.ProgressRecord) {
	for id, st := range rec.Achievements {
		if st.Kind != domain.KindStreak || st.Completed {
			continue
		}
		st.Progress = 0
		rec.Achievements[id] = st
	}
}

// progressFor computes an achievement's progress from statistics,
// exhaustively by kind.
func progressFor(def domain.AchievementDef, stats *domain.Statistics) int {
	switch def.Kind {
	case domain.KindRoutineCount:
		return stats.TotalRoutines

	case domain.KindStreak:
		// Best streak counts too, so a broken streak does not retroactively
		// un-earn progress already reached.
		if stats.BestStreak > stats.CurrentStreak {
			return stats.BestStreak
		}
		return stats.CurrentStreak

	case domain.KindTotalMinutes:
		return stats.TotalMinutes

	case domain.KindAreaVariety:
		return len(stats.UniqueAreas)

	case domain.KindAreaExpert:
		best := 0
		for _, n := range stats.RoutinesByArea {
			if n > best {
				best = n
			}
		}
		return best

	case domain.KindAreaMaster:
		met := 0
		for _, area := range domain.CanonicalAreas() {
			if stats.RoutinesByArea[area] >= def.PerAreaRequirement {
				met++
			}
		}
		return met

	case domain.KindNamedArea:
		return stats.RoutinesByArea[def.Area]
	}
	return 0
}

// AllAchievements returns the full immutable achievement catalog.
func AllAchievements() []domain.AchievementDef {
	return []domain.AchievementDef{
		// ── Routine counts ─────────────────────────────────────────────
		{
			ID: "routine_5", Title: "Getting Started", Kind: domain.KindRoutineCount,
			Description: "Complete 5 routines", Requirement: 5, RewardXP: 25,
		},
		{
			ID: "routine_25", Title: "Making a Habit", Kind: domain.KindRoutineCount,
			Description: "Complete 25 routines", Requirement: 25, RewardXP: 100,
		},
		{
			ID: "routine_100", Title: "Century Stretcher", Kind: domain.KindRoutineCount,
			Description: "Complete 100 routines", Requirement: 100, RewardXP: 400,
		},
		{
			ID: "routine_250", Title: "Routine Machine", Kind: domain.KindRoutineCount,
			Description: "Complete 250 routines", Requirement: 250, RewardXP: 1000,
		},

		// ── Streaks ────────────────────────────────────────────────────
		{
			ID: "streak_3", Title: "Warming Up", Kind: domain.KindStreak,
			Description: "3-day streak", Requirement: 3, RewardXP: 25,
		},
		{
			ID: "streak_7", Title: "Week Warrior", Kind: domain.KindStreak,
			Description: "7-day streak", Requirement: 7, RewardXP: 50,
		},
		{
			ID: "streak_14", Title: "Fortnight Flexer", Kind: domain.KindStreak,
			Description: "14-day streak", Requirement: 14, RewardXP: 150,
		},
		{
			ID: "streak_30", Title: "Monthly Mover", Kind: domain.KindStreak,
			Description: "30-day streak", Requirement: 30, RewardXP: 400,
		},
		{
			ID: "streak_100", Title: "Centurion", Kind: domain.KindStreak,
			Description: "100-day streak", Requirement: 100, RewardXP: 1500,
		},

		// ── Time totals ────────────────────────────────────────────────
		{
			ID: "minutes_60", Title: "First Hour", Kind: domain.KindTotalMinutes,
			Description: "Stretch for 60 total minutes", Requirement: 60, RewardXP: 30,
		},
		{
			ID: "minutes_300", Title: "Five Hours Strong", Kind: domain.KindTotalMinutes,
			Description: "Stretch for 300 total minutes", Requirement: 300, RewardXP: 150,
		},
		{
			ID: "minutes_1000", Title: "Thousand Minute Club", Kind: domain.KindTotalMinutes,
			Description: "Stretch for 1000 total minutes", Requirement: 1000, RewardXP: 500,
		},

		// ── Variety ────────────────────────────────────────────────────
		{
			ID: "variety_3", Title: "Branching Out", Kind: domain.KindAreaVariety,
			Description: "Stretch 3 different body areas", Requirement: 3, RewardXP: 40,
		},
		{
			ID: "variety_all", Title: "Head to Toe", Kind: domain.KindAreaVariety,
			Description: "Stretch every body area", Requirement: 8, RewardXP: 150,
		},

		// ── Area mastery ───────────────────────────────────────────────
		{
			ID: "area_expert", Title: "Area Expert", Kind: domain.KindAreaExpert,
			Description: "Complete 25 routines in any single area", Requirement: 25, RewardXP: 150,
		},
		{
			ID: "master_of_all", Title: "Master of All Areas", Kind: domain.KindAreaMaster,
			Description: "Complete 10 routines in every body area",
			Requirement: 8, PerAreaRequirement: 10, RewardXP: 500,
		},
		{
			ID: "desk_relief", Title: "Desk Relief", Kind: domain.KindNamedArea,
			Description: "Complete 20 lower back routines",
			Area:        domain.AreaLowerBack, Requirement: 20, RewardXP: 100,
		},
		{
			ID: "neck_care", Title: "Neck Care", Kind: domain.KindNamedArea,
			Description: "Complete 15 neck routines",
			Area:        domain.AreaNeck, Requirement: 15, RewardXP: 75,
		},
	}
}
