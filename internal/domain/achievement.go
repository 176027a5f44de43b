package domain

import "time"

// AchievementKind discriminates the achievement sum type. Each kind reads a
// different slice of Statistics; evaluation switches exhaustively on it.
type AchievementKind string

const (
	// KindRoutineCount — progress is Statistics.TotalRoutines.
	KindRoutineCount AchievementKind = "routine_count"
	// KindStreak — progress is max(CurrentStreak, BestStreak), so a broken
	// streak never retroactively un-earns progress reached via best streak.
	KindStreak AchievementKind = "streak"
	// KindTotalMinutes — progress is Statistics.TotalMinutes.
	KindTotalMinutes AchievementKind = "total_minutes"
	// KindAreaVariety — progress is the count of distinct canonical areas.
	KindAreaVariety AchievementKind = "area_variety"
	// KindAreaExpert — progress is the max routine count in any single area.
	KindAreaExpert AchievementKind = "area_expert"
	// KindAreaMaster — progress is the number of canonical areas whose
	// individual count meets PerAreaRequirement.
	KindAreaMaster AchievementKind = "area_master"
	// KindNamedArea — progress is the routine count for Area.
	KindNamedArea AchievementKind = "named_area"
)

// AchievementDef defines a single achievement. The catalog is immutable;
// only the variant-specific fields each kind needs are set.
type AchievementDef struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Kind        AchievementKind `json:"kind"`
	Requirement int             `json:"requirement"`
	RewardXP    int64           `json:"reward_xp"`

	// KindNamedArea only.
	Area Area `json:"area,omitempty"`
	// KindAreaMaster only: per-area count each canonical area must reach.
	PerAreaRequirement int `json:"per_area_requirement,omitempty"`
}

// AchievementState is a definition plus mutable unlock progress.
// Once Completed is true it never regresses (ratchet); the one exception is
// that in-progress streak achievements may be reset to 0 on a broken streak.
type AchievementState struct {
	AchievementDef
	Progress      int        `json:"progress"`
	Completed     bool       `json:"completed"`
	DateCompleted *time.Time `json:"date_completed,omitempty"`
}
