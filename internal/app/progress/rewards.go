package progress

import "github.com/crisnc100/flexbreak/internal/domain"

// Reward IDs referenced elsewhere in the engine.
const (
	RewardXPBoost = "xp_boost"
)

// AllRewards returns the level-gated reward catalog.
// Unlock flags live in the record; this list is the immutable definition.
func AllRewards() []domain.RewardState {
	return []domain.RewardState{
		{ID: "dark_theme", Name: "Dark Theme", LevelRequired: 2},
		{ID: "custom_reminders", Name: "Custom Reminder Schedules", LevelRequired: 3},
		{ID: "custom_routines", Name: "Custom Routine Builder", LevelRequired: 4},
		{ID: RewardXPBoost, Name: "XP Boost", LevelRequired: 5},
		{ID: "focus_area_mastery", Name: "Focus Area Mastery Tracking", LevelRequired: 6},
		{ID: "streak_flex", Name: "Streak Flexibility Save", LevelRequired: 7},
		{ID: "premium_stretches", Name: "Premium Stretch Library", LevelRequired: 8},
	}
}
