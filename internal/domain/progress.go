// Package domain holds the pure types of the FlexBreak progress engine:
// the persisted progress aggregate, the level ladder, achievement and
// challenge catalogs, and the boost state machine.
// No infrastructure imports — services in internal/app operate on these.
package domain

import "time"

// ─── Activity ───────────────────────────────────────────────────────────────

// Activity is one completed stretch session, the atomic unit that earns XP
// and feeds statistics.
type Activity struct {
	ID              string    `json:"id"`
	Area            Area      `json:"area"`
	DurationMinutes int       `json:"duration_minutes"`
	CompletedAt     time.Time `json:"completed_at"`
}

// ─── XP Ledger Types ────────────────────────────────────────────────────────

// XPSource categorizes how XP was earned.
type XPSource string

const (
	XPRoutine      XPSource = "ROUTINE"
	XPWelcomeBonus XPSource = "WELCOME_BONUS"
	XPAchievement  XPSource = "ACHIEVEMENT"
	XPChallenge    XPSource = "CHALLENGE"
)

// XPEntry is one append-only ledger line in the record's XP history.
type XPEntry struct {
	ID      string    `json:"id"`
	Amount  int64     `json:"amount"`
	Source  XPSource  `json:"source"`
	Detail  string    `json:"detail"`
	Time    time.Time `json:"time"`
	Claimed bool      `json:"claimed"`
}

// BreakdownLine is one itemized grant composing an activity's total award.
type BreakdownLine struct {
	Source      XPSource `json:"source"`
	Amount      int64    `json:"amount"`
	Description string   `json:"description"`
}

// Award is the computed XP for one completed activity.
type Award struct {
	Total     int64           `json:"total"`
	Breakdown []BreakdownLine `json:"breakdown"`
}

// ─── Statistics ─────────────────────────────────────────────────────────────

// Statistics is the denormalized counter block the evaluators read.
// Achievements and challenges never look at raw activity history.
type Statistics struct {
	TotalRoutines  int          `json:"total_routines"`
	CurrentStreak  int          `json:"current_streak"`
	BestStreak     int          `json:"best_streak"`
	TotalMinutes   int          `json:"total_minutes"`
	UniqueAreas    []Area       `json:"unique_areas"`
	RoutinesByArea map[Area]int `json:"routines_by_area"`
	LastUpdated    time.Time    `json:"last_updated"`
}

// HasArea reports whether the area is already in the unique set.
func (s *Statistics) HasArea(a Area) bool {
	for _, u := range s.UniqueAreas {
		if u == a {
			return true
		}
	}
	return false
}

// ─── Rewards ────────────────────────────────────────────────────────────────

// RewardState is a level-gated feature unlock tracked in the record.
// Unlocking is a monotonic ratchet — already-unlocked rewards are untouched.
type RewardState struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	LevelRequired int        `json:"level_required"`
	Unlocked      bool       `json:"unlocked"`
	UnlockedAt    *time.Time `json:"unlocked_at,omitempty"`
}

// ─── Progress Record ────────────────────────────────────────────────────────

// ProgressRecord is the single persisted aggregate. It is read-modify-written
// wholesale through the store; Level is always recomputed from TotalXP and
// never trusted independently.
type ProgressRecord struct {
	TotalXP                 int64                       `json:"total_xp"`
	Level                   int                         `json:"level"`
	Statistics              Statistics                  `json:"statistics"`
	Achievements            map[string]AchievementState `json:"achievements"`
	Challenges              map[string]ChallengeState   `json:"challenges"`
	Rewards                 map[string]RewardState      `json:"rewards"`
	Boost                   BoostState                  `json:"boost"`
	XPHistory               []XPEntry                   `json:"xp_history"`
	ActivityDays            []string                    `json:"activity_days"` // sorted UTC day keys
	HasReceivedWelcomeBonus bool                        `json:"has_received_welcome_bonus"`
	LastUpdated             time.Time                   `json:"last_updated"`
}

// XPResult is the diff returned by an ApplyXP call, for caller notification.
type XPResult struct {
	PreviousTotal int64 `json:"previous_total"`
	NewTotal      int64 `json:"new_total"`
	PreviousLevel int   `json:"previous_level"`
	NewLevel      int   `json:"new_level"`
	LevelUp       bool  `json:"level_up"`
}
