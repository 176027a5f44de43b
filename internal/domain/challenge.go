package domain

import "time"

// ChallengePeriod is the rotation cadence of a challenge.
type ChallengePeriod string

const (
	PeriodDaily   ChallengePeriod = "daily"
	PeriodWeekly  ChallengePeriod = "weekly"
	PeriodMonthly ChallengePeriod = "monthly"
)

// ChallengeMetric names the statistic a challenge tracks. Challenge progress
// is measured as the delta of that statistic since the challenge started.
type ChallengeMetric string

const (
	MetricRoutines ChallengeMetric = "routines"
	MetricMinutes  ChallengeMetric = "minutes"
	MetricAreas    ChallengeMetric = "areas"
	MetricStreak   ChallengeMetric = "streak"
)

// ChallengeTemplate is one entry of the rotating challenge pool.
type ChallengeTemplate struct {
	Metric      ChallengeMetric `json:"metric"`
	Target      int             `json:"target"`
	Description string          `json:"description"`
	RewardXP    int64           `json:"reward_xp"`
}

// ChallengeState is an instantiated challenge for the current period.
type ChallengeState struct {
	ID          string          `json:"id"`
	Period      ChallengePeriod `json:"period"`
	Metric      ChallengeMetric `json:"metric"`
	Target      int             `json:"target"`
	Baseline    int             `json:"baseline"` // statistic value when the challenge started
	Progress    int             `json:"progress"`
	RewardXP    int64           `json:"reward_xp"`
	Description string          `json:"description"`
	StartedAt   time.Time       `json:"started_at"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Completed   bool            `json:"completed"`
}

// IsExpired reports whether the challenge period has ended.
func (c ChallengeState) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// ProgressPct returns completion percentage (0–100).
func (c ChallengeState) ProgressPct() float64 {
	if c.Target <= 0 {
		return 100.0
	}
	pct := float64(c.Progress) / float64(c.Target) * 100.0
	if pct > 100.0 {
		pct = 100.0
	}
	return pct
}
