package progress

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/crisnc100/flexbreak/internal/domain"
	"github.com/crisnc100/flexbreak/internal/infra/metrics"
)

// ChallengeEvaluator manages the rotating daily/weekly/monthly goals.
// Rotation is deterministic per period (seeded by the period start), so the
// same challenges appear no matter when in the period the engine first runs.
type ChallengeEvaluator struct {
	clock domain.Clock
}

// NewChallengeEvaluator creates a challenge evaluator on the given clock.
func NewChallengeEvaluator(clock domain.Clock) *ChallengeEvaluator {
	return &ChallengeEvaluator{clock: clock}
}

// How many challenges each period carries at once.
var challengeCounts = map[domain.ChallengePeriod]int{
	domain.PeriodDaily:   1,
	domain.PeriodWeekly:  2,
	domain.PeriodMonthly: 1,
}

var dailyPool = []domain.ChallengeTemplate{
	{Metric: domain.MetricRoutines, Target: 1, Description: "Complete a routine today", RewardXP: 20},
	{Metric: domain.MetricRoutines, Target: 2, Description: "Complete 2 routines today", RewardXP: 35},
	{Metric: domain.MetricMinutes, Target: 10, Description: "Stretch for 10 minutes today", RewardXP: 30},
	{Metric: domain.MetricMinutes, Target: 15, Description: "Stretch for 15 minutes today", RewardXP: 40},
}

var weeklyPool = []domain.ChallengeTemplate{
	{Metric: domain.MetricRoutines, Target: 5, Description: "Complete 5 routines this week", RewardXP: 100},
	{Metric: domain.MetricRoutines, Target: 7, Description: "Complete 7 routines this week", RewardXP: 150},
	{Metric: domain.MetricMinutes, Target: 45, Description: "Stretch for 45 minutes this week", RewardXP: 120},
	{Metric: domain.MetricAreas, Target: 3, Description: "Stretch 3 different areas this week", RewardXP: 100},
	{Metric: domain.MetricStreak, Target: 5, Description: "Reach a 5-day streak", RewardXP: 130},
}

var monthlyPool = []domain.ChallengeTemplate{
	{Metric: domain.MetricRoutines, Target: 20, Description: "Complete 20 routines this month", RewardXP: 400},
	{Metric: domain.MetricMinutes, Target: 180, Description: "Stretch for 3 hours this month", RewardXP: 450},
	{Metric: domain.MetricStreak, Target: 14, Description: "Reach a 14-day streak", RewardXP: 500},
}

func poolFor(period domain.ChallengePeriod) []domain.ChallengeTemplate {
	switch period {
	case domain.PeriodDaily:
		return dailyPool
	case domain.PeriodWeekly:
		return weeklyPool
	default:
		return monthlyPool
	}
}

// Rotate expires finished periods and instantiates the current period's
// challenges where missing. Completed entries for still-running periods are
// kept so rewards are not granted twice.
func (e *ChallengeEvaluator) Rotate(rec *domain.ProgressRecord) {
	now := e.clock.Now()

	for id, ch := range rec.Challenges {
		if ch.IsExpired(now) {
			delete(rec.Challenges, id)
		}
	}

	for _, period := range []domain.ChallengePeriod{domain.PeriodDaily, domain.PeriodWeekly, domain.PeriodMonthly} {
		if hasPeriod(rec, period) {
			continue
		}
		start, end := periodBounds(period, now)
		for i, tmpl := range pickChallenges(poolFor(period), challengeCounts[period], start.Unix()) {
			ch := domain.ChallengeState{
				ID:          fmt.Sprintf("%s-%s-%d", period, start.Format("2006-01-02"), i),
				Period:      period,
				Metric:      tmpl.Metric,
				Target:      tmpl.Target,
				Baseline:    metricValue(tmpl.Metric, &rec.Statistics),
				RewardXP:    tmpl.RewardXP,
				Description: tmpl.Description,
				StartedAt:   start,
				ExpiresAt:   end,
			}
			rec.Challenges[ch.ID] = ch
		}
	}
}

// Evaluate recomputes challenge progress from statistics and completes any
// challenge whose target is met, routing reward XP through ApplyXP.
// Idempotent: completed challenges are skipped.
func (e *ChallengeEvaluator) Evaluate(rec *domain.ProgressRecord) EvalResult {
	var result EvalResult
	now := e.clock.Now()

	for id, ch := range rec.Challenges {
		if ch.Completed || ch.IsExpired(now) {
			continue
		}

		ch.Progress = challengeProgress(ch, &rec.Statistics)
		if ch.Progress >= ch.Target {
			ch.Completed = true
			rec.Challenges[id] = ch

			ApplyXP(rec, ch.RewardXP, domain.XPChallenge, ch.Description, now)
			result.XPEarned += ch.RewardXP
			metrics.ChallengesCompleted.WithLabelValues(string(ch.Period)).Inc()
			continue
		}
		rec.Challenges[id] = ch
	}

	return result
}

// challengeProgress measures a challenge against current statistics.
// Cumulative metrics count the delta since the challenge started; streak
// challenges read the live streak directly.
func challengeProgress(ch domain.ChallengeState, stats *domain.Statistics) int {
	if ch.Metric == domain.MetricStreak {
		return stats.CurrentStreak
	}
	delta := metricValue(ch.Metric, stats) - ch.Baseline
	if delta < 0 {
		delta = 0
	}
	return delta
}

func metricValue(m domain.ChallengeMetric, stats *domain.Statistics) int {
	switch m {
	case domain.MetricRoutines:
		return stats.TotalRoutines
	case domain.MetricMinutes:
		return stats.TotalMinutes
	case domain.MetricAreas:
		return len(stats.UniqueAreas)
	case domain.MetricStreak:
		return stats.CurrentStreak
	}
	return 0
}

func hasPeriod(rec *domain.ProgressRecord, period domain.ChallengePeriod) bool {
	for _, ch := range rec.Challenges {
		if ch.Period == period {
			return true
		}
	}
	return false
}

// periodBounds returns the UTC window containing now: midnight-to-midnight
// for daily, Monday-to-Monday for weekly, first-to-first for monthly.
func periodBounds(period domain.ChallengePeriod, now time.Time) (time.Time, time.Time) {
	day := now.UTC().Truncate(24 * time.Hour)
	switch period {
	case domain.PeriodDaily:
		return day, day.AddDate(0, 0, 1)
	case domain.PeriodWeekly:
		daysSinceMonday := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -daysSinceMonday)
		return start, start.AddDate(0, 0, 7)
	default:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	}
}

// pickChallenges selects n templates from the pool, preferring unique
// metrics, with a deterministic shuffle seeded by the period start.
func pickChallenges(pool []domain.ChallengeTemplate, n int, seed int64) []domain.ChallengeTemplate {
	r := rand.New(rand.NewSource(seed))

	shuffled := make([]domain.ChallengeTemplate, len(pool))
	copy(shuffled, pool)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	seen := make(map[domain.ChallengeMetric]bool)
	var result []domain.ChallengeTemplate
	for _, tmpl := range shuffled {
		if len(result) >= n {
			break
		}
		if !seen[tmpl.Metric] {
			seen[tmpl.Metric] = true
			result = append(result, tmpl)
		}
	}
	for _, tmpl := range shuffled {
		if len(result) >= n {
			break
		}
		dup := false
		for _, picked := range result {
			if picked.Metric == tmpl.Metric && picked.Target == tmpl.Target {
				dup = true
				break
			}
		}
		if !dup {
			result = append(result, tmpl)
		}
	}
	return result
}
