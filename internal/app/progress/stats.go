package progress

import (
	"sort"
	"time"

	"github.com/crisnc100/flexbreak/internal/domain"
	"github.com/crisnc100/flexbreak/internal/infra/metrics"
)

// ApplyActivity folds one completed activity into the statistics block.
// Must run before the achievement and challenge evaluators: they read only
// statistics, never raw activity history.
//
// Returns whether this was the first activity of its calendar day, and
// whether the streak broke (its recomputed value dropped), which obliges the
// caller to reset in-progress streak achievements.
func ApplyActivity(rec *domain.ProgressRecord, act domain.Activity, now time.Time) (firstOfDay, streakBroken bool) {
	day := domain.DayKey(act.CompletedAt)
	firstOfDay = IsFirstOfDay(rec.ActivityDays, act.CompletedAt)
	if firstOfDay {
		rec.ActivityDays = insertDay(rec.ActivityDays, day)
	}

	stats := &rec.Statistics
	stats.TotalRoutines++
	stats.TotalMinutes += act.DurationMinutes
	stats.RoutinesByArea[act.Area]++
	if !stats.HasArea(act.Area) {
		stats.UniqueAreas = append(stats.UniqueAreas, act.Area)
	}

	prev := stats.CurrentStreak
	current, best := RecomputeStreak(rec.ActivityDays, domain.DayKey(now))
	stats.CurrentStreak = current
	if best > stats.BestStreak {
		stats.BestStreak = best
	}
	streakBroken = current < prev

	stats.LastUpdated = now

	metrics.ActivitiesRecorded.WithLabelValues(string(act.Area)).Inc()
	metrics.ActivityMinutes.Add(float64(act.DurationMinutes))
	metrics.CurrentStreak.Set(float64(current))

	return firstOfDay, streakBroken
}

// RecomputeStreak derives the streak counters from the full day sequence.
// A streak is a run of consecutive UTC calendar days each holding at least
// one activity. The current streak is the run ending at the most recent day,
// and counts only if that day is today or yesterday — otherwise it is 0.
// The returned best is the longest run anywhere in the sequence.
func RecomputeStreak(days []string, today string) (current, best int) {
	if len(days) == 0 {
		return 0, 0
	}

	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue // malformed day keys are skipped, not fatal
		}
		dates = append(dates, t)
	}
	if len(dates) == 0 {
		return 0, 0
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	run := 1
	lastRun := 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
		lastRun = run
	}
	if best == 0 {
		best = 1
	}

	anchor, err := time.Parse("2006-01-02", today)
	if err != nil {
		return 0, best
	}
	latest := dates[len(dates)-1]
	gap := anchor.Sub(latest)
	if gap < 0 || gap > 24*time.Hour {
		return 0, best // streak is stale — most recent day is not today/yesterday
	}
	return lastRun, best
}

// insertDay adds a day key keeping the slice sorted and unique.
func insertDay(days []string, day string) []string {
	i := sort.SearchStrings(days, day)
	if i < len(days) && days[i] == day {
		return days
	}
	days = append(days, "")
	copy(days[i+1:], days[i:])
	days[i] = day
	return days
}
