// Package progress implements the FlexBreak gamification engine: the XP
// ledger, boost state machine, achievement and challenge evaluators, and
// the statistics aggregator, all operating on the single persisted
// ProgressRecord.
package progress

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crisnc100/flexbreak/internal/domain"
	"github.com/crisnc100/flexbreak/internal/infra/metrics"
)

// Base XP tiers by activity duration. Only the first qualifying activity per
// calendar day earns base XP — a deliberate anti-grinding rule.
const (
	XPShortRoutine  int64 = 30 // ≤ 5 minutes
	XPMediumRoutine int64 = 60 // ≤ 10 minutes
	XPLongRoutine   int64 = 90 // > 10 minutes

	// WelcomeBonusXP is granted once, on the very first activity ever.
	// It is never scaled by a boost.
	WelcomeBonusXP int64 = 50
)

// BaseXPForDuration returns the base award tier for an activity duration.
func BaseXPForDuration(minutes int) int64 {
	switch {
	case minutes <= 5:
		return XPShortRoutine
	case minutes <= 10:
		return XPMediumRoutine
	default:
		return XPLongRoutine
	}
}

// ComputeActivityXP computes the itemized award for one completed activity.
// Base XP is zero unless this is the first activity of its calendar day.
// The boost multiplier scales the base amount only (floored to an integer);
// the welcome bonus is never boosted.
func ComputeActivityXP(act domain.Activity, firstOfDay, firstEver bool, boostMult float64) domain.Award {
	var award domain.Award

	if firstOfDay {
		base := BaseXPForDuration(act.DurationMinutes)
		desc := fmt.Sprintf("Completed %d min %s routine", act.DurationMinutes, act.Area)
		if boostMult > 1 {
			base = int64(float64(base) * boostMult)
			desc = fmt.Sprintf("%s (%.1fx boost applied)", desc, boostMult)
		}
		award.Breakdown = append(award.Breakdown, domain.BreakdownLine{
			Source:      domain.XPRoutine,
			Amount:      base,
			Description: desc,
		})
	}

	if firstEver {
		award.Breakdown = append(award.Breakdown, domain.BreakdownLine{
			Source:      domain.XPWelcomeBonus,
			Amount:      WelcomeBonusXP,
			Description: "Welcome bonus — first routine ever",
		})
	}

	for _, line := range award.Breakdown {
		award.Total += line.Amount
	}
	return award
}

// ApplyXP grants XP to the record: clamps the amount to a non-negative
// integer, appends one ledger entry, recomputes the level from the table
// (never incremented — bulk or out-of-order grants stay consistent), and
// unlocks level-gated rewards idempotently.
//
// The record is mutated in place and must be threaded forward by callers
// making multiple grants within one logical operation; persistence happens
// once per operation through the store.
func ApplyXP(rec *domain.ProgressRecord, amount int64, source domain.XPSource, detail string, now time.Time) domain.XPResult {
	if amount < 0 {
		amount = 0
	}

	res := domain.XPResult{
		PreviousTotal: rec.TotalXP,
		PreviousLevel: rec.Level,
	}

	rec.TotalXP += amount
	rec.Level = domain.LevelForXP(rec.TotalXP).Level

	rec.XPHistory = append(rec.XPHistory, domain.XPEntry{
		ID:     fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8]),
		Amount: amount,
		Source: source,
		Detail: detail,
		Time:   now,
	})

	res.NewTotal = rec.TotalXP
	res.NewLevel = rec.Level
	res.LevelUp = res.NewLevel > res.PreviousLevel

	if res.LevelUp {
		unlockRewards(rec, now)
		metrics.LevelUps.Inc()
	}
	metrics.XPAwarded.WithLabelValues(string(source)).Add(float64(amount))
	metrics.CurrentLevel.Set(float64(rec.Level))

	return res
}

// unlockRewards flips the unlocked flag for every reward whose required
// level has been reached. Already-unlocked rewards are untouched.
func unlockRewards(rec *domain.ProgressRecord, now time.Time) {
	for id, rw := range rec.Rewards {
		if rw.Unlocked || rw.LevelRequired > rec.Level {
			continue
		}
		rw.Unlocked = true
		at := now
		rw.UnlockedAt = &at
		rec.Rewards[id] = rw

		if rw.ID == RewardXPBoost {
			// The boost reward grants a starter stack of boost units.
			rec.Boost.AvailableBoosts += BoostGrantUnits
		}
	}
}

// IsFirstOfDay reports whether no prior activity shares t's UTC calendar day.
func IsFirstOfDay(days []string, t time.Time) bool {
	key := domain.DayKey(t)
	for _, d := range days {
		if d == key {
			return false
		}
	}
	return true
}
