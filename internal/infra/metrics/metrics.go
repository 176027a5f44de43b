// Package metrics provides Prometheus metrics for the FlexBreak engine —
// counters and gauges for activities, XP, achievements, challenges, and boosts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Activities ─────────────────────────────────────────────────────────────

// ActivitiesRecorded tracks completed activities by canonical area.
var ActivitiesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "flexbreak",
	Name:      "activities_recorded_total",
	Help:      "Total completed activities.",
}, []string{"area"})

// ActivityMinutes tracks total activity minutes recorded.
var ActivityMinutes = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "flexbreak",
	Name:      "activity_minutes_total",
	Help:      "Total activity minutes recorded.",
})

// ─── XP ─────────────────────────────────────────────────────────────────────

// XPAwarded tracks XP granted by source.
var XPAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "flexbreak",
	Name:      "xp_awarded_total",
	Help:      "Total XP awarded.",
}, []string{"source"})

// CurrentLevel tracks the user's current level.
var CurrentLevel = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "flexbreak",
	Name:      "current_level",
	Help:      "Current user level.",
})

// LevelUps tracks level-up events.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "flexbreak",
	Name:      "level_ups_total",
	Help:      "Total level-up events.",
})

// ─── Streaks ────────────────────────────────────────────────────────────────

// CurrentStreak tracks the current consecutive-day streak.
var CurrentStreak = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "flexbreak",
	Name:      "current_streak_days",
	Help:      "Current consecutive-day activity streak.",
})

// ─── Achievements & Challenges ──────────────────────────────────────────────

// AchievementsUnlocked tracks achievement unlocks by kind.
var AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "flexbreak",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
}, []string{"kind"})

// ChallengesCompleted tracks challenge completions by period.
var ChallengesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "flexbreak",
	Name:      "challenges_completed_total",
	Help:      "Total challenges completed.",
}, []string{"period"})

// ─── Boosts ─────────────────────────────────────────────────────────────────

// BoostActivations tracks boost activations.
var BoostActivations = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "flexbreak",
	Name:      "boost_activations_total",
	Help:      "Total XP boost activations.",
})

// BoostActive reports whether a boost is currently active (0 or 1).
var BoostActive = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "flexbreak",
	Name:      "boost_active",
	Help:      "Whether an XP boost is currently active.",
})

// ─── Storage ────────────────────────────────────────────────────────────────

// StoreSaves tracks wholesale record persists.
var StoreSaves = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "flexbreak",
	Name:      "store_saves_total",
	Help:      "Total progress record saves.",
})

// StoreFailures tracks storage errors surfaced to callers.
var StoreFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "flexbreak",
	Name:      "store_failures_total",
	Help:      "Total storage failures.",
}, []string{"op"})
