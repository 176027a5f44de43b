// Package simulator implements the "Bob" harness: a fake user driven
// through synthetic days to exercise the progress engine end to end.
// It is a consumer of the engine, not part of it — the engine sees only an
// injected Clock, never a patched global.
package simulator

import (
	"fmt"
	"sync"
	"time"

	"github.com/crisnc100/flexbreak/internal/app/progress"
	"github.com/crisnc100/flexbreak/internal/domain"
)

// FakeClock is a manually advanced Clock for simulation and tests.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

// NewFakeClock creates a clock frozen at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{t: start}
}

// Now returns the frozen time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// Set jumps the clock to an absolute time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// Config shapes Bob's synthetic schedule.
type Config struct {
	Days            int           // number of simulated days
	SkipEvery       int           // skip every Nth day (0 = never skip)
	DurationMinutes int           // duration of each routine
	RoutinesPerDay  int           // routines per active day (extras earn no base XP)
	Areas           []domain.Area // cycled through day by day
}

// DefaultConfig is a week of one 5-minute routine per day.
func DefaultConfig() Config {
	return Config{
		Days:            7,
		DurationMinutes: 5,
		RoutinesPerDay:  1,
		Areas: []domain.Area{
			domain.AreaNeck, domain.AreaLowerBack, domain.AreaShoulders,
			domain.AreaHips, domain.AreaHamstrings,
		},
	}
}

// DayReport is one simulated day's outcome.
type DayReport struct {
	Day        int      `json:"day"`
	Date       string   `json:"date"`
	Skipped    bool     `json:"skipped"`
	XPGained   int64    `json:"xp_gained"`
	TotalXP    int64    `json:"total_xp"`
	Level      int      `json:"level"`
	Streak     int      `json:"streak"`
	NewUnlocks []string `json:"new_unlocks,omitempty"`
}

// Run drives the service through cfg.Days synthetic days, advancing the
// fake clock by 24h per day. The clock passed here must be the same one the
// service was built on.
func Run(svc *progress.Service, clock *FakeClock, cfg Config) ([]DayReport, error) {
	if cfg.Days <= 0 {
		return nil, fmt.Errorf("simulate: days must be positive, got %d", cfg.Days)
	}
	if cfg.RoutinesPerDay <= 0 {
		cfg.RoutinesPerDay = 1
	}
	if cfg.DurationMinutes <= 0 {
		cfg.DurationMinutes = 5
	}
	if len(cfg.Areas) == 0 {
		cfg.Areas = DefaultConfig().Areas
	}

	reports := make([]DayReport, 0, cfg.Days)
	for day := 1; day <= cfg.Days; day++ {
		report := DayReport{Day: day, Date: domain.DayKey(clock.Now())}

		skipped := cfg.SkipEvery > 0 && day%cfg.SkipEvery == 0
		if skipped {
			report.Skipped = true
			rec, err := svc.Progress()
			if err != nil {
				return reports, fmt.Errorf("simulate day %d: %w", day, err)
			}
			fillFromRecord(&report, rec)
		} else {
			for i := 0; i < cfg.RoutinesPerDay; i++ {
				area := cfg.Areas[(day-1+i)%len(cfg.Areas)]
				summary, err := svc.RecordActivity(domain.Activity{
					Area:            area,
					DurationMinutes: cfg.DurationMinutes,
					CompletedAt:     clock.Now(),
				})
				if err != nil {
					return reports, fmt.Errorf("simulate day %d: %w", day, err)
				}
				report.XPGained += summary.TotalXPGained
				report.Level = summary.Level
				report.Streak = summary.CurrentStreak
				for _, a := range summary.UnlockedAchievements {
					report.NewUnlocks = append(report.NewUnlocks, a.ID)
				}
				clock.Advance(30 * time.Minute) // space same-day routines apart
			}
			rec, err := svc.Progress()
			if err != nil {
				return reports, fmt.Errorf("simulate day %d: %w", day, err)
			}
			report.TotalXP = rec.TotalXP
		}

		reports = append(reports, report)
		advanceToNextDay(clock)
	}
	return reports, nil
}

func fillFromRecord(report *DayReport, rec *domain.ProgressRecord) {
	report.TotalXP = rec.TotalXP
	report.Level = rec.Level
	report.Streak = rec.Statistics.CurrentStreak
}

// advanceToNextDay moves the clock to the same wall time on the next UTC day.
func advanceToNextDay(clock *FakeClock) {
	now := clock.Now().UTC()
	next := now.Truncate(24*time.Hour).AddDate(0, 0, 1).Add(9 * time.Hour) // 09:00 next day
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	clock.Set(next)
}
