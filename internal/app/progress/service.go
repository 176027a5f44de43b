package progress

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/crisnc100/flexbreak/internal/domain"
)

// Service orchestrates the engine pipeline. Each logical operation runs
// inside one store.Update, so its sub-steps (challenge rotation → statistics
// update → XP grant → achievement scan → challenge scan) land in a single
// persist.
type Service struct {
	store        *Store
	clock        domain.Clock
	mapper       *domain.AreaMapper
	Boosts       *BoostManager
	Achievements *AchievementEvaluator
	Challenges   *ChallengeEvaluator
}

// NewService wires the engine's evaluators around a store.
func NewService(store *Store, clock domain.Clock, mapper *domain.AreaMapper) *Service {
	return &Service{
		store:        store,
		clock:        clock,
		mapper:       mapper,
		Boosts:       NewBoostManager(clock),
		Achievements: NewAchievementEvaluator(clock),
		Challenges:   NewChallengeEvaluator(clock),
	}
}

// ActivitySummary is what one RecordActivity call earned, for caller
// notification (level-up toasts, unlock lists).
type ActivitySummary struct {
	Activity             domain.Activity           `json:"activity"`
	Award                domain.Award              `json:"award"`
	XPFromAchievements   int64                     `json:"xp_from_achievements"`
	XPFromChallenges     int64                     `json:"xp_from_challenges"`
	TotalXPGained        int64                     `json:"total_xp_gained"`
	Level                int                       `json:"level"`
	LeveledUp            bool                      `json:"leveled_up"`
	UnlockedAchievements []domain.AchievementState `json:"unlocked_achievements"`
	FirstOfDay           bool                      `json:"first_of_day"`
	CurrentStreak        int                       `json:"current_streak"`
}

// RecordActivity runs the full pipeline for one completed activity.
// The activity's raw area label is canonicalized before counting.
func (s *Service) RecordActivity(act domain.Activity) (*ActivitySummary, error) {
	if act.DurationMinutes <= 0 {
		return nil, fmt.Errorf("record activity: duration must be positive, got %d", act.DurationMinutes)
	}
	if act.ID == "" {
		act.ID = uuid.NewString()
	}
	if act.CompletedAt.IsZero() {
		act.CompletedAt = s.clock.Now()
	}
	act.Area = s.mapper.Canonical(string(act.Area))

	summary := &ActivitySummary{Activity: act}

	_, err := s.store.Update(func(rec *domain.ProgressRecord) error {
		now := s.clock.Now()
		startLevel := rec.Level

		// Lazy boost expiry before the multiplier is read.
		boost := s.Boosts.CheckStatus(rec)

		// Rotate before the activity is folded into statistics: a challenge
		// instantiated by the period's first activity snapshots its baseline
		// from the pre-activity counters, so that activity counts toward it.
		s.Challenges.Rotate(rec)

		firstEver := !rec.HasReceivedWelcomeBonus && rec.Statistics.TotalRoutines == 0

		firstOfDay, streakBroken := ApplyActivity(rec, act, now)
		if streakBroken {
			ResetStreakAchievements(rec)
		}

		award := ComputeActivityXP(act, firstOfDay, firstEver, boost.EffectiveMultiplier(now))
		for _, line := range award.Breakdown {
			ApplyXP(rec, line.Amount, line.Source, line.Description, now)
		}
		if firstEver {
			rec.HasReceivedWelcomeBonus = true
		}

		achResult := s.Achievements.Evaluate(rec)
		chResult := s.Challenges.Evaluate(rec)

		summary.Award = award
		summary.FirstOfDay = firstOfDay
		summary.XPFromAchievements = achResult.XPEarned
		summary.XPFromChallenges = chResult.XPEarned
		summary.TotalXPGained = award.Total + achResult.XPEarned + chResult.XPEarned
		summary.UnlockedAchievements = achResult.Unlocked
		summary.Level = rec.Level
		summary.LeveledUp = rec.Level > startLevel
		summary.CurrentStreak = rec.Statistics.CurrentStreak
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Progress returns the current record (healing boost expiry on read).
func (s *Service) Progress() (*domain.ProgressRecord, error) {
	return s.store.Update(func(rec *domain.ProgressRecord) error {
		s.Boosts.CheckStatus(rec)
		s.Challenges.Rotate(rec)
		return nil
	})
}

// ActivateBoost starts a boost window. ok=false means no state change
// (already active, or no units).
func (s *Service) ActivateBoost(durationHours int, multiplier float64) (ok bool, state domain.BoostState, err error) {
	rec, err := s.store.Update(func(rec *domain.ProgressRecord) error {
		ok = s.Boosts.Activate(rec, durationHours, multiplier)
		return nil
	})
	if err != nil {
		return false, domain.BoostState{}, err
	}
	return ok, rec.Boost, nil
}

// DeactivateBoost ends any active boost early.
func (s *Service) DeactivateBoost() (domain.BoostState, error) {
	rec, err := s.store.Update(func(rec *domain.ProgressRecord) error {
		s.Boosts.Deactivate(rec)
		return nil
	})
	if err != nil {
		return domain.BoostState{}, err
	}
	return rec.Boost, nil
}

// AddBoosts grants extra boost units (reward fulfilment path).
func (s *Service) AddBoosts(n int) (domain.BoostState, error) {
	rec, err := s.store.Update(func(rec *domain.ProgressRecord) error {
		s.Boosts.AddBoosts(rec, n)
		return nil
	})
	if err != nil {
		return domain.BoostState{}, err
	}
	return rec.Boost, nil
}

// ValidateBoostGrants runs the lost-grant reconciliation pass.
func (s *Service) ValidateBoostGrants() (repaired bool, err error) {
	_, err = s.store.Update(func(rec *domain.ProgressRecord) error {
		repaired = s.Boosts.ValidateGrants(rec)
		return nil
	})
	return repaired, err
}

// Reset reinitializes the record (testing/debug). Premium and testing flags
// live under separate keys and are preserved.
func (s *Service) Reset() (*domain.ProgressRecord, error) {
	return s.store.Reset()
}

// Store exposes the underlying store for flag access and direct loads.
func (s *Service) Store() *Store { return s.store }
