package progress

import (
	"log"
	"time"

	"github.com/crisnc100/flexbreak/internal/domain"
	"github.com/crisnc100/flexbreak/internal/infra/metrics"
)

// Boost defaults. A boost doubles base XP for a fixed window; units stack
// while inactive and one unit is consumed per activation.
const (
	DefaultBoostMultiplier = 2.0
	DefaultBoostHours      = 24

	// BoostGrantUnits is the stack granted by the boost reward, and the
	// stack re-granted by ValidateGrants reconciliation.
	BoostGrantUnits = 2
)

// BoostManager drives the two-state boost machine (inactive ↔ active).
// Expiry is lazy: every status read self-heals a past end time back to
// inactive. There is no timer.
type BoostManager struct {
	clock        domain.Clock
	defaultHours int
	defaultMult  float64
}

// NewBoostManager creates a boost manager on the given clock.
func NewBoostManager(clock domain.Clock) *BoostManager {
	return &BoostManager{
		clock:        clock,
		defaultHours: DefaultBoostHours,
		defaultMult:  DefaultBoostMultiplier,
	}
}

// SetDefaults overrides the window and multiplier used when Activate is
// called with zero values. The daemon feeds its [engine] config through
// here. Out-of-range values keep the built-in defaults.
func (m *BoostManager) SetDefaults(hours int, multiplier float64) {
	if hours > 0 {
		m.defaultHours = hours
	}
	if multiplier > 1 {
		m.defaultMult = multiplier
	}
}

// CheckStatus returns the current boost state after healing expiry.
// Callers must never trust a stale Active flag without this check.
func (m *BoostManager) CheckStatus(rec *domain.ProgressRecord) domain.BoostState {
	now := m.clock.Now()
	if rec.Boost.Expired(now) {
		rec.Boost.Active = false
		rec.Boost.StartedAt = nil
		rec.Boost.EndsAt = nil
		metrics.BoostActive.Set(0)
	}
	return rec.Boost
}

// Activate consumes one boost unit and starts a timed multiplier window.
// Returns false with no state change if a boost is already active or no
// units are available.
func (m *BoostManager) Activate(rec *domain.ProgressRecord, durationHours int, multiplier float64) bool {
	m.CheckStatus(rec)

	if rec.Boost.Active || rec.Boost.AvailableBoosts <= 0 {
		return false
	}
	if durationHours <= 0 {
		durationHours = m.defaultHours
	}
	if multiplier <= 1 {
		multiplier = m.defaultMult
	}

	now := m.clock.Now()
	end := now.Add(time.Duration(durationHours) * time.Hour)

	rec.Boost.Active = true
	rec.Boost.StartedAt = &now
	rec.Boost.EndsAt = &end
	rec.Boost.Multiplier = multiplier
	rec.Boost.AvailableBoosts--

	metrics.BoostActivations.Inc()
	metrics.BoostActive.Set(1)
	return true
}

// Deactivate ends an active boost early. Inactive state is a no-op.
func (m *BoostManager) Deactivate(rec *domain.ProgressRecord) {
	rec.Boost.Active = false
	rec.Boost.StartedAt = nil
	rec.Boost.EndsAt = nil
	metrics.BoostActive.Set(0)
}

// AddBoosts increments the unit stack. Stacking is permitted in any state.
func (m *BoostManager) AddBoosts(rec *domain.ProgressRecord, n int) {
	if n <= 0 {
		return
	}
	rec.Boost.AvailableBoosts += n
}

// ValidateGrants is a reconciliation step for a known class of lost-grant
// bugs: if the boost reward is unlocked but zero units exist and none are
// active, the starter stack is re-granted. This is repair, not a
// correctness guarantee.
func (m *BoostManager) ValidateGrants(rec *domain.ProgressRecord) bool {
	m.CheckStatus(rec)

	rw, ok := rec.Rewards[RewardXPBoost]
	if !ok || !rw.Unlocked {
		return false
	}
	if rec.Boost.Active || rec.Boost.AvailableBoosts > 0 {
		return false
	}

	log.Printf("[boost] reconciling lost grant: re-granting %d units", BoostGrantUnits)
	rec.Boost.AvailableBoosts = BoostGrantUnits
	return true
}
