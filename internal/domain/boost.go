package domain

import "time"

// BoostState is the time-boxed XP multiplier. Two states: inactive and
// active-until-EndsAt. Expiry is checked lazily on read, never by a timer —
// callers must go through the boost manager's CheckStatus and never trust a
// stale Active flag.
type BoostState struct {
	Active          bool       `json:"active"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	EndsAt          *time.Time `json:"ends_at,omitempty"`
	Multiplier      float64    `json:"multiplier"`
	AvailableBoosts int        `json:"available_boosts"`
}

// Expired reports whether an active boost has passed its end time.
func (b BoostState) Expired(now time.Time) bool {
	return b.Active && b.EndsAt != nil && now.After(*b.EndsAt)
}

// EffectiveMultiplier returns the multiplier to apply to base XP: the boost
// multiplier while active and unexpired, otherwise 1.
func (b BoostState) EffectiveMultiplier(now time.Time) float64 {
	if b.Active && !b.Expired(now) && b.Multiplier > 1 {
		return b.Multiplier
	}
	return 1.0
}
