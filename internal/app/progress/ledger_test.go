package progress_test

import (
	"testing"
	"time"

	"github.com/crisnc100/flexbreak/internal/app/progress"
	"github.com/crisnc100/flexbreak/internal/domain"
)

// ═══════════════════════════════════════════════════════════════════════════
// Base XP Tiers
// ═══════════════════════════════════════════════════════════════════════════

func TestBaseXP_Tiers(t *testing.T) {
	cases := []struct {
		minutes int
		want    int64
	}{
		{1, 30},
		{5, 30},
		{6, 60},
		{10, 60},
		{11, 90},
		{45, 90},
	}
	for _, c := range cases {
		if got := progress.BaseXPForDuration(c.minutes); got != c.want {
			t.Errorf("BaseXPForDuration(%d) = %d, want %d", c.minutes, got, c.want)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Activity Awards
// ═══════════════════════════════════════════════════════════════════════════

func TestComputeActivityXP_FirstEverFiveMinutes(t *testing.T) {
	act := domain.Activity{Area: domain.AreaNeck, DurationMinutes: 5}

	award := progress.ComputeActivityXP(act, true, true, 1.0)

	if award.Total != 80 {
		t.Errorf("expected 80 XP (30 base + 50 welcome), got %d", award.Total)
	}
	if len(award.Breakdown) != 2 {
		t.Fatalf("expected 2 breakdown entries, got %d", len(award.Breakdown))
	}
	if award.Breakdown[0].Source != domain.XPRoutine || award.Breakdown[0].Amount != 30 {
		t.Errorf("unexpected base line: %+v", award.Breakdown[0])
	}
	if award.Breakdown[1].Source != domain.XPWelcomeBonus || award.Breakdown[1].Amount != 50 {
		t.Errorf("unexpected welcome line: %+v", award.Breakdown[1])
	}
}

func TestComputeActivityXP_BoostScalesBaseOnly(t *testing.T) {
	act := domain.Activity{Area: domain.AreaNeck, DurationMinutes: 5}

	// 2x boost: base 30 → 60, welcome bonus stays 50.
	award := progress.ComputeActivityXP(act, true, true, 2.0)

	if award.Total != 110 {
		t.Errorf("expected 110 XP (60 boosted + 50 welcome), got %d", award.Total)
	}
	if award.Breakdown[0].Amount != 60 {
		t.Errorf("expected boosted base 60, got %d", award.Breakdown[0].Amount)
	}
	if award.Breakdown[1].Amount != 50 {
		t.Errorf("welcome bonus must never be boosted, got %d", award.Breakdown[1].Amount)
	}
}

func TestComputeActivityXP_NotFirstOfDay(t *testing.T) {
	act := domain.Activity{Area: domain.AreaHips, DurationMinutes: 15}

	award := progress.ComputeActivityXP(act, false, false, 2.0)

	if award.Total != 0 {
		t.Errorf("non-first activity of the day earns nothing, got %d", award.Total)
	}
	if len(award.Breakdown) != 0 {
		t.Errorf("expected empty breakdown, got %d entries", len(award.Breakdown))
	}
}

func TestComputeActivityXP_FractionalBoostFloors(t *testing.T) {
	act := domain.Activity{Area: domain.AreaNeck, DurationMinutes: 5}

	award := progress.ComputeActivityXP(act, true, false, 1.5)

	if award.Total != 45 {
		t.Errorf("expected floor(30*1.5)=45, got %d", award.Total)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// ApplyXP
// ═══════════════════════════════════════════════════════════════════════════

func TestApplyXP_AppendsLedgerAndRecomputesLevel(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	rec := progress.NewRecord(now)

	res := progress.ApplyXP(rec, 120, domain.XPRoutine, "test grant", now)

	if rec.TotalXP != 120 {
		t.Errorf("expected total 120, got %d", rec.TotalXP)
	}
	if rec.Level != 2 {
		t.Errorf("expected level 2 at 120 XP, got %d", rec.Level)
	}
	if !res.LevelUp || res.PreviousLevel != 1 || res.NewLevel != 2 {
		t.Errorf("unexpected result: %+v", res)
	}
	if len(rec.XPHistory) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(rec.XPHistory))
	}
	entry := rec.XPHistory[0]
	if entry.Amount != 120 || entry.Source != domain.XPRoutine || entry.Detail != "test grant" {
		t.Errorf("unexpected ledger entry: %+v", entry)
	}
}

func TestApplyXP_NegativeClampsToZero(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	rec := progress.NewRecord(now)
	progress.ApplyXP(rec, 200, domain.XPRoutine, "seed", now)

	res := progress.ApplyXP(rec, -999, domain.XPRoutine, "bogus", now)

	if rec.TotalXP != 200 {
		t.Errorf("negative grant must clamp to zero, total became %d", rec.TotalXP)
	}
	if res.LevelUp {
		t.Error("clamped grant must not level up")
	}
	// The clamped entry still lands in the ledger with amount 0.
	if len(rec.XPHistory) != 2 || rec.XPHistory[1].Amount != 0 {
		t.Errorf("expected zero-amount ledger entry, got %+v", rec.XPHistory)
	}
}

func TestApplyXP_LevelNeverSkipsRecompute(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	rec := progress.NewRecord(now)

	// One bulk grant across several thresholds lands on the table value,
	// not an incremented guess.
	progress.ApplyXP(rec, 1200, domain.XPRoutine, "bulk", now)

	if rec.Level != 5 {
		t.Errorf("expected level 5 at 1200 XP, got %d", rec.Level)
	}
}

func TestApplyXP_BoostRewardGrantsUnits(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	rec := progress.NewRecord(now)

	// Level 5 unlocks the xp_boost reward, which carries starter units.
	progress.ApplyXP(rec, 1000, domain.XPRoutine, "to level 5", now)

	rw := rec.Rewards[progress.RewardXPBoost]
	if !rw.Unlocked {
		t.Fatal("xp_boost reward should unlock at level 5")
	}
	if rec.Boost.AvailableBoosts != progress.BoostGrantUnits {
		t.Errorf("expected %d starter boost units, got %d",
			progress.BoostGrantUnits, rec.Boost.AvailableBoosts)
	}

	// A second level-up must not re-grant.
	progress.ApplyXP(rec, 800, domain.XPRoutine, "to level 6", now)
	if rec.Boost.AvailableBoosts != progress.BoostGrantUnits {
		t.Errorf("re-grant on later level-up: got %d units", rec.Boost.AvailableBoosts)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// First-of-day Gating
// ═══════════════════════════════════════════════════════════════════════════

func TestIsFirstOfDay(t *testing.T) {
	days := []string{"2025-07-01", "2025-07-02"}

	if progress.IsFirstOfDay(days, time.Date(2025, 7, 2, 23, 0, 0, 0, time.UTC)) {
		t.Error("existing day should not be first")
	}
	if !progress.IsFirstOfDay(days, time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)) {
		t.Error("new day should be first")
	}
}

func TestIsFirstOfDay_UTCBoundary(t *testing.T) {
	days := []string{"2025-07-01"}

	// 2025-07-01 20:00 EDT is 2025-07-02 00:00 UTC — a new calendar day.
	loc := time.FixedZone("EDT", -4*3600)
	local := time.Date(2025, 7, 1, 20, 0, 0, 0, loc)

	if !progress.IsFirstOfDay(days, local) {
		t.Error("day keys are UTC; 20:00 EDT on the 1st is the 2nd in UTC")
	}
}
