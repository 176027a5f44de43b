package progress_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/crisnc100/flexbreak/internal/app/progress"
	"github.com/crisnc100/flexbreak/internal/app/simulator"
	"github.com/crisnc100/flexbreak/internal/domain"
	"github.com/crisnc100/flexbreak/internal/infra/sqlite"
)

func testStore(t *testing.T, start time.Time) (*progress.Store, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return progress.NewStore(db, simulator.NewFakeClock(start)), db
}

// ═══════════════════════════════════════════════════════════════════════════
// Round Trips
// ═══════════════════════════════════════════════════════════════════════════

func TestStore_LoadAbsentReturnsFreshRecord(t *testing.T) {
	start := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	store, _ := testStore(t, start)

	rec, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.TotalXP != 0 || rec.Level != 1 {
		t.Errorf("fresh record expected, got XP=%d level=%d", rec.TotalXP, rec.Level)
	}
	if len(rec.Achievements) == 0 {
		t.Error("achievement catalog must be seeded")
	}
	if len(rec.Rewards) == 0 {
		t.Error("reward catalog must be seeded")
	}
}

func TestStore_SaveThenLoad(t *testing.T) {
	start := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	store, _ := testStore(t, start)

	rec, _ := store.Load()
	progress.ApplyXP(rec, 300, domain.XPRoutine, "seed", start)
	rec.Statistics.TotalRoutines = 4
	if err := store.Save(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.TotalXP != 300 || got.Level != 3 {
		t.Errorf("expected 300 XP level 3, got %d/%d", got.TotalXP, got.Level)
	}
	if got.Statistics.TotalRoutines != 4 {
		t.Errorf("statistics lost on round trip: %+v", got.Statistics)
	}
	if len(got.XPHistory) != 1 {
		t.Errorf("ledger lost on round trip: %d entries", len(got.XPHistory))
	}
}

func TestStore_CorruptDocumentSurfacesSentinel(t *testing.T) {
	start := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	store, db := testStore(t, start)

	if err := db.PutRecord("progress", "{not json", start); err != nil {
		t.Fatalf("put: %v", err)
	}

	_, err := store.Load()
	if !errors.Is(err, domain.ErrRecordCorrupted) {
		t.Errorf("expected ErrRecordCorrupted, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Migration / Self-Healing
// ═══════════════════════════════════════════════════════════════════════════

func TestStore_NormalizeHealsOlderShapes(t *testing.T) {
	start := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	store, db := testStore(t, start)

	// A minimal legacy document: XP total only, everything else missing.
	legacy := `{"total_xp": 600, "level": 99}`
	if err := db.PutRecord("progress", legacy, start); err != nil {
		t.Fatalf("put: %v", err)
	}

	rec, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.Level != 4 {
		t.Errorf("level is derived state and must recompute to 4, got %d", rec.Level)
	}
	if rec.Statistics.RoutinesByArea == nil || rec.Achievements == nil || rec.Rewards == nil {
		t.Error("missing substructures must self-heal")
	}
	if len(rec.Achievements) == 0 {
		t.Error("catalog entries must seed into legacy records")
	}
	if rec.Boost.Multiplier != progress.DefaultBoostMultiplier {
		t.Errorf("zero multiplier must heal to default, got %v", rec.Boost.Multiplier)
	}
}

func TestStore_NormalizePreservesCompletedStates(t *testing.T) {
	start := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	store, _ := testStore(t, start)

	rec, _ := store.Load()
	st := rec.Achievements["routine_5"]
	st.Progress = 5
	st.Completed = true
	rec.Achievements["routine_5"] = st
	if err := store.Save(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, _ := store.Load()
	if !got.Achievements["routine_5"].Completed {
		t.Error("completed state lost through normalize")
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Single-Writer Update
// ═══════════════════════════════════════════════════════════════════════════

func TestStore_UpdateIsAtomicUnderConcurrency(t *testing.T) {
	start := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	store, _ := testStore(t, start)

	const workers = 8
	const grants = 10

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < grants; i++ {
				_, err := store.Update(func(rec *domain.ProgressRecord) error {
					rec.TotalXP += 10
					return nil
				})
				if err != nil {
					t.Errorf("update: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	rec, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if want := int64(workers * grants * 10); rec.TotalXP != want {
		t.Errorf("lost updates: expected %d XP, got %d", want, rec.TotalXP)
	}
}

func TestStore_UpdateErrorDiscardsMutation(t *testing.T) {
	start := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	store, _ := testStore(t, start)

	wantErr := errors.New("boom")
	_, err := store.Update(func(rec *domain.ProgressRecord) error {
		rec.TotalXP = 9999
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped error, got %v", err)
	}

	rec, _ := store.Load()
	if rec.TotalXP != 0 {
		t.Errorf("failed update must not persist, got %d XP", rec.TotalXP)
	}
}
