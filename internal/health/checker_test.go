package health

import (
	"context"
	"testing"
	"time"

	"github.com/crisnc100/flexbreak/internal/app/progress"
	"github.com/crisnc100/flexbreak/internal/app/simulator"
	"github.com/crisnc100/flexbreak/internal/infra/sqlite"
)

func newTestChecker(t *testing.T) (*Checker, *sqlite.DB, string) {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	clock := simulator.NewFakeClock(time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC))
	store := progress.NewStore(db, clock)
	return NewChecker(db, store, dir), db, dir
}

// ─── Checker Tests ──────────────────────────────────────────────────────────

func TestNewChecker(t *testing.T) {
	c, _, _ := newTestChecker(t)
	if c == nil {
		t.Fatal("NewChecker() returned nil")
	}
	if len(c.checks) != 3 {
		t.Errorf("checks = %d, want 3", len(c.checks))
	}
}

func TestChecker_RunAllHealthy(t *testing.T) {
	c, _, _ := newTestChecker(t)

	c.runAll(context.Background())

	statuses := c.Statuses()
	if len(statuses) != 3 {
		t.Fatalf("Statuses() = %d, want 3", len(statuses))
	}
	for _, s := range statuses {
		if !s.Healthy {
			t.Errorf("check %q should be healthy, got error: %s", s.Name, s.Error)
		}
	}
	if !c.IsHealthy() {
		t.Error("IsHealthy() should be true when all checks pass")
	}
}

func TestChecker_CorruptRecordFailsIntegrityCheck(t *testing.T) {
	c, db, _ := newTestChecker(t)

	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	if err := db.PutRecord("progress", "{broken", now); err != nil {
		t.Fatalf("put: %v", err)
	}

	c.runAll(context.Background())

	if c.IsHealthy() {
		t.Error("corrupt record must fail the integrity check")
	}

	found := false
	for _, s := range c.Statuses() {
		if s.Name == "progress_record" && !s.Healthy {
			found = true
		}
	}
	if !found {
		t.Error("progress_record check should be the failing one")
	}
}

func TestChecker_RunStopsOnContextCancel(t *testing.T) {
	c, _, _ := newTestChecker(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop on context cancel")
	}
}
