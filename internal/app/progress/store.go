package progress

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/crisnc100/flexbreak/internal/domain"
	"github.com/crisnc100/flexbreak/internal/infra/metrics"
	"github.com/crisnc100/flexbreak/internal/infra/sqlite"
)

// recordKey is the fixed document key for the progress aggregate.
const recordKey = "progress"

// Flags preserved across an explicit reset. They live in a separate table
// and are never interpreted by the engine itself.
const (
	FlagPremiumAccess = "premium_access"
	FlagTestingAccess = "testing_access"
)

// Store is the single-writer handle for the progress record. Every
// read-modify-write cycle is serialized through its mutex, so one logical
// operation (statistics update → XP grant → achievement scan → challenge
// scan → single persist) is atomic from the caller's perspective.
type Store struct {
	mu    sync.Mutex
	db    *sqlite.DB
	clock domain.Clock
}

// NewStore creates a store over the given database.
func NewStore(db *sqlite.DB, clock domain.Clock) *Store {
	return &Store{db: db, clock: clock}
}

// Load returns the persisted record, default-initialized if absent.
// Older record shapes are forward-migrated by normalize before returning.
func (s *Store) Load() (*domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (*domain.ProgressRecord, error) {
	doc, ok, err := s.db.GetRecord(recordKey)
	if err != nil {
		metrics.StoreFailures.WithLabelValues("load").Inc()
		return nil, fmt.Errorf("load progress record: %w", err)
	}
	if !ok {
		rec := NewRecord(s.clock.Now())
		return rec, nil
	}

	var rec domain.ProgressRecord
	if err := json.Unmarshal([]byte(doc), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRecordCorrupted, err)
	}
	normalize(&rec)
	return &rec, nil
}

// Save persists the record wholesale, stamping LastUpdated.
func (s *Store) Save(rec *domain.ProgressRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(rec)
}

func (s *Store) save(rec *domain.ProgressRecord) error {
	now := s.clock.Now()
	rec.LastUpdated = now

	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode progress record: %w", err)
	}
	if err := s.db.PutRecord(recordKey, string(doc), now); err != nil {
		metrics.StoreFailures.WithLabelValues("save").Inc()
		return fmt.Errorf("save progress record: %w", err)
	}
	metrics.StoreSaves.Inc()
	return nil
}

// Update runs fn against the current record and persists the result once.
// The lock is held for the full cycle, so concurrent logical operations
// cannot clobber each other's writes.
func (s *Store) Update(fn func(*domain.ProgressRecord) error) (*domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	if err := fn(rec); err != nil {
		return nil, err
	}
	if err := s.save(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Reset reinitializes the record wholesale. Flags (premium access, testing
// access) live in a separate table and survive untouched.
func (s *Store) Reset() (*domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := NewRecord(s.clock.Now())
	if err := s.save(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// SetFlag stores one of the preserve-keys.
func (s *Store) SetFlag(key string, value bool) error {
	return s.db.SetFlag(key, value)
}

// GetFlag reads one of the preserve-keys. Absent keys read as false.
func (s *Store) GetFlag(key string) (bool, error) {
	return s.db.GetFlag(key)
}

// NewRecord returns a fresh record with zeroed counters and the achievement
// and reward catalogs cloned in.
func NewRecord(now time.Time) *domain.ProgressRecord {
	rec := &domain.ProgressRecord{
		Statistics: domain.Statistics{
			RoutinesByArea: make(map[domain.Area]int),
			UniqueAreas:    []domain.Area{},
			LastUpdated:    now,
		},
		Achievements: make(map[string]domain.AchievementState),
		Challenges:   make(map[string]domain.ChallengeState),
		Rewards:      make(map[string]domain.RewardState),
		Boost: domain.BoostState{
			Multiplier:      DefaultBoostMultiplier,
			AvailableBoosts: 0,
		},
		XPHistory:    []domain.XPEntry{},
		ActivityDays: []string{},
		LastUpdated:  now,
	}
	seedCatalogs(rec)
	rec.Level = domain.LevelForXP(rec.TotalXP).Level
	return rec
}

// normalize is the single forward-migration point for older record shapes.
// Missing substructures are self-healed to defaults and logged, never
// surfaced to the caller as failure.
func normalize(rec *domain.ProgressRecord) {
	if rec.Statistics.RoutinesByArea == nil {
		log.Printf("[store] healing missing statistics.routines_by_area")
		rec.Statistics.RoutinesByArea = make(map[domain.Area]int)
	}
	if rec.Statistics.UniqueAreas == nil {
		rec.Statistics.UniqueAreas = []domain.Area{}
	}
	if rec.Achievements == nil {
		log.Printf("[store] healing missing achievements map")
		rec.Achievements = make(map[string]domain.AchievementState)
	}
	if rec.Challenges == nil {
		rec.Challenges = make(map[string]domain.ChallengeState)
	}
	if rec.Rewards == nil {
		log.Printf("[store] healing missing rewards map")
		rec.Rewards = make(map[string]domain.RewardState)
	}
	if rec.XPHistory == nil {
		rec.XPHistory = []domain.XPEntry{}
	}
	if rec.ActivityDays == nil {
		rec.ActivityDays = []string{}
	}
	if rec.Boost.Multiplier <= 0 {
		rec.Boost.Multiplier = DefaultBoostMultiplier
	}
	if rec.TotalXP < 0 {
		rec.TotalXP = 0
	}

	// Catalog entries added after the record was created are seeded in.
	seedCatalogs(rec)

	// Level is derived state — recompute rather than trust the stored value.
	rec.Level = domain.LevelForXP(rec.TotalXP).Level
}

// seedCatalogs clones catalog definitions into the record for any entry not
// yet present. Existing states (including completed ones) are untouched.
func seedCatalogs(rec *domain.ProgressRecord) {
	for _, def := range AllAchievements() {
		if _, ok := rec.Achievements[def.ID]; !ok {
			rec.Achievements[def.ID] = domain.AchievementState{AchievementDef: def}
		}
	}
	for _, rw := range AllRewards() {
		if _, ok := rec.Rewards[rw.ID]; !ok {
			rec.Rewards[rw.ID] = rw
		}
	}
}
