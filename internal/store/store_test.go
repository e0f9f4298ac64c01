package store

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/capmaster/internal/progression"
	"github.com/abhisek/capmaster/internal/subject"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared&mode=memory")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	// Each test gets a clean slate even when the shared cache survives.
	if err := s.Reset(context.Background()); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return s
}

func TestStatsRepoDefaultsWhenAbsent(t *testing.T) {
	s := openTestStore(t)
	repo := s.StatsRepo()

	stats, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stats.Level != 3 || stats.XP != 450 || stats.XPToNextLevel != 1000 {
		t.Errorf("default stats = level %d, xp %d/%d, want 3, 450/1000",
			stats.Level, stats.XP, stats.XPToNextLevel)
	}
	if len(stats.History) != 2 {
		t.Errorf("default history has %d records, want 2 seeds", len(stats.History))
	}
}

func TestStatsRepoRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.StatsRepo()
	ctx := context.Background()

	stats := progression.DefaultStats(time.Now())
	stats.Level = 7
	stats.XP = 123
	stats.Mastery[subject.Math] = 99

	if err := repo.Save(ctx, stats); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Level != 7 || got.XP != 123 {
		t.Errorf("loaded level %d xp %d, want 7, 123", got.Level, got.XP)
	}
	if got.Mastery[subject.Math] != 99 {
		t.Errorf("loaded mastery[math] = %d, want 99", got.Mastery[subject.Math])
	}
	if len(got.History) != len(stats.History) {
		t.Errorf("loaded %d history records, want %d", len(got.History), len(stats.History))
	}
}

func TestStatsRepoCorruptRecordFallsBackToDefaults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.DB().ExecContext(ctx,
		`INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)`,
		"user_stats", []byte(`{"level": -1, "xp": "nope"`), time.Now().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("seed corrupt record: %v", err)
	}

	stats, err := s.StatsRepo().Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stats.Level != 3 {
		t.Errorf("corrupt record loaded as level %d, want default 3", stats.Level)
	}
}

func TestProfileRepoLifecycle(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil profile before save, got %+v", got)
	}

	if err := repo.Save(ctx, progression.DefaultProfile()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if got == nil || got.Name != "Exam Warrior" {
		t.Errorf("loaded profile = %+v, want Exam Warrior", got)
	}

	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load after delete: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil profile after delete, got %+v", got)
	}
}

func TestRequestLogAppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	log := s.RequestLog()
	ctx := context.Background()

	recs := []LLMRequestRecord{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "quiz_generation", InputTokens: 400, OutputTokens: 800, LatencyMs: 900, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "quiz_generation", Success: false, ErrorMessage: "rate limited"},
	}
	for _, rec := range recs {
		if err := log.Append(ctx, rec); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := log.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent returned %d records, want 2", len(got))
	}
	// Newest first.
	if got[0].Success || got[0].ErrorMessage != "rate limited" {
		t.Errorf("newest record = %+v, want the failed request", got[0])
	}
	if !got[1].Success || got[1].OutputTokens != 800 {
		t.Errorf("oldest record = %+v, want the successful request", got[1])
	}
}

func TestResetClearsEverything(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.StatsRepo().Save(ctx, progression.DefaultStats(time.Now())); err != nil {
		t.Fatalf("Save stats: %v", err)
	}
	if err := s.ProfileRepo().Save(ctx, progression.DefaultProfile()); err != nil {
		t.Fatalf("Save profile: %v", err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	profile, err := s.ProfileRepo().Load(ctx)
	if err != nil {
		t.Fatalf("Load profile: %v", err)
	}
	if profile != nil {
		t.Errorf("profile survived reset: %+v", profile)
	}
}
