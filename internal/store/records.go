package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/capmaster/internal/progression"
)

// Record keys. Each names one whole-object JSON document.
const (
	statsKey   = "user_stats"
	profileKey = "user_profile"
)

// StatsRepo loads and saves the statistics record. A missing or
// unreadable record yields the default statistics, never an error: the
// trainer must always be able to start.
type StatsRepo interface {
	Load(ctx context.Context) (progression.UserStatistics, error)
	Save(ctx context.Context, stats progression.UserStatistics) error
}

// ProfileRepo loads, saves, and deletes the profile record. A missing or
// unreadable record reads as nil (signed out).
type ProfileRepo interface {
	Load(ctx context.Context) (*progression.UserProfile, error)
	Save(ctx context.Context, profile progression.UserProfile) error
	Delete(ctx context.Context) error
}

// StatsRepo returns a StatsRepo backed by this store.
func (s *Store) StatsRepo() StatsRepo {
	return &statsRepo{db: s.db}
}

// ProfileRepo returns a ProfileRepo backed by this store.
func (s *Store) ProfileRepo() ProfileRepo {
	return &profileRepo{db: s.db}
}

// Reset deletes every persisted record, returning the trainer to its
// first-run state.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"records", "llm_requests"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

type statsRepo struct {
	db *sql.DB
}

func (r *statsRepo) Load(ctx context.Context) (progression.UserStatistics, error) {
	raw, err := readRecord(ctx, r.db, statsKey)
	if err != nil {
		return progression.UserStatistics{}, err
	}
	if raw == nil {
		return progression.DefaultStats(time.Now()), nil
	}

	var stats progression.UserStatistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		// Unparsable data is treated as absent, not fatal.
		return progression.DefaultStats(time.Now()), nil
	}
	if err := stats.Validate(); err != nil {
		return progression.DefaultStats(time.Now()), nil
	}
	return stats, nil
}

func (r *statsRepo) Save(ctx context.Context, stats progression.UserStatistics) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal statistics: %w", err)
	}
	return writeRecord(ctx, r.db, statsKey, raw)
}

type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Load(ctx context.Context) (*progression.UserProfile, error) {
	raw, err := readRecord(ctx, r.db, profileKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var profile progression.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, nil
	}
	return &profile, nil
}

func (r *profileRepo) Save(ctx context.Context, profile progression.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return writeRecord(ctx, r.db, profileKey, raw)
}

func (r *profileRepo) Delete(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM records WHERE key = ?", profileKey)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func readRecord(ctx context.Context, db *sql.DB, key string) ([]byte, error) {
	var raw []byte
	err := db.QueryRowContext(ctx, "SELECT value FROM records WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read record %s: %w", key, err)
	}
	return raw, nil
}

func writeRecord(ctx context.Context, db *sql.DB, key string, value []byte) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write record %s: %w", key, err)
	}
	return nil
}
