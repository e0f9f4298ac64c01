// Package progression owns the persistent player state and the rules
// that turn a finished battle into updated statistics.
package progression

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/capmaster/internal/subject"
)

// Mastery is the per-subject proficiency table, 0-100 each. A fixed-size
// array indexed by subject ordinal: every subject always has an entry, so
// a missing key is representable only in serialized form (and rejected
// there).
type Mastery [subject.Count]int

// MarshalJSON encodes mastery as an object keyed by subject key,
// matching the persisted record layout.
func (m Mastery) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, subject.Count)
	for _, s := range subject.All {
		out[s.Key()] = m[s]
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the keyed object form. Every subject must be
// present; a missing entry marks the record as corrupt.
func (m *Mastery) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, s := range subject.All {
		v, ok := raw[s.Key()]
		if !ok {
			return fmt.Errorf("mastery missing subject %q", s.Key())
		}
		m[s] = v
	}
	return nil
}

// BattleRecord is one immutable history entry. Records are only ever
// appended, never edited or deleted.
type BattleRecord struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	Subject        string    `json:"subject"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	XPGained       int       `json:"xpGained"`
}

// UserStatistics is the whole persisted progression aggregate. It is
// owned by the orchestrator and mutated only through Engine.ApplyResult,
// which returns a fresh copy rather than editing in place.
type UserStatistics struct {
	Level         int            `json:"level"`
	XP            int            `json:"xp"`
	XPToNextLevel int            `json:"xpToNextLevel"`
	Streak        int            `json:"streak"`
	BattlesWon    int            `json:"battlesWon"`
	Mastery       Mastery        `json:"mastery"`
	History       []BattleRecord `json:"history"`
}

// UserProfile is the persisted identity record. Created at login,
// deleted at logout; the store never looks inside it.
type UserProfile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// DefaultProfile is the stubbed sign-in identity. There is no real
// credential exchange; see the login screen.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:   "Exam Warrior",
		Email:  "warrior@example.com",
		Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Felix",
	}
}

// DefaultStats is the documented starting state used when no statistics
// record exists (or the stored one is unreadable). It seeds two history
// entries so the dashboard and history screen have something to show on
// first run.
func DefaultStats(now time.Time) UserStatistics {
	return UserStatistics{
		Level:         3,
		XP:            450,
		XPToNextLevel: 1000,
		Streak:        5,
		BattlesWon:    12,
		Mastery: Mastery{
			subject.Chinese: 45,
			subject.English: 60,
			subject.Math:    30,
			subject.Science: 55,
			subject.Social:  70,
		},
		History: []BattleRecord{
			{
				ID:             "seed-1",
				Date:           now.Add(-48 * time.Hour),
				Subject:        subject.Math.Key(),
				Score:          2,
				TotalQuestions: 3,
				XPGained:       250,
			},
			{
				ID:             "seed-2",
				Date:           now.Add(-24 * time.Hour),
				Subject:        subject.English.Key(),
				Score:          3,
				TotalQuestions: 3,
				XPGained:       350,
			},
		},
	}
}

// Clone returns a deep copy. History and mastery are copied so the
// original snapshot can never be mutated through the copy.
func (s UserStatistics) Clone() UserStatistics {
	out := s
	out.History = make([]BattleRecord, len(s.History))
	copy(out.History, s.History)
	return out
}

// Validate checks the structural invariants of a statistics snapshot.
// A failure means corrupted persistent state, never a normal condition.
func (s UserStatistics) Validate() error {
	if s.Level < 1 {
		return fmt.Errorf("%w: level %d < 1", ErrCorruptStats, s.Level)
	}
	if s.XPToNextLevel < 1 {
		return fmt.Errorf("%w: xpToNextLevel %d < 1", ErrCorruptStats, s.XPToNextLevel)
	}
	if s.XP < 0 || s.XP >= s.XPToNextLevel {
		return fmt.Errorf("%w: xp %d outside [0,%d)", ErrCorruptStats, s.XP, s.XPToNextLevel)
	}
	if s.Streak < 0 || s.BattlesWon < 0 {
		return fmt.Errorf("%w: negative counters", ErrCorruptStats)
	}
	for _, sub := range subject.All {
		if v := s.Mastery[sub]; v < 0 || v > 100 {
			return fmt.Errorf("%w: mastery[%s]=%d outside [0,100]", ErrCorruptStats, sub.Key(), v)
		}
	}
	return nil
}
