package progression

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/capmaster/internal/quiz"
	"github.com/abhisek/capmaster/internal/subject"
)

// ErrCorruptStats marks a statistics snapshot that violates its own
// invariants. It is deliberately fatal to the operation: silently
// patching the state would hide the underlying data problem.
var ErrCorruptStats = errors.New("progression: corrupted statistics")

// Mastery gain requires at least half the battle answered correctly.
const masteryGainThreshold = 0.5

// Engine applies battle awards to player statistics. The clock and id
// source are injectable for deterministic tests.
type Engine struct {
	now   func() time.Time
	newID func() string
}

// NewEngine returns an engine on the real clock and uuid ids.
func NewEngine() *Engine {
	return &Engine{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// NewEngineWithClock is test-only, for deterministic timestamps and ids.
func NewEngineWithClock(now func() time.Time, newID func() string) *Engine {
	return &Engine{now: now, newID: newID}
}

// ApplyResult folds one completed battle into the statistics and returns
// a new snapshot plus whether the player leveled up. The input snapshot
// is never modified.
//
// Leveling consumes at most one threshold per battle. That matches the
// original economy and is safe here: the largest possible award is
// 100*questions+50, far below the smallest threshold (1000, growing 1.2x
// per level), so a double rollover cannot occur in normal play.
func (e *Engine) ApplyResult(stats UserStatistics, subj subject.Subject, award quiz.Award, totalQuestions int) (UserStatistics, bool, error) {
	if !subj.Valid() {
		return stats, false, fmt.Errorf("%w: unknown subject %d", ErrCorruptStats, int(subj))
	}
	if err := stats.Validate(); err != nil {
		return stats, false, err
	}
	if totalQuestions < 1 {
		return stats, false, fmt.Errorf("progression: battle with %d questions", totalQuestions)
	}
	if award.CorrectCount < 0 || award.CorrectCount > totalQuestions || award.XPGained < 0 {
		return stats, false, fmt.Errorf("progression: implausible award %+v for %d questions", award, totalQuestions)
	}

	out := stats.Clone()

	// Experience and level rollover.
	leveledUp := false
	out.XP += award.XPGained
	if out.XP >= out.XPToNextLevel {
		out.Level++
		out.XP -= out.XPToNextLevel
		// floor(threshold * 1.2), in exact integer arithmetic.
		out.XPToNextLevel = out.XPToNextLevel * 6 / 5
		leveledUp = true
	}

	// Mastery rises only on a sufficiently accurate battle and never falls.
	pct := float64(award.CorrectCount) / float64(totalQuestions)
	if pct >= masteryGainThreshold {
		gain := int(pct*5) + 1
		out.Mastery[subj] = min(100, out.Mastery[subj]+gain)
	}

	out.BattlesWon++

	out.History = append(out.History, BattleRecord{
		ID:             e.newID(),
		Date:           e.now(),
		Subject:        subj.Key(),
		Score:          award.CorrectCount,
		TotalQuestions: totalQuestions,
		XPGained:       award.XPGained,
	})

	return out, leveledUp, nil
}
