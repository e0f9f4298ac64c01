package progression

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/capmaster/internal/quiz"
	"github.com/abhisek/capmaster/internal/subject"
)

func testEngine() *Engine {
	var seq int
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return NewEngineWithClock(
		func() time.Time { return fixed },
		func() string { seq++; return fmt.Sprintf("battle-%d", seq) },
	)
}

func baseStats() UserStatistics {
	return DefaultStats(time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC))
}

func TestApplyResultAccumulatesXP(t *testing.T) {
	e := testEngine()
	stats := baseStats() // level 3, 450/1000

	out, leveledUp, err := e.ApplyResult(stats, subject.Math, quiz.Award{CorrectCount: 2, XPGained: 250}, 3)
	if err != nil {
		t.Fatalf("ApplyResult: %v", err)
	}
	if leveledUp {
		t.Error("leveled up on a sub-threshold gain")
	}
	if out.Level != 3 || out.XP != 700 || out.XPToNextLevel != 1000 {
		t.Errorf("got level %d, xp %d/%d, want 3, 700/1000", out.Level, out.XP, out.XPToNextLevel)
	}
}

func TestApplyResultLevelRollover(t *testing.T) {
	e := testEngine()
	stats := baseStats()
	stats.XP = 450

	// 450 + 600 crosses the 1000 threshold exactly once.
	out, leveledUp, err := e.ApplyResult(stats, subject.English, quiz.Award{CorrectCount: 3, XPGained: 600}, 3)
	if err != nil {
		t.Fatalf("ApplyResult: %v", err)
	}
	if !leveledUp {
		t.Fatal("expected a level-up")
	}
	if out.Level != 4 || out.XP != 50 || out.XPToNextLevel != 1200 {
		t.Errorf("got level %d, xp %d/%d, want 4, 50/1200", out.Level, out.XP, out.XPToNextLevel)
	}
}

func TestApplyResultMasteryGain(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name    string
		correct int
		total   int
		start   int
		want    int
	}{
		{"two thirds gains floor(10/3)+1", 2, 3, 45, 49},
		{"perfect battle gains 6", 3, 3, 45, 51},
		{"exactly half gains", 1, 2, 45, 48},
		{"below half gains nothing", 1, 3, 45, 45},
		{"zero correct gains nothing", 0, 3, 45, 45},
		{"capped at 100", 3, 3, 98, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := baseStats()
			stats.Mastery[subject.Chinese] = tt.start
			award := quiz.Award{CorrectCount: tt.correct, XPGained: tt.correct*quiz.XPPerCorrect + quiz.XPCompletionBonus}

			out, _, err := e.ApplyResult(stats, subject.Chinese, award, tt.total)
			if err != nil {
				t.Fatalf("ApplyResult: %v", err)
			}
			if got := out.Mastery[subject.Chinese]; got != tt.want {
				t.Errorf("mastery = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestApplyResultMasteryNeverDecreases(t *testing.T) {
	e := testEngine()
	stats := baseStats()

	for correct := 0; correct <= 3; correct++ {
		award := quiz.Award{CorrectCount: correct, XPGained: correct*100 + 50}
		out, _, err := e.ApplyResult(stats, subject.Science, award, 3)
		if err != nil {
			t.Fatalf("correct=%d: %v", correct, err)
		}
		for _, s := range subject.All {
			if out.Mastery[s] < stats.Mastery[s] {
				t.Errorf("correct=%d: mastery[%s] fell %d -> %d",
					correct, s.Key(), stats.Mastery[s], out.Mastery[s])
			}
		}
	}
}

func TestApplyResultAppendsHistory(t *testing.T) {
	e := testEngine()
	stats := baseStats()
	before := len(stats.History)

	out, _, err := e.ApplyResult(stats, subject.Social, quiz.Award{CorrectCount: 3, XPGained: 350}, 3)
	if err != nil {
		t.Fatalf("ApplyResult: %v", err)
	}
	if len(out.History) != before+1 {
		t.Fatalf("history length %d, want %d", len(out.History), before+1)
	}

	// Earlier records are untouched.
	for i := range stats.History {
		if out.History[i] != stats.History[i] {
			t.Errorf("history[%d] changed: %+v -> %+v", i, stats.History[i], out.History[i])
		}
	}

	rec := out.History[len(out.History)-1]
	if rec.ID != "battle-1" || rec.Subject != subject.Social.Key() {
		t.Errorf("appended record = %+v", rec)
	}
	if rec.Score != 3 || rec.TotalQuestions != 3 || rec.XPGained != 350 {
		t.Errorf("appended record = %+v", rec)
	}
	if out.BattlesWon != stats.BattlesWon+1 {
		t.Errorf("battlesWon = %d, want %d", out.BattlesWon, stats.BattlesWon+1)
	}
}

func TestApplyResultLeavesInputUntouched(t *testing.T) {
	e := testEngine()
	stats := baseStats()
	snapshot := stats.Clone()

	if _, _, err := e.ApplyResult(stats, subject.Math, quiz.Award{CorrectCount: 3, XPGained: 600}, 3); err != nil {
		t.Fatalf("ApplyResult: %v", err)
	}

	if stats.Level != snapshot.Level || stats.XP != snapshot.XP || len(stats.History) != len(snapshot.History) {
		t.Errorf("input snapshot mutated: %+v", stats)
	}
}

func TestApplyResultRejectsCorruptStats(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name   string
		mutate func(*UserStatistics)
	}{
		{"zero level", func(s *UserStatistics) { s.Level = 0 }},
		{"negative xp", func(s *UserStatistics) { s.XP = -1 }},
		{"xp at threshold", func(s *UserStatistics) { s.XP = s.XPToNextLevel }},
		{"mastery above 100", func(s *UserStatistics) { s.Mastery[subject.Math] = 101 }},
		{"negative streak", func(s *UserStatistics) { s.Streak = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := baseStats()
			tt.mutate(&stats)
			_, _, err := e.ApplyResult(stats, subject.Math, quiz.Award{CorrectCount: 1, XPGained: 150}, 3)
			if !errors.Is(err, ErrCorruptStats) {
				t.Errorf("got %v, want ErrCorruptStats", err)
			}
		})
	}
}

func TestApplyResultRejectsImplausibleAward(t *testing.T) {
	e := testEngine()
	stats := baseStats()

	if _, _, err := e.ApplyResult(stats, subject.Math, quiz.Award{CorrectCount: 4, XPGained: 450}, 3); err == nil {
		t.Error("accepted more correct answers than questions")
	}
	if _, _, err := e.ApplyResult(stats, subject.Math, quiz.Award{CorrectCount: -1, XPGained: 50}, 3); err == nil {
		t.Error("accepted negative correct count")
	}
	if _, _, err := e.ApplyResult(stats, subject.Math, quiz.Award{}, 0); err == nil {
		t.Error("accepted zero-question battle")
	}
}

func TestStatsJSONRoundTrip(t *testing.T) {
	stats := baseStats()
	raw, err := stats.Mastery.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var m Mastery
	if err := m.UnmarshalJSON(raw); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if m != stats.Mastery {
		t.Errorf("round trip changed mastery: %v -> %v", stats.Mastery, m)
	}

	// A record missing a subject is corrupt.
	if err := m.UnmarshalJSON([]byte(`{"chinese": 10}`)); err == nil {
		t.Error("accepted mastery object missing subjects")
	}
}
