package battle

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/capmaster/internal/game"
	"github.com/abhisek/capmaster/internal/progression"
	"github.com/abhisek/capmaster/internal/quiz"
	"github.com/abhisek/capmaster/internal/quizgen"
	"github.com/abhisek/capmaster/internal/screen"
	"github.com/abhisek/capmaster/internal/subject"
)

// bankGenerator serves the built-in question bank directly.
type bankGenerator struct{}

func (bankGenerator) Generate(_ context.Context, input quizgen.GenerateInput) ([]quiz.Question, error) {
	return quizgen.FallbackQuestions(input.Subject), nil
}

type memStatsRepo struct {
	stats progression.UserStatistics
}

func (m *memStatsRepo) Load(context.Context) (progression.UserStatistics, error) {
	return m.stats.Clone(), nil
}

func (m *memStatsRepo) Save(_ context.Context, stats progression.UserStatistics) error {
	m.stats = stats.Clone()
	return nil
}

type memProfileRepo struct {
	profile *progression.UserProfile
}

func (m *memProfileRepo) Load(context.Context) (*progression.UserProfile, error) {
	return m.profile, nil
}

func (m *memProfileRepo) Save(_ context.Context, p progression.UserProfile) error {
	m.profile = &p
	return nil
}

func (m *memProfileRepo) Delete(context.Context) error {
	m.profile = nil
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testBattleScreen(t *testing.T) (*BattleScreen, *game.Orchestrator) {
	t.Helper()
	orch := game.New(
		bankGenerator{},
		progression.NewEngine(),
		&memStatsRepo{stats: progression.DefaultStats(time.Now())},
		&memProfileRepo{},
		game.WithPacing(time.Millisecond),
	)
	if err := orch.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return New(orch, subject.Math), orch
}

// startBattle moves the screen past the preparing phase.
func startBattle(t *testing.T, s *BattleScreen, orch *game.Orchestrator) screen.Screen {
	t.Helper()
	if err := orch.StartBattle(context.Background(), subject.Math); err != nil {
		t.Fatalf("start battle: %v", err)
	}
	scr, _ := s.Update(battleReadyMsg{})
	return scr
}

func TestBattleScreen_Title(t *testing.T) {
	s, _ := testBattleScreen(t)
	if s.Title() != "數學 戰鬥" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestBattleScreen_View_Preparing(t *testing.T) {
	s, _ := testBattleScreen(t)
	if s.View(80, 24) == "" {
		t.Error("expected non-empty view while preparing")
	}
}

func TestBattleScreen_ReadyShowsQuestion(t *testing.T) {
	s, orch := testBattleScreen(t)
	scr := startBattle(t, s, orch)

	bs := scr.(*BattleScreen)
	if bs.phase != phaseQuestion {
		t.Fatalf("phase = %d, want question", bs.phase)
	}
	if bs.View(80, 24) == "" {
		t.Error("expected non-empty question view")
	}
}

func TestBattleScreen_ErrorOnFailedPreparation(t *testing.T) {
	s, _ := testBattleScreen(t)
	scr, _ := s.Update(battleReadyMsg{err: context.DeadlineExceeded})
	bs := scr.(*BattleScreen)
	if bs.phase != phaseError {
		t.Fatalf("phase = %d, want error", bs.phase)
	}
	if bs.View(80, 24) == "" {
		t.Error("expected non-empty error view")
	}

	// Enter returns to the dashboard.
	_, cmd := bs.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Error("expected a pop command from the error view")
	}
}

func TestBattleScreen_AnswerFlow(t *testing.T) {
	s, orch := testBattleScreen(t)
	scr := startBattle(t, s, orch)
	bs := scr.(*BattleScreen)

	attempt := orch.Attempt()
	if attempt == nil {
		t.Fatal("expected active attempt")
	}

	// Pick option 2 via number key, then confirm.
	scr, _ = bs.Update(keyPress('2'))
	bs = scr.(*BattleScreen)
	if attempt.Selected() != 1 {
		t.Errorf("selected = %d, want 1", attempt.Selected())
	}

	scr, _ = bs.Update(specialKey(tea.KeyEnter))
	bs = scr.(*BattleScreen)
	if attempt.Phase() != quiz.PhaseRevealed {
		t.Fatalf("attempt phase = %d, want revealed", attempt.Phase())
	}

	// E toggles the explanation panel.
	before := attempt.ExplanationShown()
	scr, _ = bs.Update(keyPress('e'))
	bs = scr.(*BattleScreen)
	if attempt.ExplanationShown() == before {
		t.Error("expected explanation toggle")
	}

	// Enter advances to the next question.
	scr, _ = bs.Update(specialKey(tea.KeyEnter))
	bs = scr.(*BattleScreen)
	if attempt.Position() != 1 {
		t.Errorf("position = %d, want 1", attempt.Position())
	}
	if attempt.Phase() != quiz.PhaseAwaitingSelection {
		t.Errorf("attempt phase = %d, want awaiting selection", attempt.Phase())
	}
}

func TestBattleScreen_FinishTriggersCompletion(t *testing.T) {
	s, orch := testBattleScreen(t)
	scr := startBattle(t, s, orch)
	bs := scr.(*BattleScreen)

	attempt := orch.Attempt()
	total := attempt.Total()

	var cmd tea.Cmd
	for i := 0; i < total; i++ {
		scr, _ = bs.Update(keyPress('1'))
		bs = scr.(*BattleScreen)
		scr, _ = bs.Update(specialKey(tea.KeyEnter)) // confirm
		bs = scr.(*BattleScreen)
		scr, cmd = bs.Update(specialKey(tea.KeyEnter)) // advance
		bs = scr.(*BattleScreen)
	}

	if bs.phase != phaseFinishing {
		t.Fatalf("phase = %d, want finishing", bs.phase)
	}
	if cmd == nil {
		t.Fatal("expected a completion command")
	}

	// Running the command completes the battle and yields battleDoneMsg.
	msg := cmd()
	done, ok := msg.(battleDoneMsg)
	if !ok {
		t.Fatalf("message = %T, want battleDoneMsg", msg)
	}
	if done.err != nil {
		t.Fatalf("completion error: %v", done.err)
	}
	if done.result == nil {
		t.Fatal("expected a battle result")
	}

	_, cmd = bs.Update(done)
	if cmd == nil {
		t.Error("expected a replace command carrying the result screen")
	}
	if orch.State() != game.StateResult {
		t.Errorf("state = %v, want result", orch.State())
	}
}

func TestBattleScreen_QuitConfirm(t *testing.T) {
	s, orch := testBattleScreen(t)
	scr := startBattle(t, s, orch)
	bs := scr.(*BattleScreen)

	scr, _ = bs.Update(specialKey(tea.KeyEscape))
	bs = scr.(*BattleScreen)
	if !bs.confirmQuit {
		t.Fatal("expected quit confirmation")
	}

	// N dismisses and the battle continues.
	scr, _ = bs.Update(keyPress('n'))
	bs = scr.(*BattleScreen)
	if bs.confirmQuit {
		t.Error("expected quit confirmation dismissed")
	}

	// Esc then Y abandons the battle.
	scr, _ = bs.Update(specialKey(tea.KeyEscape))
	bs = scr.(*BattleScreen)
	_, cmd := bs.Update(keyPress('y'))
	if cmd == nil {
		t.Error("expected a pop command after quit confirmation")
	}
	if orch.State() != game.StateDashboard {
		t.Errorf("state = %v, want dashboard", orch.State())
	}
}
