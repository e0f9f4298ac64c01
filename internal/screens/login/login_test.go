package login

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
)

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

type stubHome struct{}

func (stubHome) Init() tea.Cmd                             { return nil }
func (s stubHome) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (stubHome) View(int, int) string                      { return "home" }
func (stubHome) Title() string                             { return "home" }

func testLoginScreen(t *testing.T) (*LoginScreen, *memProfileRepo) {
	t.Helper()
	profiles := &memProfileRepo{}
	orch := game.New(
		bankGenerator{},
		progression.NewEngine(),
		&memStatsRepo{stats: progression.DefaultStats(time.Now())},
		profiles,
	)
	if err := orch.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return New(orch, func() screen.Screen { return stubHome{} }), profiles
}

// reveal plays enough ticks for the prompt to appear.
func reveal(s *LoginScreen) screen.Screen {
	var scr screen.Screen = s
	for i := 0; i < 20; i++ {
		scr, _ = scr.Update(tickMsg(time.Now()))
	}
	return scr
}

func TestLoginScreen_EnterIgnoredBeforePrompt(t *testing.T) {
	s, profiles := testLoginScreen(t)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected enter to be ignored before the prompt shows")
	}
	if profiles.profile != nil {
		t.Error("expected no profile before sign-in")
	}
}

func TestLoginScreen_SignIn(t *testing.T) {
	s, profiles := testLoginScreen(t)
	scr := reveal(s)

	scr, cmd := scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a sign-in command")
	}

	msg := cmd()
	done, ok := msg.(loginDoneMsg)
	if !ok {
		t.Fatalf("message = %T, want loginDoneMsg", msg)
	}
	if done.err != nil {
		t.Fatalf("sign-in error: %v", done.err)
	}
	if profiles.profile == nil || profiles.profile.Name != "Exam Warrior" {
		t.Errorf("profile = %+v, want stored stub profile", profiles.profile)
	}

	_, cmd = scr.Update(done)
	if cmd == nil {
		t.Error("expected a replace command carrying the dashboard")
	}
}

func TestLoginScreen_ViewPhases(t *testing.T) {
	s, _ := testLoginScreen(t)
	if s.View(80, 24) == "" {
		t.Error("expected non-empty splash view")
	}
	scr := reveal(s)
	if scr.View(80, 24) == "" {
		t.Error("expected non-empty revealed view")
	}
}
