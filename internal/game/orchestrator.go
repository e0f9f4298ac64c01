package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/capmaster/internal/progression"
	"github.com/abhisek/capmaster/internal/quiz"
	"github.com/abhisek/capmaster/internal/quizgen"
	"github.com/abhisek/capmaster/internal/store"
	"github.com/abhisek/capmaster/internal/subject"
)

var (
	// ErrBusy is returned when a battle is requested while one is
	// already preparing or running.
	ErrBusy = errors.New("game: a battle is already in progress")

	// ErrNoActiveBattle is returned by battle operations outside the
	// battle state.
	ErrNoActiveBattle = errors.New("game: no active battle")

	// ErrAbandoned is returned by StartBattle when the player left
	// during preparation. The fetched questions are discarded.
	ErrAbandoned = errors.New("game: battle abandoned during preparation")
)

// DefaultPacing is the minimum time spent in the preparing state. Even
// an instant question fetch holds the spinner this long so the
// transition reads as deliberate.
const DefaultPacing = 1500 * time.Millisecond

// Orchestrator owns the play cycle and the authoritative copies of the
// player's statistics and profile. Every mutation is written through to
// the store before the operation returns.
type Orchestrator struct {
	generator   quizgen.Generator
	engine      *progression.Engine
	statsRepo   store.StatsRepo
	profileRepo store.ProfileRepo
	pacing      time.Duration

	mu            sync.Mutex
	state         State
	stats         progression.UserStatistics
	profile       *progression.UserProfile
	attempt       *quiz.Attempt
	activeSubject subject.Subject
	lastResult    *quiz.BattleResult
	leveledUp     bool
	prepGen       uint64
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithPacing overrides the preparing-state floor. Tests use this to
// avoid real sleeps.
func WithPacing(d time.Duration) Option {
	return func(o *Orchestrator) { o.pacing = d }
}

// New creates an orchestrator. Call Bootstrap before first use.
func New(gen quizgen.Generator, engine *progression.Engine, statsRepo store.StatsRepo, profileRepo store.ProfileRepo, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		generator:     gen,
		engine:        engine,
		statsRepo:     statsRepo,
		profileRepo:   profileRepo,
		pacing:        DefaultPacing,
		state:         StateDashboard,
		activeSubject: subject.None,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Bootstrap loads the persisted statistics and profile.
func (o *Orchestrator) Bootstrap(ctx context.Context) error {
	stats, err := o.statsRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load statistics: %w", err)
	}
	profile, err := o.profileRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	o.mu.Lock()
	o.stats = stats
	o.profile = profile
	o.mu.Unlock()
	return nil
}

// State returns the current play state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Stats returns a snapshot of the player statistics.
func (o *Orchestrator) Stats() progression.UserStatistics {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stats.Clone()
}

// Profile returns the signed-in profile, or nil when signed out.
func (o *Orchestrator) Profile() *progression.UserProfile {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.profile == nil {
		return nil
	}
	p := *o.profile
	return &p
}

// ActiveSubject returns the subject of the current or preparing battle.
func (o *Orchestrator) ActiveSubject() subject.Subject {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activeSubject
}

// Attempt returns the live attempt, or nil outside a battle. The
// attempt is driven directly by the battle screen; only the TUI
// goroutine touches it.
func (o *Orchestrator) Attempt() *quiz.Attempt {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.attempt
}

// LastResult returns the most recent battle result and whether it
// caused a level-up. Nil outside the result state.
func (o *Orchestrator) LastResult() (*quiz.BattleResult, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastResult, o.leveledUp
}

// Login stores the stub profile and makes it current.
func (o *Orchestrator) Login(ctx context.Context) error {
	profile := progression.DefaultProfile()
	if err := o.profileRepo.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	o.mu.Lock()
	o.profile = &profile
	o.mu.Unlock()
	return nil
}

// Logout deletes the stored profile. Statistics survive logout.
func (o *Orchestrator) Logout(ctx context.Context) error {
	if err := o.profileRepo.Delete(ctx); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	o.mu.Lock()
	o.profile = nil
	o.mu.Unlock()
	return nil
}

// StartBattle fetches questions for the subject and opens an attempt.
// It blocks through the preparing state: the question fetch and the
// pacing timer run concurrently, and both must finish before the battle
// starts. A second call while one is in flight returns ErrBusy.
func (o *Orchestrator) StartBattle(ctx context.Context, subj subject.Subject) error {
	if !subj.Valid() {
		return fmt.Errorf("game: invalid subject %d", int(subj))
	}

	o.mu.Lock()
	if o.state != StateDashboard {
		o.mu.Unlock()
		return ErrBusy
	}
	o.state = StatePreparing
	o.activeSubject = subj
	o.prepGen++
	gen := o.prepGen
	level := o.stats.Level
	o.mu.Unlock()

	input := quizgen.GenerateInput{Subject: subj, Level: level}

	var questions []quiz.Question
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		qs, err := o.generator.Generate(gctx, input)
		if err != nil {
			return err
		}
		questions = qs
		return nil
	})
	g.Go(func() error {
		timer := time.NewTimer(o.pacing)
		defer timer.Stop()
		select {
		case <-gctx.Done():
			return gctx.Err()
		case <-timer.C:
			return nil
		}
	})

	if err := g.Wait(); err != nil {
		o.rollbackPreparation(gen)
		return fmt.Errorf("prepare battle: %w", err)
	}

	attempt, err := quiz.NewAttempt(questions)
	if err != nil {
		o.rollbackPreparation(gen)
		return fmt.Errorf("open attempt: %w", err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	// ReturnHome during preparation moved the state on; discard the
	// fetched questions rather than resurrecting the battle.
	if o.prepGen != gen || o.state != StatePreparing {
		return ErrAbandoned
	}
	o.attempt = attempt
	o.state = StateBattle
	return nil
}

// rollbackPreparation returns to the dashboard after a failed
// preparation, unless this preparation was already abandoned.
func (o *Orchestrator) rollbackPreparation(gen uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.prepGen == gen && o.state == StatePreparing {
		o.state = StateDashboard
	}
}

// CompleteBattle folds the finished attempt into the statistics, saves
// them, and moves to the result state. Returns the result and whether
// the player leveled up.
func (o *Orchestrator) CompleteBattle(ctx context.Context) (*quiz.BattleResult, bool, error) {
	o.mu.Lock()
	if o.state != StateBattle || o.attempt == nil {
		o.mu.Unlock()
		return nil, false, ErrNoActiveBattle
	}
	attempt := o.attempt
	subj := o.activeSubject
	stats := o.stats
	o.mu.Unlock()

	result, err := attempt.Result()
	if err != nil {
		return nil, false, err
	}

	updated, leveledUp, err := o.engine.ApplyResult(stats, subj, result.Award, len(result.Questions))
	if err != nil {
		return nil, false, fmt.Errorf("apply result: %w", err)
	}

	if err := o.statsRepo.Save(ctx, updated); err != nil {
		return nil, false, fmt.Errorf("save statistics: %w", err)
	}

	o.mu.Lock()
	o.stats = updated
	o.attempt = nil
	o.lastResult = result
	o.leveledUp = leveledUp
	o.state = StateResult
	o.mu.Unlock()
	return result, leveledUp, nil
}

// ReturnHome clears any battle context and returns to the dashboard.
// Safe to call from any state, repeatedly.
func (o *Orchestrator) ReturnHome() {
	o.mu.Lock()
	o.attempt = nil
	o.lastResult = nil
	o.leveledUp = false
	o.activeSubject = subject.None
	o.state = StateDashboard
	o.mu.Unlock()
}
