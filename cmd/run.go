package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/capmaster/internal/app"
	"github.com/abhisek/capmaster/internal/game"
	"github.com/abhisek/capmaster/internal/llm"
	"github.com/abhisek/capmaster/internal/progression"
	"github.com/abhisek/capmaster/internal/quizgen"
	"github.com/abhisek/capmaster/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	llmCfg := cfg.LLMConfig()
	provider, err := llm.NewProvider(ctx, llmCfg, st.RequestLog())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Falling back to the built-in question bank.")
		provider = llm.NewMockProvider()
	}
	if llmCfg.Provider == "mock" {
		fmt.Fprintln(os.Stderr, "No LLM provider configured; using the built-in question bank.")
	}

	genCfg := quizgen.DefaultConfig()
	if cfg.QuestionsPerBattle > 0 {
		genCfg.QuestionsPerBattle = cfg.QuestionsPerBattle
	}
	generator := quizgen.WithFallback(quizgen.New(provider, genCfg))

	var orchOpts []game.Option
	if cfg.Pacing > 0 {
		orchOpts = append(orchOpts, game.WithPacing(cfg.Pacing))
	}
	orch := game.New(generator, progression.NewEngine(), st.StatsRepo(), st.ProfileRepo(), orchOpts...)
	if err := orch.Bootstrap(ctx); err != nil {
		return fmt.Errorf("load player state: %w", err)
	}

	return app.Run(orch)
}
