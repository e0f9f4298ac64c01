package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/capmaster/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request history",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		records, err := st.RequestLog().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query requests: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No LLM requests recorded.")
			return nil
		}

		fmt.Printf("%-19s  %-10s  %-16s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Timestamp", "Provider", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 110))

		for _, r := range records {
			if purpose != "" && r.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !r.Success {
				ok = "✗"
			}
			model := r.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Printf("%-19s  %-10s  %-16s  %-28s  %-6d  %-6d  %-7d  %s\n",
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				r.Provider,
				r.Purpose,
				model,
				r.InputTokens,
				r.OutputTokens,
				r.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Show which LLM provider the current configuration resolves to",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		llmCfg := cfg.LLMConfig()
		fmt.Printf("Provider: %s\n", llmCfg.Provider)
		switch llmCfg.Provider {
		case "gemini":
			fmt.Printf("Model:    %s\n", llmCfg.Gemini.Model)
		case "openai":
			fmt.Printf("Model:    %s\n", llmCfg.OpenAI.Model)
			if llmCfg.OpenAI.BaseURL != "" {
				fmt.Printf("Base URL: %s\n", llmCfg.OpenAI.BaseURL)
			}
		case "anthropic":
			fmt.Printf("Model:    %s\n", llmCfg.Anthropic.Model)
		case "mock":
			fmt.Println("No API key configured; battles will use the built-in question bank.")
		}
		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. quiz_generation)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmProbeCmd)
}
