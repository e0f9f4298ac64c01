package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/capmaster/internal/store"
	"github.com/abhisek/capmaster/internal/subject"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List battle history, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		stats, err := st.StatsRepo().Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load statistics: %w", err)
		}

		if len(stats.History) == 0 {
			fmt.Println("No battles recorded yet.")
			return nil
		}

		fmt.Printf("%-12s  %-6s  %-7s  %s\n", "Date", "Subject", "Score", "XP")
		fmt.Println(strings.Repeat("─", 40))

		shown := 0
		for i := len(stats.History) - 1; i >= 0 && shown < limit; i-- {
			r := stats.History[i]
			name := r.Subject
			if subj, err := subject.FromKey(r.Subject); err == nil {
				name = subj.Name()
			}
			fmt.Printf("%-12s  %-6s  %d/%-5d  +%d\n",
				r.Date.Local().Format("2006-01-02"), name, r.Score, r.TotalQuestions, r.XPGained)
			shown++
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of battles to show")
}
