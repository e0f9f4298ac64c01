package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/capmaster/internal/store"
	"github.com/abhisek/capmaster/internal/subject"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show player statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		fmt.Printf("Level:       %d\n", stats.Level)
		fmt.Printf("XP:          %d / %d\n", stats.XP, stats.XPToNextLevel)
		fmt.Printf("Streak:      %d days\n", stats.Streak)
		fmt.Printf("Battles won: %d\n", stats.BattlesWon)
		fmt.Printf("Battles:     %d recorded\n", len(stats.History))
		fmt.Println()
		fmt.Println("Mastery")
		for _, subj := range subject.All {
			fmt.Printf("  %-4s %3d\n", subj.Name(), stats.Mastery[subj])
		}
		return nil
	},
}
