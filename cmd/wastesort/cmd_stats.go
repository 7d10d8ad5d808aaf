package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecosort/wastesort/internal/storage"
)

var flagDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show classification statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagDays, "days", 7, "window in days")
}

func runStats(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.DataDir, newLogger())
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	stats, err := store.CategoryStats(flagDays)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	total := 0
	for _, cc := range stats {
		total += cc.Count
	}
	fmt.Printf("last %d days, %d classifications:\n", flagDays, total)
	for _, cc := range stats {
		fmt.Printf("  %-6s %d\n", cc.Category, cc.Count)
	}
	return nil
}
