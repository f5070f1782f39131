package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/crackats/internal/board"
	"github.com/jonathan/crackats/internal/config"
	"github.com/jonathan/crackats/internal/db"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print pipeline statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	apps, err := database.ListApplications(ctx, db.ListOptions{})
	if err != nil {
		return err
	}

	stats := board.ComputeStats(apps)
	fmt.Printf("Total applications: %d\n", stats.Total)
	for _, col := range board.Columns() {
		fmt.Printf("  %-12s %d\n", col.String(), stats.ByStatus[col])
	}
	if stats.Unassigned > 0 {
		fmt.Printf("  %-12s %d\n", "unassigned", stats.Unassigned)
	}
	fmt.Printf("Response rate: %.1f%%\n", stats.ResponseRate)
	return nil
}
