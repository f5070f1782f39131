// Package main provides the entry point for the CrackATS application tracker.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "crackats",
	Short: "Job application tracker",
	Long:  "CrackATS tracks job applications on a kanban status board and generates tailored resumes and cover letters for scraped postings.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
