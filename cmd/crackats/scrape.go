package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/crackats/internal/config"
	"github.com/jonathan/crackats/internal/scrape"
)

var scrapeJSON bool

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Extract a job posting from a URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runScrape,
}

func init() {
	scrapeCmd.Flags().BoolVar(&scrapeJSON, "json", false, "Print the posting as JSON")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	scraper := scrape.New(&scrape.Options{
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})

	job, err := scraper.Scrape(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if scrapeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(job)
	}

	fmt.Printf("Title:   %s\n", job.Title)
	fmt.Printf("Company: %s\n", job.Company)
	fmt.Printf("\n%s\n", job.Description)
	return nil
}
