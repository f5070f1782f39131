package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/crackats/internal/config"
	"github.com/jonathan/crackats/internal/db"
	"github.com/jonathan/crackats/internal/generate"
	"github.com/jonathan/crackats/internal/llm"
	"github.com/jonathan/crackats/internal/scrape"
)

var (
	generateURL     string
	generatePayload string
	generateNoTrack bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored resume and cover letter for a posting",
	Long: `Scrape a job posting (or load a bookmarklet payload file), tailor the master
resume to it, write a cover letter, and track the application.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateURL, "url", "", "Job posting URL")
	generateCmd.Flags().StringVar(&generatePayload, "payload", "", "Path to a JSON job payload captured by the bookmarklet")
	generateCmd.Flags().BoolVar(&generateNoTrack, "no-track", false, "Skip recording the application in the database")
	generateCmd.MarkFlagsOneRequired("url", "payload")
	generateCmd.MarkFlagsMutuallyExclusive("url", "payload")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := cmd.Context()

	client, err := llm.NewGeminiClient(ctx, nil, cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	var store generate.Store
	if !generateNoTrack {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required (or pass --no-track)")
		}
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
		store = database
	}

	scraper := scrape.New(&scrape.Options{
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})

	pipeline := generate.New(scraper, client, store, generate.Options{
		ArtifactsDir: cfg.ArtifactsDir,
		TemplatePath: cfg.TemplatePath,
		Verbose:      cfg.Verbose,
	})

	var result *generate.Result
	if generatePayload != "" {
		job, err := scrape.LoadPayload(generatePayload)
		if err != nil {
			return err
		}
		result, err = pipeline.RunWithJob(ctx, job, generateURL)
		if err != nil {
			return err
		}
	} else {
		result, err = pipeline.Run(ctx, generateURL)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Folder:       %s\n", result.FolderPath)
	fmt.Printf("Resume:       %s\n", result.ResumePath)
	fmt.Printf("Cover letter: %s\n", result.CoverLetterPath)
	if result.Application != nil {
		fmt.Printf("Tracked as application #%d\n", result.Application.ID)
	}
	return nil
}
