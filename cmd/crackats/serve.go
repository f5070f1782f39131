package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/crackats/internal/config"
	"github.com/jonathan/crackats/internal/db"
	"github.com/jonathan/crackats/internal/generate"
	"github.com/jonathan/crackats/internal/llm"
	"github.com/jonathan/crackats/internal/scrape"
	"github.com/jonathan/crackats/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing the application board, statistics and the document generation pipeline.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
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

	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	scraper := scrape.New(&scrape.Options{
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})

	// Document generation is optional; without an API key the endpoints
	// respond 503 and the rest of the tracker works normally.
	var generator server.Generator
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(context.Background(), nil, cfg.GeminiAPIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()

		generator = generate.New(scraper, client, database, generate.Options{
			ArtifactsDir: cfg.ArtifactsDir,
			TemplatePath: cfg.TemplatePath,
			Verbose:      cfg.Verbose,
		})
	}

	srv, err := server.New(cfg, database, scraper, generator)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
