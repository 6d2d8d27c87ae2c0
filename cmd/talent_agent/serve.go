package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmtong/talentpipe/internal/config"
	"github.com/jmtong/talentpipe/internal/server"
)

var (
	servePort       int
	serveConfigPath string
	serveUseBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for the analysis pipeline, sourcing, enrichment, and evaluation.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "browser", false, "Use headless browser for JavaScript-rendered pages")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if serveConfigPath != "" {
		fileCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	cfg = cfg.MergeWithDefaults(config.Config{})
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	srv, err := server.New(server.Config{
		Port:          cfg.Port,
		DatabaseURL:   cfg.DatabaseURL,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		SearchAPIKey:  cfg.GoogleSearchAPIKey,
		SearchCX:      cfg.GoogleSearchCX,
		EnrichAPIKey:  cfg.EnrichAPIKey,
		EnrichBaseURL: cfg.EnrichBaseURL,
		JWTSecret:     cfg.JWTSecret,
		UseBrowser:    serveUseBrowser || cfg.UseBrowser,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
