// Package main provides the entry point for the talent pipeline CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talent_agent",
	Short: "Talent pipeline CLI and HTTP API server",
	Long:  "talent_agent analyzes job content with an LLM step pipeline, builds X-Ray sourcing searches, enriches candidate contacts, and scores resumes, locally or via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
