package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmtong/talentpipe/internal/config"
	"github.com/jmtong/talentpipe/internal/observability"
	"github.com/jmtong/talentpipe/internal/sourcing"
)

var (
	sourceQuery string
	sourcePage  int
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Run a sourcing web search",
	Long:  "Run one page of a Google Custom Search with an X-Ray search string and print the hits.",
	RunE:  runSource,
}

func init() {
	sourceCmd.Flags().StringVarP(&sourceQuery, "query", "q", "", "Search string to run (required)")
	sourceCmd.Flags().IntVarP(&sourcePage, "page", "p", 1, "Result page, 1-based")
	sourceCmd.MarkFlagRequired("query") //nolint:errcheck
	rootCmd.AddCommand(sourceCmd)
}

func runSource(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg := config.FromEnv()
	if cfg.GoogleSearchAPIKey == "" || cfg.GoogleSearchCX == "" {
		return fmt.Errorf("GOOGLE_SEARCH_API_KEY and GOOGLE_SEARCH_CX environment variables are required")
	}

	searcher, err := sourcing.NewSearcher(ctx, cfg.GoogleSearchAPIKey, cfg.GoogleSearchCX)
	if err != nil {
		return fmt.Errorf("failed to create search client: %w", err)
	}

	results, err := searcher.Search(ctx, sourceQuery, sourcePage)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "No results.")
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintSearchResults(results)
	return nil
}
