package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmtong/talentpipe/internal/scrape"
)

var (
	scrapeURL     string
	scrapeBrowser bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch a page and print its extracted text",
	RunE:  runScrape,
}

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeURL, "url", "u", "", "URL to fetch (required)")
	scrapeCmd.Flags().BoolVar(&scrapeBrowser, "browser", false, "Use headless browser for JavaScript-rendered pages")
	scrapeCmd.MarkFlagRequired("url") //nolint:errcheck
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	opts := scrape.DefaultOptions()
	opts.UseBrowser = scrapeBrowser

	result, err := scrape.Page(cmd.Context(), scrapeURL, opts)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	fmt.Fprintln(os.Stdout, result.Text)
	return nil
}
