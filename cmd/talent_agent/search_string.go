package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmtong/talentpipe/internal/sourcing"
	"github.com/jmtong/talentpipe/internal/types"
)

var (
	searchStringTextFile string
	searchStringURL      string
	searchStringMode     string
	searchStringCompany  string
	searchStringMetro    string
	searchStringBrowser  bool
)

var searchStringCmd = &cobra.Command{
	Use:   "search-string",
	Short: "Generate a boolean X-Ray search string from job content",
	Long:  "Generate a LinkedIn X-Ray search string from job content. Modes: candidates, companies, candidates-at-company.",
	RunE:  runSearchString,
}

func init() {
	searchStringCmd.Flags().StringVarP(&searchStringTextFile, "text-file", "t", "", "Path to text file containing job content")
	searchStringCmd.Flags().StringVarP(&searchStringURL, "url", "u", "", "URL to scrape job content from")
	searchStringCmd.Flags().StringVarP(&searchStringMode, "mode", "m", "candidates", "Search mode")
	searchStringCmd.Flags().StringVar(&searchStringCompany, "company", "", "Company name (required for candidates-at-company)")
	searchStringCmd.Flags().StringVar(&searchStringMetro, "metro", "", "Metro area to restrict the search to")
	searchStringCmd.Flags().BoolVar(&searchStringBrowser, "browser", false, "Use headless browser for JavaScript-rendered pages")
	rootCmd.AddCommand(searchStringCmd)
}

func runSearchString(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	content, err := loadContent(ctx, searchStringTextFile, searchStringURL, searchStringBrowser)
	if err != nil {
		return err
	}

	llmClient, err := newLLMClient(ctx)
	if err != nil {
		return err
	}
	defer llmClient.Close() //nolint:errcheck

	gen := sourcing.NewGenerator(llmClient)
	searchString, err := gen.GenerateSearchString(ctx, sourcing.Request{
		Mode:        types.SearchMode(searchStringMode),
		Content:     content,
		CompanyName: searchStringCompany,
		MetroArea:   searchStringMetro,
	})
	if err != nil {
		return fmt.Errorf("failed to generate search string: %w", err)
	}

	fmt.Fprintln(os.Stdout, searchString)
	return nil
}
