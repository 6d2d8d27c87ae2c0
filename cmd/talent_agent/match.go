package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmtong/talentpipe/internal/match"
	"github.com/jmtong/talentpipe/internal/observability"
)

var (
	matchTextFile   string
	matchURL        string
	matchResumeFile string
	matchBrowser    bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a resume against job content",
	Long:  "Score how well a resume matches job content, with strengths, gaps, and a 0-100 score.",
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchTextFile, "text-file", "t", "", "Path to text file containing job content")
	matchCmd.Flags().StringVarP(&matchURL, "url", "u", "", "URL to scrape job content from")
	matchCmd.Flags().StringVarP(&matchResumeFile, "resume", "r", "", "Path to resume text file (required)")
	matchCmd.Flags().BoolVar(&matchBrowser, "browser", false, "Use headless browser for JavaScript-rendered pages")
	matchCmd.MarkFlagRequired("resume") //nolint:errcheck
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	content, err := loadContent(ctx, matchTextFile, matchURL, matchBrowser)
	if err != nil {
		return err
	}

	resumeData, err := os.ReadFile(matchResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", matchResumeFile, err)
	}
	resume := strings.TrimSpace(string(resumeData))

	llmClient, err := newLLMClient(ctx)
	if err != nil {
		return err
	}
	defer llmClient.Close() //nolint:errcheck

	matcher, err := match.NewMatcher(llmClient)
	if err != nil {
		return err
	}

	result, err := matcher.Score(ctx, content, resume)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintResumeMatch(result)
	return nil
}
