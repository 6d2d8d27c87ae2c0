package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmtong/talentpipe/internal/interview"
	"github.com/jmtong/talentpipe/internal/observability"
)

var (
	interviewTextFile string
	interviewURL      string
	interviewCount    int
	interviewFocus    string
	interviewBrowser  bool
)

var interviewCmd = &cobra.Command{
	Use:   "interview-questions",
	Short: "Generate interview questions for job content",
	RunE:  runInterview,
}

func init() {
	interviewCmd.Flags().StringVarP(&interviewTextFile, "text-file", "t", "", "Path to text file containing job content")
	interviewCmd.Flags().StringVarP(&interviewURL, "url", "u", "", "URL to scrape job content from")
	interviewCmd.Flags().IntVarP(&interviewCount, "count", "n", 0, "Number of questions to generate")
	interviewCmd.Flags().StringVar(&interviewFocus, "focus", "", "Focus area, e.g. distributed systems")
	interviewCmd.Flags().BoolVar(&interviewBrowser, "browser", false, "Use headless browser for JavaScript-rendered pages")
	rootCmd.AddCommand(interviewCmd)
}

func runInterview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	content, err := loadContent(ctx, interviewTextFile, interviewURL, interviewBrowser)
	if err != nil {
		return err
	}

	llmClient, err := newLLMClient(ctx)
	if err != nil {
		return err
	}
	defer llmClient.Close() //nolint:errcheck

	gen, err := interview.NewGenerator(llmClient)
	if err != nil {
		return err
	}

	questions, err := gen.Generate(ctx, interview.Request{
		Content:       content,
		QuestionCount: interviewCount,
		FocusArea:     interviewFocus,
	})
	if err != nil {
		return fmt.Errorf("question generation failed: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintInterviewQuestions(questions)
	return nil
}
