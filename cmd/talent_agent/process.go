package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jmtong/talentpipe/internal/agent"
	"github.com/jmtong/talentpipe/internal/cache"
	"github.com/jmtong/talentpipe/internal/db"
	"github.com/jmtong/talentpipe/internal/observability"
)

var (
	processTextFile string
	processURL      string
	processUserID   string
	processParallel bool
	processBrowser  bool
	processVerbose  bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the analysis pipeline over job content",
	Long:  "Run the four-step analysis pipeline (terms, compensation, enhanced description, summary) over job content from a text file or URL. With DATABASE_URL set, the job and output are persisted.",
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processTextFile, "text-file", "t", "", "Path to text file containing job content")
	processCmd.Flags().StringVarP(&processURL, "url", "u", "", "URL to scrape job content from")
	processCmd.Flags().StringVar(&processUserID, "user-id", "", "User UUID that owns the job (required with DATABASE_URL)")
	processCmd.Flags().BoolVar(&processParallel, "parallel", false, "Run the pipeline steps concurrently")
	processCmd.Flags().BoolVar(&processBrowser, "browser", false, "Use headless browser for JavaScript-rendered pages")
	processCmd.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "Print step progress")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	content, err := loadContent(ctx, processTextFile, processURL, processBrowser)
	if err != nil {
		return err
	}

	llmClient, err := newLLMClient(ctx)
	if err != nil {
		return err
	}
	defer llmClient.Close() //nolint:errcheck

	opts := agent.Options{
		LLM:      llmClient,
		Cache:    cache.New(),
		Parallel: processParallel,
	}
	if processVerbose {
		opts.OnProgress = func(event agent.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s (%d%%)\n", event.Step, event.Status, event.Progress)
		}
	}

	jobID := uuid.New()

	var database *db.DB
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		if processUserID == "" {
			return fmt.Errorf("--user-id is required when DATABASE_URL is set")
		}
		userID, err := uuid.Parse(processUserID)
		if err != nil {
			return fmt.Errorf("invalid --user-id: %w", err)
		}

		database, err = db.Connect(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		job, err := database.CreateJob(ctx, userID, content)
		if err != nil {
			return fmt.Errorf("failed to create job: %w", err)
		}
		jobID = job.ID
		opts.Store = database
	}

	runner, err := agent.NewRunner(opts)
	if err != nil {
		return err
	}

	result, err := runner.Process(ctx, jobID, content)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintAgentOutput(result.Output)

	if opts.Store != nil {
		if saveErr := <-result.Saved; saveErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: output was not saved: %v\n", saveErr)
		} else {
			fmt.Fprintf(os.Stdout, "Saved output for job %s\n", jobID)
		}
	}

	return nil
}
