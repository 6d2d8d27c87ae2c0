package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jmtong/talentpipe/internal/config"
	"github.com/jmtong/talentpipe/internal/llm"
	"github.com/jmtong/talentpipe/internal/scrape"
)

// loadContent reads job content from a text file or a scraped URL.
// Exactly one source must be provided.
func loadContent(ctx context.Context, textFile, urlStr string, useBrowser bool) (string, error) {
	if textFile == "" && urlStr == "" {
		return "", fmt.Errorf("either --text-file or --url must be provided")
	}
	if textFile != "" && urlStr != "" {
		return "", fmt.Errorf("--text-file and --url are mutually exclusive; provide only one")
	}

	if textFile != "" {
		data, err := os.ReadFile(textFile)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", textFile, err)
		}
		content := strings.TrimSpace(string(data))
		if content == "" {
			return "", fmt.Errorf("%s is empty", textFile)
		}
		return content, nil
	}

	opts := scrape.DefaultOptions()
	opts.UseBrowser = useBrowser
	result, err := scrape.Page(ctx, urlStr, opts)
	if err != nil {
		return "", fmt.Errorf("failed to scrape %s: %w", urlStr, err)
	}
	if strings.TrimSpace(result.Text) == "" {
		return "", fmt.Errorf("no text content found at %s", urlStr)
	}
	return result.Text, nil
}

// newLLMClient creates a Gemini client from the environment.
func newLLMClient(ctx context.Context) (*llm.GeminiClient, error) {
	cfg := config.FromEnv()
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	return llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
}
