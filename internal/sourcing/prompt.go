// Package sourcing builds boolean X-Ray search strings for candidate and
// company discovery, and runs them against a web search API. The boolean
// string itself is always produced by the model; this package's job is
// deterministic prompt assembly and result paging.
package sourcing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmtong/talentpipe/internal/llm"
	"github.com/jmtong/talentpipe/internal/prompts"
	"github.com/jmtong/talentpipe/internal/types"
)

// Request describes one search-string generation.
type Request struct {
	Mode        types.SearchMode
	Content     string
	CompanyName string
	MetroArea   string
}

// templateKeys maps each search mode to its template branch.
var templateKeys = map[types.SearchMode]string{
	types.ModeCandidates:          "search-candidates",
	types.ModeCompanies:           "search-companies",
	types.ModeCandidatesAtCompany: "search-candidates-at-company",
}

// BuildSearchPrompt selects the template branch for the request's mode and
// renders it. Optional company name and metro area clauses are guarded by
// template conditionals: when absent, the clause is omitted entirely.
func BuildSearchPrompt(req Request) (string, error) {
	if !req.Mode.Valid() {
		return "", fmt.Errorf("unknown search mode %q", req.Mode)
	}
	if strings.TrimSpace(req.Content) == "" {
		return "", fmt.Errorf("content is required")
	}
	if req.Mode == types.ModeCandidatesAtCompany && strings.TrimSpace(req.CompanyName) == "" {
		return "", fmt.Errorf("company name is required for mode %s", req.Mode)
	}

	tmpl, err := prompts.Get("sourcing.json", templateKeys[req.Mode])
	if err != nil {
		return "", err
	}

	return tmpl.Render(map[string]string{
		"content":     req.Content,
		"companyName": req.CompanyName,
		"metroArea":   req.MetroArea,
	}), nil
}

// Generator produces boolean search strings via the model.
type Generator struct {
	llm llm.Client
}

// NewGenerator creates a search-string generator.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{llm: client}
}

// GenerateSearchString renders the prompt for the request and asks the model
// for the boolean string.
func (g *Generator) GenerateSearchString(ctx context.Context, req Request) (string, error) {
	prompt, err := BuildSearchPrompt(req)
	if err != nil {
		return "", err
	}

	raw, err := g.llm.GenerateText(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", fmt.Errorf("failed to generate search string: %w", err)
	}

	searchString := cleanSearchString(raw)
	if searchString == "" {
		return "", fmt.Errorf("model returned an empty search string")
	}
	return searchString, nil
}

// cleanSearchString strips code fences and collapses the response onto one
// line. Models occasionally wrap the string or add a stray newline despite
// the output-only instruction.
func cleanSearchString(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	lines := strings.Split(raw, "\n")
	var parts []string
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
