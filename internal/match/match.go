// Package match scores a resume against job content using the LLM.
package match

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmtong/talentpipe/internal/llm"
	"github.com/jmtong/talentpipe/internal/prompts"
	"github.com/jmtong/talentpipe/internal/schemas"
	"github.com/jmtong/talentpipe/internal/types"
)

// Matcher evaluates resumes against job descriptions.
type Matcher struct {
	llm llm.Client
}

// NewMatcher creates a Matcher backed by the given LLM client.
func NewMatcher(client llm.Client) (*Matcher, error) {
	if client == nil {
		return nil, fmt.Errorf("llm client is required")
	}
	return &Matcher{llm: client}, nil
}

// Score runs the resume-match prompt and returns the parsed result.
func (m *Matcher) Score(ctx context.Context, jobContent, resume string) (*types.ResumeMatch, error) {
	if strings.TrimSpace(jobContent) == "" {
		return nil, fmt.Errorf("job content is required")
	}
	if strings.TrimSpace(resume) == "" {
		return nil, fmt.Errorf("resume is required")
	}

	tmpl, err := prompts.Get("evaluation.json", "resume-match")
	if err != nil {
		return nil, fmt.Errorf("failed to load resume-match prompt: %w", err)
	}

	prompt := tmpl.Render(map[string]string{
		"content": jobContent,
		"resume":  resume,
	})

	raw, err := m.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("resume match generation failed: %w", err)
	}

	doc := llm.ExtractJSONObject(raw)
	if err := schemas.Validate("resume_match", doc); err != nil {
		return nil, fmt.Errorf("resume match response invalid: %w", err)
	}

	var result types.ResumeMatch
	if err := json.Unmarshal([]byte(doc), &result); err != nil {
		return nil, fmt.Errorf("failed to parse resume match response: %w", err)
	}

	return &result, nil
}
