// Package interview generates interview questions tailored to job content.
package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmtong/talentpipe/internal/llm"
	"github.com/jmtong/talentpipe/internal/prompts"
	"github.com/jmtong/talentpipe/internal/schemas"
	"github.com/jmtong/talentpipe/internal/types"
)

// DefaultQuestionCount is used when the caller does not specify a count.
const DefaultQuestionCount = 8

// MaxQuestionCount caps a single generation request.
const MaxQuestionCount = 25

// Request describes an interview question generation request.
type Request struct {
	Content       string
	QuestionCount int
	FocusArea     string
}

// Generator produces interview questions via the LLM.
type Generator struct {
	llm llm.Client
}

// NewGenerator creates a Generator backed by the given LLM client.
func NewGenerator(client llm.Client) (*Generator, error) {
	if client == nil {
		return nil, fmt.Errorf("llm client is required")
	}
	return &Generator{llm: client}, nil
}

// Generate runs the interview-questions prompt and returns the parsed questions.
func (g *Generator) Generate(ctx context.Context, req Request) ([]types.InterviewQuestion, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("job content is required")
	}

	count := req.QuestionCount
	if count <= 0 {
		count = DefaultQuestionCount
	}
	if count > MaxQuestionCount {
		count = MaxQuestionCount
	}

	tmpl, err := prompts.Get("evaluation.json", "interview-questions")
	if err != nil {
		return nil, fmt.Errorf("failed to load interview-questions prompt: %w", err)
	}

	params := map[string]string{
		"content":       req.Content,
		"questionCount": strconv.Itoa(count),
	}
	if strings.TrimSpace(req.FocusArea) != "" {
		params["focusArea"] = req.FocusArea
	}

	prompt := tmpl.Render(params)

	raw, err := g.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("interview question generation failed: %w", err)
	}

	doc := llm.ExtractJSONObject(raw)
	if err := schemas.Validate("interview_questions", doc); err != nil {
		return nil, fmt.Errorf("interview questions response invalid: %w", err)
	}

	var parsed struct {
		Questions []types.InterviewQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse interview questions response: %w", err)
	}

	return parsed.Questions, nil
}
