package sourcing

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmtong/talentpipe/internal/llm"
	"github.com/jmtong/talentpipe/internal/types"
)

func TestBuildSearchPrompt_Candidates(t *testing.T) {
	prompt, err := BuildSearchPrompt(Request{
		Mode:    types.ModeCandidates,
		Content: "Senior backend engineer, Python, AWS, 5 years",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "site:linkedin.com/in/")
	assert.Contains(t, prompt, "Senior backend engineer, Python, AWS, 5 years")
	assert.NotContains(t, prompt, "{{companyName}}")
	assert.NotContains(t, prompt, "{{metroArea}}")
	assert.NotContains(t, prompt, "{{#if")
}

func TestBuildSearchPrompt_CandidatesWithMetro(t *testing.T) {
	prompt, err := BuildSearchPrompt(Request{
		Mode:      types.ModeCandidates,
		Content:   "Platform engineer, Kubernetes",
		MetroArea: "Seattle",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Seattle")
	assert.NotContains(t, prompt, "{{metroArea}}")
}

func TestBuildSearchPrompt_Companies(t *testing.T) {
	prompt, err := BuildSearchPrompt(Request{
		Mode:    types.ModeCompanies,
		Content: "Series B fintech startups using Go",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "site:linkedin.com/company/")
}

func TestBuildSearchPrompt_CandidatesAtCompany(t *testing.T) {
	prompt, err := BuildSearchPrompt(Request{
		Mode:        types.ModeCandidatesAtCompany,
		Content:     "SRE with on-call experience",
		CompanyName: "Acme Corp",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "site:linkedin.com/in/")
	assert.Contains(t, prompt, "Acme Corp")
}

func TestBuildSearchPrompt_CandidatesAtCompany_RequiresCompany(t *testing.T) {
	_, err := BuildSearchPrompt(Request{
		Mode:    types.ModeCandidatesAtCompany,
		Content: "SRE with on-call experience",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "company name is required")
}

func TestBuildSearchPrompt_InvalidInputs(t *testing.T) {
	_, err := BuildSearchPrompt(Request{Mode: "profiles", Content: "x"})
	assert.Error(t, err)

	_, err = BuildSearchPrompt(Request{Mode: types.ModeCandidates, Content: "   "})
	assert.Error(t, err)
}

func TestCleanSearchString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain string",
			input:    `site:linkedin.com/in/ ("backend engineer" OR "software engineer") AND Python`,
			expected: `site:linkedin.com/in/ ("backend engineer" OR "software engineer") AND Python`,
		},
		{
			name:     "surrounding whitespace",
			input:    "\n  site:linkedin.com/in/ Python  \n",
			expected: "site:linkedin.com/in/ Python",
		},
		{
			name:     "code fence",
			input:    "```\nsite:linkedin.com/in/ Python\n```",
			expected: "site:linkedin.com/in/ Python",
		},
		{
			name:     "multiline collapsed",
			input:    "site:linkedin.com/in/\nPython AND AWS",
			expected: "site:linkedin.com/in/ Python AND AWS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanSearchString(tt.input))
		})
	}
}

type stubLLM struct {
	response string
	err      error
	prompt   string
}

func (s *stubLLM) GenerateText(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func (s *stubLLM) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return s.GenerateText(ctx, prompt, tier)
}

func (s *stubLLM) Close() error { return nil }

func TestGenerator_GenerateSearchString(t *testing.T) {
	stub := &stubLLM{response: "\nsite:linkedin.com/in/ \"backend engineer\" AND Python\n"}
	gen := NewGenerator(stub)

	searchString, err := gen.GenerateSearchString(context.Background(), Request{
		Mode:    types.ModeCandidates,
		Content: "Backend engineer, Python",
	})
	require.NoError(t, err)
	assert.Equal(t, `site:linkedin.com/in/ "backend engineer" AND Python`, searchString)
	assert.Contains(t, stub.prompt, "site:linkedin.com/in/")
}

func TestGenerator_EmptyModelOutput(t *testing.T) {
	gen := NewGenerator(&stubLLM{response: "   \n  "})

	_, err := gen.GenerateSearchString(context.Background(), Request{
		Mode:    types.ModeCandidates,
		Content: "Backend engineer",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty search string")
}

func TestGenerator_ModelError(t *testing.T) {
	gen := NewGenerator(&stubLLM{err: fmt.Errorf("quota exceeded")})

	_, err := gen.GenerateSearchString(context.Background(), Request{
		Mode:    types.ModeCandidates,
		Content: "Backend engineer",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
