package match

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmtong/talentpipe/internal/llm"
)

type stubLLM struct {
	prompt   string
	response string
	err      error
}

func (s *stubLLM) GenerateText(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func (s *stubLLM) Close() error { return nil }

const validMatchJSON = `{
	"score": 82,
	"strengths": ["5 years of Python", "AWS production experience"],
	"gaps": ["no Kubernetes exposure"],
	"summary": "Strong backend fit with minor infrastructure gaps."
}`

func TestScore_Success(t *testing.T) {
	stub := &stubLLM{response: validMatchJSON}
	matcher, err := NewMatcher(stub)
	require.NoError(t, err)

	result, err := matcher.Score(context.Background(), "Senior backend engineer, Python, AWS", "Jane Doe. Python developer, 5 years.")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 82, result.Score)
	assert.Len(t, result.Strengths, 2)
	assert.Len(t, result.Gaps, 1)
	assert.Contains(t, result.Summary, "backend fit")

	assert.Contains(t, stub.prompt, "Senior backend engineer")
	assert.Contains(t, stub.prompt, "Jane Doe")
	assert.NotContains(t, stub.prompt, "{{content}}")
	assert.NotContains(t, stub.prompt, "{{resume}}")
}

func TestScore_FencedResponse(t *testing.T) {
	stub := &stubLLM{response: "```json\n" + validMatchJSON + "\n```"}
	matcher, err := NewMatcher(stub)
	require.NoError(t, err)

	result, err := matcher.Score(context.Background(), "job content", "resume text")
	require.NoError(t, err)
	assert.Equal(t, 82, result.Score)
}

func TestScore_RequiresInputs(t *testing.T) {
	matcher, err := NewMatcher(&stubLLM{response: validMatchJSON})
	require.NoError(t, err)

	_, err = matcher.Score(context.Background(), "", "resume")
	assert.ErrorContains(t, err, "job content is required")

	_, err = matcher.Score(context.Background(), "job", "   ")
	assert.ErrorContains(t, err, "resume is required")
}

func TestScore_LLMError(t *testing.T) {
	matcher, err := NewMatcher(&stubLLM{err: fmt.Errorf("quota exceeded")})
	require.NoError(t, err)

	_, err = matcher.Score(context.Background(), "job", "resume")
	assert.ErrorContains(t, err, "resume match generation failed")
}

func TestScore_InvalidResponse(t *testing.T) {
	matcher, err := NewMatcher(&stubLLM{response: `{"score": 150, "strengths": [], "gaps": [], "summary": "x"}`})
	require.NoError(t, err)

	_, err = matcher.Score(context.Background(), "job", "resume")
	assert.ErrorContains(t, err, "resume match response invalid")
}

func TestNewMatcher_RequiresClient(t *testing.T) {
	_, err := NewMatcher(nil)
	assert.Error(t, err)
}
