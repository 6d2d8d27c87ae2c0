package interview

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

const validQuestionsJSON = `{
	"questions": [
		{"question": "Describe a time you scaled a Python service.", "category": "behavioral", "rationale": "Tests production experience."},
		{"question": "How would you design a rate limiter on AWS?", "category": "technical", "rationale": "Probes system design depth."}
	]
}`

func TestGenerate_Success(t *testing.T) {
	stub := &stubLLM{response: validQuestionsJSON}
	gen, err := NewGenerator(stub)
	require.NoError(t, err)

	questions, err := gen.Generate(context.Background(), Request{
		Content:       "Senior backend engineer, Python, AWS",
		QuestionCount: 2,
	})
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, "behavioral", questions[0].Category)
	assert.Contains(t, questions[1].Question, "rate limiter")

	assert.Contains(t, stub.prompt, "Senior backend engineer")
	assert.Contains(t, stub.prompt, "2")
	assert.NotContains(t, stub.prompt, "{{questionCount}}")
}

func TestGenerate_FocusAreaIncluded(t *testing.T) {
	stub := &stubLLM{response: validQuestionsJSON}
	gen, err := NewGenerator(stub)
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), Request{
		Content:   "job content",
		FocusArea: "distributed systems",
	})
	require.NoError(t, err)
	assert.Contains(t, stub.prompt, "distributed systems")
}

func TestGenerate_FocusAreaOmitted(t *testing.T) {
	stub := &stubLLM{response: validQuestionsJSON}
	gen, err := NewGenerator(stub)
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), Request{Content: "job content"})
	require.NoError(t, err)
	assert.NotContains(t, stub.prompt, "{{#if")
	assert.NotContains(t, stub.prompt, "{{focusArea}}")
}

func TestGenerate_DefaultAndCappedCount(t *testing.T) {
	stub := &stubLLM{response: validQuestionsJSON}
	gen, err := NewGenerator(stub)
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), Request{Content: "job content"})
	require.NoError(t, err)
	assert.Contains(t, stub.prompt, "8")

	_, err = gen.Generate(context.Background(), Request{Content: "job content", QuestionCount: 100})
	require.NoError(t, err)
	assert.Contains(t, stub.prompt, "25")
}

func TestGenerate_RequiresContent(t *testing.T) {
	gen, err := NewGenerator(&stubLLM{response: validQuestionsJSON})
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), Request{Content: "  "})
	assert.ErrorContains(t, err, "job content is required")
}

func TestGenerate_LLMError(t *testing.T) {
	gen, err := NewGenerator(&stubLLM{err: fmt.Errorf("model unavailable")})
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), Request{Content: "job content"})
	assert.ErrorContains(t, err, "interview question generation failed")
}

func TestGenerate_InvalidCategory(t *testing.T) {
	gen, err := NewGenerator(&stubLLM{response: `{"questions": [{"question": "q", "category": "trivia"}]}`})
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), Request{Content: "job content"})
	assert.ErrorContains(t, err, "interview questions response invalid")
}

func TestNewGenerator_RequiresClient(t *testing.T) {
	_, err := NewGenerator(nil)
	assert.Error(t, err)
}
