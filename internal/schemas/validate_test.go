package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Terms(t *testing.T) {
	doc := `{"terms": {"skills": ["Go"], "titles": ["Backend Engineer"], "keywords": ["AWS"]}}`
	assert.NoError(t, Validate("terms", doc))
}

func TestValidate_Terms_MissingField(t *testing.T) {
	doc := `{"terms": {"skills": ["Go"], "titles": []}}`
	err := Validate("terms", doc)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "terms", ve.Schema)
	assert.NotEmpty(t, ve.Errors)
	assert.Contains(t, err.Error(), "keywords")
}

func TestValidate_Analysis(t *testing.T) {
	assert.NoError(t, Validate("analysis", `{"analysis": "Expect $150k-$190k base."}`))
	assert.Error(t, Validate("analysis", `{"analysis": ""}`))
	assert.Error(t, Validate("analysis", `{"wrong_field": "x"}`))
}

func TestValidate_ResumeMatch(t *testing.T) {
	doc := `{"score": 72, "strengths": ["Python"], "gaps": ["AWS"], "summary": "Solid fit."}`
	assert.NoError(t, Validate("resume_match", doc))

	// Score outside range
	doc = `{"score": 140, "strengths": [], "gaps": [], "summary": ""}`
	assert.Error(t, Validate("resume_match", doc))
}

func TestValidate_InterviewQuestions(t *testing.T) {
	doc := `{"questions": [{"question": "Describe a race condition you debugged.", "category": "technical", "rationale": "Concurrency is core to the role."}]}`
	assert.NoError(t, Validate("interview_questions", doc))

	// Unknown category
	doc = `{"questions": [{"question": "Q", "category": "trivia"}]}`
	assert.Error(t, Validate("interview_questions", doc))

	// Empty list
	assert.Error(t, Validate("interview_questions", `{"questions": []}`))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope", `{}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate("summary", `{not json`)
	assert.Error(t, err)
}
