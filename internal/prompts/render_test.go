package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Substitution(t *testing.T) {
	text := "Hello {{name}}, welcome to {{company}}!"
	params := map[string]string{
		"name":    "Alice",
		"company": "Acme Corp",
	}

	result := Render(text, params)
	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", result)
}

func TestRender_MissingParamLeftVerbatim(t *testing.T) {
	text := "Hello {{name}}"
	result := Render(text, map[string]string{})
	assert.Equal(t, "Hello {{name}}", result)
}

func TestRender_ConditionalTruthy(t *testing.T) {
	text := "Search for candidates.{{#if metroArea}} Located in {{metroArea}}.{{/if}} Done."
	result := Render(text, map[string]string{"metroArea": "Denver"})
	assert.Equal(t, "Search for candidates. Located in Denver. Done.", result)
	assert.NotContains(t, result, "{{#if")
	assert.NotContains(t, result, "{{/if}}")
}

func TestRender_ConditionalFalsy(t *testing.T) {
	text := "Search for candidates.{{#if metroArea}} Located in {{metroArea}}.{{/if}} Done."

	// Missing param removes the block
	result := Render(text, map[string]string{})
	assert.Equal(t, "Search for candidates. Done.", result)

	// Empty string is falsy
	result = Render(text, map[string]string{"metroArea": ""})
	assert.Equal(t, "Search for candidates. Done.", result)

	// Whitespace-only is falsy
	result = Render(text, map[string]string{"metroArea": "   "})
	assert.Equal(t, "Search for candidates. Done.", result)
}

func TestRender_MultipleConditionals(t *testing.T) {
	text := "{{#if a}}A{{/if}}-{{#if b}}B{{/if}}"
	result := Render(text, map[string]string{"a": "yes"})
	assert.Equal(t, "A-", result)
}

func TestRender_ConditionalSpansLines(t *testing.T) {
	text := "start\n{{#if hint}}line one\nline two\n{{/if}}end"
	result := Render(text, map[string]string{"hint": "y"})
	assert.Equal(t, "start\nline one\nline two\nend", result)
}

// Comparison expressions inside {{#if}} tags are not evaluated; only the
// leading variable's truthiness counts.
func TestRender_ComparisonExpressionIgnored(t *testing.T) {
	text := "{{#if searchType === 'companies'}}companies{{/if}}"

	result := Render(text, map[string]string{"searchType": "candidates"})
	assert.Equal(t, "companies", result)

	result = Render(text, map[string]string{})
	assert.Equal(t, "", result)
}

func TestRender_Deterministic(t *testing.T) {
	text := "{{#if x}}{{x}}{{/if}} {{y}}"
	params := map[string]string{"x": "1", "y": "2"}
	assert.Equal(t, Render(text, params), Render(text, params))
}

// End-to-end: rendering the general candidate search template with no
// company or metro produces a clean prompt with the X-Ray site filter.
func TestRender_CandidateSearchPrompt(t *testing.T) {
	ClearCache()

	tmpl, err := Get("sourcing.json", "search-candidates")
	require.NoError(t, err)

	prompt := tmpl.Render(map[string]string{
		"content": "Senior backend engineer, Python, AWS, 5 years",
	})

	assert.Contains(t, prompt, "site:linkedin.com/in/")
	assert.Contains(t, prompt, "Senior backend engineer, Python, AWS, 5 years")
	assert.NotContains(t, prompt, "{{companyName}}")
	assert.NotContains(t, prompt, "{{metroArea}}")
	assert.NotContains(t, prompt, "{{#if")
	assert.NotContains(t, prompt, "{{/if}}")
}
