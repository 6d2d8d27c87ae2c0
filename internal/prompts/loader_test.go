package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidTemplate(t *testing.T) {
	ClearCache()

	tmpl, err := Get("analysis.json", "extract-terms")
	require.NoError(t, err)
	assert.NotEmpty(t, tmpl.Text)
	assert.NotEmpty(t, tmpl.Version)
	assert.Contains(t, tmpl.Parameters, "content")
	assert.Contains(t, tmpl.Text, "{{content}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("analysis.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidTemplate(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		tmpl := MustGet("sourcing.json", "search-candidates")
		assert.NotEmpty(t, tmpl.Text)
	})
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("analysis.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "extract-terms")
	assert.Contains(t, keys, "analyze-compensation")
	assert.Contains(t, keys, "enhance-description")
	assert.Contains(t, keys, "summarize")
}

func TestCaching(t *testing.T) {
	ClearCache()

	// First call loads from file
	tmpl1, err := Get("analysis.json", "summarize")
	require.NoError(t, err)

	// Second call should use cache
	tmpl2, err := Get("analysis.json", "summarize")
	require.NoError(t, err)

	assert.Equal(t, tmpl1, tmpl2)
}

// Every placeholder a template references must be declared in its
// Parameters list. Checked here rather than at render time.
func TestTemplateParameters_CoverPlaceholders(t *testing.T) {
	ClearCache()

	files := []string{"analysis.json", "sourcing.json", "evaluation.json"}
	for _, file := range files {
		keys, err := List(file)
		require.NoError(t, err)
		for _, key := range keys {
			tmpl, err := Get(file, key)
			require.NoError(t, err)

			params := make(map[string]string, len(tmpl.Parameters))
			for _, p := range tmpl.Parameters {
				params[p] = "x"
			}
			rendered := Render(tmpl.Text, params)
			assert.NotContains(t, rendered, "{{",
				"%s/%s references a placeholder missing from its parameters", file, key)
		}
	}
}

func TestSearchTemplates_SiteFilters(t *testing.T) {
	ClearCache()

	candidates := MustGet("sourcing.json", "search-candidates")
	assert.Contains(t, candidates.Text, "site:linkedin.com/in/")

	companies := MustGet("sourcing.json", "search-companies")
	assert.Contains(t, companies.Text, "site:linkedin.com/company/")
	assert.False(t, strings.Contains(companies.Text, "{{companyName}}"))
}
