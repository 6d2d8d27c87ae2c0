// Package prompts - render.go substitutes conditionals and variables into a
// template to produce the final prompt string.
package prompts

import (
	"regexp"
	"strings"
)

// conditionalRe matches non-nested {{#if EXPR}}...{{/if}} blocks.
var conditionalRe = regexp.MustCompile(`(?s)\{\{#if\s+([^}]+)\}\}(.*?)\{\{/if\}\}`)

// Render resolves conditional blocks, then substitutes variables.
//
// Conditional semantics: the condition variable is the leading identifier of
// the {{#if}} expression; any comparison operators after it are ignored.
// Only trimmed non-empty truthiness of params[var] is checked. A truthy
// value keeps the block body, a falsy or missing value removes the whole
// block. There is no {{else}} and no nesting.
//
// Variable substitution replaces every {{key}} occurrence globally. Missing
// parameters are left verbatim in the output; Render never fails.
func Render(text string, params map[string]string) string {
	result := conditionalRe.ReplaceAllStringFunc(text, func(block string) string {
		m := conditionalRe.FindStringSubmatch(block)
		if m == nil {
			return block
		}
		name := conditionVar(m[1])
		if strings.TrimSpace(params[name]) != "" {
			return m[2]
		}
		return ""
	})

	for key, value := range params {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

// Render renders the template's text with the given parameters.
func (t Template) Render(params map[string]string) string {
	return Render(t.Text, params)
}

// conditionVar extracts the variable name from an {{#if}} expression,
// dropping everything after the first identifier. Template authors sometimes
// write comparisons like "searchType === 'companies'"; these are not
// evaluated, only the variable's truthiness counts.
func conditionVar(expr string) string {
	expr = strings.TrimSpace(expr)
	if idx := strings.IndexAny(expr, " \t=!<>"); idx >= 0 {
		return expr[:idx]
	}
	return expr
}
