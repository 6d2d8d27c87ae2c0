package agent

import (
	"encoding/json"
	"fmt"

	"github.com/jmtong/talentpipe/internal/llm"
	"github.com/jmtong/talentpipe/internal/types"
)

// StepStatus is the lifecycle state of one pipeline step.
type StepStatus string

const (
	// StatusPending means the step has not started
	StatusPending StepStatus = "pending"
	// StatusProcessing means the step's model call is in flight
	StatusProcessing StepStatus = "processing"
	// StatusComplete means the step produced a valid result
	StatusComplete StepStatus = "complete"
	// StatusError means the step failed; later steps stay pending
	StatusError StepStatus = "error"
)

// Step names, in execution order.
const (
	StepExtractTerms        = "extract_terms"
	StepAnalyzeCompensation = "analyze_compensation"
	StepEnhanceDescription  = "enhance_description"
	StepSummarize           = "summarize"
)

// Step is the externally observable state of one pipeline step.
type Step struct {
	Name     string     `json:"name"`
	Status   StepStatus `json:"status"`
	Progress int        `json:"progress"`
}

// stepDef binds a step name to its prompt template, response schema, and the
// field it contributes to the combined output.
type stepDef struct {
	name        string
	templateKey string
	schema      string
	tier        llm.ModelTier
	assign      func(output *types.AgentOutput, doc string) error
}

// stepDefs is the fixed step order. The steps are logically independent of
// each other; only the assembled output joins them.
var stepDefs = []stepDef{
	{
		name:        StepExtractTerms,
		templateKey: "extract-terms",
		schema:      "terms",
		tier:        llm.TierLite,
		assign: func(output *types.AgentOutput, doc string) error {
			var v struct {
				Terms types.Terms `json:"terms"`
			}
			if err := json.Unmarshal([]byte(doc), &v); err != nil {
				return fmt.Errorf("failed to parse terms: %w", err)
			}
			output.Terms = v.Terms
			return nil
		},
	},
	{
		name:        StepAnalyzeCompensation,
		templateKey: "analyze-compensation",
		schema:      "analysis",
		tier:        llm.TierStandard,
		assign: func(output *types.AgentOutput, doc string) error {
			var v struct {
				Analysis string `json:"analysis"`
			}
			if err := json.Unmarshal([]byte(doc), &v); err != nil {
				return fmt.Errorf("failed to parse analysis: %w", err)
			}
			output.CompensationAnalysis = v.Analysis
			return nil
		},
	},
	{
		name:        StepEnhanceDescription,
		templateKey: "enhance-description",
		schema:      "enhanced_description",
		tier:        llm.TierAdvanced,
		assign: func(output *types.AgentOutput, doc string) error {
			var v struct {
				EnhancedDescription string `json:"enhancedDescription"`
			}
			if err := json.Unmarshal([]byte(doc), &v); err != nil {
				return fmt.Errorf("failed to parse enhanced description: %w", err)
			}
			output.EnhancedDescription = v.EnhancedDescription
			return nil
		},
	},
	{
		name:        StepSummarize,
		templateKey: "summarize",
		schema:      "summary",
		tier:        llm.TierLite,
		assign: func(output *types.AgentOutput, doc string) error {
			var v struct {
				Summary string `json:"summary"`
			}
			if err := json.Unmarshal([]byte(doc), &v); err != nil {
				return fmt.Errorf("failed to parse summary: %w", err)
			}
			output.JobSummary = v.Summary
			return nil
		},
	},
}

// StepNames returns the pipeline's step names in execution order.
func StepNames() []string {
	names := make([]string, len(stepDefs))
	for i, def := range stepDefs {
		names[i] = def.name
	}
	return names
}
