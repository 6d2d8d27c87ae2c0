// Package types defines the domain types shared across the analysis
// pipeline, sourcing, and persistence layers.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Terms holds the sourcing-relevant terms extracted from job content.
type Terms struct {
	Skills   []string `json:"skills"`
	Titles   []string `json:"titles"`
	Keywords []string `json:"keywords"`
}

// AgentOutput is the combined result of one analysis pipeline run for one
// job: extracted terms, compensation analysis, enhanced description, and
// summary. At most one output exists per job; re-running the pipeline for
// the same content is a no-op, re-running for changed content replaces it.
type AgentOutput struct {
	ID                   uuid.UUID `json:"id"`
	JobID                uuid.UUID `json:"job_id"`
	Terms                Terms     `json:"terms"`
	CompensationAnalysis string    `json:"compensation_analysis"`
	EnhancedDescription  string    `json:"enhanced_description"`
	JobSummary           string    `json:"job_summary"`
	Fingerprint          string    `json:"fingerprint"`
	CreatedAt            time.Time `json:"created_at"`
}

// SearchMode selects which boolean-search template branch is used.
type SearchMode string

const (
	// ModeCandidates finds individual candidate profiles
	ModeCandidates SearchMode = "candidates"
	// ModeCompanies finds company pages
	ModeCompanies SearchMode = "companies"
	// ModeCandidatesAtCompany finds candidates at a specific company
	ModeCandidatesAtCompany SearchMode = "candidates-at-company"
)

// Valid reports whether the mode is one of the supported branches.
func (m SearchMode) Valid() bool {
	switch m {
	case ModeCandidates, ModeCompanies, ModeCandidatesAtCompany:
		return true
	}
	return false
}

// SearchResult is one item from a web search page.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// ResumeMatch is the scored result of matching a resume against job content.
type ResumeMatch struct {
	Score     int      `json:"score"`
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
	Summary   string   `json:"summary"`
}

// InterviewQuestion is a single generated interview question.
type InterviewQuestion struct {
	Question  string `json:"question"`
	Category  string `json:"category"`
	Rationale string `json:"rationale,omitempty"`
}
