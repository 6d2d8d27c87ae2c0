// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmtong/talentpipe/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAgentOutput outputs a human-readable summary of a completed analysis.
func (p *Printer) PrintAgentOutput(output *types.AgentOutput) {
	if output == nil {
		return
	}

	var sb strings.Builder

	if output.JobSummary != "" {
		sb.WriteString(fmt.Sprintf("Summary:  %s\n\n", firstLine(output.JobSummary)))
	}

	writeTermList(&sb, "Skills", output.Terms.Skills)
	writeTermList(&sb, "Titles", output.Terms.Titles)
	writeTermList(&sb, "Keywords", output.Terms.Keywords)

	if output.CompensationAnalysis != "" {
		sb.WriteString("Compensation:\n")
		sb.WriteString(fmt.Sprintf("  %s\n", firstLine(output.CompensationAnalysis)))
	}

	p.printBox("JOB ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSearchResults outputs sourcing search hits with their links.
func (p *Printer) PrintSearchResults(results []types.SearchResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total results: %d\n\n", len(results)))

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := results[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, r.Title))
		sb.WriteString(fmt.Sprintf("    %s\n", r.Link))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more\n", len(results)-maxItemsToShow))
	}

	p.printBox("SEARCH RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumeMatch outputs a scored resume match.
func (p *Printer) PrintResumeMatch(match *types.ResumeMatch) {
	if match == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:    %d/100\n\n", match.Score))

	writeTermList(&sb, "Strengths", match.Strengths)
	writeTermList(&sb, "Gaps", match.Gaps)

	if match.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summary:  %s\n", firstLine(match.Summary)))
	}

	p.printBox("RESUME MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInterviewQuestions outputs generated interview questions by category.
func (p *Printer) PrintInterviewQuestions(questions []types.InterviewQuestion) {
	if len(questions) == 0 {
		return
	}

	var sb strings.Builder
	for i, q := range questions {
		sb.WriteString(fmt.Sprintf("#%d  [%s]\n", i+1, q.Category))
		sb.WriteString(fmt.Sprintf("    %s\n", q.Question))
		if i < len(questions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("INTERVIEW QUESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeTermList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}

	sb.WriteString(fmt.Sprintf("%s:\n", label))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
