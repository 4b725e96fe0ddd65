// Package observability provides formatted output utilities for the CLI's
// human-readable mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/atsfit/internal/scoring"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for human-readable mode.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
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

// PrintScoreResult outputs a human-readable summary of a scoring run.
func (p *Printer) PrintScoreResult(result *scoring.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Score:    %d/100\n", result.Score))
	sb.WriteString(fmt.Sprintf("Keywords: %d total\n", result.TotalKeywords))
	sb.WriteString("\n")

	writeKeywordSection(&sb, "Matched", result.MatchedKeywords)
	writeKeywordSection(&sb, "Partial", result.PartialMatches)
	writeKeywordSection(&sb, "Missing", result.MissingKeywords)

	p.printBox("ATS Compatibility", strings.TrimRight(sb.String(), "\n"))

	if len(result.Recommendations) > 0 {
		var rb strings.Builder
		for _, rec := range result.Recommendations {
			rb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		p.printBox("Recommendations", strings.TrimRight(rb.String(), "\n"))
	}
}

// PrintKeywords outputs an extracted keyword list.
func (p *Printer) PrintKeywords(keywords []string) {
	var sb strings.Builder
	for _, kw := range keywords {
		sb.WriteString(fmt.Sprintf("• %s\n", kw))
	}
	p.printBox(fmt.Sprintf("Extracted Keywords (%d)", len(keywords)), strings.TrimRight(sb.String(), "\n"))
}

func writeKeywordSection(sb *strings.Builder, label string, keywords []string) {
	if len(keywords) == 0 {
		return
	}

	sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(keywords)))
	count := min(len(keywords), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", keywords[i]))
	}
	if len(keywords) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(keywords)-maxItemsToShow))
	}
	sb.WriteString("\n")
}
