// Package observability provides the zap logger and formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/alfandoo/Attrition-Predict/internal/schemas"
	"github.com/alfandoo/Attrition-Predict/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the predict and validate-model commands.
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
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes. fmt's width counts bytes, which misaligns
// the border for multi-byte names.
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

func displayName(name *string) string {
	if name == nil {
		return "(unnamed)"
	}
	return *name
}

// PrintPrediction outputs a single-record prediction.
func (p *Printer) PrintPrediction(resp *types.PredictResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Employee:   %s\n", displayName(resp.EmployeeName)))
	sb.WriteString(fmt.Sprintf("Prediction: %s\n", resp.Prediction))
	sb.WriteString(fmt.Sprintf("Confidence: %s\n\n", resp.Confidence))
	sb.WriteString(fmt.Sprintf("Stay:   %6.2f%%\n", resp.Probability.Bertahan))
	sb.WriteString(fmt.Sprintf("Resign: %6.2f%%", resp.Probability.Resign))

	p.printBox("ATTRITION PREDICTION", sb.String())
}

// BatchSummary counts the outcomes of a CSV batch.
type BatchSummary struct {
	Total    int
	AtRisk   int
	Retained int
	Failed   int
}

// Summarize tallies the rows of resp.
func Summarize(resp *types.BatchResponse) BatchSummary {
	var s BatchSummary
	if resp == nil {
		return s
	}
	for _, r := range resp.Results {
		s.Total++
		switch {
		case r.Failed():
			s.Failed++
		case r.Prediction == types.BatchVerdictResign:
			s.AtRisk++
		default:
			s.Retained++
		}
	}
	return s
}

// PrintBatch outputs the batch totals, the employees most likely to resign and the
// rows that could not be scored.
func (p *Printer) PrintBatch(resp *types.BatchResponse) {
	if resp == nil || len(resp.Results) == 0 {
		return
	}

	sum := Summarize(resp)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rows: %d  At risk: %d  Retained: %d  Errors: %d\n",
		sum.Total, sum.AtRisk, sum.Retained, sum.Failed))

	var risky, failed []types.BatchRow
	for _, r := range resp.Results {
		switch {
		case r.Failed():
			failed = append(failed, r)
		case r.Prediction == types.BatchVerdictResign:
			risky = append(risky, r)
		}
	}
	sort.SliceStable(risky, func(i, j int) bool {
		return risky[i].Probability.Resign > risky[j].Probability.Resign
	})

	if len(risky) > 0 {
		sb.WriteString("\nHighest risk:\n")
		count := min(len(risky), maxItemsToShow)
		for i := 0; i < count; i++ {
			r := risky[i]
			sb.WriteString(fmt.Sprintf("  #%d %s  %.2f%%\n", r.Index, displayName(r.EmployeeName), r.Probability.Resign))
		}
		if len(risky) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(risky)-maxItemsToShow))
		}
	}

	if len(failed) > 0 {
		sb.WriteString("\nErrors:\n")
		count := min(len(failed), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  #%d %s\n", failed[i].Index, strings.TrimPrefix(failed[i].Prediction, "Error: ")))
		}
		if len(failed) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(failed)-3))
		}
	}

	p.printBox("BATCH PREDICTION", strings.TrimSuffix(sb.String(), "\n"))
}

// ModelInfo is what PrintModel shows about a loaded artifact.
type ModelInfo struct {
	Path       string
	Trees      int
	Nodes      int
	Features   []string
	NumClasses int
}

// PrintModel outputs a model artifact summary.
func (p *Printer) PrintModel(info ModelInfo) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Path:     %s\n", info.Path))
	sb.WriteString(fmt.Sprintf("Trees:    %d (%d nodes)\n", info.Trees, info.Nodes))
	sb.WriteString(fmt.Sprintf("Classes:  %d\n", info.NumClasses))
	sb.WriteString(fmt.Sprintf("Features: %d", len(info.Features)))
	if len(info.Features) > 0 {
		sb.WriteString("\n")
		count := min(len(info.Features), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", info.Features[i]))
		}
		if len(info.Features) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more", len(info.Features)-maxItemsToShow))
		}
	}

	p.printBox("MODEL ARTIFACT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSchemaViolations lists the schema problems found in a model artifact.
func (p *Printer) PrintSchemaViolations(path string, violations []schemas.FieldError) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Path:     %s\n", path))
	sb.WriteString(fmt.Sprintf("Problems: %d", len(violations)))
	count := min(len(violations), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("\n  %d. %s: %s", i+1, violations[i].Field, violations[i].Message))
	}
	if len(violations) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n  ... and %d more", len(violations)-maxItemsToShow))
	}
	p.printBox("SCHEMA VIOLATIONS", sb.String())
}
