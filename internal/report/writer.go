// Package report renders fairness reports for files and terminals.
// Renderers read the report structure and never modify it.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/resume-auditor/internal/types"
)

// WriteJSON writes the report as indented JSON, creating parent directories
// as needed.
func WriteJSON(fairnessReport *types.FairnessReport, path string) error {
	data, err := json.MarshalIndent(fairnessReport, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal fairness report: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write fairness report to %s: %w", path, err)
	}
	return nil
}

// Printer writes human-readable report summaries.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintReport writes a pass/fail summary table with itemized issues.
// Tests are printed in sorted name order so output is stable.
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) PrintReport(fairnessReport *types.FairnessReport) {
	fmt.Fprintln(p.out, "Fairness Audit Report")
	fmt.Fprintln(p.out, strings.Repeat("=", 50))
	fmt.Fprintf(p.out, "Thresholds: mean rank change <= %.2f, affected <= %.1f%%\n\n",
		fairnessReport.Thresholds.MaxMeanRankChange,
		fairnessReport.Thresholds.MaxAffectedPercentage)

	names := make([]string, 0, len(fairnessReport.Summary))
	for name := range fairnessReport.Summary {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		summary := fairnessReport.Summary[name]
		status := "PASS"
		if !summary.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(p.out, "%-20s %s  (mean change %.2f, affected %.1f%%)\n",
			name, status, summary.MeanRankChange, summary.AffectedPercentage)
		for _, issue := range summary.Issues {
			fmt.Fprintf(p.out, "  - %s\n", issue)
		}
	}

	fmt.Fprintln(p.out, strings.Repeat("-", 50))
	overall := "PASSED"
	if !fairnessReport.OverallPassed {
		overall = "FAILED"
	}
	fmt.Fprintf(p.out, "Overall: %s (%d tests)\n", overall, len(fairnessReport.Summary))
}
