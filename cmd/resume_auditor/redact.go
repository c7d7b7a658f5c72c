package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-auditor/internal/privacy"
)

var redactCmd = &cobra.Command{
	Use:   "redact",
	Short: "Redact PII from a text file",
	Long:  "Removes emails, phone numbers, SSNs, addresses, ZIP codes, and likely name lines from a text file. Detection is heuristic; review output before treating it as anonymized.",
	RunE:  runRedact,
}

var (
	redactInput    string
	redactOutput   string
	redactNoNames  bool
	redactDetectly bool
)

func init() {
	redactCmd.Flags().StringVarP(&redactInput, "in", "i", "", "Path to input text file (required)")
	redactCmd.Flags().StringVarP(&redactOutput, "out", "o", "", "Path to output file (default stdout)")
	redactCmd.Flags().BoolVar(&redactNoNames, "no-names", false, "Skip the name-line heuristic")
	redactCmd.Flags().BoolVar(&redactDetectly, "detect-only", false, "Report detected PII without rewriting the text")

	if err := redactCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(redactCmd)
}

func runRedact(_ *cobra.Command, _ []string) error {
	text, err := os.ReadFile(redactInput)
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", redactInput, err)
	}

	redactor := privacy.NewRedactor()
	redactor.RedactNames = !redactNoNames

	if redactDetectly {
		detected := redactor.DetectPII(string(text))
		if len(detected) == 0 {
			fmt.Println("No PII detected.")
			return nil
		}
		categories := make([]string, 0, len(detected))
		for category := range detected {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			fmt.Printf("%s: %d match(es)\n", category, len(detected[category]))
		}
		return nil
	}

	redacted := redactor.Redact(string(text), "")

	if redactOutput == "" {
		fmt.Println(redacted)
		return nil
	}
	if err := os.WriteFile(redactOutput, []byte(redacted), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", redactOutput, err)
	}
	return nil
}
