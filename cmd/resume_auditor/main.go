// Package main provides the entry point for the resume_auditor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_auditor",
	Short: "Fairness auditor for resume-ranking models",
	Long:  "resume_auditor evaluates resume-ranking models for sensitivity to non-skill attributes (names, pronouns, university prestige, employment gaps) by re-ranking a pool under controlled text perturbations and checking rank stability against configurable thresholds.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
