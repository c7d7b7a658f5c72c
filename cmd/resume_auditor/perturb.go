package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-auditor/internal/config"
	"github.com/jonathan/resume-auditor/internal/perturb"
)

var perturbCmd = &cobra.Command{
	Use:   "perturb",
	Short: "Apply one perturbation to a text file",
	Long:  "Applies a single perturbation type to a text file and writes the perturbed text, for inspecting exactly what a counterfactual test feeds the ranker.",
	RunE:  runPerturb,
}

var (
	perturbInput     string
	perturbOutput    string
	perturbType      string
	perturbDirection string
	perturbGapMonths int
	perturbTypoRate  float64
	perturbConfig    string
)

func init() {
	perturbCmd.Flags().StringVarP(&perturbInput, "in", "i", "", "Path to input text file (required)")
	perturbCmd.Flags().StringVarP(&perturbOutput, "out", "o", "", "Path to output file (default stdout)")
	perturbCmd.Flags().StringVarP(&perturbType, "type", "t", "", "Perturbation type (required)")
	perturbCmd.Flags().StringVar(&perturbDirection, "direction", "", "Pronoun swap direction: to_neutral, to_male, to_female")
	perturbCmd.Flags().IntVar(&perturbGapMonths, "gap-months", 0, "Employment gap length in months")
	perturbCmd.Flags().Float64Var(&perturbTypoRate, "typo-rate", 0, "Proportion of words to receive typos")
	perturbCmd.Flags().StringVarP(&perturbConfig, "config", "c", "", "Path to audit config JSON (for university tiers and defaults)")

	if err := perturbCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := perturbCmd.MarkFlagRequired("type"); err != nil {
		panic(fmt.Sprintf("failed to mark type flag as required: %v", err))
	}

	rootCmd.AddCommand(perturbCmd)
}

func runPerturb(_ *cobra.Command, _ []string) error {
	text, err := os.ReadFile(perturbInput)
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", perturbInput, err)
	}

	params := perturb.Params{
		Direction: perturb.Direction(perturbDirection),
		GapMonths: perturbGapMonths,
		TypoRate:  perturbTypoRate,
	}

	if perturbConfig != "" {
		cfg, err := config.Load(perturbConfig)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		generatorConfig, err := cfg.GeneratorConfig()
		if err != nil {
			return err
		}
		configured := generatorConfig[perturb.Type(perturbType)]
		if params.Direction == "" {
			params.Direction = configured.Direction
		}
		if params.GapMonths == 0 {
			params.GapMonths = configured.GapMonths
		}
		if params.TypoRate == 0 {
			params.TypoRate = configured.TypoRate
		}
		params.UniversityTiers = configured.UniversityTiers
		params.FromTier = configured.FromTier
		params.ToTier = configured.ToTier
		params.Replacements = configured.Replacements
	}

	perturbed, err := perturb.Apply(string(text), perturb.Type(perturbType), params)
	if err != nil {
		return err
	}

	if perturbOutput == "" {
		fmt.Println(perturbed)
		return nil
	}
	if err := os.WriteFile(perturbOutput, []byte(perturbed), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", perturbOutput, err)
	}
	return nil
}
