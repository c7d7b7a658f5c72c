package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a resume pool against a job description",
	Long:  "Ranks a resume pool against a job description with the selected ranker and prints the ranking, highest score first. Useful for inspecting the audit subject before running counterfactual tests.",
	RunE:  runRank,
}

var (
	rankResumes    string
	rankJob        string
	rankRanker     string
	rankOutput     string
	rankTop        int
	rankCSVIDCol   string
	rankCSVTextCol string
)

func init() {
	rankCmd.Flags().StringVarP(&rankResumes, "resumes", "r", "", "Path to resume pool file, JSON or CSV (required)")
	rankCmd.Flags().StringVarP(&rankJob, "job", "j", "", "Path to job description text file (required)")
	rankCmd.Flags().StringVar(&rankRanker, "ranker", "tfidf", "Ranker: tfidf, bm25, or hybrid")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Optional path to write the ranking as JSON")
	rankCmd.Flags().IntVar(&rankTop, "top", 0, "Print only the top N entries (0 = all)")
	rankCmd.Flags().StringVar(&rankCSVIDCol, "csv-id-col", "id", "CSV column holding resume ids")
	rankCmd.Flags().StringVar(&rankCSVTextCol, "csv-text-col", "text", "CSV column holding resume text")

	if err := rankCmd.MarkFlagRequired("resumes"); err != nil {
		panic(fmt.Sprintf("failed to mark resumes flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(_ *cobra.Command, _ []string) error {
	pool, err := loadPool(rankResumes, rankCSVIDCol, rankCSVTextCol)
	if err != nil {
		return fmt.Errorf("failed to load resume pool: %w", err)
	}

	query, err := loadJob(rankJob)
	if err != nil {
		return err
	}

	ranker, err := buildRanker(rankRanker)
	if err != nil {
		return err
	}

	ranking, err := ranker.Rank(query, pool)
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}

	shown := ranking
	if rankTop > 0 && rankTop < len(shown) {
		shown = shown[:rankTop]
	}
	for i, entry := range shown {
		fmt.Printf("%3d. %-20s %.4f\n", i+1, entry.ResumeID, entry.Score)
	}

	if rankOutput != "" {
		data, err := json.MarshalIndent(ranking, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal ranking: %w", err)
		}
		if dir := filepath.Dir(rankOutput); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(rankOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write ranking to %s: %w", rankOutput, err)
		}
	}
	return nil
}
