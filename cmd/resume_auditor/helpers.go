package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-auditor/internal/dataset"
	"github.com/jonathan/resume-auditor/internal/ranking"
	"github.com/jonathan/resume-auditor/internal/types"
)

// buildRanker constructs the named audit subject. An empty name selects the
// tf-idf baseline.
func buildRanker(name string) (ranking.Ranker, error) {
	switch name {
	case "", "tfidf":
		return ranking.NewTFIDFRanker(), nil
	case "bm25":
		return ranking.NewBM25Ranker(0, 0), nil
	case "hybrid":
		return ranking.NewHybridRanker(ranking.NewBM25Ranker(0, 0), ranking.DefaultWeights(), nil)
	default:
		return nil, fmt.Errorf("unknown ranker %q (expected tfidf, bm25, or hybrid)", name)
	}
}

// loadJob loads a job description and rejects empty files early, before an
// audit spends time ranking against a blank query.
func loadJob(path string) (string, error) {
	query, err := dataset.LoadJobDescription(path)
	if err != nil {
		return "", fmt.Errorf("failed to load job description: %w", err)
	}
	if query == "" {
		return "", fmt.Errorf("job description %s is empty", path)
	}
	return query, nil
}

// loadPool loads a resume pool, choosing the loader by file extension.
func loadPool(path, idColumn, textColumn string) ([]types.Resume, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return dataset.LoadCSV(path, idColumn, textColumn)
	}
	return dataset.LoadJSON(path)
}
