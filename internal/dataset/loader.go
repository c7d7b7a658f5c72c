// Package dataset loads resume pools and job descriptions from JSON and CSV
// files. Loaders only fill the Resume shape; text cleaning and ingestion from
// richer formats happen upstream.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/resume-auditor/internal/types"
)

// LoadJSON reads a resume pool from a JSON file containing an array of
// resumes. Every entry must carry a non-empty id and text.
func LoadJSON(path string) ([]types.Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume pool %s: %w", path, err)
	}

	var pool []types.Resume
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("failed to parse resume pool JSON: %w", err)
	}

	if err := validatePool(pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// LoadCSV reads a resume pool from a CSV file with a header row. idColumn
// may be empty, in which case sequential ids (resume_000, ...) are assigned.
// Columns beyond id and text are preserved as auxiliary fields.
func LoadCSV(path, idColumn, textColumn string) ([]types.Resume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume CSV %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	textIdx, ok := columns[textColumn]
	if !ok {
		return nil, fmt.Errorf("text column %q not found in CSV header", textColumn)
	}
	idIdx := -1
	if idColumn != "" {
		idIdx, ok = columns[idColumn]
		if !ok {
			return nil, fmt.Errorf("id column %q not found in CSV header", idColumn)
		}
	}

	var pool []types.Resume
	rowNum := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", rowNum, err)
		}

		resume := types.Resume{Text: record[textIdx]}
		if idIdx >= 0 {
			resume.ID = record[idIdx]
		} else {
			resume.ID = fmt.Sprintf("resume_%03d", rowNum)
		}

		for i, name := range header {
			if i == textIdx || i == idIdx || i >= len(record) {
				continue
			}
			if resume.Aux == nil {
				resume.Aux = make(map[string]any)
			}
			resume.Aux[strings.TrimSpace(name)] = record[i]
		}

		pool = append(pool, resume)
		rowNum++
	}

	if err := validatePool(pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// LoadJobDescription reads a job description text file, trimmed.
func LoadJobDescription(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func validatePool(pool []types.Resume) error {
	seen := make(map[string]bool, len(pool))
	for i, resume := range pool {
		if resume.ID == "" {
			return fmt.Errorf("resume at index %d has empty id", i)
		}
		if strings.TrimSpace(resume.Text) == "" {
			return fmt.Errorf("resume %s has empty text", resume.ID)
		}
		if seen[resume.ID] {
			return fmt.Errorf("duplicate resume id %s", resume.ID)
		}
		seen[resume.ID] = true
	}
	return nil
}
