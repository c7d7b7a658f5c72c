package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-auditor/internal/types"
)

// SaveTestResult stores one test's result JSON for an audit run, replacing
// any earlier result for the same test name.
func (db *DB) SaveTestResult(ctx context.Context, runID uuid.UUID, testName string, result *types.TestResult) error {
	content, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal test result: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO test_results (run_id, test_name, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, test_name) DO UPDATE SET content = $3, created_at = NOW()`,
		runID, testName, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save test result: %w", err)
	}
	return nil
}

// GetTestResult loads one test's result for a run. Returns nil without error
// when no result exists.
func (db *DB) GetTestResult(ctx context.Context, runID uuid.UUID, testName string) (*types.TestResult, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM test_results WHERE run_id = $1 AND test_name = $2`,
		runID, testName,
	).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load test result: %w", err)
	}

	var result types.TestResult
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal test result: %w", err)
	}
	return &result, nil
}

// SaveFairnessReport stores the final report JSON for an audit run.
func (db *DB) SaveFairnessReport(ctx context.Context, runID uuid.UUID, fairnessReport *types.FairnessReport) error {
	content, err := json.Marshal(fairnessReport)
	if err != nil {
		return fmt.Errorf("failed to marshal fairness report: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO fairness_reports (run_id, content)
		 VALUES ($1, $2)
		 ON CONFLICT (run_id) DO UPDATE SET content = $2, created_at = NOW()`,
		runID, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save fairness report: %w", err)
	}
	return nil
}

// GetFairnessReport loads the report for an audit run. Returns nil without
// error when none was saved.
func (db *DB) GetFairnessReport(ctx context.Context, runID uuid.UUID) (*types.FairnessReport, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM fairness_reports WHERE run_id = $1`,
		runID,
	).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load fairness report: %w", err)
	}

	var fairnessReport types.FairnessReport
	if err := json.Unmarshal(content, &fairnessReport); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fairness report: %w", err)
	}
	return &fairnessReport, nil
}
