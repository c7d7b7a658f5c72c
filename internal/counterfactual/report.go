package counterfactual

import (
	"fmt"

	"github.com/jonathan/resume-auditor/internal/fairness"
	"github.com/jonathan/resume-auditor/internal/types"
)

// Default verdict thresholds, matching the production audit configuration.
const (
	DefaultMaxMeanRankChange     = 3.0
	DefaultMaxAffectedPercentage = 15.0
)

// DefaultThresholds returns the standard pass/fail limits.
func DefaultThresholds() types.Thresholds {
	return types.Thresholds{
		MaxMeanRankChange:     DefaultMaxMeanRankChange,
		MaxAffectedPercentage: DefaultMaxAffectedPercentage,
	}
}

// GenerateReport turns a collection of test results into a fairness report
// with per-test pass/fail verdicts and itemized issues.
//
// A test passes when its mean rank change and affected percentage are both at
// or below their thresholds; the comparison is non-strict, so a statistic
// exactly at its threshold passes. Threshold violations are results, not
// errors: a failing test is recorded with its issues and the caller decides
// what to do.
//
// An empty result set yields OverallPassed == true by vacuous truth. Callers
// that must distinguish "all tests passed" from "no tests ran" should check
// len(Summary) themselves.
func GenerateReport(results map[string]*types.TestResult, thresholds types.Thresholds) *types.FairnessReport {
	report := &types.FairnessReport{
		Summary:       make(map[string]types.TestSummary, len(results)),
		Details:       results,
		Thresholds:    thresholds,
		OverallPassed: true,
	}
	if report.Details == nil {
		report.Details = make(map[string]*types.TestResult)
	}

	for testName, result := range results {
		passed := fairness.MeetsThresholds(
			result.MeanRankChange,
			result.AffectedPercentage,
			thresholds.MaxMeanRankChange,
			thresholds.MaxAffectedPercentage,
		)

		issues := []string{}
		if result.MeanRankChange > thresholds.MaxMeanRankChange {
			issues = append(issues, fmt.Sprintf(
				"Mean rank change (%.2f) exceeds threshold (%.2f)",
				result.MeanRankChange, thresholds.MaxMeanRankChange))
		}
		if result.AffectedPercentage > thresholds.MaxAffectedPercentage {
			issues = append(issues, fmt.Sprintf(
				"Affected percentage (%.1f%%) exceeds threshold (%.1f%%)",
				result.AffectedPercentage, thresholds.MaxAffectedPercentage))
		}

		report.Summary[testName] = types.TestSummary{
			Passed:             passed,
			MeanRankChange:     result.MeanRankChange,
			AffectedPercentage: result.AffectedPercentage,
			Issues:             issues,
		}
		if !passed {
			report.OverallPassed = false
		}
	}

	return report
}
