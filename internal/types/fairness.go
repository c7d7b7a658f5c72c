//nolint:revive // types is a standard Go package name pattern
package types

// TestResult holds the aggregate rank-stability statistics for one
// perturbation type applied uniformly to a resume pool. Produced once per
// (perturbation type, pool, query) combination and immutable afterward.
type TestResult struct {
	PerturbationType   string  `json:"perturbation_type"`
	MeanRankChange     float64 `json:"mean_rank_change"`
	MedianRankChange   float64 `json:"median_rank_change"`
	MaxRankChange      int     `json:"max_rank_change"`
	StdRankChange      float64 `json:"std_rank_change"`
	AffectedPercentage float64 `json:"affected_percentage"`
	NumResumes         int     `json:"num_resumes"`
	// RankChanges is the per-resume absolute rank delta sequence, in
	// original-ranking order.
	RankChanges []int `json:"rank_changes"`
}

// TestSummary is the per-test verdict inside a FairnessReport.
type TestSummary struct {
	Passed             bool     `json:"passed"`
	MeanRankChange     float64  `json:"mean_rank_change"`
	AffectedPercentage float64  `json:"affected_percentage"`
	Issues             []string `json:"issues"`
}

// Thresholds are the configurable pass/fail limits for fairness verdicts.
// Both comparisons are non-strict: a statistic exactly at its threshold passes.
type Thresholds struct {
	MaxMeanRankChange     float64 `json:"max_mean_rank_change" validate:"gte=0"`
	MaxAffectedPercentage float64 `json:"max_affected_percentage" validate:"gte=0,lte=100"`
}

// FairnessReport is the aggregate pass/fail report across all counterfactual
// tests. Built once and read-only afterward; downstream renderers must not
// assume keys beyond these.
type FairnessReport struct {
	Summary       map[string]TestSummary `json:"summary"`
	Details       map[string]*TestResult `json:"details"`
	Thresholds    Thresholds             `json:"thresholds"`
	OverallPassed bool                   `json:"overall_passed"`
}
