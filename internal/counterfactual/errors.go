// Package counterfactual runs controlled perturbation tests against a resume
// ranker and aggregates the rank-stability statistics into fairness verdicts.
package counterfactual

import "fmt"

// EmptyPoolError reports an attempt to run a counterfactual test over an
// empty resume pool. An empty pool is a caller error, not a zero result.
type EmptyPoolError struct{}

func (e *EmptyPoolError) Error() string {
	return "cannot run counterfactual test on an empty resume pool"
}

// InconsistencyError reports a ranker that violated its contract by dropping,
// duplicating, or inventing resume ids. It is fatal: partial aggregation over
// a mismatched id set would silently corrupt every statistic downstream.
type InconsistencyError struct {
	PerturbationType string
	Message          string
}

func (e *InconsistencyError) Error() string {
	if e.PerturbationType != "" {
		return fmt.Sprintf("ranking inconsistency during %s test: %s", e.PerturbationType, e.Message)
	}
	return fmt.Sprintf("ranking inconsistency: %s", e.Message)
}
