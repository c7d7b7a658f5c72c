// Package fairness provides standalone statistical primitives for rank
// stability analysis. The functions here are usable independently of the
// counterfactual test runner and are reused by its verdict aggregation.
package fairness

// DefaultMaxAcceptableChange is the fixed rank-delta cutoff separating
// "consistent" from "significantly affected" items. It is a policy constant
// and deliberately does not scale with pool size.
const DefaultMaxAcceptableChange = 5

// RankPositionVariance returns the population variance (divide by N, not N-1)
// of the absolute rank deltas between two position sequences. The sequences
// are aligned by index; extra entries in the longer one are ignored.
// Returns 0.0 for empty input.
func RankPositionVariance(originalRanks, perturbedRanks []int) float64 {
	n := len(originalRanks)
	if len(perturbedRanks) < n {
		n = len(perturbedRanks)
	}
	if n == 0 {
		return 0.0
	}

	changes := make([]float64, n)
	sum := 0.0
	for i := 0; i < n; i++ {
		delta := originalRanks[i] - perturbedRanks[i]
		if delta < 0 {
			delta = -delta
		}
		changes[i] = float64(delta)
		sum += changes[i]
	}

	mean := sum / float64(n)
	variance := 0.0
	for _, change := range changes {
		diff := change - mean
		variance += diff * diff
	}
	return variance / float64(n)
}

// ConsistencyScore returns the fraction of rank changes at or below
// maxAcceptableChange. Higher is better. An empty sequence scores 0.0 by
// explicit guard, never NaN.
func ConsistencyScore(rankChanges []int, maxAcceptableChange int) float64 {
	if len(rankChanges) == 0 {
		return 0.0
	}

	consistent := 0
	for _, change := range rankChanges {
		if change <= maxAcceptableChange {
			consistent++
		}
	}
	return float64(consistent) / float64(len(rankChanges))
}

// MeetsThresholds reports whether a test's aggregate statistics satisfy both
// fairness thresholds. Comparisons are non-strict: values exactly at a
// threshold pass. This is the single-test form of the verdict aggregator's
// per-test rule and must stay logically identical to it.
func MeetsThresholds(meanRankChange, affectedPercentage, rankThreshold, percentageThreshold float64) bool {
	return meanRankChange <= rankThreshold && affectedPercentage <= percentageThreshold
}

// DemographicParityDifference returns the absolute difference between the
// positive-outcome rates of two explicitly supplied score groups, where a
// score at or above threshold counts as positive. This is for evaluation of
// predefined proxy groups only, never for inferring sensitive attributes.
// An empty group has rate 0.0.
func DemographicParityDifference(scoresGroupA, scoresGroupB []float64, threshold float64) float64 {
	diff := positiveRate(scoresGroupA, threshold) - positiveRate(scoresGroupB, threshold)
	if diff < 0 {
		diff = -diff
	}
	return diff
}

func positiveRate(scores []float64, threshold float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}

	positive := 0
	for _, score := range scores {
		if score >= threshold {
			positive++
		}
	}
	return float64(positive) / float64(len(scores))
}
