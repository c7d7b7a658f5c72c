// Package evaluation provides ranking quality metrics (NDCG, precision@k,
// MRR, Spearman correlation) for scoring rankers against labeled relevance
// data. These measure quality, not fairness; the fairness package covers
// stability under perturbation.
package evaluation

import (
	"fmt"
	"math"
	"sort"
)

// DefaultRelevanceThreshold is the true-relevance score at or above which an
// item counts as relevant for precision and MRR.
const DefaultRelevanceThreshold = 0.5

// rankedIndices returns item indices sorted by predicted score descending,
// stable for ties.
func rankedIndices(predicted []float64) []int {
	indices := make([]int, len(predicted))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return predicted[indices[a]] > predicted[indices[b]]
	})
	return indices
}

// NDCG computes normalized discounted cumulative gain at k. k <= 0 means no
// cutoff. Returns 0.0 when no item has positive true relevance, rather than
// letting the ideal-DCG division produce NaN.
func NDCG(trueRelevance, predicted []float64, k int) (float64, error) {
	if len(trueRelevance) != len(predicted) {
		return 0, fmt.Errorf("relevance and prediction lengths differ: %d vs %d", len(trueRelevance), len(predicted))
	}
	if k <= 0 || k > len(predicted) {
		k = len(predicted)
	}

	anyRelevant := false
	for _, rel := range trueRelevance {
		if rel > 0 {
			anyRelevant = true
			break
		}
	}
	if !anyRelevant {
		return 0.0, nil
	}

	dcg := 0.0
	for rank, idx := range rankedIndices(predicted)[:k] {
		dcg += trueRelevance[idx] / math.Log2(float64(rank)+2)
	}

	ideal := make([]float64, len(trueRelevance))
	copy(ideal, trueRelevance)
	sort.Sort(sort.Reverse(sort.Float64Slice(ideal)))

	idcg := 0.0
	for rank, rel := range ideal[:k] {
		idcg += rel / math.Log2(float64(rank)+2)
	}
	if idcg == 0 {
		return 0.0, nil
	}
	return dcg / idcg, nil
}

// PrecisionAtK computes the share of the top-k predicted items whose true
// relevance meets the threshold. The divisor is k even when the pool is
// smaller, so asking for more results than exist is penalized.
func PrecisionAtK(trueRelevance, predicted []float64, k int, relevanceThreshold float64) (float64, error) {
	if len(trueRelevance) != len(predicted) {
		return 0, fmt.Errorf("relevance and prediction lengths differ: %d vs %d", len(trueRelevance), len(predicted))
	}
	if k <= 0 {
		return 0, fmt.Errorf("k must be positive, got %d", k)
	}

	top := rankedIndices(predicted)
	if k < len(top) {
		top = top[:k]
	}

	relevant := 0
	for _, idx := range top {
		if trueRelevance[idx] >= relevanceThreshold {
			relevant++
		}
	}
	return float64(relevant) / float64(k), nil
}

// MRR computes the reciprocal rank of the first relevant item in the
// predicted order, or 0.0 when nothing relevant exists.
func MRR(trueRelevance, predicted []float64, relevanceThreshold float64) (float64, error) {
	if len(trueRelevance) != len(predicted) {
		return 0, fmt.Errorf("relevance and prediction lengths differ: %d vs %d", len(trueRelevance), len(predicted))
	}

	for rank, idx := range rankedIndices(predicted) {
		if trueRelevance[idx] >= relevanceThreshold {
			return 1.0 / float64(rank+1), nil
		}
	}
	return 0.0, nil
}

// Spearman computes the Spearman rank correlation between two score
// sequences, using average ranks for ties. Degenerate inputs (fewer than two
// pairs, or zero variance in either sequence) return 0.0 by explicit branch.
func Spearman(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("rankings must have same length: %d vs %d", len(a), len(b))
	}
	if len(a) < 2 {
		return 0.0, nil
	}

	ranksA := averageRanks(a)
	ranksB := averageRanks(b)

	n := float64(len(a))
	meanA, meanB := 0.0, 0.0
	for i := range ranksA {
		meanA += ranksA[i]
		meanB += ranksB[i]
	}
	meanA /= n
	meanB /= n

	cov, varA, varB := 0.0, 0.0, 0.0
	for i := range ranksA {
		da := ranksA[i] - meanA
		db := ranksB[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 || varB == 0 {
		return 0.0, nil
	}
	return cov / math.Sqrt(varA*varB), nil
}

// averageRanks assigns 1-based ranks, averaging over tied values.
func averageRanks(values []float64) []float64 {
	indices := make([]int, len(values))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return values[indices[a]] < values[indices[b]]
	})

	ranks := make([]float64, len(values))
	i := 0
	for i < len(indices) {
		j := i
		for j+1 < len(indices) && values[indices[j+1]] == values[indices[i]] {
			j++
		}
		// Average of positions i..j, 1-based.
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[indices[k]] = avg
		}
		i = j + 1
	}
	return ranks
}
