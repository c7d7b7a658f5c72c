package ranking

import (
	"math"

	"github.com/jonathan/resume-auditor/internal/types"
)

// TFIDFRanker ranks resumes by cosine similarity between tf-idf vectors of
// the query and each resume. Document frequencies are computed over the pool
// passed to each Rank call, so the ranker carries no state between calls.
type TFIDFRanker struct{}

// NewTFIDFRanker creates a tf-idf cosine similarity ranker.
func NewTFIDFRanker() *TFIDFRanker {
	return &TFIDFRanker{}
}

// Rank scores every resume in the pool against the query.
func (r *TFIDFRanker) Rank(query string, pool []types.Resume) (types.Ranking, error) {
	docTokens := make([]map[string]int, len(pool))
	df := make(map[string]int)
	for i, resume := range pool {
		counts := termCounts(tokenize(resume.Text))
		docTokens[i] = counts
		for term := range counts {
			df[term]++
		}
	}

	// Smoothed idf: ln((1+N)/(1+df)) + 1, so pool-wide terms still carry
	// nonzero weight and unseen query terms do not blow up.
	n := float64(len(pool))
	idf := func(term string) float64 {
		return math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	queryVector := make(map[string]float64)
	for term, count := range termCounts(tokenize(query)) {
		queryVector[term] = float64(count) * idf(term)
	}
	queryNorm := vectorNorm(queryVector)

	entries := make(types.Ranking, 0, len(pool))
	for i, resume := range pool {
		docVector := make(map[string]float64, len(docTokens[i]))
		for term, count := range docTokens[i] {
			docVector[term] = float64(count) * idf(term)
		}

		score := 0.0
		if norm := vectorNorm(docVector); norm > 0 && queryNorm > 0 {
			dot := 0.0
			for term, weight := range queryVector {
				dot += weight * docVector[term]
			}
			score = dot / (norm * queryNorm)
		}
		entries = append(entries, types.RankEntry{ResumeID: resume.ID, Score: score})
	}

	sortByScore(entries)
	return entries, nil
}

func vectorNorm(vector map[string]float64) float64 {
	sum := 0.0
	for _, weight := range vector {
		sum += weight * weight
	}
	return math.Sqrt(sum)
}
