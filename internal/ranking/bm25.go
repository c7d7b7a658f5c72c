package ranking

import (
	"math"

	"github.com/jonathan/resume-auditor/internal/types"
)

// Default Okapi BM25 parameters.
const (
	DefaultBM25K1 = 1.5
	DefaultBM25B  = 0.75
)

// BM25Ranker ranks resumes with Okapi BM25. The corpus statistics are
// recomputed from the pool on every Rank call.
type BM25Ranker struct {
	// K1 controls term frequency saturation.
	K1 float64
	// B controls document length normalization.
	B float64
}

// NewBM25Ranker creates a BM25 ranker. Zero-valued parameters fall back to
// the defaults (k1=1.5, b=0.75).
func NewBM25Ranker(k1, b float64) *BM25Ranker {
	if k1 == 0 {
		k1 = DefaultBM25K1
	}
	if b == 0 {
		b = DefaultBM25B
	}
	return &BM25Ranker{K1: k1, B: b}
}

// Rank scores every resume in the pool against the query.
func (r *BM25Ranker) Rank(query string, pool []types.Resume) (types.Ranking, error) {
	docTokens := make([]map[string]int, len(pool))
	docLengths := make([]float64, len(pool))
	df := make(map[string]int)
	totalLength := 0.0

	for i, resume := range pool {
		tokens := tokenize(resume.Text)
		docTokens[i] = termCounts(tokens)
		docLengths[i] = float64(len(tokens))
		totalLength += docLengths[i]
		for term := range docTokens[i] {
			df[term]++
		}
	}

	averageLength := 0.0
	if len(pool) > 0 {
		averageLength = totalLength / float64(len(pool))
	}

	n := float64(len(pool))
	queryTokens := tokenize(query)

	entries := make(types.Ranking, 0, len(pool))
	for i, resume := range pool {
		score := 0.0
		for _, term := range queryTokens {
			tf := float64(docTokens[i][term])
			if tf == 0 {
				continue
			}

			idf := math.Log((n-float64(df[term])+0.5)/(float64(df[term])+0.5) + 1)
			lengthNorm := 1 - r.B
			if averageLength > 0 {
				lengthNorm = 1 - r.B + r.B*docLengths[i]/averageLength
			}
			score += idf * tf * (r.K1 + 1) / (tf + r.K1*lengthNorm)
		}
		entries = append(entries, types.RankEntry{ResumeID: resume.ID, Score: score})
	}

	sortByScore(entries)
	return entries, nil
}
