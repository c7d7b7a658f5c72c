// Package ranking implements deterministic lexical resume rankers. The
// counterfactual audit engine consumes these through the Ranker interface and
// treats them as black boxes; any scorer honoring the contract below can be
// audited the same way.
package ranking

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-auditor/internal/types"
)

// Ranker ranks a resume pool against a job description query.
//
// Implementations must be deterministic pure functions of their inputs: no
// hidden state across calls, exactly one entry per input resume (no additions
// or omissions), scores descending, and a stable order for tied scores.
// Audit reproducibility depends on every part of this contract.
type Ranker interface {
	Rank(query string, pool []types.Resume) (types.Ranking, error)
}

var tokenRE = regexp.MustCompile(`[a-z0-9]+`)

// tokenize lowercases text and extracts alphanumeric word tokens.
func tokenize(text string) []string {
	return tokenRE.FindAllString(strings.ToLower(text), -1)
}

// sortByScore orders entries descending by score, keeping the input (pool)
// order for ties. Tie order is part of the ranker contract and must never be
// perturbed by re-sorting elsewhere.
func sortByScore(entries types.Ranking) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}

// termCounts returns the term frequency map of a token sequence.
func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}
