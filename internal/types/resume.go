// Package types provides type definitions for structured data used throughout the resume-auditor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Resume represents a single rankable resume. Identity is stable across
// perturbation: a perturbed copy keeps the original ID and only Text changes.
type Resume struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	// Aux carries opaque auxiliary fields (source file, label, metadata).
	// The audit engine never reads or rewrites these.
	Aux map[string]any `json:"aux,omitempty"`
	// Perturbation names the perturbation applied to produce this resume.
	// Empty for originals.
	Perturbation string `json:"perturbation,omitempty"`
	// OriginalID points back to the source resume when this is a variant
	// entity (ID suffixed with "_variant"). Empty otherwise.
	OriginalID string `json:"original_id,omitempty"`
}

// RankEntry is a single (resume id, score) entry of a ranking.
type RankEntry struct {
	ResumeID string  `json:"resume_id"`
	Score    float64 `json:"score"`
}

// Ranking is an ordered sequence of rank entries, descending by score.
// Ties keep the ranker's own stable order; the audit engine never re-sorts.
// A Ranking is immutable once produced.
type Ranking []RankEntry

// Positions builds the id -> zero-based index map for a ranking.
// The map is derived on demand for delta computation and never persisted.
func (r Ranking) Positions() map[string]int {
	positions := make(map[string]int, len(r))
	for i, entry := range r {
		positions[entry.ResumeID] = i
	}
	return positions
}
