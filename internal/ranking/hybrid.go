package ranking

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/resume-auditor/internal/types"
)

// Weights are the hybrid ranker's component weights. They must sum to 1 so
// the combined score stays in [0, 1] and each component's contribution is
// directly auditable.
type Weights struct {
	Semantic   float64 `json:"semantic"`
	Education  float64 `json:"education"`
	Continuity float64 `json:"continuity"`
	Other      float64 `json:"other"`
}

// DefaultWeights returns the production-realistic component weights.
func DefaultWeights() Weights {
	return Weights{Semantic: 0.70, Education: 0.15, Continuity: 0.10, Other: 0.05}
}

// DefaultUniversityPrestige returns a fresh copy of the built-in institution
// prestige table. Callers own the returned map and may extend or replace it;
// the hybrid ranker never reads a shared table.
func DefaultUniversityPrestige() map[string]float64 {
	return map[string]float64{
		"IIT": 1.0, "MIT": 1.0, "Stanford": 1.0, "Harvard": 1.0,
		"Berkeley": 1.0, "CMU": 1.0, "Caltech": 1.0,
		"Princeton": 1.0, "Yale": 1.0, "Oxford": 1.0, "Cambridge": 1.0,

		"Georgia Tech": 0.85, "UT Austin": 0.85, "UIUC": 0.85,
		"University of Washington": 0.85, "UCLA": 0.85, "USC": 0.85,
		"Cornell": 0.85, "Columbia": 0.85, "Penn": 0.85,

		"State University": 0.6, "Regional University": 0.6,
	}
}

// unknownEducationScore is the education signal for resumes mentioning no
// listed institution.
const unknownEducationScore = 0.4

var gapSignalREs = []*regexp.Regexp{
	regexp.MustCompile(`employment gap`),
	regexp.MustCompile(`career break`),
	regexp.MustCompile(`gap of \d+ months?`),
	regexp.MustCompile(`unemployed`),
	regexp.MustCompile(`seeking opportunities`),
	regexp.MustCompile(`freelance period`),
}

var continuitySignalREs = []*regexp.Regexp{
	regexp.MustCompile(`currently employed`),
	regexp.MustCompile(`present\b`),
	regexp.MustCompile(`continuous`),
	regexp.MustCompile(`\d+ years of experience`),
}

// HybridRanker combines a semantic base ranker with explicit structured
// signals: institution prestige and employment continuity. The signals are
// deliberately explicit and weighted so their exact contribution can be
// measured, which is what makes this ranker a useful audit subject.
type HybridRanker struct {
	base     Ranker
	weights  Weights
	prestige map[string]float64
	// structured disables the education/continuity signals when false,
	// making the ranker a pass-through for its base.
	structured bool
}

// NewHybridRanker creates a hybrid ranker over the given base ranker.
// prestige maps institution name to a [0,1] score; nil uses the built-in
// table. Returns an error when the weights do not sum to 1 (±0.01).
func NewHybridRanker(base Ranker, weights Weights, prestige map[string]float64) (*HybridRanker, error) {
	total := weights.Semantic + weights.Education + weights.Continuity + weights.Other
	if math.Abs(total-1.0) > 0.01 {
		return nil, fmt.Errorf("hybrid ranker weights must sum to 1.0, got %.3f", total)
	}
	if prestige == nil {
		prestige = DefaultUniversityPrestige()
	}
	return &HybridRanker{base: base, weights: weights, prestige: prestige, structured: true}, nil
}

// DisableStructuredSignals makes the ranker return its base ranking
// unchanged. Used to isolate how much reshuffling the structured signals
// themselves cause.
func (r *HybridRanker) DisableStructuredSignals() {
	r.structured = false
}

// Rank scores every resume with the weighted combination of the base score
// and the structured signals.
func (r *HybridRanker) Rank(query string, pool []types.Resume) (types.Ranking, error) {
	baseRanking, err := r.base.Rank(query, pool)
	if err != nil {
		return nil, err
	}
	if !r.structured {
		return baseRanking, nil
	}

	baseScores := make(map[string]float64, len(baseRanking))
	for _, entry := range baseRanking {
		baseScores[entry.ResumeID] = entry.Score
	}

	entries := make(types.Ranking, 0, len(pool))
	for _, resume := range pool {
		total := r.weights.Semantic*baseScores[resume.ID] +
			r.weights.Education*r.educationScore(resume.Text) +
			r.weights.Continuity*continuityScore(resume.Text) +
			r.weights.Other*0.5 // neutral placeholder signal

		entries = append(entries, types.RankEntry{ResumeID: resume.ID, Score: total})
	}

	sortByScore(entries)
	return entries, nil
}

// educationScore returns the highest prestige score among mentioned
// institutions, falling back to the unknown-institution score. Matching is a
// case-insensitive substring check, mirroring how coarse real systems are.
func (r *HybridRanker) educationScore(text string) float64 {
	lower := strings.ToLower(text)
	score := unknownEducationScore
	for university, tierScore := range r.prestige {
		if strings.Contains(lower, strings.ToLower(university)) && tierScore > score {
			score = tierScore
		}
	}
	return score
}

// continuityScore penalizes gap indicators and rewards continuity indicators.
// Gap signals dominate: any gap match caps the score regardless of
// continuity mentions.
func continuityScore(text string) float64 {
	lower := strings.ToLower(text)

	gaps := 0
	for _, re := range gapSignalREs {
		if re.MatchString(lower) {
			gaps++
		}
	}
	if gaps > 0 {
		score := 1.0 - float64(gaps)*0.2
		if score < 0.3 {
			score = 0.3
		}
		return score
	}

	continuity := 0
	for _, re := range continuitySignalREs {
		if re.MatchString(lower) {
			continuity++
		}
	}
	if continuity > 0 {
		score := 0.7 + float64(continuity)*0.1
		if score > 1.0 {
			score = 1.0
		}
		return score
	}

	return 0.5
}
