package counterfactual

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/jonathan/resume-auditor/internal/fairness"
	"github.com/jonathan/resume-auditor/internal/perturb"
	"github.com/jonathan/resume-auditor/internal/ranking"
	"github.com/jonathan/resume-auditor/internal/types"
)

// affectedCutoff is the rank delta above which a resume counts as
// significantly affected. Fixed policy constant: it does not scale with pool
// size, so affected percentages are comparable across pools of different k.
const affectedCutoff = fairness.DefaultMaxAcceptableChange

// Canonical test names used by RunAll and the fairness report.
const (
	TestGenderProxy    = "gender_proxy"
	TestNameRedaction  = "name_redaction"
	TestUniversitySwap = "university_swap"
	TestGapInsertion   = "gap_insertion"
)

// Tester runs counterfactual perturbation tests against a ranker. Every test
// constructs its own perturbed pool from scratch; a Tester holds no mutable
// state between runs and is safe for concurrent use when the ranker is a pure
// function of its inputs.
type Tester struct {
	ranker    ranking.Ranker
	generator *perturb.Generator
	logger    *zap.Logger
}

// NewTester creates a Tester for the given ranker. generator supplies
// per-type perturbation parameters and may be nil for all-default behavior;
// logger may be nil to disable logging.
func NewTester(ranker ranking.Ranker, generator *perturb.Generator, logger *zap.Logger) *Tester {
	if generator == nil {
		generator = perturb.NewGenerator(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tester{ranker: ranker, generator: generator, logger: logger}
}

// TestPerturbation measures the rank impact of one perturbation type applied
// uniformly to the pool, using the generator's configured parameters for that
// type.
func (t *Tester) TestPerturbation(query string, pool []types.Resume, perturbationType perturb.Type) (*types.TestResult, error) {
	return t.test(query, pool, perturbationType, t.generator.Params(perturbationType))
}

// TestPerturbationParams is TestPerturbation with explicit parameters,
// bypassing the generator's configuration for this run only.
func (t *Tester) TestPerturbationParams(query string, pool []types.Resume, perturbationType perturb.Type, params perturb.Params) (*types.TestResult, error) {
	return t.test(query, pool, perturbationType, params)
}

// test implements the counterfactual algorithm: rank the original pool,
// perturb every resume in place (identity preserved), re-rank, align the two
// rankings by id, and aggregate the absolute rank deltas.
func (t *Tester) test(query string, pool []types.Resume, perturbationType perturb.Type, params perturb.Params) (*types.TestResult, error) {
	if len(pool) == 0 {
		return nil, &EmptyPoolError{}
	}

	t.logger.Info("running counterfactual test",
		zap.String("perturbation", string(perturbationType)),
		zap.Int("pool_size", len(pool)))

	original, err := t.ranker.Rank(query, pool)
	if err != nil {
		return nil, err
	}
	originalPositions, err := alignedPositions(original, pool, perturbationType)
	if err != nil {
		return nil, err
	}

	perturbedPool := make([]types.Resume, len(pool))
	for i, resume := range pool {
		perturbedText, err := perturb.Apply(resume.Text, perturbationType, params)
		if err != nil {
			return nil, err
		}
		perturbed := resume
		perturbed.Text = perturbedText
		perturbedPool[i] = perturbed
	}

	reranked, err := t.ranker.Rank(query, perturbedPool)
	if err != nil {
		return nil, err
	}
	perturbedPositions, err := alignedPositions(reranked, pool, perturbationType)
	if err != nil {
		return nil, err
	}

	// Deltas in original-ranking order. Every id is present in both maps;
	// alignedPositions already rejected drops and duplicates.
	rankChanges := make([]int, 0, len(original))
	affected := 0
	for _, entry := range original {
		delta := perturbedPositions[entry.ResumeID] - originalPositions[entry.ResumeID]
		if delta < 0 {
			delta = -delta
		}
		rankChanges = append(rankChanges, delta)
		if delta > affectedCutoff {
			affected++
		}
	}

	result := &types.TestResult{
		PerturbationType:   string(perturbationType),
		MeanRankChange:     meanInt(rankChanges),
		MedianRankChange:   medianInt(rankChanges),
		MaxRankChange:      maxInt(rankChanges),
		StdRankChange:      populationStdInt(rankChanges),
		AffectedPercentage: float64(affected) / float64(len(pool)) * 100,
		NumResumes:         len(pool),
		RankChanges:        rankChanges,
	}
	return result, nil
}

// alignedPositions builds the id -> position map for a ranking and verifies
// the ranker honored its contract: exactly one entry per pool resume, no
// additions, drops, or duplicates.
func alignedPositions(r types.Ranking, pool []types.Resume, perturbationType perturb.Type) (map[string]int, error) {
	if len(r) != len(pool) {
		return nil, &InconsistencyError{
			PerturbationType: string(perturbationType),
			Message:          fmt.Sprintf("ranker returned %d entries for a pool of %d", len(r), len(pool)),
		}
	}

	positions := r.Positions()
	if len(positions) != len(r) {
		return nil, &InconsistencyError{
			PerturbationType: string(perturbationType),
			Message:          "ranker returned duplicate resume ids",
		}
	}
	for _, resume := range pool {
		if _, ok := positions[resume.ID]; !ok {
			return nil, &InconsistencyError{
				PerturbationType: string(perturbationType),
				Message:          "ranker dropped resume " + resume.ID,
			}
		}
	}
	return positions, nil
}

// TestGenderProxy tests pronoun-swap sensitivity, swapping toward the
// neutral pronoun set.
func (t *Tester) TestGenderProxy(query string, pool []types.Resume) (*types.TestResult, error) {
	params := t.generator.Params(perturb.TypeGenderPronoun)
	params.Direction = perturb.ToNeutral
	return t.test(query, pool, perturb.TypeGenderPronoun, params)
}

// TestNameRedaction tests sensitivity to the presence of candidate names.
func (t *Tester) TestNameRedaction(query string, pool []types.Resume) (*types.TestResult, error) {
	return t.TestPerturbation(query, pool, perturb.TypeNameRedaction)
}

// TestUniversitySwap tests institution-prestige sensitivity using the given
// tier table. With a missing or empty tier the underlying swap is a no-op and
// the test degrades to a pure stability measurement.
func (t *Tester) TestUniversitySwap(query string, pool []types.Resume, universityTiers map[string][]string) (*types.TestResult, error) {
	params := t.generator.Params(perturb.TypeUniversitySwap)
	params.UniversityTiers = universityTiers
	return t.test(query, pool, perturb.TypeUniversitySwap, params)
}

// TestGapInsertion tests employment-gap sensitivity with a gap of the given
// length in months.
func (t *Tester) TestGapInsertion(query string, pool []types.Resume, gapMonths int) (*types.TestResult, error) {
	params := t.generator.Params(perturb.TypeGapInsertion)
	params.GapMonths = gapMonths
	return t.test(query, pool, perturb.TypeGapInsertion, params)
}

func meanInt(values []int) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func medianInt(values []int) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return float64(sorted[mid])
}

func maxInt(values []int) int {
	max := 0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

// populationStdInt is the population standard deviation (divide by N).
func populationStdInt(values []int) float64 {
	if len(values) == 0 {
		return 0.0
	}
	mean := meanInt(values)
	variance := 0.0
	for _, v := range values {
		diff := float64(v) - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(values)))
}
