package counterfactual

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-auditor/internal/perturb"
	"github.com/jonathan/resume-auditor/internal/types"
)

// scoreRanker ranks by a caller-supplied scoring function, descending, with
// stable order on ties. It never drops or duplicates ids.
type scoreRanker struct {
	score func(types.Resume) float64
}

func (r scoreRanker) Rank(_ string, pool []types.Resume) (types.Ranking, error) {
	entries := make(types.Ranking, 0, len(pool))
	for _, resume := range pool {
		entries = append(entries, types.RankEntry{ResumeID: resume.ID, Score: r.score(resume)})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	return entries, nil
}

// droppingRanker violates the ranker contract by omitting the first resume.
type droppingRanker struct{}

func (droppingRanker) Rank(_ string, pool []types.Resume) (types.Ranking, error) {
	entries := make(types.Ranking, 0, len(pool)-1)
	for _, resume := range pool[1:] {
		entries = append(entries, types.RankEntry{ResumeID: resume.ID, Score: 1.0})
	}
	return entries, nil
}

// duplicatingRanker violates the contract by listing the first resume twice
// in place of the second, keeping the entry count intact.
type duplicatingRanker struct{}

func (duplicatingRanker) Rank(_ string, pool []types.Resume) (types.Ranking, error) {
	entries := make(types.Ranking, 0, len(pool))
	for i, resume := range pool {
		id := resume.ID
		if i == 1 {
			id = pool[0].ID
		}
		entries = append(entries, types.RankEntry{ResumeID: id, Score: float64(len(pool) - i)})
	}
	return entries, nil
}

type erroringRanker struct{}

func (erroringRanker) Rank(_ string, _ []types.Resume) (types.Ranking, error) {
	return nil, fmt.Errorf("model backend unavailable")
}

// gapPool builds a ten-resume pool with no experience headers, so the gap
// marker lands at the text midpoint for every resume.
func gapPool() []types.Resume {
	pool := make([]types.Resume, 10)
	for i := range pool {
		pool[i] = types.Resume{
			ID:   fmt.Sprintf("r%d", i),
			Text: fmt.Sprintf("candidate %d skills golang kubernetes", i),
		}
	}
	return pool
}

// gapSensitiveScore ranks r0..r9 by descending base score, except that r0 and
// r1 sink to the bottom once a gap marker appears in their text.
func gapSensitiveScore(resume types.Resume) float64 {
	base := map[string]float64{
		"r0": 10, "r1": 9, "r2": 8, "r3": 7, "r4": 6,
		"r5": 5, "r6": 4, "r7": 3, "r8": 2, "r9": 1,
	}
	if strings.Contains(resume.Text, "[EMPLOYMENT GAP") {
		switch resume.ID {
		case "r0":
			return 0.2
		case "r1":
			return 0.1
		}
	}
	return base[resume.ID]
}

func TestTestPerturbation_StableRankerYieldsZeroDeltas(t *testing.T) {
	// Scoring ignores text entirely, so every perturbation leaves the
	// ranking untouched.
	ranker := scoreRanker{score: func(r types.Resume) float64 {
		return float64(len(r.ID))*10 + float64(r.ID[len(r.ID)-1])
	}}
	tester := NewTester(ranker, nil, nil)

	result, err := tester.TestPerturbation("backend engineer", gapPool(), perturb.TypeGapInsertion)
	require.NoError(t, err)

	assert.Equal(t, string(perturb.TypeGapInsertion), result.PerturbationType)
	assert.Equal(t, 0.0, result.MeanRankChange)
	assert.Equal(t, 0.0, result.MedianRankChange)
	assert.Equal(t, 0, result.MaxRankChange)
	assert.Equal(t, 0.0, result.StdRankChange)
	assert.Equal(t, 0.0, result.AffectedPercentage)
	assert.Equal(t, 10, result.NumResumes)
	assert.Equal(t, make([]int, 10), result.RankChanges)
}

func TestTestPerturbation_SensitiveRankerStatistics(t *testing.T) {
	// r0 and r1 drop from the top to the bottom (delta 8 each) and the other
	// eight resumes each move up two places: mean 3.2, median 2, max 8,
	// affected 2 of 10.
	tester := NewTester(scoreRanker{score: gapSensitiveScore}, nil, nil)

	result, err := tester.TestGapInsertion("backend engineer", gapPool(), 6)
	require.NoError(t, err)

	assert.InDelta(t, 3.2, result.MeanRankChange, 1e-9)
	assert.InDelta(t, 2.0, result.MedianRankChange, 1e-9)
	assert.Equal(t, 8, result.MaxRankChange)
	assert.InDelta(t, 2.4, result.StdRankChange, 1e-9)
	assert.InDelta(t, 20.0, result.AffectedPercentage, 1e-9)
	assert.Equal(t, 10, result.NumResumes)

	// Deltas are reported in original-ranking order: r0 first.
	require.Len(t, result.RankChanges, 10)
	assert.Equal(t, 8, result.RankChanges[0])
	assert.Equal(t, 8, result.RankChanges[1])
	for _, delta := range result.RankChanges[2:] {
		assert.Equal(t, 2, delta)
	}
}

func TestTestPerturbation_DeltasBoundedByPoolSize(t *testing.T) {
	// A ranker that fully reverses under perturbation produces the maximum
	// possible delta, n-1, and never more.
	ranker := scoreRanker{score: func(r types.Resume) float64 {
		base := float64(10 - int(r.ID[1]-'0'))
		if strings.Contains(r.Text, "[EMPLOYMENT GAP") {
			return -base
		}
		return base
	}}
	tester := NewTester(ranker, nil, nil)

	result, err := tester.TestGapInsertion("query", gapPool(), 6)
	require.NoError(t, err)

	assert.Equal(t, 9, result.MaxRankChange)
	for _, delta := range result.RankChanges {
		assert.GreaterOrEqual(t, delta, 0)
		assert.LessOrEqual(t, delta, 9)
	}
}

func TestTestPerturbation_EmptyPool(t *testing.T) {
	tester := NewTester(scoreRanker{score: gapSensitiveScore}, nil, nil)

	_, err := tester.TestPerturbation("query", nil, perturb.TypeGapInsertion)

	var emptyErr *EmptyPoolError
	require.ErrorAs(t, err, &emptyErr)
}

func TestTestPerturbation_DroppedIDIsFatal(t *testing.T) {
	tester := NewTester(droppingRanker{}, nil, nil)

	_, err := tester.TestPerturbation("query", gapPool(), perturb.TypeGapInsertion)
	require.Error(t, err)

	var inconsistencyErr *InconsistencyError
	require.ErrorAs(t, err, &inconsistencyErr)
	assert.Equal(t, string(perturb.TypeGapInsertion), inconsistencyErr.PerturbationType)
	assert.Contains(t, err.Error(), "gap_insertion")
}

func TestTestPerturbation_DuplicateIDIsFatal(t *testing.T) {
	tester := NewTester(duplicatingRanker{}, nil, nil)

	_, err := tester.TestPerturbation("query", gapPool(), perturb.TypeGapInsertion)
	require.Error(t, err)

	var inconsistencyErr *InconsistencyError
	require.ErrorAs(t, err, &inconsistencyErr)
	assert.Contains(t, inconsistencyErr.Message, "duplicate")
}

func TestTestPerturbation_RankerErrorPropagates(t *testing.T) {
	tester := NewTester(erroringRanker{}, nil, nil)

	_, err := tester.TestPerturbation("query", gapPool(), perturb.TypeGapInsertion)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model backend unavailable")
}

func TestTestPerturbation_UnknownTypeFromDispatcher(t *testing.T) {
	tester := NewTester(scoreRanker{score: gapSensitiveScore}, nil, nil)

	_, err := tester.TestPerturbation("query", gapPool(), perturb.Type("bogus"))

	var unknownErr *perturb.UnknownTypeError
	require.ErrorAs(t, err, &unknownErr)
}

func TestTestPerturbation_PoolNotMutated(t *testing.T) {
	tester := NewTester(scoreRanker{score: gapSensitiveScore}, nil, nil)
	pool := gapPool()
	originalTexts := make([]string, len(pool))
	for i, resume := range pool {
		originalTexts[i] = resume.Text
	}

	_, err := tester.TestPerturbation("query", pool, perturb.TypeGapInsertion)
	require.NoError(t, err)

	for i, resume := range pool {
		assert.Equal(t, originalTexts[i], resume.Text)
		assert.Empty(t, resume.Perturbation)
	}
}

func TestTestPerturbation_Deterministic(t *testing.T) {
	// Two identical runs produce identical results, including the seeded
	// typo perturbation.
	tester := NewTester(scoreRanker{score: gapSensitiveScore}, nil, nil)
	pool := gapPool()

	for _, perturbationType := range []perturb.Type{perturb.TypeGapInsertion, perturb.TypeTypos} {
		first, err := tester.TestPerturbation("query", pool, perturbationType)
		require.NoError(t, err)
		second, err := tester.TestPerturbation("query", pool, perturbationType)
		require.NoError(t, err)

		assert.Equal(t, first, second, "type %s", perturbationType)
	}
}

func TestTestGenderProxy_SwapsTowardNeutral(t *testing.T) {
	// The ranker rewards masculine pronouns; swapping to neutral strips that
	// signal and reorders the pool.
	ranker := scoreRanker{score: func(r types.Resume) float64 {
		score := float64(len(r.ID))
		if strings.Contains(r.Text, " he ") {
			score += 100
		}
		return score
	}}
	tester := NewTester(ranker, nil, nil)
	pool := []types.Resume{
		{ID: "a", Text: "engineer and he shipped systems"},
		{ID: "bb", Text: "engineer who shipped systems"},
	}

	result, err := tester.TestGenderProxy("query", pool)
	require.NoError(t, err)

	assert.Equal(t, string(perturb.TypeGenderPronoun), result.PerturbationType)
	assert.Equal(t, []int{1, 1}, result.RankChanges)
}

func TestTestUniversitySwap_MissingTierDegradesToStability(t *testing.T) {
	tester := NewTester(scoreRanker{score: gapSensitiveScore}, nil, nil)

	result, err := tester.TestUniversitySwap("query", gapPool(), map[string][]string{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.MeanRankChange)
	assert.Equal(t, 0.0, result.AffectedPercentage)
}
