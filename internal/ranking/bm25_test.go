package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-auditor/internal/types"
)

func TestNewBM25Ranker_ZeroValuesFallBackToDefaults(t *testing.T) {
	ranker := NewBM25Ranker(0, 0)

	assert.Equal(t, DefaultBM25K1, ranker.K1)
	assert.Equal(t, DefaultBM25B, ranker.B)
}

func TestNewBM25Ranker_ExplicitParametersKept(t *testing.T) {
	ranker := NewBM25Ranker(1.2, 0.5)

	assert.Equal(t, 1.2, ranker.K1)
	assert.Equal(t, 0.5, ranker.B)
}

func TestBM25Ranker_RelevantResumeRanksFirst(t *testing.T) {
	ranker := NewBM25Ranker(0, 0)
	pool := []types.Resume{
		{ID: "chef", Text: "pastry chef with restaurant management experience"},
		{ID: "golang", Text: "golang engineer building distributed systems"},
		{ID: "mixed", Text: "golang hobbyist and pastry enthusiast"},
	}

	ranking, err := ranker.Rank("golang distributed systems engineer", pool)
	require.NoError(t, err)
	require.Len(t, ranking, 3)

	assert.Equal(t, "golang", ranking[0].ResumeID)
	assert.Equal(t, "chef", ranking[2].ResumeID)
}

func TestBM25Ranker_NoOverlapScoresZero(t *testing.T) {
	ranker := NewBM25Ranker(0, 0)
	pool := []types.Resume{{ID: "a", Text: "pastry chef"}}

	ranking, err := ranker.Rank("golang engineer", pool)
	require.NoError(t, err)

	assert.Equal(t, 0.0, ranking[0].Score)
}

func TestBM25Ranker_TermFrequencySaturates(t *testing.T) {
	// Repeating a term helps, but with diminishing returns controlled by K1:
	// ten mentions do not score ten times one mention.
	ranker := NewBM25Ranker(0, 0)
	pool := []types.Resume{
		{ID: "once", Text: "golang"},
		{ID: "spam", Text: "golang golang golang golang golang golang golang golang golang golang"},
	}

	ranking, err := ranker.Rank("golang", pool)
	require.NoError(t, err)

	positions := ranking.Positions()
	spamScore := ranking[positions["spam"]].Score
	onceScore := ranking[positions["once"]].Score
	assert.Greater(t, spamScore, 0.0)
	assert.Less(t, spamScore, onceScore*10)
}

func TestBM25Ranker_TiesKeepPoolOrder(t *testing.T) {
	ranker := NewBM25Ranker(0, 0)
	pool := []types.Resume{
		{ID: "first", Text: "golang engineer"},
		{ID: "second", Text: "golang engineer"},
	}

	ranking, err := ranker.Rank("golang", pool)
	require.NoError(t, err)

	assert.Equal(t, "first", ranking[0].ResumeID)
	assert.Equal(t, "second", ranking[1].ResumeID)
}

func TestBM25Ranker_Deterministic(t *testing.T) {
	ranker := NewBM25Ranker(0, 0)
	pool := []types.Resume{
		{ID: "a", Text: "golang engineer distributed systems kubernetes"},
		{ID: "b", Text: "python data pipelines airflow spark"},
		{ID: "c", Text: "golang and python platform work"},
	}

	first, err := ranker.Rank("golang platform engineer", pool)
	require.NoError(t, err)
	second, err := ranker.Rank("golang platform engineer", pool)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
