package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-auditor/internal/perturb"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault_Values(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 3.0, cfg.Thresholds.MaxMeanRankChange)
	assert.Equal(t, 15.0, cfg.Thresholds.MaxAffectedPercentage)
	assert.Equal(t, "tfidf", cfg.Ranker)
	assert.False(t, cfg.Parallel)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"thresholds": {"max_mean_rank_change": 2.0, "max_affected_percentage": 10.0},
		"ranker": "bm25",
		"parallel": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2.0, cfg.Thresholds.MaxMeanRankChange)
	assert.Equal(t, 10.0, cfg.Thresholds.MaxAffectedPercentage)
	assert.Equal(t, "bm25", cfg.Ranker)
	assert.True(t, cfg.Parallel)
}

func TestLoad_MissingFieldsKeepDefaults(t *testing.T) {
	path := writeConfig(t, `{"ranker": "hybrid"}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "hybrid", cfg.Ranker)
	assert.Equal(t, 3.0, cfg.Thresholds.MaxMeanRankChange)
	assert.Equal(t, 15.0, cfg.Thresholds.MaxAffectedPercentage)
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{broken`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoad_UnknownRankerRejected(t *testing.T) {
	path := writeConfig(t, `{"ranker": "neural"}`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoad_NegativeThresholdRejected(t *testing.T) {
	path := writeConfig(t, `{"thresholds": {"max_mean_rank_change": -1.0, "max_affected_percentage": 10.0}}`)

	_, err := Load(path)

	require.Error(t, err)
}

func TestLoad_AffectedPercentageAboveHundredRejected(t *testing.T) {
	path := writeConfig(t, `{"thresholds": {"max_mean_rank_change": 1.0, "max_affected_percentage": 150.0}}`)

	_, err := Load(path)

	require.Error(t, err)
}

func TestValidate_UnknownPerturbationKey(t *testing.T) {
	cfg := Default()
	cfg.Perturbations = map[string]perturb.Params{"tone_shift": {}}

	err := cfg.Validate()

	var unknownErr *perturb.UnknownTypeError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, perturb.Type("tone_shift"), unknownErr.Type)
}

func TestValidate_EmptyUniversityTierRejected(t *testing.T) {
	cfg := Default()
	cfg.UniversityTiers = map[string][]string{"tier1": {}}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `university tier "tier1" is empty`)
}

func TestGeneratorConfig_TierTableInjectedIntoUniversitySwap(t *testing.T) {
	cfg := Default()
	cfg.UniversityTiers = map[string][]string{
		"tier1": {"MIT"},
		"tier2": {"State University"},
	}
	cfg.Perturbations = map[string]perturb.Params{
		string(perturb.TypeUniversitySwap): {FromTier: "tier1", ToTier: "tier2"},
	}

	generatorConfig, err := cfg.GeneratorConfig()
	require.NoError(t, err)

	params := generatorConfig[perturb.TypeUniversitySwap]
	assert.Equal(t, cfg.UniversityTiers, params.UniversityTiers)
	assert.Equal(t, "tier1", params.FromTier)
	assert.Equal(t, "tier2", params.ToTier)
}

func TestGeneratorConfig_UniversitySwapEntryAddedWhenTiersConfigured(t *testing.T) {
	cfg := Default()
	cfg.UniversityTiers = map[string][]string{
		"tier1": {"MIT"},
		"tier2": {"State University"},
	}

	generatorConfig, err := cfg.GeneratorConfig()
	require.NoError(t, err)

	require.Contains(t, generatorConfig, perturb.TypeUniversitySwap)
	assert.Equal(t, cfg.UniversityTiers, generatorConfig[perturb.TypeUniversitySwap].UniversityTiers)
}

func TestGeneratorConfig_ExplicitTiersNotOverridden(t *testing.T) {
	ownTiers := map[string][]string{"tier1": {"Oxford"}, "tier2": {"Regional University"}}
	cfg := Default()
	cfg.UniversityTiers = map[string][]string{"tier1": {"MIT"}, "tier2": {"State University"}}
	cfg.Perturbations = map[string]perturb.Params{
		string(perturb.TypeUniversitySwap): {UniversityTiers: ownTiers},
	}

	generatorConfig, err := cfg.GeneratorConfig()
	require.NoError(t, err)

	assert.Equal(t, ownTiers, generatorConfig[perturb.TypeUniversitySwap].UniversityTiers)
}

func TestGeneratorConfig_PassesThroughOtherTypes(t *testing.T) {
	cfg := Default()
	cfg.Perturbations = map[string]perturb.Params{
		string(perturb.TypeGapInsertion): {GapMonths: 12},
		string(perturb.TypeTypos):        {TypoRate: 0.1},
	}

	generatorConfig, err := cfg.GeneratorConfig()
	require.NoError(t, err)

	assert.Equal(t, 12, generatorConfig[perturb.TypeGapInsertion].GapMonths)
	assert.Equal(t, 0.1, generatorConfig[perturb.TypeTypos].TypoRate)
	assert.NotContains(t, generatorConfig, perturb.TypeUniversitySwap)
}
