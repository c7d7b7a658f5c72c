// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-auditor/internal/counterfactual"
	"github.com/jonathan/resume-auditor/internal/perturb"
	"github.com/jonathan/resume-auditor/internal/types"
)

var validate = validator.New()

// Config is the audit configuration loaded from a JSON file. Missing fields
// use defaults; an unknown perturbation key is a hard error at load time, not
// a silently skipped test.
type Config struct {
	// Thresholds are the fairness verdict limits.
	Thresholds types.Thresholds `json:"thresholds"`
	// UniversityTiers maps tier name to institution list for the
	// university-swap test. May be empty, which degrades that test to a
	// documented no-op.
	UniversityTiers map[string][]string `json:"university_tiers,omitempty"`
	// Perturbations maps perturbation type name to its default parameters.
	Perturbations map[string]perturb.Params `json:"perturbations,omitempty"`
	// Ranker selects the audit subject.
	Ranker string `json:"ranker,omitempty" validate:"omitempty,oneof=tfidf bm25 hybrid"`
	// DatabaseURL enables report persistence when set.
	DatabaseURL string `json:"database_url,omitempty"`
	// Parallel runs the test suite with one goroutine per perturbation type.
	Parallel bool `json:"parallel,omitempty"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Thresholds: counterfactual.DefaultThresholds(),
		Ranker:     "tfidf",
	}
}

// Load reads and validates a JSON configuration file. Fields absent from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and that every configured perturbation
// key names a dispatchable type.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for name := range c.Perturbations {
		if !knownPerturbationType(perturb.Type(name)) {
			return &perturb.UnknownTypeError{Type: perturb.Type(name)}
		}
	}

	for tier, universities := range c.UniversityTiers {
		if len(universities) == 0 {
			return fmt.Errorf("config error: university tier %q is empty", tier)
		}
	}
	return nil
}

// GeneratorConfig converts the configured perturbation parameters to the
// typed map consumed by perturb.NewGenerator. The university tier table is
// injected into the university-swap parameters when those omit their own.
func (c *Config) GeneratorConfig() (map[perturb.Type]perturb.Params, error) {
	generatorConfig := make(map[perturb.Type]perturb.Params, len(c.Perturbations)+1)

	for name, params := range c.Perturbations {
		perturbationType := perturb.Type(name)
		if !knownPerturbationType(perturbationType) {
			return nil, &perturb.UnknownTypeError{Type: perturbationType}
		}
		if perturbationType == perturb.TypeUniversitySwap && params.UniversityTiers == nil {
			params.UniversityTiers = c.UniversityTiers
		}
		generatorConfig[perturbationType] = params
	}

	if _, ok := generatorConfig[perturb.TypeUniversitySwap]; !ok && c.UniversityTiers != nil {
		generatorConfig[perturb.TypeUniversitySwap] = perturb.Params{UniversityTiers: c.UniversityTiers}
	}

	return generatorConfig, nil
}

func knownPerturbationType(t perturb.Type) bool {
	for _, known := range perturb.Types {
		if t == known {
			return true
		}
	}
	return false
}
