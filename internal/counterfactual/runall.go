package counterfactual

import (
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-auditor/internal/perturb"
	"github.com/jonathan/resume-auditor/internal/types"
)

// namedTest pairs a canonical test name with its runner.
type namedTest struct {
	name string
	run  func() (*types.TestResult, error)
}

func (t *Tester) standardTests(query string, pool []types.Resume, universityTiers map[string][]string) []namedTest {
	tests := []namedTest{
		{TestGenderProxy, func() (*types.TestResult, error) { return t.TestGenderProxy(query, pool) }},
		{TestNameRedaction, func() (*types.TestResult, error) { return t.TestNameRedaction(query, pool) }},
	}
	if universityTiers != nil {
		tests = append(tests, namedTest{TestUniversitySwap, func() (*types.TestResult, error) {
			return t.TestUniversitySwap(query, pool, universityTiers)
		}})
	}
	tests = append(tests, namedTest{TestGapInsertion, func() (*types.TestResult, error) {
		return t.TestGapInsertion(query, pool, t.generator.Params(perturb.TypeGapInsertion).GapMonths)
	}})
	return tests
}

// RunAll runs the standard fairness test suite sequentially: gender proxy,
// name redaction, university swap (only when a tier table is supplied), and
// gap insertion. The returned map is keyed by canonical test name.
func (t *Tester) RunAll(query string, pool []types.Resume, universityTiers map[string][]string) (map[string]*types.TestResult, error) {
	results := make(map[string]*types.TestResult)
	for _, test := range t.standardTests(query, pool, universityTiers) {
		result, err := test.run()
		if err != nil {
			return nil, err
		}
		results[test.name] = result
	}
	return results, nil
}

// RunAllParallel runs the standard suite with one goroutine per test. Each
// test constructs its own perturbed pool and shares nothing with the others,
// so this is semantically identical to RunAll provided the ranker is a pure
// function of its inputs. Aggregation waits for every test before returning.
func (t *Tester) RunAllParallel(query string, pool []types.Resume, universityTiers map[string][]string) (map[string]*types.TestResult, error) {
	tests := t.standardTests(query, pool, universityTiers)
	results := make([]*types.TestResult, len(tests))

	var g errgroup.Group
	for i, test := range tests {
		i, test := i, test
		g.Go(func() error {
			result, err := test.run()
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byName := make(map[string]*types.TestResult, len(tests))
	for i, test := range tests {
		byName[test.name] = results[i]
	}
	return byName, nil
}
