package perturb

import (
	"github.com/jonathan/resume-auditor/internal/types"
)

// Type identifies one perturbation in the closed set handled by Apply.
type Type string

// The closed set of perturbation types.
const (
	TypeGenderPronoun      Type = "gender_pronoun"
	TypeNameRedaction      Type = "name_redaction"
	TypeUniversitySwap     Type = "university_swap"
	TypeGapInsertion       Type = "gap_insertion"
	TypeTypos              Type = "typos"
	TypeSynonymReplacement Type = "synonym_replacement"
	TypeFormattingRemoval  Type = "formatting_removal"
)

// Types lists every dispatchable perturbation type.
var Types = []Type{
	TypeGenderPronoun,
	TypeNameRedaction,
	TypeUniversitySwap,
	TypeGapInsertion,
	TypeTypos,
	TypeSynonymReplacement,
	TypeFormattingRemoval,
}

// Default parameter values applied when a Params field is unset.
const (
	DefaultGapMonths = 6
	DefaultTypoRate  = 0.02
	DefaultFromTier  = "tier1"
	DefaultToTier    = "tier2"
)

// Params carries the per-type perturbation parameters. Zero-valued fields
// fall back to the documented defaults; fields irrelevant to the dispatched
// type are ignored.
type Params struct {
	// Direction applies to TypeGenderPronoun. Default ToNeutral.
	Direction Direction `json:"direction,omitempty"`
	// Placeholder applies to TypeNameRedaction. Default "[NAME]".
	Placeholder string `json:"placeholder,omitempty"`
	// UniversityTiers, FromTier and ToTier apply to TypeUniversitySwap.
	// An empty tier table makes the swap a documented no-op.
	UniversityTiers map[string][]string `json:"university_tiers,omitempty"`
	FromTier        string              `json:"from_tier,omitempty"`
	ToTier          string              `json:"to_tier,omitempty"`
	// GapMonths applies to TypeGapInsertion. Default 6.
	GapMonths int `json:"gap_months,omitempty"`
	// TypoRate applies to TypeTypos. Default 0.02.
	TypoRate float64 `json:"typo_rate,omitempty"`
	// Replacements applies to TypeSynonymReplacement.
	Replacements map[string][]string `json:"replacements,omitempty"`
}

func (p Params) withDefaults() Params {
	if p.Direction == "" {
		p.Direction = ToNeutral
	}
	if p.Placeholder == "" {
		p.Placeholder = DefaultNamePlaceholder
	}
	if p.FromTier == "" {
		p.FromTier = DefaultFromTier
	}
	if p.ToTier == "" {
		p.ToTier = DefaultToTier
	}
	if p.GapMonths == 0 {
		p.GapMonths = DefaultGapMonths
	}
	if p.TypoRate == 0 {
		p.TypoRate = DefaultTypoRate
	}
	return p
}

// Apply dispatches one perturbation over text. The switch over Type is
// exhaustive; any identifier outside the closed set returns an
// *UnknownTypeError rather than passing text through.
func Apply(text string, perturbationType Type, params Params) (string, error) {
	params = params.withDefaults()

	switch perturbationType {
	case TypeGenderPronoun:
		return GenderPronounSwap(text, params.Direction)
	case TypeNameRedaction:
		return RedactNames(text, params.Placeholder), nil
	case TypeUniversitySwap:
		return SwapUniversity(text, params.UniversityTiers, params.FromTier, params.ToTier), nil
	case TypeGapInsertion:
		return InsertGap(text, params.GapMonths), nil
	case TypeTypos:
		return IntroduceTypos(text, params.TypoRate), nil
	case TypeSynonymReplacement:
		return ReplaceSynonyms(text, params.Replacements), nil
	case TypeFormattingRemoval:
		return RemoveFormatting(text), nil
	default:
		return "", &UnknownTypeError{Type: perturbationType}
	}
}

// Generator applies configured perturbations to resumes. The per-type
// parameter table is supplied at construction, never read from package state,
// so audits with different tier tables can run side by side.
type Generator struct {
	config map[Type]Params
}

// NewGenerator creates a Generator with the given per-type parameters.
// A nil config means every type runs with its defaults.
func NewGenerator(config map[Type]Params) *Generator {
	if config == nil {
		config = make(map[Type]Params)
	}
	return &Generator{config: config}
}

// Apply perturbs text with the configured parameters for the given type.
func (g *Generator) Apply(text string, perturbationType Type) (string, error) {
	return Apply(text, perturbationType, g.config[perturbationType])
}

// Params returns the configured parameters for a type, zero-valued when the
// type has no entry.
func (g *Generator) Params(perturbationType Type) Params {
	return g.config[perturbationType]
}

// GenerateCounterfactuals produces one perturbed copy of the resume per
// requested type. Each copy keeps the original ID and auxiliary fields, with
// Perturbation and OriginalID recording its provenance.
func (g *Generator) GenerateCounterfactuals(resume types.Resume, perturbationTypes []Type) (map[Type]types.Resume, error) {
	counterfactuals := make(map[Type]types.Resume, len(perturbationTypes))

	for _, perturbationType := range perturbationTypes {
		perturbedText, err := g.Apply(resume.Text, perturbationType)
		if err != nil {
			return nil, err
		}

		counterfactual := resume
		counterfactual.Text = perturbedText
		counterfactual.Perturbation = string(perturbationType)
		counterfactual.OriginalID = resume.ID
		counterfactuals[perturbationType] = counterfactual
	}

	return counterfactuals, nil
}

// Variant builds the single-resume audit entity: a perturbed copy whose ID is
// the original ID suffixed with "_variant". Callers inject it into a pool in
// place of the original via ReplaceWithVariant; the variant replaces, never
// joins, its source.
func (g *Generator) Variant(resume types.Resume, perturbationType Type) (types.Resume, error) {
	perturbedText, err := g.Apply(resume.Text, perturbationType)
	if err != nil {
		return types.Resume{}, err
	}

	variant := resume
	variant.ID = resume.ID + "_variant"
	variant.Text = perturbedText
	variant.Perturbation = string(perturbationType)
	variant.OriginalID = resume.ID
	return variant, nil
}

// ReplaceWithVariant returns a copy of the pool with the resume matching
// variant.OriginalID swapped out for the variant. Resumes with other IDs are
// carried over unchanged.
func ReplaceWithVariant(pool []types.Resume, variant types.Resume) []types.Resume {
	replaced := make([]types.Resume, 0, len(pool))
	for _, resume := range pool {
		if resume.ID == variant.OriginalID {
			replaced = append(replaced, variant)
			continue
		}
		replaced = append(replaced, resume)
	}
	return replaced
}
