// Package perturb provides deterministic text perturbations for counterfactual
// fairness testing of resume rankers.
//
// Perturbations target proxy attributes (pronouns, names, institution prestige,
// employment gaps), never inferred sensitive attributes. Each function is a pure
// transform of its inputs; the typo perturbation seeds its random source with a
// fixed constant so repeated audits are byte-identical.
package perturb

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"
)

// Direction selects the target pronoun set for GenderPronounSwap.
type Direction string

// Pronoun swap directions.
const (
	ToNeutral Direction = "to_neutral"
	ToMale    Direction = "to_male"
	ToFemale  Direction = "to_female"
)

// DefaultNamePlaceholder replaces name lines detected by RedactNames.
const DefaultNamePlaceholder = "[NAME]"

// typoSeed fixes the random source for IntroduceTypos so audits reproduce.
const typoSeed = 42

// rewriteRule is one whole-word, case-insensitive substitution. Rules are
// applied in slice order; ordering is part of the perturbation contract.
type rewriteRule struct {
	pattern     *regexp.Regexp
	replacement string
}

func compileRules(pairs [][2]string) []rewriteRule {
	rules := make([]rewriteRule, 0, len(pairs))
	for _, p := range pairs {
		rules = append(rules, rewriteRule{
			pattern:     regexp.MustCompile(`(?i)\b` + p[0] + `\b`),
			replacement: p[1],
		})
	}
	return rules
}

// The directional maps are intentionally asymmetric: to_male and to_female
// also rewrite neutral pronouns, so they are not inverses of to_neutral.
// The audit measures directional sensitivity, not idempotence.
var (
	toNeutralRules = compileRules([][2]string{
		{"he", "they"},
		{"him", "them"},
		{"his", "their"},
		{"himself", "themselves"},
		{"she", "they"},
		{"her", "their"},
		{"hers", "theirs"},
		{"herself", "themselves"},
	})

	toMaleRules = compileRules([][2]string{
		{"they", "he"},
		{"them", "him"},
		{"their", "his"},
		{"theirs", "his"},
		{"themselves", "himself"},
		{"she", "he"},
		{"her", "his"},
		{"hers", "his"},
		{"herself", "himself"},
	})

	toFemaleRules = compileRules([][2]string{
		{"they", "she"},
		{"them", "her"},
		{"their", "her"},
		{"theirs", "hers"},
		{"themselves", "herself"},
		{"he", "she"},
		{"him", "her"},
		{"his", "her"},
		{"himself", "herself"},
	})
)

func (d Direction) rules() ([]rewriteRule, error) {
	switch d {
	case ToNeutral:
		return toNeutralRules, nil
	case ToMale:
		return toMaleRules, nil
	case ToFemale:
		return toFemaleRules, nil
	default:
		return nil, &UnknownDirectionError{Direction: d}
	}
}

// GenderPronounSwap rewrites gendered pronouns toward the given direction.
// Substitutions are whole-word and case-insensitive; replacements are
// lowercase regardless of the original casing.
func GenderPronounSwap(text string, direction Direction) (string, error) {
	rules, err := direction.rules()
	if err != nil {
		return "", err
	}

	result := text
	for _, rule := range rules {
		result = rule.pattern.ReplaceAllString(result, rule.replacement)
	}
	return result, nil
}

// genderedOrgRules match organizations whose names encode gender.
var genderedOrgRules = compileRules([][2]string{
	{"Women in Tech", "[ORGANIZATION]"},
	{"Women in Engineering", "[ORGANIZATION]"},
	{"Girls Who Code", "[ORGANIZATION]"},
	{"Society of Women Engineers", "[ORGANIZATION]"},
	{"Fraternity", "[ORGANIZATION]"},
	{"Sorority", "[ORGANIZATION]"},
})

// RemoveGenderedOrganizations replaces mentions of gender-coded organizations
// with a neutral placeholder.
func RemoveGenderedOrganizations(text string) string {
	result := text
	for _, rule := range genderedOrgRules {
		result = rule.pattern.ReplaceAllString(result, rule.replacement)
	}
	return result
}

// nameLineRE matches a line made entirely of two or more Title Case tokens.
var nameLineRE = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+$`)

// RedactNames replaces the candidate's name line with the placeholder. Only
// the first three lines are examined; a line qualifies when it consists
// entirely of two or more capitalized word tokens, and only the first
// qualifying line is replaced, since a resume header carries one name and
// later Title Case lines are usually job titles.
//
// This is a deliberately crude heuristic, not named-entity recognition: it
// will miss names elsewhere in the text and will redact a non-name Title
// Case first line. The audit evaluates ranker behavior under exactly this
// heuristic.
func RedactNames(text, placeholder string) string {
	if placeholder == "" {
		placeholder = DefaultNamePlaceholder
	}

	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines) && i < 3; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed != "" && nameLineRE.MatchString(trimmed) {
			lines[i] = placeholder
			break
		}
	}
	return strings.Join(lines, "\n")
}

// SwapUniversity replaces every whole-word, case-insensitive mention of an
// institution in fromTier with the institution at the same index (modulo
// length) in toTier.
//
// If either tier key is absent from the mapping, or the target tier is empty,
// the text is returned unchanged. The silent no-op on a missing tier is a
// load-bearing contract: an audit configured without tier data degrades to a
// stability test rather than failing the whole run.
func SwapUniversity(text string, universityTiers map[string][]string, fromTier, toTier string) string {
	fromUnis, ok := universityTiers[fromTier]
	if !ok {
		return text
	}
	toUnis, ok := universityTiers[toTier]
	if !ok || len(toUnis) == 0 {
		return text
	}

	result := text
	for i, uni := range fromUnis {
		replacement := toUnis[i%len(toUnis)]
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(uni) + `\b`)
		result = pattern.ReplaceAllLiteralString(result, replacement)
	}
	return result
}

// experienceHeaderRE locates the first experience-section header.
var experienceHeaderRE = regexp.MustCompile(`(?i)(experience|employment|work history)`)

// InsertGap inserts an employment-gap marker of the given length immediately
// after the first experience-section header. When no header exists the marker
// is inserted at the character midpoint of the text instead; both paths
// produce a marker the ranker can react to.
func InsertGap(text string, gapMonths int) string {
	marker := fmt.Sprintf("\n[EMPLOYMENT GAP: %d months]\n", gapMonths)

	if loc := experienceHeaderRE.FindStringIndex(text); loc != nil {
		return text[:loc[1]] + marker + text[loc[1]:]
	}

	runes := []rune(text)
	mid := len(runes) / 2
	return string(runes[:mid]) + marker + string(runes[mid:])
}

// IntroduceTypos swaps adjacent characters in a sample of words for
// robustness testing. typoRate is the proportion of words to modify. The
// random source is seeded with a fixed constant, so output depends only on
// the input text and rate. Words of four characters or fewer are left alone.
// Whitespace is normalized to single spaces as a side effect.
func IntroduceTypos(text string, typoRate float64) string {
	rng := rand.New(rand.NewSource(typoSeed))

	words := strings.Fields(text)
	numTypos := int(float64(len(words)) * typoRate)
	if numTypos < 0 {
		numTypos = 0
	}
	if numTypos > len(words) {
		numTypos = len(words)
	}

	for _, idx := range rng.Perm(len(words))[:numTypos] {
		word := []rune(words[idx])
		if len(word) > 3 {
			pos := rng.Intn(len(word)-2) + 1
			word[pos], word[pos+1] = word[pos+1], word[pos]
			words[idx] = string(word)
		}
	}

	return strings.Join(words, " ")
}

// ReplaceSynonyms replaces each mapped word with its first listed synonym,
// whole-word and case-insensitive. Words are processed in sorted order so the
// result does not depend on map iteration order. Entries with no synonyms are
// skipped.
func ReplaceSynonyms(text string, replacements map[string][]string) string {
	words := make([]string, 0, len(replacements))
	for word := range replacements {
		words = append(words, word)
	}
	sort.Strings(words)

	result := text
	for _, word := range words {
		synonyms := replacements[word]
		if len(synonyms) == 0 {
			continue
		}
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		result = pattern.ReplaceAllLiteralString(result, synonyms[0])
	}
	return result
}

var (
	bulletRE     = regexp.MustCompile(`[•\-\*]\s+`)
	whitespaceRE = regexp.MustCompile(`\s+`)
	newlinesRE   = regexp.MustCompile(`\n+`)
)

// RemoveFormatting strips bullet markers and collapses all whitespace runs,
// newlines included, into single spaces. The result is a single trimmed line;
// rankers sensitive to layout rather than content will reshuffle under this
// perturbation.
func RemoveFormatting(text string) string {
	result := bulletRE.ReplaceAllString(text, "")
	result = whitespaceRE.ReplaceAllString(result, " ")
	result = newlinesRE.ReplaceAllString(result, "\n")
	return strings.TrimSpace(result)
}
