// Package privacy redacts personally identifiable information from resume
// text before it reaches rankers or reports.
//
// Detection is regex-based and heuristic. Name handling in particular is not
// named-entity recognition: it only catches Title Case header lines and will
// both under- and over-redact. Known limitation, documented rather than
// solved here.
package privacy

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultPlaceholder is the base replacement token; a type suffix is appended
// per redaction category (e.g. "[REDACTED]_EMAIL").
const DefaultPlaceholder = "[REDACTED]"

var (
	emailRE = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRE = regexp.MustCompile(`\b(?:\+\d{1,3}[-.]?)?(?:\(\d{3}\)|\d{3})[-.]?\d{3}[-.]?\d{4}\b`)
	ssnRE   = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
	// Simplified street address pattern.
	addressRE = regexp.MustCompile(`(?i)\b\d+\s+[A-Za-z\s]+(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Boulevard|Blvd)\b`)
	zipRE     = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)

	nameLineRE = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+$`)
)

// patternOrder fixes the redaction sequence, most specific first. SSN before
// ZIP matters: a ZIP pattern would otherwise eat SSN fragments.
var patternOrder = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"ssn", ssnRE},
	{"email", emailRE},
	{"phone", phoneRE},
	{"address", addressRE},
	{"zip", zipRE},
}

// Redactor removes PII from text. The zero value redacts nothing; use
// NewRedactor for the everything-on default.
type Redactor struct {
	// RedactNames enables the Title Case header-line name heuristic.
	RedactNames bool
	// RedactContact enables email, phone, SSN, address, and ZIP redaction.
	RedactContact bool
}

// NewRedactor creates a Redactor with both name and contact redaction on.
func NewRedactor() *Redactor {
	return &Redactor{RedactNames: true, RedactContact: true}
}

// Redact replaces detected PII with placeholder tokens suffixed by category.
// An empty placeholder uses DefaultPlaceholder.
func (r *Redactor) Redact(text, placeholder string) string {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}

	redacted := text
	if r.RedactContact {
		for _, entry := range patternOrder {
			redacted = entry.pattern.ReplaceAllLiteralString(redacted, placeholder+"_"+strings.ToUpper(entry.name))
		}
	}
	if r.RedactNames {
		redacted = redactNameLines(redacted, placeholder+"_NAME")
	}
	return redacted
}

// redactNameLines replaces likely name lines among the first three lines.
func redactNameLines(text, placeholder string) string {
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines) && i < 3; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed != "" && nameLineRE.MatchString(trimmed) {
			lines[i] = placeholder
		}
	}
	return strings.Join(lines, "\n")
}

// AnonymizeNames replaces each mapped real name with its pseudonym,
// whole-word and case-insensitive. Names are processed in sorted order so the
// output does not depend on map iteration order.
func AnonymizeNames(text string, nameMap map[string]string) string {
	names := make([]string, 0, len(nameMap))
	for name := range nameMap {
		names = append(names, name)
	}
	sort.Strings(names)

	result := text
	for _, name := range names {
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
		result = pattern.ReplaceAllLiteralString(result, nameMap[name])
	}
	return result
}

// DetectPII reports detected contact PII without modifying the text, keyed by
// category. Categories with no matches are omitted.
func (r *Redactor) DetectPII(text string) map[string][]string {
	detected := make(map[string][]string)
	for _, entry := range patternOrder {
		if matches := entry.pattern.FindAllString(text, -1); len(matches) > 0 {
			detected[entry.name] = matches
		}
	}
	return detected
}
