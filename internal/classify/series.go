package classify

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SanitizeName strips filesystem-reserved characters and collapses
// whitespace so the result is safe as a file or directory name.
func SanitizeName(name string) string {
	s := strings.TrimSpace(name)
	for _, ch := range invalidNameChars {
		s = strings.ReplaceAll(s, string(ch), " ")
	}
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}

// NormalizeSeriesTitle cleans a raw series name: bracketed release tags,
// separator characters, and quality/codec noise are removed. Falls back to
// plain sanitization when stripping leaves nothing usable.
func NormalizeSeriesTitle(raw string) string {
	s := strings.TrimSpace(raw)
	s = reBracketed.ReplaceAllString(s, " ")
	s = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(s)
	for _, pattern := range noisePatterns {
		s = pattern.ReplaceAllString(s, " ")
	}
	s = SanitizeName(s)
	if len(s) < 2 {
		s = SanitizeName(raw)
	}
	return titleCaseIfLower(s)
}

// titleCaseIfLower title-cases names that arrive entirely lowercased (dotted
// or kebab-cased directory names) while leaving properly cased names alone.
func titleCaseIfLower(s string) string {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return s
		}
	}
	return cases.Title(language.Und).String(s)
}

// canonicalSeriesName resolves the final library series name, honoring any
// alias override whose key is contained in the cleaned name. Aliases are
// checked in sorted order so multi-match results stay deterministic.
func canonicalSeriesName(raw string, overrides map[string]string) string {
	cleaned := NormalizeSeriesTitle(raw)
	lowered := strings.ToLower(cleaned)
	for _, alias := range sortedKeys(overrides) {
		if strings.Contains(lowered, strings.ToLower(alias)) {
			return SanitizeName(overrides[alias])
		}
	}
	return cleaned
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
