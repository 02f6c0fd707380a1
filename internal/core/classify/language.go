package classify

import (
	"strings"
	"unicode"
)

const languageSampleRunes = 1000

// Language votes on the first 1000 runes. Rules are tried in order and the
// first one whose hit count exceeds its threshold wins. Hits are whole-token
// occurrences, so one indicator repeated often enough is sufficient.
func (c *Classifier) Language(text string) string {
	if strings.TrimSpace(text) == "" {
		return c.vocab.DefaultLanguage
	}

	counts := make(map[string]int)
	for _, token := range tokenize(strings.ToLower(sampleRunes(text, languageSampleRunes))) {
		counts[token]++
	}

	for _, rule := range c.vocab.Languages {
		hits := 0
		for _, word := range rule.Indicators {
			hits += counts[strings.ToLower(word)]
		}
		if hits > rule.Threshold {
			return rule.Name
		}
	}
	return c.vocab.DefaultLanguage
}

func sampleRunes(text string, limit int) string {
	n := 0
	for i := range text {
		if n == limit {
			return text[:i]
		}
		n++
	}
	return text
}

// tokenize keeps combining marks attached so Devanagari syllables stay whole.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsMark(r)
	})
}
