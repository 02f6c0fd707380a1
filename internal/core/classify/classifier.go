// Package classify derives document metadata from extracted text with
// deterministic keyword and pattern heuristics. Nothing here performs IO.
package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/kirillkom/docsense/internal/core/domain"
)

const (
	wordsPerPage     = 250
	nonLatinLanguage = "Non-Latin script"
)

var pageMarkerRe = regexp.MustCompile(domain.PageMarkerPattern)

// Classifier is immutable and safe for concurrent use.
type Classifier struct {
	vocab Vocabulary
	stop  map[string]struct{}
}

func New(vocab Vocabulary) *Classifier {
	stop := make(map[string]struct{}, len(vocab.StopWords))
	for _, w := range vocab.StopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	if vocab.DefaultLanguage == "" {
		vocab.DefaultLanguage = "English"
	}
	return &Classifier{vocab: vocab, stop: stop}
}

func Default() *Classifier {
	return New(DefaultVocabulary())
}

// Classify never fails; empty text yields the neutral defaults.
func (c *Classifier) Classify(text string) domain.DocumentMetadata {
	return c.ClassifyExtracted(text, "", ScanStructure(text))
}

// ClassifyExtracted uses counters already gathered by an extractor.
func (c *Classifier) ClassifyExtracted(text string, fileType domain.FileType, structure domain.Structure) domain.DocumentMetadata {
	words := len(strings.Fields(text))
	language := c.Language(text)

	languages := []string{language}
	if structure.NonLatin {
		languages = append(languages, nonLatinLanguage)
	}

	return domain.DocumentMetadata{
		FileType:          fileType.MetadataName(),
		EstimatedPages:    estimatePages(structure.Pages, words),
		WordCount:         words,
		LanguagePrimary:   language,
		LanguagesDetected: languages,
		DocumentType:      c.DocumentType(text),
		Complexity:        c.Complexity(text),
		KeyTopics:         c.Topics(text),
		Entities:          Entities(text),
		Structure:         structure,
		Confidence:        Confidence(text, structure.Paragraphs, structure.Headings),
	}
}

// ScanStructure recovers counters from the textual markers in text.
func ScanStructure(text string) domain.Structure {
	var s domain.Structure
	if strings.TrimSpace(text) == "" {
		return s
	}

	pageBreaks := 0
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == domain.TableMarker:
			s.Tables++
		case strings.HasPrefix(line, "#"):
			s.Headings++
		case pageMarkerRe.MatchString(line):
			pageBreaks++
		}
	}
	if pageBreaks > 0 {
		s.Pages = pageBreaks + 1
	}
	s.Paragraphs = countParagraphs(text)
	return s
}

func countParagraphs(text string) int {
	n := 0
	inBlock := false
	for _, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			inBlock = false
			continue
		}
		if !inBlock {
			n++
			inBlock = true
		}
	}
	return n
}

func estimatePages(pages, words int) int {
	if pages > 0 {
		return pages
	}
	if words == 0 {
		return 0
	}
	return max(1, words/wordsPerPage)
}

func countPresent(lower string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			n++
		}
	}
	return n
}

// IsUpper reports whether s has at least one cased letter and no lower-case ones.
func IsUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}
