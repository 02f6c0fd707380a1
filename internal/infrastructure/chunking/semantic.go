// Package chunking splits stored documents into heading-delimited chunks
// with importance scores and local context.
package chunking

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/docsense/internal/core/classify"
	"github.com/kirillkom/docsense/internal/core/domain"
)

const (
	minSectionRunes   = 50
	longSectionRunes  = 500
	contextRunes      = 100
	chunkTopicLimit   = 5
	contextSeparator  = " ... "
	sectionChunkType  = "section"
	baseImportance    = 0.5
	maxImportance     = 1.0
	lengthBonus       = 0.2
	topicBonus        = 0.1
	policyTermBonus   = 0.2
	contextNeighbours = 1
)

var (
	sectionSplitRe = regexp.MustCompile(`\n#{1,6}\s+`)

	conditionalRe = regexp.MustCompile(`(?i)\bif\b.*\bthen\b`)
	causalRe      = regexp.MustCompile(`(?i)\bbecause\b|\bdue to\b|\bas a result\b`)
	comparativeRe = regexp.MustCompile(`(?i)\bcompared to\b|\bversus\b|\brather than\b`)

	policyTerms = []string{"policy", "procedure", "requirement", "rate", "allowance"}

	defaultStopWords = []string{"that", "this", "with", "from", "they", "been", "have"}
)

// SemanticChunker implements ports.Chunker.
type SemanticChunker struct {
	stop map[string]struct{}
}

func NewSemanticChunker(stopWords []string) *SemanticChunker {
	if len(stopWords) == 0 {
		stopWords = defaultStopWords
	}
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &SemanticChunker{stop: stop}
}

func (c *SemanticChunker) Chunk(text string, metadata domain.DocumentMetadata) []domain.SemanticChunk {
	sections := sectionSplitRe.Split(text, -1)
	chunks := make([]domain.SemanticChunk, 0, len(sections))
	for i, section := range sections {
		content := strings.TrimSpace(section)
		if utf8.RuneCountInString(content) < minSectionRunes {
			continue
		}
		chunks = append(chunks, domain.SemanticChunk{
			Content:       content,
			ChunkType:     sectionChunkType,
			Importance:    importance(content, metadata.KeyTopics),
			Topics:        classify.RankWords(content, c.stop, chunkTopicLimit, 1),
			Entities:      classify.Entities(content),
			Relationships: relationships(content),
			ContextWindow: contextWindow(sections, i),
		})
	}
	return chunks
}

func importance(content string, keyTopics []string) float64 {
	lower := strings.ToLower(content)
	score := baseImportance
	if utf8.RuneCountInString(content) > longSectionRunes {
		score += lengthBonus
	}
	for _, topic := range keyTopics {
		if topic != "" && strings.Contains(lower, strings.ToLower(topic)) {
			score += topicBonus
		}
	}
	for _, term := range policyTerms {
		if strings.Contains(lower, term) {
			score += policyTermBonus
			break
		}
	}
	return math.Min(math.Round(score*100)/100, maxImportance)
}

func relationships(content string) []string {
	out := []string{}
	if conditionalRe.MatchString(content) {
		out = append(out, "conditional")
	}
	if causalRe.MatchString(content) {
		out = append(out, "causal")
	}
	if comparativeRe.MatchString(content) {
		out = append(out, "comparative")
	}
	return out
}

func contextWindow(sections []string, i int) string {
	start := max(0, i-contextNeighbours)
	end := min(len(sections), i+contextNeighbours+1)
	parts := make([]string, 0, end-start)
	for _, s := range sections[start:end] {
		parts = append(parts, headRunes(s, contextRunes))
	}
	return strings.Join(parts, contextSeparator)
}

func headRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
