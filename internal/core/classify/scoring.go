package classify

import (
	"strings"

	"github.com/kirillkom/docsense/internal/core/domain"
)

const minTypeScore = 2

// DocumentType scores each bucket by substring presence and keeps the first
// bucket holding the maximum. Below two hits the document stays general.
func (c *Classifier) DocumentType(text string) domain.DocumentType {
	lower := strings.ToLower(text)
	best := domain.DocumentTypeGeneralDocument
	bestScore := 0
	for _, bucket := range c.vocab.TypeBuckets {
		score := countPresent(lower, bucket.Terms)
		if score > bestScore {
			best = bucket.Type
			bestScore = score
		}
	}
	if bestScore < minTypeScore {
		return domain.DocumentTypeGeneralDocument
	}
	return best
}

func (c *Classifier) Complexity(text string) domain.Complexity {
	sentences := strings.Split(text, ".")
	words := 0
	for _, s := range sentences {
		words += len(strings.Fields(s))
	}
	avg := float64(words) / float64(len(sentences))

	score := 0
	switch {
	case avg > 25:
		score += 2
	case avg > 20:
		score++
	}

	lower := strings.ToLower(text)
	score += min(countPresent(lower, c.vocab.TechnicalTerms)/5, 2)
	score += min(countPresent(lower, c.vocab.SpecializedTerms)/3, 3)

	switch {
	case score >= 6:
		return domain.ComplexitySpecialized
	case score >= 4:
		return domain.ComplexityHighlyTechnical
	case score >= 2:
		return domain.ComplexityComplex
	case score >= 1:
		return domain.ComplexityModerate
	default:
		return domain.ComplexitySimple
	}
}
