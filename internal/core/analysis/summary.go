package analysis

import (
	"strings"

	"github.com/kirillkom/docsense/internal/core/classify"
	"github.com/kirillkom/docsense/internal/core/domain"
)

var (
	tableIndicators = []string{
		"rate", "cost", "zone", "tier", "level", "grade", "$", "₹", "allowance",
		"amount", "price", "fee", "charge", "expense", "budget",
	}
	policyIndicators = []string{
		"policy", "procedure", "guideline", "rule", "entitlement", "shall",
		"must", "required", "mandatory", "compliance", "regulation",
	}
	locationIndicators = []string{
		"zone", "region", "city", "country", "state", "province",
		"new york", "delhi", "london", "mumbai", "bangalore", "chennai",
	}
	multilingualIndicators = []string{"के लिए", "में", "क्या", "है", "दर", "और", "का", "की", "से", "पर"}
)

// Summarize is the light analysis used when the full report is not built.
func (a *Analyzer) Summarize(text string) domain.StructureSummary {
	if strings.TrimSpace(text) == "" {
		return domain.StructureSummary{
			PrimaryLanguage: a.classifier.Language(""),
			DocumentType:    "unknown",
			KeyTopics:       []string{},
			Entities:        []domain.Entity{},
		}
	}

	lower := strings.ToLower(text)
	words := len(strings.Fields(text))
	return domain.StructureSummary{
		HasTables:       containsAny(lower, tableIndicators),
		HasPolicies:     containsAny(lower, policyIndicators),
		HasLocations:    containsAny(lower, locationIndicators),
		IsMultilingual:  containsAny(text, multilingualIndicators),
		PrimaryLanguage: a.classifier.Language(text),
		WordCount:       words,
		Confidence:      summaryConfidence(words),
		DocumentType:    a.classifier.DocumentType(text).String(),
		KeyTopics:       a.classifier.Topics(text),
		Entities:        classify.Entities(text),
	}
}

func summaryConfidence(words int) float64 {
	switch {
	case words < 50:
		return 0.5
	case words < 200:
		return 0.7
	default:
		return 1.0
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
