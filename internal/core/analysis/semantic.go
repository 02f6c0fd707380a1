package analysis

import (
	"regexp"
	"strings"

	"github.com/kirillkom/docsense/internal/core/domain"
)

const (
	maxConcepts        = 15
	conceptContextSpan = 2
)

var (
	conceptWords  = []string{"policy", "procedure", "requirement", "allowance", "rate", "grade", "level"}
	conceptWordRe = regexp.MustCompile(`\b[a-z]{3,}\b`)
)

var defaultDomains = []Domain{
	{Name: "Human Resources", Indicators: []string{"hr", "employee", "salary", "benefits", "leave", "performance", "recruitment"}},
	{Name: "Finance", Indicators: []string{"budget", "cost", "revenue", "profit", "expense", "financial", "accounting"}},
	{Name: "Legal", Indicators: []string{"contract", "agreement", "legal", "compliance", "regulation", "law", "terms"}},
	{Name: "Technology", Indicators: []string{"system", "software", "hardware", "network", "database", "application", "technical"}},
	{Name: "Healthcare", Indicators: []string{"medical", "health", "patient", "treatment", "diagnosis", "clinical", "healthcare"}},
	{Name: "Travel", Indicators: []string{"travel", "trip", "accommodation", "transport", "per diem", "allowance", "lodging"}},
	{Name: "Operations", Indicators: []string{"process", "procedure", "workflow", "operation", "management", "quality", "standard"}},
	{Name: "Research", Indicators: []string{"research", "study", "analysis", "methodology", "findings", "data", "results"}},
}

const minDomainScore = 2

// semantic counts concept-bearing words per sentence. Density is concept
// hits over non-empty sentences.
func (a *Analyzer) semantic(text string) domain.SemanticAnalysis {
	out := domain.SemanticAnalysis{KeyConcepts: []domain.Concept{}}

	sentences := 0
	hits := 0
	for _, raw := range strings.Split(text, ".") {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}
		sentences++

		words := conceptWordRe.FindAllString(strings.ToLower(sentence), -1)
		for i, word := range words {
			if _, ok := a.concepts[word]; !ok {
				continue
			}
			hits++
			if len(out.KeyConcepts) == maxConcepts {
				continue
			}
			lo := max(0, i-conceptContextSpan)
			hi := min(len(words), i+conceptContextSpan+1)
			out.KeyConcepts = append(out.KeyConcepts, domain.Concept{
				Concept:  word,
				Context:  strings.Join(words[lo:hi], " "),
				Sentence: sentence,
			})
		}
	}

	if sentences > 0 {
		out.Density = float64(hits) / float64(sentences)
	}
	return out
}

func (a *Analyzer) knowledgeDomains(text string) []domain.KnowledgeDomain {
	lower := strings.ToLower(text)
	out := []domain.KnowledgeDomain{}
	for _, d := range a.domains {
		score := 0
		for _, indicator := range d.Indicators {
			if strings.Contains(lower, indicator) {
				score++
			}
		}
		if score >= minDomainScore {
			out = append(out, domain.KnowledgeDomain{Name: d.Name, Score: score})
		}
	}
	return out
}
