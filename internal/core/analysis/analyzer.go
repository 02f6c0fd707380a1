// Package analysis builds the structural and semantic report that enriches
// prompts. Every pass reads the text independently and none has side effects.
package analysis

import (
	"github.com/kirillkom/docsense/internal/core/classify"
	"github.com/kirillkom/docsense/internal/core/domain"
)

type Domain struct {
	Name       string
	Indicators []string
}

type Analyzer struct {
	classifier *classify.Classifier
	domains    []Domain
	concepts   map[string]struct{}
}

func New(classifier *classify.Classifier) *Analyzer {
	if classifier == nil {
		classifier = classify.Default()
	}
	concepts := make(map[string]struct{}, len(conceptWords))
	for _, w := range conceptWords {
		concepts[w] = struct{}{}
	}
	return &Analyzer{
		classifier: classifier,
		domains:    defaultDomains,
		concepts:   concepts,
	}
}

// Analyze merges all passes into one report.
func (a *Analyzer) Analyze(text string, metadata domain.DocumentMetadata) domain.AnalysisReport {
	return domain.AnalysisReport{
		Metadata:         metadata,
		ContentStructure: contentStructure(text),
		Semantic:         a.semantic(text),
		KnowledgeDomains: a.knowledgeDomains(text),
		CrossReferences:  crossReferences(text),
		DataPatterns:     dataPatterns(text),
		Relationships:    relationships(text),
		Inferences:       inferences(text, metadata),
	}
}
