package conversation

import (
	"fmt"
	"strings"

	"github.com/kirillkom/docsense/internal/core/domain"
)

// PromptVariant selects which prompt the answer pipeline builds. It is fixed
// at startup.
type PromptVariant string

const (
	VariantRich  PromptVariant = "rich"
	VariantLight PromptVariant = "light"
)

func ParsePromptVariant(value string) (PromptVariant, error) {
	switch v := PromptVariant(strings.ToLower(strings.TrimSpace(value))); v {
	case VariantRich, VariantLight:
		return v, nil
	default:
		return "", fmt.Errorf("unknown prompt variant %q", value)
	}
}

// Options returns the generation settings that go with the variant.
func (v PromptVariant) Options() domain.GenerationOptions {
	if v == VariantLight {
		return LightOptions
	}
	return RichOptions
}

var (
	RichOptions  = domain.GenerationOptions{MaxTokens: 4096, Temperature: 0.5, TopP: 0.8, TopK: 40}
	LightOptions = domain.GenerationOptions{MaxTokens: 2048, Temperature: 0.3, TopP: 0.8, TopK: 40}
)

// NotFoundPhrase is the sentence the model must use when the context has no answer.
const NotFoundPhrase = "Based on the provided documents, I could not find a definitive answer to this question."

const toneSection = `TONE:
- Open warmly ("Great question!", "I'd be happy to help!").
- Use friendly transitions ("Here's what the document says...", "Let me break this down...").
- Close by offering further help ("Does this help?", "Need clarification on anything?").`

const directivesSection = `DIRECTIVES:
a) Every concrete fact, number, date, name or rule in the answer must come from the DOCUMENT CONTEXT below.
b) When you bridge the user's wording to the document's wording (a city to a zone, a grade to a band, a term in another language), say explicitly that it is an inference.
c) Present comparative data (rates, grades, locations) as a Markdown table.
d) If the answer is not in the context, reply with: "` + NotFoundPhrase + `"`

const reasoningSection = `REASONING:
Phase 1. Decompose the question: intent, entities, explicit and implicit needs.
Phase 2. Retrieve the direct facts, then the related facts through sections and cross references.
Phase 3. Synthesize: interpret the facts and draw only the inferences the document supports.
Phase 4. Answer: direct answer first, then the reasoning, the supporting data and a helpful closing.

INFERENCE HEURISTICS:
- Hierarchies: a range such as L1-L8 or Grades 1-10 covers every level inside it; senior categories include their junior levels.
- Geography: map a named city to the zone or tier the document assigns to cities of that class (for example metro cities to Zone 1).
- Ranges: interpolate intermediate values only when the document gives both boundaries.
- Always mark which statements are document facts and which are inferences.`

// RichPrompt builds the full prompt with the document profile and the
// reasoning scaffold.
func RichPrompt(q domain.Query, metadata domain.DocumentMetadata, analysis domain.AnalysisReport) string {
	domains := make([]string, 0, 3)
	for _, d := range analysis.KnowledgeDomains {
		if len(domains) == 3 {
			break
		}
		domains = append(domains, d.Name)
	}

	var b strings.Builder
	b.WriteString("ROLE:\nYou are a document analyst with a friendly, helpful manner. ")
	fmt.Fprintf(&b, "You specialise in %s documents and answer questions about them precisely.\n\n", strings.ToLower(metadata.DocumentType.Title()))

	b.WriteString("DOCUMENT PROFILE:\n")
	fmt.Fprintf(&b, "Document type: %s\n", metadata.DocumentType.Title())
	fmt.Fprintf(&b, "Complexity: %s\n", metadata.Complexity.Title())
	fmt.Fprintf(&b, "Primary language: %s\n", metadata.LanguagePrimary)
	fmt.Fprintf(&b, "Content domains: %s\n", strings.Join(domains, ", "))
	fmt.Fprintf(&b, "Key topics: %s\n", strings.Join(head(metadata.KeyTopics, 5), ", "))
	fmt.Fprintf(&b, "Confidence: %.2f\n", metadata.Confidence)
	fmt.Fprintf(&b, "Sections: %d\n\n", analysis.ContentStructure.HierarchicalDepth)

	b.WriteString(reasoningSection)
	b.WriteString("\n\n")
	b.WriteString(toneSection)
	b.WriteString("\n\n")
	b.WriteString(directivesSection)
	b.WriteString("\n\n")
	writeContextAndQuestion(&b, q)
	return b.String()
}

// LightPrompt builds the compact prompt from the structure summary only.
func LightPrompt(q domain.Query, summary domain.StructureSummary) string {
	var b strings.Builder
	b.WriteString("ROLE:\nYou are a knowledge analyst with a friendly, helpful manner. ")
	b.WriteString("Answer precisely from the document below.\n\n")

	b.WriteString("DOCUMENT SUMMARY:\n")
	fmt.Fprintf(&b, "Document type: %s\n", summary.DocumentType)
	fmt.Fprintf(&b, "Contains policies: %t\n", summary.HasPolicies)
	fmt.Fprintf(&b, "Contains tabular or rate data: %t\n", summary.HasTables)
	fmt.Fprintf(&b, "Contains locations: %t\n", summary.HasLocations)
	fmt.Fprintf(&b, "Multilingual: %t (primary: %s)\n", summary.IsMultilingual, summary.PrimaryLanguage)
	fmt.Fprintf(&b, "Word count: %d\n", summary.WordCount)
	fmt.Fprintf(&b, "Key topics: %s\n", strings.Join(head(summary.KeyTopics, 5), ", "))
	fmt.Fprintf(&b, "Analysis confidence: %.1f\n\n", summary.Confidence)

	b.WriteString(toneSection)
	b.WriteString("\n\n")
	b.WriteString(directivesSection)
	b.WriteString("\n\n")
	writeContextAndQuestion(&b, q)
	return b.String()
}

func writeContextAndQuestion(b *strings.Builder, q domain.Query) {
	b.WriteString("---\nDOCUMENT CONTEXT:\n")
	b.WriteString(q.Context)
	b.WriteString("\n---\n\nQUESTION:\n")
	fmt.Fprintf(b, "%q\n\nANSWER:\n", q.Question)
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
