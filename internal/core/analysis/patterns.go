package analysis

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/docsense/internal/core/domain"
)

const (
	referenceContextPad = 50
	patternContextPad   = 30
)

var crossReferenceRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:see|refer to|as per|according to)\s+(?:section|chapter|table|figure|appendix)\s+(\w+)`),
	regexp.MustCompile(`(?i)(?:section|chapter|table|figure|appendix)\s+(\w+)\s+(?:shows|indicates|describes)`),
	regexp.MustCompile(`(?i)(?:above|below|following|preceding)\s+(?:section|table|figure)`),
}

var (
	// Label words may only be separated by spaces or tabs so a label never spans lines.
	ratePatternRe  = regexp.MustCompile(`(?i)(\w+(?:[ \t]+\w+)*)[ \t]*[:\-][ \t]*(?:₹|Rs\.?|\$|USD|INR)?[ \t]*(\d+(?:,\d{3})*(?:\.\d{2})?)`)
	gradePatternRe = regexp.MustCompile(`(?i)(L\d+|Level\s+\d+|Grade\s+\d+|Tier\s+\d+)`)
)

var (
	conditionalRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)if\s+(.+?)\s+then\s+(.+?)(?:\.|,)`),
		regexp.MustCompile(`(?is)provided\s+that\s+(.+?)(?:\.|,)`),
		regexp.MustCompile(`(?is)subject\s+to\s+(.+?)(?:\.|,)`),
	}
	causalRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)because\s+(.+?)(?:\.|,)`),
		regexp.MustCompile(`(?i)due\s+to\s+(.+?)(?:\.|,)`),
		regexp.MustCompile(`(?i)as\s+a\s+result\s+of\s+(.+?)(?:\.|,)`),
	}
)

func crossReferences(text string) []domain.CrossReference {
	out := []domain.CrossReference{}
	for _, re := range crossReferenceRes {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			target := "unspecified"
			if len(m) >= 4 && m[2] >= 0 {
				target = text[m[2]:m[3]]
			}
			out = append(out, domain.CrossReference{
				ReferenceText: text[m[0]:m[1]],
				Target:        target,
				Context:       window(text, m[0], m[1], referenceContextPad),
			})
		}
	}
	return out
}

func dataPatterns(text string) []domain.DataPattern {
	out := []domain.DataPattern{}
	for _, m := range ratePatternRe.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, domain.DataPattern{
			Type:    domain.PatternRatePricing,
			Item:    strings.TrimSpace(text[m[2]:m[3]]),
			Value:   text[m[4]:m[5]],
			Context: window(text, m[0], m[1], patternContextPad),
		})
	}
	for _, m := range gradePatternRe.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, domain.DataPattern{
			Type:    domain.PatternGradeLevel,
			Value:   text[m[2]:m[3]],
			Context: window(text, m[0], m[1], patternContextPad),
		})
	}
	return out
}

func relationships(text string) domain.ContextualRelationships {
	return domain.ContextualRelationships{
		Conditional:  matchAll(text, conditionalRes),
		Causal:       matchAll(text, causalRes),
		Temporal:     []string{},
		Hierarchical: []string{},
	}
}

func matchAll(text string, res []*regexp.Regexp) []string {
	out := []string{}
	for _, re := range res {
		out = append(out, re.FindAllString(text, -1)...)
	}
	return out
}

func inferences(text string, metadata domain.DocumentMetadata) []domain.InferenceOpportunity {
	lower := strings.ToLower(text)
	out := []domain.InferenceOpportunity{}
	if strings.Contains(lower, "rate") && strings.Contains(lower, "grade") {
		out = append(out, domain.InferenceOpportunity{
			Type:        "rate_calculation",
			Description: "Rates for other grades can be inferred from the listed rate patterns",
			Confidence:  "high",
		})
	}
	if strings.Contains(lower, "policy") && strings.Contains(lower, "exception") {
		out = append(out, domain.InferenceOpportunity{
			Type:        "exception_handling",
			Description: "Exception scenarios can be inferred from the policy rules",
			Confidence:  "medium",
		})
	}
	if metadata.DocumentType == domain.DocumentTypePolicyDocument {
		out = append(out, domain.InferenceOpportunity{
			Type:        "compliance_inference",
			Description: "Compliance requirements can be inferred from policy statements",
			Confidence:  "high",
		})
	}
	return out
}

// window returns text[start-pad:end+pad] clamped to the string and widened to rune boundaries.
func window(text string, start, end, pad int) string {
	lo := max(0, start-pad)
	hi := min(len(text), end+pad)
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}
