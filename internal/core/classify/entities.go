package classify

import (
	"regexp"

	"github.com/kirillkom/docsense/internal/core/domain"
)

const (
	maxEntitiesPerPattern = 5
	maxEntities           = 20
)

type entityFamily struct {
	kind     domain.EntityKind
	patterns []*regexp.Regexp
}

var entityFamilies = []entityFamily{
	{
		kind: domain.EntityDate,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b\d{1,2}[-/]\d{1,2}[-/]\d{2,4}\b`),
			regexp.MustCompile(`(?i)\b\d{4}[-/]\d{1,2}[-/]\d{1,2}\b`),
			regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2},? \d{4}\b`),
		},
	},
	{
		kind: domain.EntityMoney,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d{2})?`),
			regexp.MustCompile(`₹\d+(?:,\d{3})*(?:\.\d{2})?`),
			regexp.MustCompile(`(?i)\b\d+(?:,\d{3})*(?:\.\d{2})?\s*(?:USD|INR|EUR|GBP)\b`),
		},
	},
	{
		kind: domain.EntityOrg,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[A-Z][a-z]+ (?:Inc|Corp|LLC|Ltd|Company|Corporation|Limited)\b`),
			regexp.MustCompile(`\b[A-Z]{2,}\b`),
		},
	},
}

// Entities tags date, money and organisation mentions. Each pattern
// contributes at most five matches. Callers should treat the result as a set.
func Entities(text string) []domain.Entity {
	out := make([]domain.Entity, 0)
	if text == "" {
		return out
	}

	seen := make(map[domain.Entity]struct{})
	for _, family := range entityFamilies {
		for _, re := range family.patterns {
			for _, match := range re.FindAllString(text, maxEntitiesPerPattern) {
				e := domain.Entity{Kind: family.kind, Text: match}
				if _, dup := seen[e]; dup {
					continue
				}
				seen[e] = struct{}{}
				out = append(out, e)
			}
		}
	}
	if len(out) > maxEntities {
		out = out[:maxEntities]
	}
	return out
}
