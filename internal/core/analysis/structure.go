package analysis

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/docsense/internal/core/classify"
	"github.com/kirillkom/docsense/internal/core/domain"
)

const maxSectionTitleRunes = 100

var orderedItemRe = regexp.MustCompile(`^\d+\.`)

func contentStructure(text string) domain.ContentStructure {
	cs := domain.ContentStructure{
		Sections: []domain.Section{},
		Lists:    []domain.ListItem{},
		Tables:   []domain.TableIndicator{},
	}

	lines := strings.Split(text, "\n")
	current := ""
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if isSectionLine(line) {
			current = strings.TrimSpace(strings.ReplaceAll(line, domain.HeadingMarker, ""))
			cs.Sections = append(cs.Sections, domain.Section{
				Title:      current,
				LineNumber: i,
				Preview:    strings.Join(lines[min(i+1, len(lines)):min(i+3, len(lines))], " "),
			})
		}

		ordered := orderedItemRe.MatchString(line)
		if ordered || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•") {
			cs.Lists = append(cs.Lists, domain.ListItem{
				Ordered: ordered,
				Content: line,
				Section: current,
			})
		}

		if strings.Contains(strings.ToLower(line), "table") || strings.Contains(line, "|") {
			cs.Tables = append(cs.Tables, domain.TableIndicator{
				Indicator:  line,
				LineNumber: i,
				Section:    current,
			})
		}
	}

	cs.HierarchicalDepth = len(cs.Sections)
	return cs
}

// isSectionLine accepts any marked heading, or a short all-caps line.
func isSectionLine(line string) bool {
	if strings.HasPrefix(line, domain.HeadingMarker) {
		return true
	}
	return classify.IsUpper(line) && utf8.RuneCountInString(line) < maxSectionTitleRunes
}
