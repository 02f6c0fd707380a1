package office

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/docsense/internal/core/classify"
	"github.com/kirillkom/docsense/internal/core/domain"
)

const (
	maxHeadingRunes = 100
	// A row gap above this many font heights reads as a paragraph break.
	paragraphGapFactor = 1.6
	defaultFontSize    = 12.0
)

type pdfLine struct {
	text string
	y    float64
}

// pdfPage holds rows top to bottom and the most common font size on the page.
type pdfPage struct {
	lines    []pdfLine
	fontSize float64
	fonts    []string
}

// rawLines flattens a page into raw lines and inserts an empty line at every
// paragraph-sized vertical gap.
func rawLines(page pdfPage) []string {
	size := page.fontSize
	if size <= 0 {
		size = defaultFontSize
	}
	out := make([]string, 0, len(page.lines))
	for i, line := range page.lines {
		if i > 0 && page.lines[i-1].y-line.y > paragraphGapFactor*size {
			out = append(out, "")
		}
		out = append(out, line.text)
	}
	return out
}

// formatLines normalises whitespace and marks short lines as headings when
// they are all caps or followed by a blank line.
func formatLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		cleaned := strings.Join(strings.Fields(line), " ")
		if cleaned == "" {
			continue
		}
		nextBlank := i < len(lines)-1 && strings.TrimSpace(lines[i+1]) == ""
		if utf8.RuneCountInString(cleaned) < maxHeadingRunes && (classify.IsUpper(cleaned) || nextBlank) {
			out = append(out, "\n"+domain.HeadingMarker+" "+cleaned+"\n")
			continue
		}
		out = append(out, cleaned)
	}
	return out
}

// assemble joins pages, putting a page marker before every page after the first.
func assemble(pages [][]string) string {
	var b strings.Builder
	for i, lines := range pages {
		if i > 0 {
			fmt.Fprintf(&b, "\n\n--- Page %d ---\n\n", i+1)
		}
		b.WriteString(strings.Join(formatLines(lines), "\n"))
	}
	return strings.TrimSpace(b.String())
}
