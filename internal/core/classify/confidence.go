package classify

import (
	"strings"
	"unicode/utf8"
)

// Confidence depends only on size and structural counters, so it can only
// grow as a document gets longer or gains paragraphs and headings.
// Scoring is done in tenths to keep the sums exact.
func Confidence(text string, paragraphs, headings int) float64 {
	tenths := 5

	switch length := utf8.RuneCountInString(text); {
	case length > 1000:
		tenths += 2
	case length > 500:
		tenths++
	}
	if paragraphs > 5 {
		tenths++
	}
	if headings > 0 {
		tenths++
	}
	if len(strings.Fields(text)) > 100 {
		tenths++
	}
	return min(float64(tenths)/10, 1.0)
}
