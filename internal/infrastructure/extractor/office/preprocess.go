package office

import (
	"regexp"
	"strings"
)

var (
	blankRunRe      = regexp.MustCompile(`\n[ \t]*(?:\n[ \t]*){2,}`)
	inlineSpaceRe   = regexp.MustCompile(`[ \t]+`)
	sentenceJoinRe  = regexp.MustCompile(`([.!?])([A-Z])`)
	headingPrefixRe = regexp.MustCompile(`\n(#{1,6})[ \t]*`)
)

// Preprocess normalises extracted text before it is stored or chunked.
func Preprocess(text string) string {
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = inlineSpaceRe.ReplaceAllString(text, " ")
	text = sentenceJoinRe.ReplaceAllString(text, "$1 $2")
	text = headingPrefixRe.ReplaceAllString(text, "\n$1 ")
	return strings.TrimSpace(text)
}
