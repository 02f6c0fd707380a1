package conversation

import (
	"fmt"
	"strings"

	"github.com/kirillkom/docsense/internal/core/domain"
)

const (
	defaultOpener  = "Great question! "
	defaultClosing = "\n\nNeed anything else? I'm here to help with any other questions about your documents."

	fallbackPreviewRunes = 1000
)

// PostProcessor shapes model output. It only reads its vocabulary.
type PostProcessor struct {
	openers     []string
	closingCues []string
}

func NewPostProcessor(vocab Vocabulary) *PostProcessor {
	return &PostProcessor{openers: vocab.Openers, closingCues: vocab.ClosingCues}
}

// Polish adds the opener and the closing offer when the model left them out.
// Applying it twice gives the same text.
func (p *PostProcessor) Polish(text string) string {
	out := strings.TrimSpace(text)
	if !hasPrefixAny(strings.ToLower(out), p.openers) {
		out = defaultOpener + out
	}
	if !containsAny(strings.ToLower(out), p.closingCues) {
		out += defaultClosing
	}
	return out
}

// Fallback is returned when generation fails. It only formats what it is given.
func Fallback(q domain.Query, metadata domain.DocumentMetadata) string {
	topics := "the topics it covers"
	if top := head(metadata.KeyTopics, 3); len(top) > 0 {
		topics = strings.Join(top, ", ")
	}
	language := metadata.LanguagePrimary
	if language == "" {
		language = "unknown"
	}

	var b strings.Builder
	b.WriteString("I ran into a problem while generating a full answer, but here is what I can tell you right away.\n\n")
	fmt.Fprintf(&b, "Your question: %s\n\n", strings.TrimSpace(q.Question))
	b.WriteString("About the document:\n")
	fmt.Fprintf(&b, "- Type: %s\n", metadata.DocumentType.Title())
	fmt.Fprintf(&b, "- Language: %s\n", language)
	fmt.Fprintf(&b, "- Length: %d words\n\n", metadata.WordCount)
	b.WriteString("Preview:\n")
	b.WriteString(previewRunes(q.Context, fallbackPreviewRunes))
	b.WriteString("...\n\n")
	fmt.Fprintf(&b, "Try rephrasing the question or asking about one specific part. The document has useful information about %s.", topics)
	return b.String()
}

func previewRunes(s string, limit int) string {
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
