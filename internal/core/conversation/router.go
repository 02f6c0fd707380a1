// Package conversation decides how a question is answered: which route it
// takes, the prompt sent to the model and the shaping of whatever comes back.
package conversation

import (
	"fmt"
	"strings"

	"github.com/kirillkom/docsense/internal/core/domain"
)

type Router struct {
	vocab     Vocabulary
	greetings map[string]struct{}
	vague     map[string]struct{}
}

func NewRouter(vocab Vocabulary) *Router {
	if vocab.MinWords <= 0 {
		vocab.MinWords = DefaultVocabulary().MinWords
	}
	vague := toSet(vocab.VaguePhrases)
	for _, w := range vocab.Interrogatives {
		vague[w] = struct{}{}
	}
	return &Router{
		vocab:     vocab,
		greetings: toSet(vocab.Greetings),
		vague:     vague,
	}
}

func DefaultRouter() *Router {
	return NewRouter(DefaultVocabulary())
}

func (r *Router) Vocabulary() Vocabulary {
	return r.vocab
}

// Route classifies the question. Greeting wins over off-topic, which wins
// over vague.
func (r *Router) Route(question string) domain.Route {
	q := normalize(question)
	if _, ok := r.greetings[q]; ok {
		return domain.RouteGreeting
	}
	if containsAny(q, r.vocab.OffTopic) && !containsAny(q, r.vocab.OnTopic) {
		return domain.RouteOffTopic
	}
	if r.isVague(q) {
		return domain.RouteVague
	}
	return domain.RouteSubstantive
}

func (r *Router) isVague(q string) bool {
	if len(strings.Fields(q)) < r.vocab.MinWords {
		return true
	}
	_, ok := r.vague[q]
	return ok
}

// Canned returns the fixed reply for a non-substantive route. The second
// result is false for the substantive route.
func (r *Router) Canned(route domain.Route, question string, filenames []string) (string, bool) {
	switch route {
	case domain.RouteGreeting:
		return greetingReply, true
	case domain.RouteVague:
		return vagueReply, true
	case domain.RouteOffTopic:
		q := normalize(question)
		if containsAny(q, r.vocab.Programming) && !strings.Contains(q, "travel") {
			return programmingReply(filenames), true
		}
		return offTopicReply, true
	default:
		return "", false
	}
}

// NoContextReply is returned for a substantive question when nothing has
// been uploaded yet.
func NoContextReply(question string) string {
	return fmt.Sprintf("I'd be happy to answer %q, but there is no document to read from yet. "+
		"Please upload a PDF or DOCX file first and ask again.", strings.TrimSpace(question))
}

func normalize(question string) string {
	return strings.ToLower(strings.TrimSpace(question))
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func hasPrefixAny(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		out[it] = struct{}{}
	}
	return out
}
