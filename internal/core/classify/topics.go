package classify

import (
	"regexp"
	"sort"
	"strings"
)

const maxTopics = 10

var topicWordRe = regexp.MustCompile(`\b[a-z]{4,}\b`)

// Topics returns up to ten repeated non-stop words by descending frequency.
// Equal frequencies keep first-occurrence order.
func (c *Classifier) Topics(text string) []string {
	return rankWords(text, c.stop, maxTopics, 2)
}

// RankWords is the shared frequency ranking used for document and chunk topics.
func RankWords(text string, stop map[string]struct{}, limit, minFreq int) []string {
	return rankWords(text, stop, limit, minFreq)
}

func rankWords(text string, stop map[string]struct{}, limit, minFreq int) []string {
	type entry struct {
		word  string
		count int
	}

	index := make(map[string]int)
	var entries []entry
	for _, word := range topicWordRe.FindAllString(strings.ToLower(text), -1) {
		if _, skip := stop[word]; skip {
			continue
		}
		if i, ok := index[word]; ok {
			entries[i].count++
			continue
		}
		index[word] = len(entries)
		entries = append(entries, entry{word: word, count: 1})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})

	topics := make([]string, 0, limit)
	for _, e := range entries {
		if len(topics) == limit || e.count < minFreq {
			break
		}
		topics = append(topics, e.word)
	}
	return topics
}
