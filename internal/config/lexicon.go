package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/docsense/internal/core/classify"
	"github.com/kirillkom/docsense/internal/core/conversation"
	"github.com/kirillkom/docsense/internal/core/domain"
)

// Lexicon overrides keyword vocabularies. Empty lists keep the built-in ones.
type Lexicon struct {
	Classifier ClassifierLexicon `yaml:"classifier"`
	Router     RouterLexicon     `yaml:"router"`
}

type ClassifierLexicon struct {
	DefaultLanguage  string             `yaml:"default_language"`
	Languages        []LanguageLexicon  `yaml:"languages"`
	DocumentTypes    []DocumentTypeTerm `yaml:"document_types"`
	TechnicalTerms   []string           `yaml:"technical_terms"`
	SpecializedTerms []string           `yaml:"specialized_terms"`
	StopWords        []string           `yaml:"stop_words"`
}

type LanguageLexicon struct {
	Name       string   `yaml:"name"`
	Threshold  int      `yaml:"threshold"`
	Indicators []string `yaml:"indicators"`
}

// DocumentTypeTerm entries keep file order, which breaks score ties.
type DocumentTypeTerm struct {
	Type  string   `yaml:"type"`
	Terms []string `yaml:"terms"`
}

type RouterLexicon struct {
	Greetings      []string `yaml:"greetings"`
	OffTopic       []string `yaml:"off_topic"`
	OnTopic        []string `yaml:"on_topic"`
	Programming    []string `yaml:"programming"`
	VaguePhrases   []string `yaml:"vague_phrases"`
	Interrogatives []string `yaml:"interrogatives"`
	MinWords       int      `yaml:"min_words"`
	Openers        []string `yaml:"openers"`
	ClosingCues    []string `yaml:"closing_cues"`
}

// LoadLexicon returns an empty Lexicon when path is empty.
func LoadLexicon(path string) (Lexicon, error) {
	if path == "" {
		return Lexicon{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read lexicon: %w", err)
	}
	return ParseLexicon(raw)
}

func ParseLexicon(raw []byte) (Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(raw, &lex); err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon: %w", err)
	}
	return lex, nil
}

func (l Lexicon) ApplyClassifier(base classify.Vocabulary) (classify.Vocabulary, error) {
	c := l.Classifier
	if c.DefaultLanguage != "" {
		base.DefaultLanguage = c.DefaultLanguage
	}
	if len(c.Languages) > 0 {
		rules := make([]classify.LanguageRule, 0, len(c.Languages))
		for _, lang := range c.Languages {
			if lang.Name == "" || len(lang.Indicators) == 0 {
				return base, fmt.Errorf("lexicon language %q needs a name and indicators", lang.Name)
			}
			rules = append(rules, classify.LanguageRule{Name: lang.Name, Threshold: lang.Threshold, Indicators: lang.Indicators})
		}
		base.Languages = rules
	}
	if len(c.DocumentTypes) > 0 {
		buckets := make([]classify.TypeBucket, 0, len(c.DocumentTypes))
		for _, entry := range c.DocumentTypes {
			var t domain.DocumentType
			if err := t.UnmarshalText([]byte(entry.Type)); err != nil {
				return base, fmt.Errorf("lexicon document type: %w", err)
			}
			buckets = append(buckets, classify.TypeBucket{Type: t, Terms: entry.Terms})
		}
		base.TypeBuckets = buckets
	}
	base.TechnicalTerms = override(base.TechnicalTerms, c.TechnicalTerms)
	base.SpecializedTerms = override(base.SpecializedTerms, c.SpecializedTerms)
	base.StopWords = override(base.StopWords, c.StopWords)
	return base, nil
}

func (l Lexicon) ApplyRouter(base conversation.Vocabulary) conversation.Vocabulary {
	r := l.Router
	base.Greetings = override(base.Greetings, r.Greetings)
	base.OffTopic = override(base.OffTopic, r.OffTopic)
	base.OnTopic = override(base.OnTopic, r.OnTopic)
	base.Programming = override(base.Programming, r.Programming)
	base.VaguePhrases = override(base.VaguePhrases, r.VaguePhrases)
	base.Interrogatives = override(base.Interrogatives, r.Interrogatives)
	base.Openers = override(base.Openers, r.Openers)
	base.ClosingCues = override(base.ClosingCues, r.ClosingCues)
	if r.MinWords > 0 {
		base.MinWords = r.MinWords
	}
	return base
}

func override(base, custom []string) []string {
	if len(custom) == 0 {
		return base
	}
	return custom
}
