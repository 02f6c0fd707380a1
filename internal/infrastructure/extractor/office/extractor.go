// Package office extracts marked-up text from PDF and DOCX uploads.
package office

import (
	"fmt"
	"strings"

	"github.com/kirillkom/docsense/internal/core/classify"
	"github.com/kirillkom/docsense/internal/core/domain"
)

// Mode is chosen once at startup.
type Mode string

const (
	ModeBasic    Mode = "basic"
	ModeAdvanced Mode = "advanced"
)

func ParseMode(value string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(value))); m {
	case ModeBasic, ModeAdvanced:
		return m, nil
	default:
		return "", fmt.Errorf("unknown extraction mode %q", value)
	}
}

// Extractor is stateless apart from its configuration and safe for concurrent use.
type Extractor struct {
	mode       Mode
	classifier *classify.Classifier
}

func NewExtractor(mode Mode, classifier *classify.Classifier) *Extractor {
	if mode == "" {
		mode = ModeAdvanced
	}
	if classifier == nil {
		classifier = classify.Default()
	}
	return &Extractor{mode: mode, classifier: classifier}
}

func (e *Extractor) Mode() Mode {
	return e.mode
}

func (e *Extractor) Extract(data []byte, filename string) (string, error) {
	text, _, _, err := e.extract(data, filename)
	return text, err
}

func (e *Extractor) ExtractWithMetadata(data []byte, filename string) (string, domain.DocumentMetadata, error) {
	text, fileType, structure, err := e.extract(data, filename)
	if err != nil {
		return "", domain.DocumentMetadata{}, err
	}
	return text, e.classifier.ClassifyExtracted(text, fileType, structure), nil
}

func (e *Extractor) Preprocess(text string) string {
	return Preprocess(text)
}

func (e *Extractor) extract(data []byte, filename string) (string, domain.FileType, domain.Structure, error) {
	fileType, ok := domain.FileTypeFromName(filename)
	if !ok {
		return "", "", domain.Structure{}, domain.Fail(domain.ErrUnsupportedFormat, "extract", filename)
	}
	if len(data) == 0 {
		return "", fileType, domain.Structure{}, domain.Fail(domain.ErrEmptyInput, "extract", "no file contents provided")
	}

	switch fileType {
	case domain.FileTypePDF:
		text, structure, err := extractPDF(data, e.mode == ModeAdvanced)
		return text, fileType, structure, err
	default:
		text, structure, err := extractDOCX(data)
		return text, fileType, structure, err
	}
}
