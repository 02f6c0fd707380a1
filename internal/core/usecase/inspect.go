package usecase

import (
	"time"

	"github.com/kirillkom/docsense/internal/core/analysis"
	"github.com/kirillkom/docsense/internal/core/domain"
	"github.com/kirillkom/docsense/internal/core/ports"
)

// InspectDocumentUseCase runs extraction and analysis without touching storage.
type InspectDocumentUseCase struct {
	extractor ports.TextExtractor
	validator *Validator
	analyzer  *analysis.Analyzer
	observer  ports.PipelineObserver
}

func NewInspectDocumentUseCase(
	extractor ports.TextExtractor,
	validator *Validator,
	analyzer *analysis.Analyzer,
	observer ports.PipelineObserver,
) *InspectDocumentUseCase {
	if validator == nil {
		validator = NewValidator(DefaultMaxUploadBytes)
	}
	if analyzer == nil {
		analyzer = analysis.New(nil)
	}
	if observer == nil {
		observer = noopObserver{}
	}
	return &InspectDocumentUseCase{
		extractor: extractor,
		validator: validator,
		analyzer:  analyzer,
		observer:  observer,
	}
}

func (uc *InspectDocumentUseCase) ValidateUpload(data []byte, filename string) domain.ValidationResult {
	return uc.validator.ValidateUpload(data, filename)
}

func (uc *InspectDocumentUseCase) Inspect(data []byte, filename string) (domain.Document, domain.AnalysisReport, error) {
	validation, err := uc.validator.check(data, filename)
	if err != nil {
		return domain.Document{}, domain.AnalysisReport{}, domain.Fail(err, "validate upload", validation.ErrorMessage)
	}

	text, metadata, err := extract(uc.extractor, uc.observer, data, filename, validation.FileType)
	if err != nil {
		return domain.Document{}, domain.AnalysisReport{}, err
	}

	doc := domain.Document{
		Filename:  filename,
		FileType:  validation.FileType,
		Content:   text,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	return doc, uc.analyzer.Analyze(text, metadata), nil
}
