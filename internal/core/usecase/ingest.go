package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/docsense/internal/core/domain"
	"github.com/kirillkom/docsense/internal/core/ports"
)

type IngestDocumentUseCase struct {
	repo      ports.DocumentRepository
	blobs     ports.BlobStore
	events    ports.EventPublisher
	extractor ports.TextExtractor
	validator *Validator
	observer  ports.PipelineObserver
	now       func() time.Time
}

// NewIngestDocumentUseCase wires the ingestion pipeline. events and observer may be nil.
func NewIngestDocumentUseCase(
	repo ports.DocumentRepository,
	blobs ports.BlobStore,
	events ports.EventPublisher,
	extractor ports.TextExtractor,
	validator *Validator,
	observer ports.PipelineObserver,
) *IngestDocumentUseCase {
	if validator == nil {
		validator = NewValidator(DefaultMaxUploadBytes)
	}
	if observer == nil {
		observer = noopObserver{}
	}
	return &IngestDocumentUseCase{
		repo:      repo,
		blobs:     blobs,
		events:    events,
		extractor: extractor,
		validator: validator,
		observer:  observer,
		now:       time.Now,
	}
}

func (uc *IngestDocumentUseCase) Upload(
	ctx context.Context,
	owner, filename, contentType string,
	data []byte,
) (*domain.Document, error) {
	validation, err := uc.validator.check(data, filename)
	if err != nil {
		return nil, domain.Fail(err, "validate upload", validation.ErrorMessage)
	}

	text, metadata, err := extract(uc.extractor, uc.observer, data, filename, validation.FileType)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	doc := &domain.Document{
		ID:          id,
		OwnerID:     owner,
		Filename:    filename,
		ContentType: contentType,
		FileType:    validation.FileType,
		StorageKey:  fmt.Sprintf("%s/%s_%s", sanitizeKeySegment(owner), id, sanitizeFilename(filename)),
		Content:     text,
		Metadata:    metadata,
		CreatedAt:   uc.now().UTC(),
	}

	doc.Stored = uc.putBlob(ctx, doc, data)

	if err := uc.repo.Create(ctx, doc); err != nil {
		if doc.Stored {
			uc.deleteBlob(ctx, doc.StorageKey)
		}
		return nil, fmt.Errorf("create document: %w", err)
	}

	uc.publish(ctx, doc)
	uc.observer.DocumentIngested(metadata.FileType, metadata.DocumentType.String())

	slog.Info("document_ingested",
		"document_id", doc.ID,
		"owner", owner,
		"file_type", string(doc.FileType),
		"document_type", metadata.DocumentType.String(),
		"word_count", metadata.WordCount,
		"stored", doc.Stored,
	)
	return doc, nil
}

// extract runs extraction plus preprocessing and records the extraction metrics.
func extract(
	extractor ports.TextExtractor,
	observer ports.PipelineObserver,
	data []byte,
	filename string,
	fileType domain.FileType,
) (string, domain.DocumentMetadata, error) {
	started := time.Now()
	text, metadata, err := extractor.ExtractWithMetadata(data, filename)
	observer.ExtractionFinished(fileType.MetadataName(), time.Since(started), failureKind(err))
	if err != nil {
		return "", domain.DocumentMetadata{}, fmt.Errorf("extract %s: %w", filename, err)
	}
	return extractor.Preprocess(text), metadata, nil
}

func (uc *IngestDocumentUseCase) putBlob(ctx context.Context, doc *domain.Document, data []byte) bool {
	if uc.blobs == nil {
		return false
	}
	if err := uc.blobs.Put(ctx, doc.StorageKey, data, doc.ContentType, blobMetadata(doc, uc.now())); err != nil {
		slog.Warn("blob_put_failed", "document_id", doc.ID, "key", doc.StorageKey, "error", err.Error())
		return false
	}
	return true
}

func (uc *IngestDocumentUseCase) deleteBlob(ctx context.Context, key string) {
	if err := uc.blobs.Delete(ctx, key); err != nil {
		slog.Warn("blob_delete_failed", "key", key, "error", err.Error())
	}
}

func (uc *IngestDocumentUseCase) publish(ctx context.Context, doc *domain.Document) {
	if uc.events == nil {
		return
	}
	event := domain.DocumentAnalyzedEvent{
		DocumentID:   doc.ID,
		OwnerID:      doc.OwnerID,
		Filename:     doc.Filename,
		FileType:     doc.FileType,
		DocumentType: doc.Metadata.DocumentType.String(),
		Language:     doc.Metadata.LanguagePrimary,
		WordCount:    doc.Metadata.WordCount,
		Confidence:   doc.Metadata.Confidence,
		OccurredAt:   uc.now().UTC(),
	}
	if err := uc.events.PublishDocumentAnalyzed(ctx, event); err != nil {
		slog.Warn("event_publish_failed", "document_id", doc.ID, "error", err.Error())
	}
}

func blobMetadata(doc *domain.Document, processedAt time.Time) map[string]string {
	return map[string]string{
		"owner":         doc.OwnerID,
		"document_id":   doc.ID,
		"document_type": doc.Metadata.DocumentType.String(),
		"language":      doc.Metadata.LanguagePrimary,
		"word_count":    strconv.Itoa(doc.Metadata.WordCount),
		"complexity":    doc.Metadata.Complexity.String(),
		"confidence":    strconv.FormatFloat(doc.Metadata.Confidence, 'f', 2, 64),
		"processed_at":  processedAt.UTC().Format(time.RFC3339),
	}
}

// failureKind is the metrics label for an extraction error.
func failureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, domain.ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, domain.ErrNoExtractableText):
		return "no_extractable_text"
	case errors.Is(err, domain.ErrCorruptFile):
		return "corrupt_file"
	default:
		return "other"
	}
}

func sanitizeKeySegment(s string) string {
	s = sanitizeFilename(s)
	if s == "document.bin" {
		return "default"
	}
	return s
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		return "document.bin"
	}
	return base
}

type noopObserver struct{}

func (noopObserver) DocumentIngested(string, string) {}
func (noopObserver) ExtractionFinished(string, time.Duration, string) {}
func (noopObserver) AnswerServed(string, string, time.Duration) {}
