package ports

import (
	"context"
	"time"

	"github.com/kirillkom/docsense/internal/core/domain"
)

// TextExtractor turns uploaded bytes into marked-up text.
type TextExtractor interface {
	Extract(data []byte, filename string) (string, error)
	ExtractWithMetadata(data []byte, filename string) (string, domain.DocumentMetadata, error)
	// Preprocess normalises extracted text before it is stored.
	Preprocess(text string) string
}

// DocumentRepository persists documents per owner.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, owner, id string) (*domain.Document, error)
	ListByOwner(ctx context.Context, owner string) ([]domain.Document, error)
	Delete(ctx context.Context, owner, id string) error
}

// BlobStore keeps the original upload bytes.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string, meta map[string]string) error
	Delete(ctx context.Context, key string) error
}

type EventPublisher interface {
	PublishDocumentAnalyzed(ctx context.Context, event domain.DocumentAnalyzedEvent) error
}

// TextGenerator calls the language model.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts domain.GenerationOptions) (string, error)
}

// Chunker splits text into semantic chunks.
type Chunker interface {
	Chunk(text string, metadata domain.DocumentMetadata) []domain.SemanticChunk
}

// PipelineObserver records ingestion and answer metrics.
type PipelineObserver interface {
	DocumentIngested(fileType, documentType string)
	// ExtractionFinished gets an empty failureKind on success.
	ExtractionFinished(fileType string, duration time.Duration, failureKind string)
	AnswerServed(route, stage string, duration time.Duration)
}
