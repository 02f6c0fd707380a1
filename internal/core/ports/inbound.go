package ports

import (
	"context"

	"github.com/kirillkom/docsense/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, owner, filename, contentType string, data []byte) (*domain.Document, error)
}

// DocumentReader is the inbound read model for stored documents and the views derived from them.
type DocumentReader interface {
	Get(ctx context.Context, owner, id string) (*domain.Document, error)
	List(ctx context.Context, owner string) ([]domain.Document, error)
	Analysis(ctx context.Context, owner, id string) (domain.AnalysisReport, error)
	Chunks(ctx context.Context, owner, id string) ([]domain.SemanticChunk, error)
}

type DocumentRemover interface {
	Delete(ctx context.Context, owner, id string) error
}

// QuestionAnswerer runs the routed answer pipeline. Respond never fails.
type QuestionAnswerer interface {
	AskDocuments(ctx context.Context, owner, question string) (domain.Answer, error)
	Respond(ctx context.Context, q domain.Query) domain.Answer
}

type UploadValidator interface {
	ValidateUpload(data []byte, filename string) domain.ValidationResult
}

// DocumentInspector extracts and analyses an upload without persisting it.
type DocumentInspector interface {
	Inspect(data []byte, filename string) (domain.Document, domain.AnalysisReport, error)
}
