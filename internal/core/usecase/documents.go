package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/docsense/internal/core/analysis"
	"github.com/kirillkom/docsense/internal/core/domain"
	"github.com/kirillkom/docsense/internal/core/ports"
)

// DocumentService is the read and delete side of stored documents.
type DocumentService struct {
	repo     ports.DocumentRepository
	blobs    ports.BlobStore
	analyzer *analysis.Analyzer
	chunker  ports.Chunker
}

func NewDocumentService(
	repo ports.DocumentRepository,
	blobs ports.BlobStore,
	analyzer *analysis.Analyzer,
	chunker ports.Chunker,
) *DocumentService {
	if analyzer == nil {
		analyzer = analysis.New(nil)
	}
	return &DocumentService{
		repo:     repo,
		blobs:    blobs,
		analyzer: analyzer,
		chunker:  chunker,
	}
}

func (s *DocumentService) Get(ctx context.Context, owner, id string) (*domain.Document, error) {
	doc, err := s.repo.GetByID(ctx, owner, id)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	return doc, nil
}

func (s *DocumentService) List(ctx context.Context, owner string) ([]domain.Document, error) {
	docs, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Analysis recomputes the report from the stored text.
func (s *DocumentService) Analysis(ctx context.Context, owner, id string) (domain.AnalysisReport, error) {
	doc, err := s.Get(ctx, owner, id)
	if err != nil {
		return domain.AnalysisReport{}, err
	}
	return s.analyzer.Analyze(doc.Content, doc.Metadata), nil
}

func (s *DocumentService) Chunks(ctx context.Context, owner, id string) ([]domain.SemanticChunk, error) {
	doc, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return s.chunker.Chunk(doc.Content, doc.Metadata), nil
}

// Delete removes the record first. The blob delete is best effort.
func (s *DocumentService) Delete(ctx context.Context, owner, id string) error {
	doc, err := s.Get(ctx, owner, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, owner, id); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if s.blobs != nil && doc.Stored {
		if err := s.blobs.Delete(ctx, doc.StorageKey); err != nil {
			slog.Warn("blob_delete_failed", "document_id", id, "key", doc.StorageKey, "error", err.Error())
		}
	}
	slog.Info("document_deleted", "document_id", id, "owner", owner)
	return nil
}
