package usecase

import (
	"context"
	"testing"

	"github.com/kirillkom/docsense/internal/core/domain"
)

const policyText = `## TRAVEL POLICY
This policy applies to all employees. See section 4 for exceptions.
- Hotel rate: 5,000 per night for L3.`

func TestDocumentServiceReads(t *testing.T) {
	repo := newRepoFake(domain.Document{
		ID:       "doc-1",
		OwnerID:  "alice",
		Filename: "policy.pdf",
		Content:  policyText,
		Metadata: domain.DocumentMetadata{DocumentType: domain.DocumentTypePolicyDocument},
	})
	chunker := &chunkerFake{}
	svc := NewDocumentService(repo, &blobFake{}, nil, chunker)

	if _, err := svc.Get(context.Background(), "bob", "doc-1"); !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected not found for another owner, got %v", err)
	}

	report, err := svc.Analysis(context.Background(), "alice", "doc-1")
	if err != nil {
		t.Fatalf("Analysis() error = %v", err)
	}
	if report.Metadata.DocumentType != domain.DocumentTypePolicyDocument {
		t.Fatalf("expected stored metadata in report, got %+v", report.Metadata)
	}
	if len(report.ContentStructure.Sections) != 1 || len(report.CrossReferences) == 0 {
		t.Fatalf("expected analysis of stored content, got %+v", report.ContentStructure)
	}

	chunks, err := svc.Chunks(context.Background(), "alice", "doc-1")
	if err != nil || len(chunks) != 1 || chunker.text != policyText {
		t.Fatalf("unexpected chunks %+v, %v", chunks, err)
	}

	docs, err := svc.List(context.Background(), "alice")
	if err != nil || len(docs) != 1 {
		t.Fatalf("unexpected list %+v, %v", docs, err)
	}
}

func TestDocumentServiceDelete(t *testing.T) {
	repo := newRepoFake(
		domain.Document{ID: "doc-1", OwnerID: "alice", StorageKey: "alice/doc-1_a.pdf", Stored: true},
		domain.Document{ID: "doc-2", OwnerID: "alice", StorageKey: "alice/doc-2_b.pdf"},
	)
	blobs := &blobFake{deleteErr: errBoom}
	svc := NewDocumentService(repo, blobs, nil, &chunkerFake{})

	if err := svc.Delete(context.Background(), "alice", "doc-1"); err != nil {
		t.Fatalf("blob delete failure must not fail the request: %v", err)
	}
	if len(blobs.deleted) != 1 || blobs.deleted[0] != "alice/doc-1_a.pdf" {
		t.Fatalf("unexpected blob deletes %v", blobs.deleted)
	}

	if err := svc.Delete(context.Background(), "alice", "doc-2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(blobs.deleted) != 1 {
		t.Fatalf("documents without a stored blob must not touch the blob store")
	}

	if err := svc.Delete(context.Background(), "alice", "doc-1"); !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestInspectDoesNotPersist(t *testing.T) {
	extractor := &extractorFake{text: policyText, meta: domain.DocumentMetadata{WordCount: 20}}
	uc := NewInspectDocumentUseCase(extractor, nil, nil, nil)

	doc, report, err := uc.Inspect([]byte("%PDF"), "policy.pdf")
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if doc.ID != "" || doc.FileType != domain.FileTypePDF || doc.Content != "clean:"+policyText {
		t.Fatalf("unexpected document %+v", doc)
	}
	if report.Metadata.WordCount != 20 {
		t.Fatalf("expected metadata in report")
	}

	if _, _, err := uc.Inspect(nil, "policy.pdf"); !domain.IsKind(err, domain.ErrEmptyInput) {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if got := uc.ValidateUpload([]byte("x"), "a.docx"); !got.IsValid {
		t.Fatalf("expected valid upload, got %+v", got)
	}
}
