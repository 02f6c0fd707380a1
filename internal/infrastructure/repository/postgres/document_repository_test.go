package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kirillkom/docsense/internal/core/domain"
)

func newRepoWithMock(t *testing.T) (*DocumentRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return NewDocumentRepository(db), mock, func() { _ = db.Close() }
}

var documentRowColumns = []string{
	"id", "owner_id", "filename", "content_type", "file_type", "storage_key",
	"content", "metadata", "stored", "created_at",
}

func TestCreateInsertsMetadataJSON(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO documents (id,owner_id,filename")).
		WithArgs("doc-1", "alice", "policy.pdf", "application/pdf", "PDF", "alice/doc-1_policy.pdf",
			"text", sqlmock.AnyArg(), true, created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &domain.Document{
		ID:          "doc-1",
		OwnerID:     "alice",
		Filename:    "policy.pdf",
		ContentType: "application/pdf",
		FileType:    domain.FileTypePDF,
		StorageKey:  "alice/doc-1_policy.pdf",
		Content:     "text",
		Stored:      true,
		CreatedAt:   created,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByIDReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, owner_id, filename").
		WithArgs("missing", "alice").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "alice", "missing")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListByOwnerDecodesRowsNewestFirst(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(documentRowColumns).
		AddRow("doc-2", "alice", "b.docx", "", "DOCX", "alice/doc-2_b.docx", "two",
			[]byte(`{"document_type":"policy_document","word_count":2}`), true, now).
		AddRow("doc-1", "alice", "a.pdf", "", "PDF", "alice/doc-1_a.pdf", "one",
			[]byte(`{"document_type":"general_document","word_count":1}`), false, now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("FROM documents WHERE owner_id = $1 ORDER BY created_at DESC, id DESC")).
		WithArgs("alice").
		WillReturnRows(rows)

	docs, err := repo.ListByOwner(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "doc-2" || docs[0].FileType != domain.FileTypeDOCX {
		t.Fatalf("unexpected documents %+v", docs)
	}
	if docs[0].Metadata.DocumentType != domain.DocumentTypePolicyDocument || docs[1].Metadata.WordCount != 1 {
		t.Fatalf("metadata not decoded: %+v", docs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeleteReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("missing", "alice").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "alice", "missing")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRepositoryErrorsAreStorageKind(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id").WithArgs("alice").WillReturnError(errors.New("connection reset"))

	_, err := repo.ListByOwner(context.Background(), "alice")
	if !domain.IsKind(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestEnsureSchemaTakesAdvisoryLock(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(int64(2026101501)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS documents").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
