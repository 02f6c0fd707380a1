package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kirillkom/docsense/internal/core/domain"
)

const documentsTable = "documents"

var documentColumns = []string{
	"id", "owner_id", "filename", "content_type", "file_type", "storage_key",
	"content", "metadata", "stored", "created_at",
}

type DocumentRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *DocumentRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/mcp startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026101501)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL,
	filename TEXT NOT NULL,
	content_type TEXT NOT NULL DEFAULT '',
	file_type TEXT NOT NULL,
	storage_key TEXT NOT NULL,
	content TEXT NOT NULL,
	metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
	stored BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_owner_created ON documents(owner_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_documents_document_type ON documents((metadata->>'document_type'));
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	metaJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	query, args, err := r.builder.Insert(documentsTable).
		Columns(documentColumns...).
		Values(
			doc.ID, doc.OwnerID, doc.Filename, doc.ContentType, string(doc.FileType), doc.StorageKey,
			doc.Content, metaJSON, doc.Stored, doc.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert document: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return domain.WrapError(domain.ErrStorage, "insert document", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, owner, id string) (*domain.Document, error) {
	query, args, err := r.builder.Select(documentColumns...).
		From(documentsTable).
		Where(sq.Eq{"id": id, "owner_id": owner}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select document: %w", err)
	}

	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", fmt.Errorf("id=%s", id))
		}
		return nil, domain.WrapError(domain.ErrStorage, "get document", err)
	}
	return doc, nil
}

// ListByOwner returns documents newest first.
func (r *DocumentRepository) ListByOwner(ctx context.Context, owner string) ([]domain.Document, error) {
	query, args, err := r.builder.Select(documentColumns...).
		From(documentsTable).
		Where(sq.Eq{"owner_id": owner}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list documents: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "list documents", err)
	}
	defer rows.Close()

	out := make([]domain.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, domain.WrapError(domain.ErrStorage, "list documents", err)
		}
		out = append(out, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "list documents", err)
	}
	return out, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, owner, id string) error {
	query, args, err := r.builder.Delete(documentsTable).
		Where(sq.Eq{"id": id, "owner_id": owner}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete document: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "delete document", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "delete document", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, "delete document", fmt.Errorf("id=%s", id))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var (
		doc      domain.Document
		fileType string
		metaRaw  []byte
	)
	err := row.Scan(
		&doc.ID, &doc.OwnerID, &doc.Filename, &doc.ContentType, &fileType, &doc.StorageKey,
		&doc.Content, &metaRaw, &doc.Stored, &doc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(metaRaw, &doc.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}
	doc.FileType = domain.FileType(fileType)
	return &doc, nil
}
