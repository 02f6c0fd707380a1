package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/docsense/internal/core/domain"
	"github.com/kirillkom/docsense/internal/core/ports"
)

const defaultOwner = "default"

type Deps struct {
	Ingestor  ports.DocumentIngestor
	Answerer  ports.QuestionAnswerer
	Documents ports.DocumentReader
	Validator ports.UploadValidator
	Inspector ports.DocumentInspector
	// MaxFileBytes bounds what a tool reads from disk. Zero means no bound.
	MaxFileBytes int64
}

// Server exposes the document pipeline as MCP tools.
type Server struct {
	deps Deps
}

func New(deps Deps) *Server {
	return &Server{deps: deps}
}

// MCPServer builds an mcp-go server with every tool registered.
func (s *Server) MCPServer(name, version string) *server.MCPServer {
	srv := server.NewMCPServer(name, version, server.WithToolCapabilities(false), server.WithRecovery())

	srv.AddTool(mcp.NewTool("validate_document",
		mcp.WithDescription("Check that a PDF or DOCX file is non-empty, within the size limit and of a supported type."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the document on disk")),
	), s.validateDocument)

	srv.AddTool(mcp.NewTool("inspect_document",
		mcp.WithDescription("Extract a document and return its metadata and analysis without storing it."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the document on disk")),
	), s.inspectDocument)

	srv.AddTool(mcp.NewTool("upload_document",
		mcp.WithDescription("Extract, classify and store a document for later questions."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the document on disk")),
		mcp.WithString("owner", mcp.Description("Owner the document belongs to"), mcp.DefaultString(defaultOwner)),
	), s.uploadDocument)

	srv.AddTool(mcp.NewTool("ask_documents",
		mcp.WithDescription("Answer a question from the owner's uploaded documents."),
		mcp.WithString("question", mcp.Required(), mcp.Description("Question to answer")),
		mcp.WithString("owner", mcp.Description("Owner whose documents are searched"), mcp.DefaultString(defaultOwner)),
	), s.askDocuments)

	srv.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List the owner's uploaded documents, newest first."),
		mcp.WithString("owner", mcp.Description("Owner whose documents are listed"), mcp.DefaultString(defaultOwner)),
	), s.listDocuments)

	return srv
}

func (s *Server) validateDocument(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.readFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.deps.Validator.ValidateUpload(data, filepath.Base(path)))
}

func (s *Server) inspectDocument(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.readFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, report, err := s.deps.Inspector.Inspect(data, filepath.Base(path))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"filename": doc.Filename,
		"metadata": doc.Metadata,
		"analysis": report,
	})
}

func (s *Server) uploadDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.readFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	filename := filepath.Base(path)
	doc, err := s.deps.Ingestor.Upload(ctx, owner(req), filename, mime.TypeByExtension(filepath.Ext(filename)), data)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(summarize(*doc))
}

func (s *Server) askDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	answer, err := s.deps.Answerer.AskDocuments(ctx, owner(req), question)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(answer)
}

func (s *Server) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := s.deps.Documents.List(ctx, owner(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := make([]documentSummary, 0, len(docs))
	for _, doc := range docs {
		out = append(out, summarize(doc))
	}
	return jsonResult(map[string]any{"documents": out, "count": len(out)})
}

type documentSummary struct {
	ID           string          `json:"id"`
	Filename     string          `json:"filename"`
	FileType     domain.FileType `json:"file_type"`
	DocumentType string          `json:"document_type"`
	WordCount    int             `json:"word_count"`
	Stored       bool            `json:"stored"`
	CreatedAt    time.Time       `json:"created_at"`
}

func summarize(doc domain.Document) documentSummary {
	return documentSummary{
		ID:           doc.ID,
		Filename:     doc.Filename,
		FileType:     doc.FileType,
		DocumentType: doc.Metadata.DocumentType.String(),
		WordCount:    doc.Metadata.WordCount,
		Stored:       doc.Stored,
		CreatedAt:    doc.CreatedAt,
	}
}

func (s *Server) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if s.deps.MaxFileBytes > 0 && info.Size() > s.deps.MaxFileBytes {
		return nil, fmt.Errorf("%s is %d bytes, above the %d byte limit", path, info.Size(), s.deps.MaxFileBytes)
	}
	return os.ReadFile(path)
}

func owner(req mcp.CallToolRequest) string {
	if o := strings.TrimSpace(req.GetString("owner", defaultOwner)); o != "" {
		return o
	}
	return defaultOwner
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}
