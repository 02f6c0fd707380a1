package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/kirillkom/docsense/internal/config"
	"github.com/kirillkom/docsense/internal/core/domain"
	"github.com/kirillkom/docsense/internal/core/ports"
	"github.com/kirillkom/docsense/internal/observability/metrics"
)

const (
	multipartMemory   = 32 << 20
	multipartOverhead = 1 << 20
	previewRunes      = 500
)

var supportedFormats = []domain.FileType{domain.FileTypePDF, domain.FileTypeDOCX}

type RouterDeps struct {
	Ingestor  ports.DocumentIngestor
	Answerer  ports.QuestionAnswerer
	Documents ports.DocumentReader
	Remover   ports.DocumentRemover
	Validator ports.UploadValidator
	Inspector ports.DocumentInspector
	// Metrics is optional. Without it /metrics is not mounted.
	Metrics *metrics.HTTPServerMetrics
}

type Router struct {
	cfg  config.Config
	deps RouterDeps
}

func NewRouter(cfg config.Config, deps RouterDeps) *Router {
	return &Router{cfg: cfg, deps: deps}
}

func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(accessLogMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader, ownerHeader},
		ExposedHeaders: []string{requestIDHeader, "Retry-After"},
		MaxAge:         300,
	}))

	r.Get("/healthz", rt.healthz)
	if rt.deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", rt.deps.Metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return rateLimitMiddleware(next, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
		})
		r.Use(func(next http.Handler) http.Handler {
			return backpressureMiddleware(next, rt.cfg.APIMaxInFlight, rt.cfg.APIBackpressureWait)
		})

		r.Get("/system/status", rt.systemStatus)
		r.Post("/query", rt.query)

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", rt.uploadDocument)
			r.Get("/", rt.listDocuments)
			r.Post("/validate", rt.validateDocument)
			r.Post("/inspect", rt.inspectDocument)
			r.Get("/{id}", rt.getDocument)
			r.Get("/{id}/analysis", rt.getAnalysis)
			r.Get("/{id}/chunks", rt.getChunks)
			r.Delete("/{id}", rt.deleteDocument)
		})
	})

	if rt.deps.Metrics != nil {
		return rt.deps.Metrics.Middleware("api", r)
	}
	return r
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type systemStatus struct {
	Status           string            `json:"status"`
	Capabilities     systemCapability  `json:"capabilities"`
	SupportedFormats []domain.FileType `json:"supported_formats"`
}

type systemCapability struct {
	ExtractionMode string `json:"extraction_mode"`
	DOCXSupport    bool   `json:"docx_support"`
	PromptVariant  string `json:"prompt_variant"`
	BlobBackend    string `json:"blob_backend"`
	Events         bool   `json:"events"`
	LLMProvider    string `json:"llm_provider"`
}

func (rt *Router) systemStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, systemStatus{
		Status: "operational",
		Capabilities: systemCapability{
			ExtractionMode: rt.cfg.ExtractionMode,
			DOCXSupport:    true,
			PromptVariant:  rt.cfg.PromptVariant,
			BlobBackend:    rt.cfg.StorageBackend,
			Events:         rt.cfg.EventsEnabled,
			LLMProvider:    rt.cfg.LLMProvider,
		},
		SupportedFormats: supportedFormats,
	})
}

type upload struct {
	filename    string
	contentType string
	data        []byte
}

func (rt *Router) readUpload(w http.ResponseWriter, r *http.Request) (upload, error) {
	if rt.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes+multipartOverhead)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return upload{}, domain.Fail(domain.ErrFileTooLarge, "read upload", "request body exceeds the upload limit")
		}
		return upload{}, domain.WrapError(domain.ErrInput, "read upload", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return upload{}, domain.Fail(domain.ErrInput, "read upload", "multipart field 'file' is required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return upload{}, domain.WrapError(domain.ErrInput, "read upload", err)
	}
	return upload{
		filename:    header.Filename,
		contentType: header.Header.Get("Content-Type"),
		data:        data,
	}, nil
}

func (rt *Router) validateDocument(w http.ResponseWriter, r *http.Request) {
	up, err := rt.readUpload(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt.deps.Validator.ValidateUpload(up.data, up.filename))
}

type inspection struct {
	Filename    string                  `json:"filename"`
	FileType    domain.FileType         `json:"file_type"`
	TextPreview string                  `json:"text_preview"`
	Characters  int                     `json:"character_count"`
	Metadata    domain.DocumentMetadata `json:"metadata"`
	Analysis    domain.AnalysisReport   `json:"analysis"`
}

func (rt *Router) inspectDocument(w http.ResponseWriter, r *http.Request) {
	up, err := rt.readUpload(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, report, err := rt.deps.Inspector.Inspect(up.data, up.filename)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inspection{
		Filename:    doc.Filename,
		FileType:    doc.FileType,
		TextPreview: preview(doc.Content, previewRunes),
		Characters:  utf8.RuneCountInString(doc.Content),
		Metadata:    doc.Metadata,
		Analysis:    report,
	})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	up, err := rt.readUpload(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := rt.deps.Ingestor.Upload(r.Context(), ownerFromRequest(r), up.filename, up.contentType, up.data)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := *doc
	out.Content = ""
	writeJSON(w, http.StatusCreated, out)
}

type documentInfo struct {
	ID             string                  `json:"id"`
	Filename       string                  `json:"filename"`
	FileType       domain.FileType         `json:"file_type"`
	UploadDate     time.Time               `json:"upload_date"`
	WordCount      int                     `json:"word_count"`
	CharacterCount int                     `json:"character_count"`
	Stored         bool                    `json:"stored"`
	Metadata       domain.DocumentMetadata `json:"metadata"`
}

func toDocumentInfo(doc domain.Document) documentInfo {
	return documentInfo{
		ID:             doc.ID,
		Filename:       doc.Filename,
		FileType:       doc.FileType,
		UploadDate:     doc.CreatedAt,
		WordCount:      doc.Metadata.WordCount,
		CharacterCount: utf8.RuneCountInString(doc.Content),
		Stored:         doc.Stored,
		Metadata:       doc.Metadata,
	}
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := rt.deps.Documents.List(r.Context(), ownerFromRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]documentInfo, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDocumentInfo(doc))
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": out, "count": len(out)})
}

func (rt *Router) getDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := rt.deps.Documents.Get(r.Context(), ownerFromRequest(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentInfo(*doc))
}

func (rt *Router) getAnalysis(w http.ResponseWriter, r *http.Request) {
	report, err := rt.deps.Documents.Analysis(r.Context(), ownerFromRequest(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) getChunks(w http.ResponseWriter, r *http.Request) {
	chunks, err := rt.deps.Documents.Chunks(r.Context(), ownerFromRequest(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if chunks == nil {
		chunks = []domain.SemanticChunk{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"chunks": chunks, "count": len(chunks)})
}

func (rt *Router) deleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := rt.deps.Remover.Delete(r.Context(), ownerFromRequest(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) query(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	answer, err := rt.deps.Answerer.AskDocuments(r.Context(), ownerFromRequest(r), req.Question)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func preview(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit]) + "..."
}
