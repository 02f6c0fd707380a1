package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kirillkom/docsense/internal/config"
	"github.com/kirillkom/docsense/internal/core/domain"
	"github.com/kirillkom/docsense/internal/observability/metrics"
)

func newTestHandler(cfg config.Config, deps RouterDeps) http.Handler {
	return NewRouter(cfg, deps).Handler()
}

type ingestFake struct {
	owner string
	err   error
}

func (f *ingestFake) Upload(_ context.Context, owner, filename, contentType string, data []byte) (*domain.Document, error) {
	f.owner = owner
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Document{
		ID:          "doc-1",
		OwnerID:     owner,
		Filename:    filename,
		ContentType: contentType,
		FileType:    domain.FileTypePDF,
		Content:     string(data),
		Stored:      true,
	}, nil
}

type answerFake struct {
	owner    string
	question string
	err      error
}

func (f *answerFake) AskDocuments(_ context.Context, owner, question string) (domain.Answer, error) {
	f.owner, f.question = owner, question
	if f.err != nil {
		return domain.Answer{}, f.err
	}
	return domain.Answer{Text: "ok", Route: domain.RouteSubstantive, Stage: domain.StagePostprocessed, Sources: []string{"a.pdf"}}, nil
}

func (f *answerFake) Respond(context.Context, domain.Query) domain.Answer { return domain.Answer{} }

type docsFake struct {
	err     error
	deleted string
}

func (f *docsFake) Get(_ context.Context, owner, id string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Document{
		ID:        id,
		OwnerID:   owner,
		Filename:  "policy.pdf",
		FileType:  domain.FileTypePDF,
		Content:   "Hotel allowance",
		Metadata:  domain.DocumentMetadata{WordCount: 2},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

func (f *docsFake) List(ctx context.Context, owner string) ([]domain.Document, error) {
	doc, err := f.Get(ctx, owner, "doc-1")
	if err != nil {
		return nil, err
	}
	return []domain.Document{*doc}, nil
}

func (f *docsFake) Analysis(context.Context, string, string) (domain.AnalysisReport, error) {
	return domain.AnalysisReport{}, f.err
}

func (f *docsFake) Chunks(context.Context, string, string) ([]domain.SemanticChunk, error) {
	return nil, f.err
}

func (f *docsFake) Delete(_ context.Context, _, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = id
	return nil
}

type validatorFake struct{}

func (validatorFake) ValidateUpload(data []byte, filename string) domain.ValidationResult {
	if _, ok := domain.FileTypeFromName(filename); !ok {
		return domain.ValidationResult{ErrorMessage: "unsupported file type", FileSize: len(data)}
	}
	return domain.ValidationResult{IsValid: true, FileSize: len(data), FileType: domain.FileTypePDF}
}

type inspectorFake struct {
	err error
}

func (f inspectorFake) Inspect(_ []byte, filename string) (domain.Document, domain.AnalysisReport, error) {
	if f.err != nil {
		return domain.Document{}, domain.AnalysisReport{}, f.err
	}
	doc := domain.Document{Filename: filename, FileType: domain.FileTypePDF, Content: "Hotel allowance"}
	return doc, domain.AnalysisReport{}, nil
}

func multipartBody(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func TestUploadDocumentReturns201WithoutContent(t *testing.T) {
	ingest := &ingestFake{}
	handler := newTestHandler(config.Config{MaxUploadBytes: 1 << 20}, RouterDeps{Ingestor: ingest})

	body, contentType := multipartBody(t, "policy.pdf", []byte("%PDF-1.4 body"))
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(ownerHeader, "alice")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", res.Code, res.Body.String())
	}
	if ingest.owner != "alice" {
		t.Fatalf("expected owner from header, got %q", ingest.owner)
	}
	var doc map[string]any
	if err := json.Unmarshal(res.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := doc["content"]; ok {
		t.Fatalf("upload response must not carry content: %v", doc)
	}
	if doc["id"] != "doc-1" {
		t.Fatalf("unexpected document %v", doc)
	}
}

func TestUploadDocumentRequiresFileField(t *testing.T) {
	handler := newTestHandler(config.Config{}, RouterDeps{Ingestor: &ingestFake{}})

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestUploadDocumentMapsExtractionFailureTo400(t *testing.T) {
	ingest := &ingestFake{err: domain.Fail(domain.ErrCorruptFile, "extract pdf", "bad xref")}
	handler := newTestHandler(config.Config{}, RouterDeps{Ingestor: ingest})

	body, contentType := multipartBody(t, "broken.pdf", []byte("garbage"))
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	if ingest.owner != defaultOwner {
		t.Fatalf("expected default owner, got %q", ingest.owner)
	}
}

func TestValidateDocumentReportsUnsupportedType(t *testing.T) {
	handler := newTestHandler(config.Config{}, RouterDeps{Validator: validatorFake{}})

	body, contentType := multipartBody(t, "notes.txt", []byte("plain"))
	req := httptest.NewRequest(http.MethodPost, "/v1/documents/validate", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var result domain.ValidationResult
	if err := json.Unmarshal(res.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.IsValid || result.FileSize != 5 {
		t.Fatalf("unexpected validation result %+v", result)
	}
}

func TestInspectDocumentReturnsPreview(t *testing.T) {
	handler := newTestHandler(config.Config{}, RouterDeps{Inspector: inspectorFake{}})

	body, contentType := multipartBody(t, "policy.pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/v1/documents/inspect", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var out inspection
	if err := json.Unmarshal(res.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.TextPreview != "Hotel allowance" || out.Characters != 15 {
		t.Fatalf("unexpected inspection %+v", out)
	}
}

func TestGetDocumentReturnsInfo(t *testing.T) {
	handler := newTestHandler(config.Config{}, RouterDeps{Documents: &docsFake{}})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/doc-7", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var info documentInfo
	if err := json.Unmarshal(res.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if info.ID != "doc-7" || info.CharacterCount != 15 || info.WordCount != 2 {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestGetDocumentReturns404ForNotFound(t *testing.T) {
	docs := &docsFake{err: domain.WrapError(domain.ErrDocumentNotFound, "get", errors.New("id=missing"))}
	handler := newTestHandler(config.Config{}, RouterDeps{Documents: docs})

	for _, path := range []string{"/v1/documents/missing", "/v1/documents/missing/analysis", "/v1/documents/missing/chunks"} {
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, path, nil))
		if res.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, res.Code)
		}
		var payload map[string]string
		if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil || payload["error"] == "" {
			t.Fatalf("%s: expected error payload, got %s", path, res.Body.String())
		}
	}
}

func TestChunksReturnsEmptyList(t *testing.T) {
	handler := newTestHandler(config.Config{}, RouterDeps{Documents: &docsFake{}})

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/v1/documents/doc-1/chunks", nil))
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if !bytes.Contains(res.Body.Bytes(), []byte(`"chunks":[]`)) {
		t.Fatalf("expected empty chunk list, got %s", res.Body.String())
	}
}

func TestDeleteDocumentReturns204(t *testing.T) {
	docs := &docsFake{}
	handler := newTestHandler(config.Config{}, RouterDeps{Remover: docs})

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodDelete, "/v1/documents/doc-9", nil))
	if res.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.Code)
	}
	if docs.deleted != "doc-9" {
		t.Fatalf("expected doc-9 deleted, got %q", docs.deleted)
	}
}

func TestQueryReturnsAnswer(t *testing.T) {
	answers := &answerFake{}
	handler := newTestHandler(config.Config{}, RouterDeps{Answerer: answers})

	payload, _ := json.Marshal(map[string]any{"question": "What is the hotel allowance?"})
	req := httptest.NewRequest(http.MethodPost, "/v1/query", bytes.NewReader(payload))
	req.Header.Set(ownerHeader, "bob")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(res.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["answer"] != "ok" || out["route"] != "substantive" || out["stage"] != "postprocessed" {
		t.Fatalf("unexpected answer %v", out)
	}
	if answers.owner != "bob" || answers.question != "What is the hotel allowance?" {
		t.Fatalf("unexpected call %+v", answers)
	}
}

func TestQueryMapsErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "input", err: domain.Fail(domain.ErrInput, "ask", "question is required"), want: http.StatusBadRequest},
		{name: "no documents", err: domain.Fail(domain.ErrDocumentNotFound, "ask", "no documents uploaded"), want: http.StatusNotFound},
		{name: "storage", err: domain.WrapError(domain.ErrStorage, "list", errors.New("conn reset")), want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestHandler(config.Config{}, RouterDeps{Answerer: &answerFake{err: tc.err}})
			req := httptest.NewRequest(http.MethodPost, "/v1/query", bytes.NewReader([]byte(`{"question":"x"}`)))
			res := httptest.NewRecorder()
			handler.ServeHTTP(res, req)
			if res.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, res.Code)
			}
		})
	}
}

func TestQueryRejectsInvalidJSON(t *testing.T) {
	handler := newTestHandler(config.Config{}, RouterDeps{Answerer: &answerFake{}})

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/v1/query", bytes.NewReader([]byte("{"))))
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestSystemStatusReportsCapabilities(t *testing.T) {
	handler := newTestHandler(config.Config{
		ExtractionMode: "advanced",
		PromptVariant:  "light",
		StorageBackend: "gridfs",
		EventsEnabled:  true,
		LLMProvider:    "openai",
	}, RouterDeps{})

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/v1/system/status", nil))

	var status systemStatus
	if err := json.Unmarshal(res.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if status.Status != "operational" || !status.Capabilities.DOCXSupport || status.Capabilities.BlobBackend != "gridfs" {
		t.Fatalf("unexpected status %+v", status)
	}
	if len(status.SupportedFormats) != 2 {
		t.Fatalf("expected two formats, got %v", status.SupportedFormats)
	}
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	m := metrics.NewHTTPServerMetrics("api")
	handler := newTestHandler(config.Config{}, RouterDeps{Metrics: m})

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if !bytes.Contains(res.Body.Bytes(), []byte(`path="/healthz"`)) {
		t.Fatalf("expected healthz request in metrics output")
	}
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: domain.ErrFileTooLarge, want: http.StatusBadRequest},
		{err: domain.ErrMalformedDocument, want: http.StatusBadRequest},
		{err: domain.ErrDocumentNotFound, want: http.StatusNotFound},
		{err: domain.ErrTemporary, want: http.StatusServiceUnavailable},
		{err: domain.ErrGeneration, want: http.StatusInternalServerError},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
			t.Fatalf("mapErrorToHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
