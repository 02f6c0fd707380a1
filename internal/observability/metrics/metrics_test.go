package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()
	res := httptest.NewRecorder()
	h.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	return string(body)
}

func TestPipelineMetricsShareHTTPRegistry(t *testing.T) {
	httpMetrics := NewHTTPServerMetrics("api")
	pipeline := NewPipelineMetrics("api", httpMetrics.Registry())

	pipeline.DocumentIngested("pdf", "policy_document")
	pipeline.ExtractionFinished("pdf", 20*time.Millisecond, "")
	pipeline.ExtractionFinished("docx", time.Millisecond, "corrupt_file")
	pipeline.AnswerServed("greeting", "canned", 0)

	body := scrape(t, httpMetrics.Handler())
	for _, want := range []string{
		`docsense_pipeline_documents_ingested_total{document_type="policy_document",file_type="pdf",service="api"} 1`,
		`docsense_pipeline_extraction_failures_total{kind="corrupt_file",service="api"} 1`,
		`docsense_pipeline_answers_total{route="greeting",service="api",stage="canned"} 1`,
		`docsense_pipeline_extraction_duration_seconds_count{file_type="pdf",service="api"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in scrape:\n%s", want, body)
		}
	}
}

func TestMiddlewareNormalizesDocumentPaths(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	handler := m.Middleware("api", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/documents/abc-123/analysis", nil))

	body := scrape(t, m.Handler())
	want := `docsense_http_requests_total{method="GET",path="/v1/documents/{document_id}/analysis",service="api",status="404"} 1`
	if !strings.Contains(body, want) {
		t.Fatalf("missing %q in scrape:\n%s", want, body)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"/v1/documents":              "/v1/documents",
		"/v1/documents/validate":     "/v1/documents/validate",
		"/v1/documents/doc-1":        "/v1/documents/{document_id}",
		"/v1/documents/doc-1/chunks": "/v1/documents/{document_id}/chunks",
		"/v1/query":                  "/v1/query",
	}
	for in, want := range tests {
		if got := normalizePath(in); got != want {
			t.Fatalf("normalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}
