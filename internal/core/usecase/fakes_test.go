package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/kirillkom/docsense/internal/core/domain"
)

type repoFake struct {
	docs      map[string]domain.Document
	order     []string
	createErr error
	listErr   error
	deleteErr error
	deleted   []string
}

func newRepoFake(docs ...domain.Document) *repoFake {
	f := &repoFake{docs: map[string]domain.Document{}}
	for _, doc := range docs {
		f.put(doc)
	}
	return f
}

func (f *repoFake) put(doc domain.Document) {
	key := doc.OwnerID + "/" + doc.ID
	f.docs[key] = doc
	f.order = append(f.order, key)
}

func (f *repoFake) Create(_ context.Context, doc *domain.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.put(*doc)
	return nil
}

func (f *repoFake) GetByID(_ context.Context, owner, id string) (*domain.Document, error) {
	doc, ok := f.docs[owner+"/"+id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return &doc, nil
}

// ListByOwner returns newest first, like the postgres repository.
func (f *repoFake) ListByOwner(_ context.Context, owner string) ([]domain.Document, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []domain.Document{}
	for i := len(f.order) - 1; i >= 0; i-- {
		doc := f.docs[f.order[i]]
		if doc.OwnerID == owner {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (f *repoFake) Delete(_ context.Context, owner, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.docs, owner+"/"+id)
	f.deleted = append(f.deleted, id)
	return nil
}

type blobFake struct {
	puts      map[string]map[string]string
	putErr    error
	deleteErr error
	deleted   []string
}

func (f *blobFake) Put(_ context.Context, key string, _ []byte, _ string, meta map[string]string) error {
	if f.putErr != nil {
		return f.putErr
	}
	if f.puts == nil {
		f.puts = map[string]map[string]string{}
	}
	f.puts[key] = meta
	return nil
}

func (f *blobFake) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.deleteErr
}

type eventFake struct {
	events []domain.DocumentAnalyzedEvent
	err    error
}

func (f *eventFake) PublishDocumentAnalyzed(_ context.Context, event domain.DocumentAnalyzedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type extractorFake struct {
	text  string
	meta  domain.DocumentMetadata
	err   error
	calls int
}

func (f *extractorFake) Extract(data []byte, filename string) (string, error) {
	text, _, err := f.ExtractWithMetadata(data, filename)
	return text, err
}

func (f *extractorFake) ExtractWithMetadata([]byte, string) (string, domain.DocumentMetadata, error) {
	f.calls++
	if f.err != nil {
		return "", domain.DocumentMetadata{}, f.err
	}
	return f.text, f.meta, nil
}

func (f *extractorFake) Preprocess(text string) string {
	return "clean:" + text
}

type generatorFake struct {
	reply     string
	err       error
	panicWith any
	prompts   []string
	opts      []domain.GenerationOptions
}

func (f *generatorFake) Generate(_ context.Context, prompt string, opts domain.GenerationOptions) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type chunkerFake struct {
	text string
}

func (f *chunkerFake) Chunk(text string, _ domain.DocumentMetadata) []domain.SemanticChunk {
	f.text = text
	return []domain.SemanticChunk{{Content: text, ChunkType: "section"}}
}

type observerFake struct {
	ingested []string
	failures []string
	answers  []string
}

func (f *observerFake) DocumentIngested(fileType, documentType string) {
	f.ingested = append(f.ingested, fileType+"/"+documentType)
}

func (f *observerFake) ExtractionFinished(_ string, _ time.Duration, failureKind string) {
	if failureKind != "" {
		f.failures = append(f.failures, failureKind)
	}
}

func (f *observerFake) AnswerServed(route, stage string, _ time.Duration) {
	f.answers = append(f.answers, route+"/"+stage)
}

var errBoom = errors.New("boom")
