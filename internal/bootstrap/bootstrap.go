package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kirillkom/docsense/internal/config"
	"github.com/kirillkom/docsense/internal/core/analysis"
	"github.com/kirillkom/docsense/internal/core/classify"
	"github.com/kirillkom/docsense/internal/core/conversation"
	"github.com/kirillkom/docsense/internal/core/ports"
	"github.com/kirillkom/docsense/internal/core/usecase"
	"github.com/kirillkom/docsense/internal/infrastructure/chunking"
	"github.com/kirillkom/docsense/internal/infrastructure/extractor/office"
	"github.com/kirillkom/docsense/internal/infrastructure/llm"
	"github.com/kirillkom/docsense/internal/infrastructure/llm/ollama"
	"github.com/kirillkom/docsense/internal/infrastructure/llm/openai"
	"github.com/kirillkom/docsense/internal/infrastructure/queue/nats"
	"github.com/kirillkom/docsense/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/docsense/internal/infrastructure/storage/gridfs"
	"github.com/kirillkom/docsense/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/docsense/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Ingest    *usecase.IngestDocumentUseCase
	Answers   *usecase.AnswerService
	Documents *usecase.DocumentService
	Inspector *usecase.InspectDocumentUseCase
	Metrics   *metrics.HTTPServerMetrics

	closers []func()
}

// New wires every adapter for service. On error, whatever was already opened
// is closed again.
func New(ctx context.Context, cfg config.Config, service string) (_ *App, err error) {
	app := &App{Config: cfg}
	defer func() {
		if err != nil {
			app.Close()
		}
	}()

	lexicon, err := config.LoadLexicon(cfg.LexiconPath)
	if err != nil {
		return nil, err
	}
	vocab, err := lexicon.ApplyClassifier(classify.DefaultVocabulary())
	if err != nil {
		return nil, err
	}
	classifier := classify.New(vocab)
	router := conversation.NewRouter(lexicon.ApplyRouter(conversation.DefaultVocabulary()))
	analyzer := analysis.New(classifier)

	mode, err := office.ParseMode(cfg.ExtractionMode)
	if err != nil {
		return nil, fmt.Errorf("extraction mode: %w", err)
	}
	variant, err := conversation.ParsePromptVariant(cfg.PromptVariant)
	if err != nil {
		return nil, fmt.Errorf("prompt variant: %w", err)
	}
	extractor := office.NewExtractor(mode, classifier)

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	app.closers = append(app.closers, func() { _ = db.Close() })
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	blobs, err := app.openBlobStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var events ports.EventPublisher
	if cfg.EventsEnabled {
		publisher, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			return nil, fmt.Errorf("init event publisher: %w", err)
		}
		app.closers = append(app.closers, publisher.Close)
		events = publisher
	}

	generator, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	app.Metrics = metrics.NewHTTPServerMetricsWithRegistry(service, registry)
	observer := metrics.NewPipelineMetrics(service, registry)

	validator := usecase.NewValidator(cfg.MaxUploadBytes)
	chunker := chunking.NewSemanticChunker(nil)

	app.Ingest = usecase.NewIngestDocumentUseCase(repo, blobs, events, extractor, validator, observer)
	app.Inspector = usecase.NewInspectDocumentUseCase(extractor, validator, analyzer, observer)
	app.Documents = usecase.NewDocumentService(repo, blobs, analyzer, chunker)
	app.Answers = usecase.NewAnswerService(usecase.AnswerServiceDeps{
		Repo:       repo,
		Generator:  generator,
		Classifier: classifier,
		Analyzer:   analyzer,
		Router:     router,
		Variant:    variant,
		Observer:   observer,
	})

	slog.Info("bootstrap_ready",
		"service", service,
		"extraction_mode", string(mode),
		"prompt_variant", string(variant),
		"blob_backend", cfg.StorageBackend,
		"events_enabled", cfg.EventsEnabled,
		"llm_provider", cfg.LLMProvider,
		"lexicon", cfg.LexiconPath,
	)
	return app, nil
}

func (a *App) openBlobStore(ctx context.Context, cfg config.Config) (ports.BlobStore, error) {
	switch cfg.StorageBackend {
	case "", "localfs":
		storage, err := localfs.New(cfg.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("init local storage: %w", err)
		}
		return storage, nil
	case "gridfs":
		storage, err := gridfs.New(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.GridFSBucket)
		if err != nil {
			return nil, fmt.Errorf("init gridfs storage: %w", err)
		}
		a.closers = append(a.closers, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = storage.Close(closeCtx)
		})
		return storage, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func newGenerator(cfg config.Config) (ports.TextGenerator, error) {
	var client ports.TextGenerator
	switch cfg.LLMProvider {
	case "", "ollama":
		client = ollama.New(cfg.OllamaURL, cfg.OllamaGenModel)
	case "openai":
		client = openai.New(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
	return llm.NewGuard(client, cfg.LLMTimeout), nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
