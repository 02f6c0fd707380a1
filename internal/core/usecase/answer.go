package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kirillkom/docsense/internal/core/analysis"
	"github.com/kirillkom/docsense/internal/core/classify"
	"github.com/kirillkom/docsense/internal/core/conversation"
	"github.com/kirillkom/docsense/internal/core/domain"
	"github.com/kirillkom/docsense/internal/core/ports"
)

const blankQuestionReply = "Please provide a valid question."

type AnswerService struct {
	repo       ports.DocumentRepository
	generator  ports.TextGenerator
	classifier *classify.Classifier
	analyzer   *analysis.Analyzer
	router     *conversation.Router
	post       *conversation.PostProcessor
	variant    conversation.PromptVariant
	observer   ports.PipelineObserver
}

type AnswerServiceDeps struct {
	Repo       ports.DocumentRepository
	Generator  ports.TextGenerator
	Classifier *classify.Classifier
	Analyzer   *analysis.Analyzer
	Router     *conversation.Router
	Variant    conversation.PromptVariant
	Observer   ports.PipelineObserver
}

func NewAnswerService(deps AnswerServiceDeps) *AnswerService {
	if deps.Classifier == nil {
		deps.Classifier = classify.Default()
	}
	if deps.Analyzer == nil {
		deps.Analyzer = analysis.New(deps.Classifier)
	}
	if deps.Router == nil {
		deps.Router = conversation.DefaultRouter()
	}
	if deps.Variant == "" {
		deps.Variant = conversation.VariantRich
	}
	if deps.Observer == nil {
		deps.Observer = noopObserver{}
	}
	return &AnswerService{
		repo:       deps.Repo,
		generator:  deps.Generator,
		classifier: deps.Classifier,
		analyzer:   deps.Analyzer,
		router:     deps.Router,
		post:       conversation.NewPostProcessor(deps.Router.Vocabulary()),
		variant:    deps.Variant,
		observer:   deps.Observer,
	}
}

// AskDocuments answers a question against every document the owner has uploaded.
func (s *AnswerService) AskDocuments(ctx context.Context, owner, question string) (domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return domain.Answer{}, domain.Fail(domain.ErrInput, "ask documents", "question is required")
	}

	docs, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("list documents: %w", err)
	}
	if len(docs) == 0 {
		return domain.Answer{}, domain.Fail(domain.ErrDocumentNotFound, "ask documents", "no documents uploaded")
	}

	contents := make([]string, 0, len(docs))
	filenames := make([]string, 0, len(docs))
	for _, doc := range docs {
		contents = append(contents, doc.Content)
		filenames = append(filenames, doc.Filename)
	}
	text := strings.Join(contents, "\n\n")

	metadata := s.classifier.Classify(text)
	newest := docs[0].Filename
	if newest != "" {
		fileType, _ := domain.FileTypeFromName(newest)
		metadata.FileType = fileType.MetadataName()
		metadata.Confidence = 0.8
	} else {
		metadata.FileType = "unknown"
		metadata.Confidence = 0.7
	}

	return s.Respond(ctx, domain.Query{
		Question:  question,
		Context:   text,
		Filenames: filenames,
		Metadata:  &metadata,
	}), nil
}

// Respond routes the question and answers it. It never fails: generation
// errors end in the fallback text.
func (s *AnswerService) Respond(ctx context.Context, q domain.Query) domain.Answer {
	started := time.Now()
	answer := s.respond(ctx, q)
	if answer.Sources == nil {
		answer.Sources = []string{}
	}
	s.observer.AnswerServed(answer.Route.String(), string(answer.Stage), time.Since(started))
	return answer
}

func (s *AnswerService) respond(ctx context.Context, q domain.Query) domain.Answer {
	if strings.TrimSpace(q.Question) == "" {
		return domain.Answer{Text: blankQuestionReply, Route: domain.RouteVague, Stage: domain.StageCanned}
	}

	route := s.router.Route(q.Question)
	if text, ok := s.router.Canned(route, q.Question, q.Filenames); ok {
		return domain.Answer{Text: text, Route: route, Stage: domain.StageCanned, Sources: q.Filenames}
	}
	if strings.TrimSpace(q.Context) == "" {
		return domain.Answer{Text: conversation.NoContextReply(q.Question), Route: route, Stage: domain.StageCanned}
	}

	var metadata domain.DocumentMetadata
	if q.Metadata != nil {
		metadata = *q.Metadata
	} else {
		metadata = s.classifier.Classify(q.Context)
	}

	generated, err := s.generate(ctx, s.prompt(q, metadata))
	if err != nil {
		slog.Warn("generation_failed", "variant", string(s.variant), "error", err.Error())
		return domain.Answer{
			Text:    conversation.Fallback(q, metadata),
			Route:   route,
			Stage:   domain.StageFallback,
			Sources: q.Filenames,
		}
	}

	return domain.Answer{
		Text:    s.post.Polish(generated),
		Route:   route,
		Stage:   domain.StagePostprocessed,
		Sources: q.Filenames,
	}
}

// generate turns empty replies and generator panics into ErrGeneration.
func (s *AnswerService) generate(ctx context.Context, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", domain.Fail(domain.ErrGeneration, "generate answer", fmt.Sprintf("generator panic: %v", r))
		}
	}()

	text, err = s.generator.Generate(ctx, prompt, s.variant.Options())
	if err == nil && strings.TrimSpace(text) == "" {
		err = domain.Fail(domain.ErrGeneration, "generate answer", "empty model response")
	}
	return text, err
}

func (s *AnswerService) prompt(q domain.Query, metadata domain.DocumentMetadata) string {
	if s.variant == conversation.VariantLight {
		return conversation.LightPrompt(q, s.analyzer.Summarize(q.Context))
	}
	var report domain.AnalysisReport
	if q.Analysis != nil {
		report = *q.Analysis
	} else {
		report = s.analyzer.Analyze(q.Context, metadata)
	}
	return conversation.RichPrompt(q, metadata, report)
}
