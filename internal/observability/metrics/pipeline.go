package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics implements ports.PipelineObserver.
type PipelineMetrics struct {
	service string

	documentsIngested  *prometheus.CounterVec
	extractionDuration *prometheus.HistogramVec
	extractionFailures *prometheus.CounterVec
	answersTotal       *prometheus.CounterVec
	answerDuration     *prometheus.HistogramVec
}

func NewPipelineMetrics(service string, registerer prometheus.Registerer) *PipelineMetrics {
	documentsIngested := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "documents_ingested_total",
			Help:      "Documents stored after extraction, by file and document type.",
		},
		[]string{"service", "file_type", "document_type"},
	)
	extractionDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "extraction_duration_seconds",
			Help:      "Text extraction duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"service", "file_type"},
	)
	extractionFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "extraction_failures_total",
			Help:      "Failed extractions by error kind.",
		},
		[]string{"service", "kind"},
	)
	answersTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "answers_total",
			Help:      "Answers served by route and producing stage.",
		},
		[]string{"service", "route", "stage"},
	)
	answerDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "answer_duration_seconds",
			Help:      "Time to produce an answer, generation included.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"service"},
	)

	registerer.MustRegister(documentsIngested, extractionDuration, extractionFailures, answersTotal, answerDuration)

	return &PipelineMetrics{
		service:            service,
		documentsIngested:  documentsIngested,
		extractionDuration: extractionDuration,
		extractionFailures: extractionFailures,
		answersTotal:       answersTotal,
		answerDuration:     answerDuration,
	}
}

func (m *PipelineMetrics) DocumentIngested(fileType, documentType string) {
	m.documentsIngested.WithLabelValues(m.service, labelOrUnknown(fileType), labelOrUnknown(documentType)).Inc()
}

func (m *PipelineMetrics) ExtractionFinished(fileType string, duration time.Duration, failureKind string) {
	m.extractionDuration.WithLabelValues(m.service, labelOrUnknown(fileType)).Observe(duration.Seconds())
	if failureKind != "" {
		m.extractionFailures.WithLabelValues(m.service, failureKind).Inc()
	}
}

func (m *PipelineMetrics) AnswerServed(route, stage string, duration time.Duration) {
	m.answersTotal.WithLabelValues(m.service, labelOrUnknown(route), labelOrUnknown(stage)).Inc()
	if duration >= 0 {
		m.answerDuration.WithLabelValues(m.service).Observe(duration.Seconds())
	}
}

func labelOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
