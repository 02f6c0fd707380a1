// Package llm wraps generation backends with timeouts, a soft retry and a
// circuit breaker.
package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/kirillkom/docsense/internal/core/domain"
	"github.com/kirillkom/docsense/internal/core/ports"
	"github.com/kirillkom/docsense/internal/infrastructure/resilience"
)

const generateOperation = "llm.generate"

// Guard is a ports.TextGenerator decorator.
type Guard struct {
	next     ports.TextGenerator
	executor *resilience.Executor
}

func NewGuard(next ports.TextGenerator, attemptTimeout time.Duration) *Guard {
	return NewGuardWithExecutor(next, resilience.NewExecutor(resilience.GenerationConfig(attemptTimeout)))
}

func NewGuardWithExecutor(next ports.TextGenerator, executor *resilience.Executor) *Guard {
	return &Guard{next: next, executor: executor}
}

func (g *Guard) Generate(ctx context.Context, prompt string, opts domain.GenerationOptions) (string, error) {
	out, err := resilience.Do(ctx, g.executor, generateOperation, func(ctx context.Context) (string, error) {
		return g.next.Generate(ctx, prompt, opts)
	}, ClassifyError)
	if err == nil {
		return out, nil
	}
	if ClassifyError(err).Retryable || resilience.IsCircuitOpen(err) {
		return "", domain.WrapError(domain.ErrTemporary, generateOperation, err)
	}
	return "", domain.WrapError(domain.ErrGeneration, generateOperation, err)
}

type httpStatusError interface {
	HTTPStatus() int
}

// ClassifyError decides retry and breaker accounting for generation errors.
func ClassifyError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, resilience.ErrAttemptTimeout) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	var statusErr httpStatusError
	if errors.As(err, &statusErr) && statusErr.HTTPStatus() > 0 {
		if isRetryableHTTPStatus(statusErr.HTTPStatus()) {
			return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
		}
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}
	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}

func isRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
