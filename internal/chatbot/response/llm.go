package response

import (
	"context"
	"errors"
	"strings"
	"time"

	"kisan-advisory/internal/common/metrics"
)

var (
	ErrLLMTimeout          = errors.New("LLM_TIMEOUT")
	ErrLLMGenerationFailed = errors.New("LLM_GENERATION_FAILED")
	ErrLLMNotConfigured    = errors.New("LLM_NOT_CONFIGURED")
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Generator is a remote text model.
type Generator interface {
	Name() string
	Generate(ctx context.Context, systemPrompt string, conversation []Message) (string, error)
}

// LLMResponder asks a Generator for the reply text and keeps the static
// Selector's follow-up question and actions. Any generator failure returns
// the static bundle unchanged.
type LLMResponder struct {
	generator Generator
	static    *Selector
	timeout   time.Duration
	logger    Logger
}

func NewLLMResponder(generator Generator, static *Selector, timeout time.Duration, log Logger) *LLMResponder {
	return &LLMResponder{
		generator: generator,
		static:    static,
		timeout:   timeout,
		logger:    log.With(map[string]interface{}{"component": "llm-responder"}),
	}
}

func (r *LLMResponder) Respond(ctx context.Context, req Request) (Bundle, error) {
	bundle := r.static.Select(req.Intent, req.Confidence, req.Entities, req.State)
	if r.generator == nil {
		return bundle, nil
	}
	provider := r.generator.Name()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	text, err := r.generator.Generate(ctx, SystemPrompt(req.Intent, req.Entities), Conversation(req.State, req.Message))
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrLLMGenerationFailed
	}
	if err != nil {
		status := "error"
		if errors.Is(err, ErrLLMTimeout) || errors.Is(err, context.DeadlineExceeded) {
			status = "timeout"
		}
		metrics.LLMRequests.WithLabelValues(provider, status).Inc()
		metrics.ChatFallbacks.WithLabelValues("llm_" + status).Inc()
		r.logger.Warn("remote generation failed, using static reply", map[string]interface{}{
			"provider": provider,
			"intent":   string(req.Intent),
			"error":    err.Error(),
		})
		return bundle, nil
	}

	metrics.LLMRequests.WithLabelValues(provider, "success").Inc()
	bundle.Response = strings.TrimSpace(text)
	bundle.Source = provider
	return bundle, nil
}
