// Package bootstrap assembles the chatbot core from configuration. Both the
// API server and the operator CLI build their Manager here.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kisan-advisory/internal/chatbot/archive"
	"kisan-advisory/internal/chatbot/classifier"
	"kisan-advisory/internal/chatbot/dialogue"
	"kisan-advisory/internal/chatbot/entities"
	"kisan-advisory/internal/chatbot/knowledge"
	"kisan-advisory/internal/chatbot/memory"
	"kisan-advisory/internal/chatbot/response"
	"kisan-advisory/internal/common/config"
	"kisan-advisory/internal/common/database"
	"kisan-advisory/internal/common/logger"
	"kisan-advisory/internal/common/metrics"
)

// Chatbot is the assembled chatbot core.
type Chatbot struct {
	Catalog   *knowledge.Catalog
	Engine    *classifier.Engine
	Store     memory.Store
	Responder response.Responder
	Manager   *dialogue.Manager

	closers []func()
}

// Backends are the optional clients the chatbot may use. Redis is required
// for memory_backend "redis"; Elasticsearch for an enabled archive.
type Backends struct {
	Redis         *redis.Client
	Elasticsearch *database.ElasticsearchClient
}

func NewChatbot(ctx context.Context, cfg *config.Config, b Backends, log logger.Logger, opts ...dialogue.Option) (*Chatbot, error) {
	catalog := knowledge.Default()
	locale := knowledge.ParseLocale(cfg.Chatbot.Locale)

	extractor := entities.NewExtractor(nil, &entityLoggerAdapter{log})
	engine := classifier.NewEngine(catalog, extractor, &classifierLoggerAdapter{log})

	store, err := newStore(cfg, b, log)
	if err != nil {
		return nil, err
	}

	c := &Chatbot{Catalog: catalog, Engine: engine, Store: store}

	selector := response.NewSelector(catalog, locale, response.WithPersonalization(cfg.Chatbot.Personalize))
	c.Responder, err = c.newResponder(ctx, cfg, selector, log)
	if err != nil {
		return nil, err
	}

	if cfg.Archive.Enabled {
		if b.Elasticsearch == nil {
			return nil, fmt.Errorf("archive enabled without an elasticsearch client")
		}
		arch := archive.NewElasticsearchArchive(b.Elasticsearch, cfg.Archive.Index, &archiveLoggerAdapter{log})
		if err := arch.EnsureIndex(ctx); err != nil {
			log.Warn("turn archive index not ready", map[string]interface{}{"error": err.Error()})
		}
		opts = append(opts, dialogue.WithArchive(arch))
	}

	c.Manager = dialogue.NewManager(engine, c.Responder, store, catalog, &dialogueLoggerAdapter{log}, opts...)
	return c, nil
}

func newStore(cfg *config.Config, b Backends, log logger.Logger) (memory.Store, error) {
	switch cfg.Chatbot.MemoryBackend {
	case "redis":
		if b.Redis == nil {
			return nil, fmt.Errorf("memory_backend redis without a redis client")
		}
		ttl := config.GetDuration(cfg.Chatbot.SnapshotTTL)
		return memory.NewRedisStore(b.Redis, ttl, &memoryLoggerAdapter{log}), nil
	default:
		return memory.NewInMemoryStore(cfg.Chatbot.Shards, &memoryLoggerAdapter{log}), nil
	}
}

func (c *Chatbot) newResponder(ctx context.Context, cfg *config.Config, selector *response.Selector, log logger.Logger) (response.Responder, error) {
	timeout := config.GetDuration(cfg.Chatbot.LLMTimeout)
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	rlog := &responseLoggerAdapter{log}

	var (
		gen response.Generator
		err error
	)
	switch cfg.Chatbot.Responder {
	case "genai":
		gen, err = response.NewGenAIGenerator(response.GenAIConfig{
			BaseURL:     cfg.APIs.GenAI.BaseURL,
			APIKey:      cfg.APIs.GenAI.APIKey,
			Model:       cfg.APIs.GenAI.Model,
			Timeout:     config.GetDuration(cfg.APIs.GenAI.Timeout),
			MaxRetries:  cfg.APIs.GenAI.MaxRetries,
			MaxTokens:   cfg.APIs.GenAI.MaxTokens,
			Temperature: cfg.APIs.GenAI.Temperature,
		})
	case "gemini":
		var g *response.GeminiGenerator
		g, err = response.NewGeminiGenerator(ctx, response.GeminiConfig{
			APIKey:      cfg.APIs.Gemini.APIKey,
			Model:       cfg.APIs.Gemini.Model,
			MaxTokens:   cfg.APIs.Gemini.MaxTokens,
			Temperature: cfg.APIs.Gemini.Temperature,
		})
		if err == nil {
			c.closers = append(c.closers, g.Close)
			gen = g
		}
	default:
		return selector, nil
	}

	// Without a credential the static pools answer every turn.
	if errors.Is(err, response.ErrLLMNotConfigured) {
		metrics.ChatFallbacks.WithLabelValues("llm_not_configured").Inc()
		log.Warn("llm responder has no api key, using static responses", map[string]interface{}{
			"responder": cfg.Chatbot.Responder,
		})
		return selector, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s responder: %w", cfg.Chatbot.Responder, err)
	}
	return response.NewLLMResponder(gen, selector, timeout, rlog), nil
}

// Close releases remote model clients.
func (c *Chatbot) Close() {
	for _, fn := range c.closers {
		fn()
	}
}
