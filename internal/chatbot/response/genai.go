package response

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	commonhttp "kisan-advisory/internal/common/http"
)

// GenAIConfig configures a chat-completions style HTTP backend.
type GenAIConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration // per attempt
	MaxRetries  int
	MaxTokens   int
	Temperature float64
}

// GenAIGenerator posts to <BaseURL>/chat/completions.
type GenAIGenerator struct {
	config GenAIConfig
	client *commonhttp.Client
}

func NewGenAIGenerator(cfg GenAIConfig, opts ...commonhttp.Option) (*GenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrLLMNotConfigured
	}
	opts = append([]commonhttp.Option{
		commonhttp.WithHeader("Authorization", "Bearer "+cfg.APIKey),
		commonhttp.WithTimeout(cfg.Timeout),
	}, opts...)
	return &GenAIGenerator{
		config: cfg,
		client: commonhttp.NewClient(cfg.MaxRetries, opts...),
	}, nil
}

func (g *GenAIGenerator) Name() string { return "genai" }

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func (g *GenAIGenerator) Generate(ctx context.Context, systemPrompt string, conversation []Message) (string, error) {
	req := chatRequest{
		Model:       g.config.Model,
		Messages:    append([]Message{{Role: "system", Content: systemPrompt}}, conversation...),
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	var resp chatResponse
	url := strings.TrimRight(g.config.BaseURL, "/") + "/chat/completions"
	if err := g.client.PostJSON(ctx, url, req, &resp); err != nil {
		if errors.Is(err, commonhttp.ErrTimeout) {
			return "", ErrLLMTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrLLMGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrLLMGenerationFailed)
	}
	return resp.Choices[0].Message.Content, nil
}
