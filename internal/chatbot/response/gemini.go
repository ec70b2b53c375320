package response

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// GeminiGenerator talks to Google's Gemini models.
type GeminiGenerator struct {
	client *genai.Client
	config GeminiConfig
}

func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig, opts ...option.ClientOption) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrLLMNotConfigured
	}
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, config: cfg}, nil
}

func (g *GeminiGenerator) Name() string { return "gemini" }

func (g *GeminiGenerator) Close() {
	g.client.Close()
}

func (g *GeminiGenerator) Generate(ctx context.Context, systemPrompt string, conversation []Message) (string, error) {
	if len(conversation) == 0 {
		return "", fmt.Errorf("%w: empty conversation", ErrLLMGenerationFailed)
	}

	model := g.client.GenerativeModel(g.config.Model)
	g.configure(model, systemPrompt)

	chat := model.StartChat()
	chat.History = geminiHistory(conversation[:len(conversation)-1])

	last := conversation[len(conversation)-1]
	resp, err := chat.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrLLMTimeout
		}
		return "", fmt.Errorf("%w: gemini: %v", ErrLLMGenerationFailed, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no response candidates from Gemini", ErrLLMGenerationFailed)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	return text.String(), nil
}

func (g *GeminiGenerator) configure(model *genai.GenerativeModel, systemPrompt string) {
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))
	model.SetTemperature(float32(g.config.Temperature))
	if g.config.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(g.config.MaxTokens))
	}
}

// geminiHistory maps roles onto Gemini's "user"/"model".
func geminiHistory(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		out = append(out, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}
	return out
}
