package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/oezhouyou/legal-form-fill/internal/config"
)

// GeminiClient implements VisionClient via the Google GenAI SDK.
type GeminiClient struct {
	client    *genai.Client
	model     string
	maxTokens int
	timeout   time.Duration
	log       *zap.Logger
}

// NewGeminiClient creates a vision client for the Gemini API.
func NewGeminiClient(ctx context.Context, cfg config.VisionConfig, log *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := cfg.Model
	if model == "" || strings.HasPrefix(model, "claude") {
		model = "gemini-2.5-flash"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &GeminiClient{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		timeout:   cfg.RequestTimeout(),
		log:       log,
	}, nil
}

// ExtractJSON sends PNG images plus the prompt and returns the model's text.
func (c *GeminiClient) ExtractJSON(ctx context.Context, images [][]byte, prompt string) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	parts := make([]*genai.Part, 0, len(images)+1)
	for _, img := range images {
		parts = append(parts, genai.NewPartFromBytes(img, "image/png"))
	}
	parts = append(parts, genai.NewPartFromText(prompt))

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	start := time.Now()
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		MaxOutputTokens: int32(c.maxTokens),
		Temperature:     genai.Ptr[float32](0),
	})
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("no completion returned")
	}

	c.log.Info("vision extraction complete",
		zap.String("model", c.model),
		zap.Int("images", len(images)),
		zap.Duration("elapsed", time.Since(start)))
	return text, nil
}
