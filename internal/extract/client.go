package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/oezhouyou/legal-form-fill/internal/config"
)

// VisionClient sends document images plus an extraction prompt to a vision
// LLM and returns the raw text of the model's response.
type VisionClient interface {
	ExtractJSON(ctx context.Context, images [][]byte, prompt string) (string, error)
}

// NewVisionClient builds the configured vision client.
func NewVisionClient(ctx context.Context, cfg config.VisionConfig, log *zap.Logger) (VisionClient, error) {
	if log == nil {
		log = zap.NewNop()
	}

	switch cfg.Provider {
	case "", "anthropic":
		return NewAnthropicClient(cfg, log), nil
	case "gemini":
		return NewGeminiClient(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown vision provider: %q", cfg.Provider)
	}
}
