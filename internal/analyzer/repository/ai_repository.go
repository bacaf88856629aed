package repository

import (
	"context"
	"fmt"

	"golang-stock-analyzer/internal/analyzer/config"
	"golang-stock-analyzer/pkg/logger"

	"google.golang.org/genai"
)

const (
	ProviderGemini    = "gemini"
	ProviderSimulated = "simulated"
	ProviderNone      = "none"
)

// NewAIRepository builds the narrative provider named by cfg.AI.Provider.
// Gemini without an API key falls back to simulated reports.
func NewAIRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (AIRepository, error) {
	switch cfg.AI.Provider {
	case ProviderGemini:
		if cfg.Gemini.APIKey == "" {
			log.Warn("Gemini API key is not configured, using simulated reports")
			return NewSimulatedAIRepository(), nil
		}
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini AI client: %w", err)
		}
		return NewGeminiAIRepository(cfg, log, genAiClient), nil
	case ProviderSimulated:
		return NewSimulatedAIRepository(), nil
	case ProviderNone:
		return NewDisabledAIRepository(), nil
	default:
		return nil, fmt.Errorf("invalid AI provider %q", cfg.AI.Provider)
	}
}
