package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang-stock-analyzer/internal/analyzer/config"
	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/pkg/logger"
	"golang-stock-analyzer/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const reportTemperature = 0.6

// contentGenerator is the subset of genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	CountTokens(ctx context.Context, model string, contents []*genai.Content, config *genai.CountTokensConfig) (*genai.CountTokensResponse, error)
}

// geminiAIRepository is an implementation of AIRepository that uses the Google Gemini API.
type geminiAIRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	models         contentGenerator
}

// NewGeminiAIRepository creates a new instance of geminiAIRepository.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) AIRepository {
	var models contentGenerator
	if genAiClient != nil {
		models = genAiClient.Models
	}
	return newGeminiAIRepository(cfg, log, models)
}

func newGeminiAIRepository(cfg *config.Config, log *logger.Logger, models contentGenerator) *geminiAIRepository {
	requestLimiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.Gemini.MaxRequestPerMinute > 0 {
		secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
		requestLimiter = rate.NewLimiter(rate.Every(secondsPerRequest), 1)
	}

	return &geminiAIRepository{
		cfg:            cfg,
		logger:         log,
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute),
		requestLimiter: requestLimiter,
		models:         models,
	}
}

// GenerateStockReport asks Gemini for the three narrative sections of a ticker.
func (r *geminiAIRepository) GenerateStockReport(ctx context.Context, request *dto.StockReportRequest) (*dto.StockReportResult, error) {
	if r.cfg.Gemini.APIKey == "" || r.models == nil {
		return nil, ErrMissingAPIKey
	}

	prompt := BuildStockReportPrompt(request)

	rawJSON, err := r.executeGeminiAIRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result, err := parseStockReport(rawJSON)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to parse stock report from Gemini response",
			logger.ErrorField(err),
			logger.StringField("ticker", request.Ticker),
			logger.StringField("response", rawJSON),
		)
		return nil, err
	}
	result.Ticker = request.Ticker

	return result, nil
}

func (r *geminiAIRepository) executeGeminiAIRequest(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	geminiTokenResp, err := r.models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.DebugContext(ctx, "Gemini token count",
		logger.IntField("total_tokens", int(geminiTokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)

	if err := r.tokenLimiter.Wait(ctx, int(geminiTokenResp.TotalTokens)); err != nil {
		return "", fmt.Errorf("failed to wait for token limit: %w", err)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	if r.cfg.Gemini.MaxTokenPerMinute > 0 && int(geminiTokenResp.TotalTokens) > r.cfg.Gemini.MaxTokenPerMinute/2 {
		r.logger.WarnContext(ctx, "Token has exceeded 50% of the limit", logger.IntField("remaining", r.tokenLimiter.GetRemaining()))
	}

	resp, err := r.models.GenerateContent(ctx, r.cfg.Gemini.Model, contents, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](reportTemperature),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content found in Gemini response")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("no content found in Gemini response")
	}

	return text.String(), nil
}

// parseStockReport decodes a report, tolerating markdown fences around the JSON.
// Every field must be present and a string.
func parseStockReport(raw string) (*dto.StockReportResult, error) {
	rawJSON := strings.TrimSpace(raw)
	rawJSON = strings.Trim(rawJSON, "`")
	rawJSON = strings.TrimPrefix(rawJSON, "json")
	rawJSON = strings.TrimSpace(rawJSON)

	var fields map[string]any
	if err := json.Unmarshal([]byte(rawJSON), &fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stock report from Gemini response: %w", err)
	}

	get := func(key string) (string, error) {
		v, ok := fields[key].(string)
		if !ok {
			return "", fmt.Errorf("%w: field %q missing or not a string", ErrInvalidReport, key)
		}
		return v, nil
	}

	var result dto.StockReportResult
	var err error
	if result.Ticker, err = get("ticker"); err != nil {
		return nil, err
	}
	if result.CompanyOverview, err = get("companyOverview"); err != nil {
		return nil, err
	}
	if result.FinancialHealthAnalysis, err = get("financialHealthAnalysis"); err != nil {
		return nil, err
	}
	if result.InvestmentOutlook, err = get("investmentOutlook"); err != nil {
		return nil, err
	}
	return &result, nil
}
