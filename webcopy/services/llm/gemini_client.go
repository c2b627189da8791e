// webcopy/services/llm/gemini_client.go
package llm

import (
	"context"
	"errors"

	"webcopy/webcopy/utils/logging"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ContentGenerator performs one generation call against the remote service.
// Failures are returned as *Error.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error)
}

// GeminiClient talks to the Gemini API through the genai SDK.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient builds a client for the Gemini API. An empty baseURL uses the SDK default.
func NewGeminiClient(ctx context.Context, apiKey, baseURL string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key missing")
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &GeminiClient{client: client}, nil
}

// GenerateContent sends a single text prompt to model.
func (c *GeminiClient) GenerateContent(ctx context.Context, model, prompt string) (*genai.GenerateContentResponse, error) {
	defer logging.LogDuration(ctx, "gemini_generate_content")()

	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		classified := Classify(model, err)
		logging.RequestLogger.Info("generate content",
			zap.String("model", model),
			zap.String("run_id", logging.RunID(ctx)),
			zap.Int("prompt_chars", len(prompt)),
			zap.String("outcome", KindOf(classified).String()),
			zap.Error(err),
		)
		return nil, classified
	}
	logging.RequestLogger.Info("generate content",
		zap.String("model", model),
		zap.String("run_id", logging.RunID(ctx)),
		zap.Int("prompt_chars", len(prompt)),
		zap.String("outcome", "ok"),
	)
	return resp, nil
}

// ExtractText returns the text of the first response part that carries any,
// scanning the first candidate's parts in order. Thought parts are skipped.
func ExtractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		if part.Text != "" {
			return part.Text
		}
	}
	return ""
}
