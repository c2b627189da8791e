// webcopy/services/llm/retrying.go
package llm

import (
	"context"

	"webcopy/webcopy/utils/logging"
	"webcopy/webcopy/utils/retry"
	"webcopy/webcopy/utils/types"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// RetryingGenerator wraps a ContentGenerator with exponential backoff on
// transient failures. Invalid-input and other permanent failures return at once.
type RetryingGenerator struct {
	gen    ContentGenerator
	policy retry.Config
}

// NewRetryingGenerator uses policy for backoff; its IsRetryable is replaced
// by the transient-kind check.
func NewRetryingGenerator(gen ContentGenerator, policy retry.Config) *RetryingGenerator {
	policy.IsRetryable = IsTransient
	return &RetryingGenerator{gen: gen, policy: policy}
}

// Generate runs one logical generation call and extracts its text.
func (g *RetryingGenerator) Generate(ctx context.Context, model string, req types.GenerationRequest) (types.GenerationResult, error) {
	defer logging.LogDuration(ctx, "llm_generate_with_retry")()

	var (
		resp     *genai.GenerateContentResponse
		attempts int
	)
	err := retry.Retry(ctx, g.policy, func() error {
		attempts++
		r, err := g.gen.GenerateContent(ctx, model, req.Prompt)
		if err != nil {
			err = Classify(model, err)
			if IsTransient(err) {
				logging.AppLogger.Warn("transient generation failure, backing off",
					zap.String("model", model),
					zap.String("page", req.PageName),
					zap.Int("attempt", attempts),
					zap.Error(err),
				)
			}
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		logging.ErrorLogger.Error("generation failed",
			zap.String("model", model),
			zap.String("page", req.PageName),
			zap.Int("attempts", attempts),
			zap.String("kind", KindOf(err).String()),
			zap.Error(err),
		)
		return types.GenerationResult{}, err
	}
	return types.GenerationResult{Raw: resp, Text: ExtractText(resp)}, nil
}
