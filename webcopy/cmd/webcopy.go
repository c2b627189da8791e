// Command-line interface entrypoint for webcopy
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"webcopy/webcopy/cli"
	"webcopy/webcopy/config"
	"webcopy/webcopy/copywriter"
	"webcopy/webcopy/services/llm"
	"webcopy/webcopy/utils/color"
	"webcopy/webcopy/utils/logging"
	"webcopy/webcopy/utils/retry"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.ColorError(err.Error()))
		os.Exit(1)
	}
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		fmt.Fprintln(os.Stderr, color.ColorError(err.Error()))
		os.Exit(1)
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		logging.ErrorLogger.Error("webcopy run failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, color.ColorError(err.Error()))
		stop()
		logging.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	runID := fmt.Sprintf("run-%s", uuid.New().String()[:8])
	ctx = logging.WithRunID(ctx, runID)

	registry, err := llm.NewRegistry(modelDescriptors(cfg.Models))
	if err != nil {
		return fmt.Errorf("build model registry: %w", err)
	}

	prompter := cli.NewPrompter(in, out)
	model, err := prompter.SelectModel(registry)
	if err != nil {
		return err
	}
	pages, err := prompter.AskPageNames()
	if err != nil {
		return err
	}
	logging.AppLogger.Info("webcopy session",
		zap.String("run_id", runID),
		zap.String("model", model.ID),
		zap.Int("pages", len(pages)),
	)

	gemini, err := llm.NewGeminiClient(ctx, cfg.GoogleAPIKey, cfg.GeminiBaseURL)
	if err != nil {
		return fmt.Errorf("create gemini client: %w", err)
	}
	generator := llm.NewRetryingGenerator(gemini, retry.DefaultConfig())

	writer := copywriter.NewWriter(generator, copywriter.Options{
		OutputRoot:    cfg.OutputRoot,
		MaxIterations: cfg.MaxIterations,
		Out:           out,
	})
	report, err := writer.Run(ctx, model, pages)
	if err != nil {
		if report != nil && report.Dir != "" {
			fmt.Fprintln(out, color.ColorInfo(fmt.Sprintf("%d of %d page(s) were saved in '%s' before the run stopped.",
				report.Processed, report.Total, report.Dir)))
		}
		if errors.Is(err, context.Canceled) {
			return errors.New("interrupted")
		}
		return err
	}
	return nil
}

// modelDescriptors returns the configured model table, or the built-in one when
// the config file names no models.
func modelDescriptors(models []config.ModelConfig) []llm.ModelDescriptor {
	if len(models) == 0 {
		return llm.DefaultModels()
	}
	descriptors := make([]llm.ModelDescriptor, 0, len(models))
	for _, m := range models {
		d := llm.ModelDescriptor{
			ID:          m.ID,
			Description: m.Description,
			DailyLimit:  m.DailyLimit,
		}
		if m.RateLimit != nil {
			d.RateLimit = &llm.RateLimit{
				Calls:  m.RateLimit.Calls,
				Window: time.Duration(m.RateLimit.WindowSeconds) * time.Second,
			}
		}
		descriptors = append(descriptors, d)
	}
	return descriptors
}
