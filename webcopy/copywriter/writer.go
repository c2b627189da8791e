// Package copywriter drives copy generation for a list of pages: one prompt per
// page, one text file per generated page, paced by the selected model's quotas.
package copywriter

import (
	"context"
	"fmt"
	"io"
	"time"

	"webcopy/webcopy/services/llm"
	"webcopy/webcopy/utils/color"
	"webcopy/webcopy/utils/logging"
	"webcopy/webcopy/utils/retry"
	"webcopy/webcopy/utils/types"

	"go.uber.org/zap"
)

// DefaultMaxIterations is the per-run ceiling on generation calls, independent of
// any model's daily limit.
const DefaultMaxIterations = 150

// State is the loop's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateGenerating
	StateQuotaPaused
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	case StateQuotaPaused:
		return "quota_paused"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// StopReason says why a run ended before processing every page.
type StopReason int

const (
	StopNone StopReason = iota
	StopIterationCap
	StopDailyLimit
	StopError
)

func (r StopReason) String() string {
	switch r {
	case StopIterationCap:
		return "iteration_cap"
	case StopDailyLimit:
		return "daily_limit"
	case StopError:
		return "error"
	default:
		return "none"
	}
}

// Generator performs one logical, already-retried generation call.
type Generator interface {
	Generate(ctx context.Context, model string, req types.GenerationRequest) (types.GenerationResult, error)
}

// Options configures a Writer. Zero values select the defaults.
type Options struct {
	OutputRoot    string
	MaxIterations int
	Out           io.Writer
	Now           func() time.Time
	Sleep         func(ctx context.Context, d time.Duration) error
}

// Report summarizes a run.
type Report struct {
	Dir        string
	Total      int
	Processed  int
	Files      []string
	State      State
	StopReason StopReason
}

// Writer runs the copy generation loop. It is not safe for concurrent use.
type Writer struct {
	gen     Generator
	opts    Options
	state   State
	queries int
}

func NewWriter(gen Generator, opts Options) *Writer {
	if opts.OutputRoot == "" {
		opts.OutputRoot = "."
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sleep == nil {
		opts.Sleep = retry.SleepContext
	}
	return &Writer{gen: gen, opts: opts, state: StateIdle}
}

// State returns the loop's current state.
func (w *Writer) State() State {
	return w.state
}

// Run generates copy for every page in order and writes one file per page into a
// fresh web_copy_<timestamp> directory. It stops early, without error, when the
// iteration cap or the model's daily limit is reached. A generation or write
// error ends the run; the report still names the directory and the pages done.
func (w *Writer) Run(ctx context.Context, model llm.ModelDescriptor, pages []string) (*Report, error) {
	defer logging.LogDuration(ctx, "copywriter_run")()

	log := logging.AppLogger.With(zap.String("model", model.ID), zap.String("run_id", logging.RunID(ctx)))

	dir, err := CreateCopyDir(w.opts.OutputRoot, w.opts.Now())
	if err != nil {
		w.state = StateAborted
		return &Report{Total: len(pages), State: w.state, StopReason: StopError}, err
	}
	report := &Report{Dir: dir, Total: len(pages)}
	log.Info("copy run started", zap.String("dir", dir), zap.Int("pages", len(pages)))

	w.queries = 0
	w.state = StateIdle
	for i, page := range pages {
		fmt.Fprintln(w.opts.Out, color.ColorProgress(fmt.Sprintf("Generating copy for page '%s' (%d of %d)...", page, i+1, len(pages))))
		if w.queries >= w.opts.MaxIterations {
			w.state = StateAborted
			report.StopReason = StopIterationCap
			fmt.Fprintln(w.opts.Out, color.ColorQuota(fmt.Sprintf(
				"Reached the maximum of %d generation calls for this run; %d page(s) not processed.",
				w.opts.MaxIterations, len(pages)-i)))
			log.Warn("iteration cap reached", zap.Int("max_iterations", w.opts.MaxIterations), zap.Int("remaining", len(pages)-i))
			break
		}

		w.state = StateGenerating

		path, err := w.generatePage(ctx, dir, model.ID, page)
		if err != nil {
			w.state = StateAborted
			report.StopReason = StopError
			report.State = w.state
			log.Error("copy run aborted", zap.String("page", page), zap.Int("processed", report.Processed), zap.Error(err))
			return report, fmt.Errorf("generate copy for page %q: %w", page, err)
		}
		w.queries++
		report.Processed++
		report.Files = append(report.Files, path)

		if rl := model.RateLimit; rl != nil && w.queries%rl.Calls == 0 {
			w.state = StateQuotaPaused
			fmt.Fprintln(w.opts.Out, color.ColorPause(fmt.Sprintf("Rate limit of %d calls reached; pausing for %s...", rl.Calls, rl.Window)))
			log.Info("rate limit pause", zap.Int("queries", w.queries), zap.Duration("window", rl.Window))
			if err := w.opts.Sleep(ctx, rl.Window); err != nil {
				w.state = StateAborted
				report.StopReason = StopError
				report.State = w.state
				return report, fmt.Errorf("rate limit pause: %w", err)
			}
		}

		if model.DailyLimit > 0 && w.queries >= model.DailyLimit {
			report.StopReason = StopDailyLimit
			fmt.Fprintln(w.opts.Out, color.ColorQuota("Daily query limit reached. Please try again tomorrow."))
			log.Warn("daily limit reached", zap.Int("daily_limit", model.DailyLimit))
			break
		}
	}

	if w.state != StateAborted {
		w.state = StateDone
	}
	report.State = w.state
	fmt.Fprintln(w.opts.Out, color.ColorSuccess(fmt.Sprintf("Copy for the pages has been saved in the directory '%s'.", dir)))
	log.Info("copy run finished",
		zap.Int("processed", report.Processed),
		zap.String("state", report.State.String()),
		zap.String("stop_reason", report.StopReason.String()),
	)
	return report, nil
}

func (w *Writer) generatePage(ctx context.Context, dir, model, page string) (string, error) {
	req := NewRequest(page)
	res, err := w.gen.Generate(ctx, model, req)
	if err != nil {
		return "", err
	}
	return WriteCopy(dir, page, res.Text)
}
