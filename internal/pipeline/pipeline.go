// Package pipeline runs one merge from input tree to written document and
// reports the run to metrics, history and subscribers.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docmerge/internal/config"
	"git.home.luguber.info/inful/docmerge/internal/docs"
	"git.home.luguber.info/inful/docmerge/internal/emit"
	"git.home.luguber.info/inful/docmerge/internal/gitinfo"
	"git.home.luguber.info/inful/docmerge/internal/history"
	"git.home.luguber.info/inful/docmerge/internal/logfields"
	"git.home.luguber.info/inful/docmerge/internal/merge"
	"git.home.luguber.info/inful/docmerge/internal/metrics"
	"git.home.luguber.info/inful/docmerge/internal/notify"
	"git.home.luguber.info/inful/docmerge/internal/postprocess"
)

// Stage names used for logs and metrics.
const (
	StageValidate    = "validate"
	StageSettings    = "settings"
	StageMerge       = "merge"
	StagePostprocess = "postprocess"
	StageEmit        = "emit"
)

// Request describes one run.
type Request struct {
	Input  string
	Output string
	Mode   merge.Mode

	// Settings are used as-is when set; otherwise SettingsPath is loaded.
	Settings     *config.Settings
	SettingsPath string

	// Trigger names what started the run (watch mode).
	Trigger string
}

// Result summarizes a successful run.
type Result struct {
	BuildID    string
	Mode       merge.Mode
	Files      int
	Unanchored int
	Revision   string
	Output     emit.Result
	Duration   time.Duration
}

// Runner executes requests. It is safe to reuse across runs but not to run
// concurrently.
type Runner struct {
	fs        afero.Fs
	recorder  metrics.Recorder
	history   history.Store
	publisher notify.Publisher
	now       func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithFs sets the filesystem for collecting and emitting.
func WithFs(fs afero.Fs) Option { return func(r *Runner) { r.fs = fs } }

// WithRecorder reports stage timings and outcomes.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Runner) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithHistory records each run.
func WithHistory(store history.Store) Option { return func(r *Runner) { r.history = store } }

// WithPublisher announces successful runs.
func WithPublisher(p notify.Publisher) Option { return func(r *Runner) { r.publisher = p } }

// NewRunner creates a Runner on the OS filesystem with no reporting.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		fs:       afero.NewOsFs(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run merges req.Input into req.Output/index.md. Nothing is written unless
// every stage before the emit succeeds.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	started := r.now()
	res := &Result{BuildID: uuid.NewString(), Mode: req.Mode}
	log := slog.With(logfields.BuildID(res.BuildID))
	if req.Trigger != "" {
		log = log.With(logfields.Trigger(req.Trigger))
	}
	log.Info("Starting merge", logfields.Path(req.Input))

	err := r.run(ctx, log, req, res)
	res.Duration = r.now().Sub(started)

	outcome := r.outcome(ctx, res, err)
	r.recorder.ObserveBuildDuration(res.Duration)
	r.recorder.IncBuildOutcome(outcome)
	r.record(ctx, log, started, res, outcome, err)

	if err != nil {
		log.Error("Merge failed", logfields.Error(err), logfields.DurationMS(ms(res.Duration)))
		return nil, err
	}

	r.publish(ctx, log, res)
	log.Info("Merge complete",
		logfields.Path(res.Output.Path),
		logfields.Mode(string(res.Mode)),
		logfields.Count(res.Files),
		slog.Bool("unchanged", res.Output.Unchanged),
		logfields.DurationMS(ms(res.Duration)))
	return res, nil
}

func (r *Runner) run(ctx context.Context, log *slog.Logger, req Request, res *Result) error {
	collector := docs.NewCollector(r.fs)

	var input, output string
	if err := r.stage(ctx, log, StageValidate, func() error {
		var err error
		if input, err = collector.ValidateDir(req.Input); err != nil {
			return err
		}
		output, err = collector.ValidateDir(req.Output)
		return err
	}); err != nil {
		return err
	}

	settings := req.Settings
	if settings == nil {
		if err := r.stage(ctx, log, StageSettings, func() error {
			var err error
			settings, err = config.Load(req.SettingsPath)
			return err
		}); err != nil {
			return err
		}
	}

	if info, ok, err := gitinfo.Lookup(input); err != nil {
		log.Debug("Cannot read source revision", logfields.Error(err))
	} else if ok {
		res.Revision = info.Commit
		log.Info("Source revision", logfields.Revision(info.Short()), slog.String("branch", info.Branch))
	}

	var doc *merge.Document
	if err := r.stage(ctx, log, StageMerge, func() error {
		var err error
		doc, err = merge.New(collector, settings, merge.WithMode(req.Mode)).Merge(ctx, input)
		return err
	}); err != nil {
		return err
	}
	res.Mode = doc.Mode
	res.Files = len(doc.Files)
	res.Unanchored = len(doc.Unanchored())
	r.recorder.AddFilesMerged(string(doc.Mode), res.Files)
	r.recorder.AddLinksRewritten("anchor", doc.Links.Anchored)
	r.recorder.AddLinksRewritten("sample_code", doc.Links.SampleCode)
	r.recorder.SetUnanchoredFiles(res.Unanchored)

	var body string
	if err := r.stage(ctx, log, StagePostprocess, func() error {
		body = postprocess.New(settings.Replacements).Apply(doc.String(), postprocess.Env{Grouped: doc.Mode == merge.ModeGrouped})
		return nil
	}); err != nil {
		return err
	}

	return r.stage(ctx, log, StageEmit, func() error {
		header, err := emit.Header(emit.ResolveFrontMatter(settings.FrontMatter))
		if err != nil {
			return err
		}
		res.Output, err = emit.New(r.fs).Write(output, header, body)
		if err == nil {
			r.recorder.SetOutputBytes(res.Output.Bytes)
		}
		return err
	})
}

// stage runs fn unless ctx is done and reports its duration and result.
func (r *Runner) stage(ctx context.Context, log *slog.Logger, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		r.recorder.IncStageResult(name, metrics.ResultCanceled)
		return err
	}
	start := r.now()
	err := fn()
	d := r.now().Sub(start)
	r.recorder.ObserveStageDuration(name, d)

	switch {
	case err == nil:
		r.recorder.IncStageResult(name, metrics.ResultSuccess)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		r.recorder.IncStageResult(name, metrics.ResultCanceled)
	default:
		r.recorder.IncStageResult(name, metrics.ResultFatal)
	}
	log.Debug("Stage finished", logfields.Stage(name), logfields.DurationMS(ms(d)), slog.Bool("ok", err == nil))
	return err
}

func (r *Runner) outcome(ctx context.Context, res *Result, err error) metrics.BuildOutcomeLabel {
	switch {
	case err != nil && ctx.Err() != nil:
		return metrics.OutcomeCanceled
	case err != nil:
		return metrics.OutcomeFailed
	case res.Output.Unchanged:
		return metrics.OutcomeUnchanged
	default:
		return metrics.OutcomeSuccess
	}
}

// record writes the run to history. Failures are logged, never returned: the
// document has already been written or the run error is more relevant.
func (r *Runner) record(ctx context.Context, log *slog.Logger, started time.Time, res *Result, outcome metrics.BuildOutcomeLabel, runErr error) {
	if r.history == nil {
		return
	}
	run := history.Run{
		BuildID:     res.BuildID,
		StartedAt:   started,
		Duration:    res.Duration,
		Mode:        string(res.Mode),
		Files:       res.Files,
		Unanchored:  res.Unanchored,
		Output:      res.Output.Path,
		Fingerprint: res.Output.Fingerprint,
		Revision:    res.Revision,
		Outcome:     string(outcome),
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	// A canceled run still gets its row.
	if err := r.history.Record(context.WithoutCancel(ctx), run); err != nil {
		log.Warn("Failed to record run history", logfields.Error(err))
	}
}

func (r *Runner) publish(ctx context.Context, log *slog.Logger, res *Result) {
	if r.publisher == nil {
		return
	}
	event := notify.Event{
		BuildID:     res.BuildID,
		Output:      res.Output.Path,
		Fingerprint: res.Output.Fingerprint,
		Unchanged:   res.Output.Unchanged,
		Mode:        string(res.Mode),
		Files:       res.Files,
		Revision:    res.Revision,
		Timestamp:   r.now().UTC(),
	}
	if err := r.publisher.Publish(ctx, event); err != nil {
		log.Warn("Failed to publish build event", logfields.Error(err))
	}
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
