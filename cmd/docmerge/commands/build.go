package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docmerge/internal/history"
	"git.home.luguber.info/inful/docmerge/internal/logfields"
	"git.home.luguber.info/inful/docmerge/internal/merge"
	"git.home.luguber.info/inful/docmerge/internal/metrics"
	"git.home.luguber.info/inful/docmerge/internal/notify"
	"git.home.luguber.info/inful/docmerge/internal/pipeline"
)

// BuildFlags are shared by build and watch.
type BuildFlags struct {
	Input       string `short:"i" help:"Documentation root to merge" required:"" type:"path"`
	Output      string `short:"o" help:"Directory receiving index.md" required:"" type:"path"`
	Mode        string `help:"Merge mode (auto|grouped|flat|legacy)" default:"auto"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus text-format metrics here after each run" type:"path"`
	HistoryDB   string `name:"history-db" help:"Record runs in this SQLite database" type:"path"`
	NATSURL     string `name:"nats-url" help:"Publish a build event to this NATS server" env:"DOCMERGE_NATS_URL"`
	NATSSubject string `name:"nats-subject" help:"Subject for build events" default:"docmerge.built"`
}

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	BuildFlags `embed:""`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env, err := b.open()
	if err != nil {
		return err
	}
	defer env.close()

	req, err := b.request(root)
	if err != nil {
		return err
	}

	fmt.Println("Starting docmerge build")
	res, err := env.run(ctx, req)
	if err != nil {
		fmt.Println("Build failed")
		return err
	}
	printResult(res)
	return nil
}

func (b *BuildFlags) request(root *CLI) (pipeline.Request, error) {
	mode, err := merge.ParseMode(b.Mode)
	if err != nil {
		return pipeline.Request{}, err
	}
	return pipeline.Request{
		Input:        b.Input,
		Output:       b.Output,
		Mode:         mode,
		SettingsPath: root.Settings,
	}, nil
}

// runEnv holds the optional reporting sinks of a run.
type runEnv struct {
	runner      *pipeline.Runner
	prom        *metrics.PrometheusRecorder
	metricsFile string
	store       history.Store
	publisher   notify.Publisher
}

func (b *BuildFlags) open() (*runEnv, error) {
	env := &runEnv{metricsFile: b.MetricsFile}
	var opts []pipeline.Option

	if b.MetricsFile != "" {
		env.prom = metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		opts = append(opts, pipeline.WithRecorder(env.prom))
	}
	if b.HistoryDB != "" {
		store, err := history.Open(b.HistoryDB)
		if err != nil {
			return nil, err
		}
		env.store = store
		opts = append(opts, pipeline.WithHistory(store))
	}
	if b.NATSURL != "" {
		pub, err := notify.Connect(b.NATSURL, b.NATSSubject)
		if err != nil {
			env.close()
			return nil, err
		}
		env.publisher = pub
		opts = append(opts, pipeline.WithPublisher(pub))
	}

	env.runner = pipeline.NewRunner(opts...)
	return env, nil
}

func (e *runEnv) run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error) {
	res, err := e.runner.Run(ctx, req)
	if e.prom != nil {
		if werr := e.prom.WriteTextfile(e.metricsFile); werr != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(e.metricsFile), logfields.Error(werr))
		}
	}
	return res, err
}

func (e *runEnv) close() {
	if e.publisher != nil {
		if err := e.publisher.Close(); err != nil {
			slog.Warn("Failed to close NATS connection", logfields.Error(err))
		}
	}
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			slog.Warn("Failed to close history database", logfields.Error(err))
		}
	}
}

func printResult(res *pipeline.Result) {
	state := "written"
	if res.Output.Unchanged {
		state = "unchanged"
	}
	fmt.Printf("Merged %d files (%s mode) into %s (%s)\n", res.Files, res.Mode, res.Output.Path, state)
	if res.Unanchored > 0 {
		fmt.Printf("%d files had no heading to anchor\n", res.Unanchored)
	}
}
