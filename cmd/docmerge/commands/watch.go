package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docmerge/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	BuildFlags `embed:""`
	Interval   time.Duration `help:"Also rebuild on this interval (0 disables)" default:"0s"`
	Debounce   time.Duration `help:"Quiet period after a change before rebuilding" default:"500ms"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env, err := w.open()
	if err != nil {
		return err
	}
	defer env.close()

	req, err := w.request(root)
	if err != nil {
		return err
	}

	watcher := watch.New(func(ctx context.Context, trigger string) error {
		req := req
		req.Trigger = trigger
		res, err := env.run(ctx, req)
		if err != nil {
			return err
		}
		printResult(res)
		return nil
	},
		watch.WithDirs(w.Input),
		watch.WithFiles(root.settingsPath()),
		watch.WithExclude(w.Output),
		watch.WithDebounce(w.Debounce),
		watch.WithInterval(w.Interval),
	)

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", w.Input)
	return watcher.Run(ctx)
}
