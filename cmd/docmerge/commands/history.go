package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/docmerge/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	HistoryDB string `name:"history-db" help:"SQLite database written by build --history-db" required:"" type:"existingfile"`
	Limit     int    `short:"n" help:"Number of runs to show (0 for all)" default:"20"`
}

func (h *HistoryCmd) Run(_ *Global, _ *CLI) error {
	store, err := history.Open(h.HistoryDB)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()
	_, _ = fmt.Fprintln(w, "STARTED\tBUILD\tOUTCOME\tMODE\tFILES\tDURATION\tREVISION\tFINGERPRINT")
	for _, r := range runs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			r.StartedAt.Local().Format(time.DateTime),
			short(r.BuildID, 8),
			r.Outcome,
			r.Mode,
			r.Files,
			r.Duration.Round(time.Millisecond),
			short(r.Revision, 12),
			short(r.Fingerprint, 12),
		)
	}
	return nil
}

func short(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
