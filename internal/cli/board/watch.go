package board

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/app"
	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/pattyalex/brand-journey-tracker/internal/cli/styles"
	"github.com/pattyalex/brand-journey-tracker/internal/events"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// WatchCmd returns the board watch subcommand
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the board on screen and follow changes from other commands",
		Long: `Render the board, then re-render it whenever another planner command changes
it. The view also serves archive requests and shows the archive panel when
'planner archive open' is run elsewhere. Stop with Ctrl+C.

With --json every render is one JSON object per line.

Examples:
  planner board watch
  planner board watch --stacked
  planner board watch --json
`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}

	cmd.Flags().Bool("stacked", false, "Render stages one below the other")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	return cli.Execute(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		styles.Init(c.App.Config.ColorScheme)
		stacked, _ := cmd.Flags().GetBool("stacked")
		w := &watcher{app: c.App, f: f, stacked: stacked, now: time.Now}
		if err := w.run(ctx); err != nil {
			return f.Fail(err)
		}
		return nil
	})
}

// watcher is one long-lived board view. Renders are serialized so the
// reload and panel loops never interleave output.
type watcher struct {
	mu      sync.Mutex
	app     *app.App
	f       *cli.OutputFormatter
	stacked bool
	now     func() time.Time
}

func (w *watcher) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	requests, err := w.app.Session.Events(ctx)
	if err != nil {
		return err
	}
	w.renderBoard(ctx)

	g.Go(func() error {
		return w.app.Run(ctx, func() { w.renderBoard(ctx) })
	})
	g.Go(func() error {
		for ev := range requests {
			if ev.Type == events.EventOpenArchive {
				// The panel shows the archive as stored, not as last reloaded
				w.app.Session.Reload(ctx)
				w.renderArchive(ctx)
			}
		}
		return nil
	})
	return g.Wait()
}

func (w *watcher) renderBoard(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	board := w.app.BoardService.GetBoard(ctx)
	switch {
	case w.f.Quiet:
		return
	case w.f.JSON:
		_ = w.f.Success("stages", board.Stages)
	default:
		out := w.f.Writer()
		fmt.Fprintln(out, styles.SubtitleStyle.Render("Watching board, updated "+w.now().Format("15:04:05")))
		fmt.Fprintln(out, renderBoard(board, w.stacked))
	}
}

func (w *watcher) renderArchive(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	entries := w.app.ArchiveService.List(ctx)
	switch {
	case w.f.Quiet:
		return
	case w.f.JSON:
		_ = w.f.Success("archive", entries)
	default:
		writeArchivePanel(w.f.Writer(), entries)
	}
}

func writeArchivePanel(out io.Writer, entries []models.Item) {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = styles.RenderItemLine(e, cli.ShortID(e.ID))
		if e.ArchivedAt != nil {
			lines[i] += "  " + styles.SubtitleStyle.Render("archived "+e.ArchivedAt.Format("2006-01-02"))
		}
	}
	fmt.Fprintln(out, styles.RenderStage("Archive", lines))
}
