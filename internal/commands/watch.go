package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simonhull/firebird-suite/nest/internal/logger"
	"github.com/simonhull/firebird-suite/nest/internal/metrics"
	"github.com/simonhull/firebird-suite/nest/internal/schema"
	"github.com/simonhull/firebird-suite/nest/internal/settings"
	"github.com/simonhull/firebird-suite/nest/internal/structure"
	"github.com/simonhull/firebird-suite/nest/internal/watch"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// WatchCmd creates the watch command
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [folder]",
		Short: "Re-validate a folder whenever it or the schema changes",
		Long: `Validate the folder once, then again after every burst of changes to the
folder or to the schema file. The schema is re-read on every run.

Runs are recorded as Prometheus metrics, served with --metrics-addr.

Examples:
  nest watch ./deploy -s schema.json
  nest watch ./deploy -s schema.json --debounce 500ms --metrics-addr :9090`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, afero.NewOsFs())
		},
	}

	settings.RegisterFlags(cmd.Flags())
	settings.RegisterWatchFlags(cmd.Flags())

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, fs afero.Fs) error {
	rc, err := setup(cmd, args, fs)
	if err != nil {
		return err
	}
	s := rc.settings

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector(nil)

	run := func(ctx context.Context) {
		start := time.Now()

		var result *schema.Result
		st, err := structure.Load(fs, s.Folder, s.JSONSchema, s.TreeOptions(), rc.log)
		if err == nil {
			result, err = st.Validate(ctx)
		}
		if ctx.Err() != nil {
			return
		}

		collector.Observe(result, err, time.Since(start))
		if err != nil {
			_ = rc.reporter.Failure(err)
			return
		}
		_ = rc.reporter.Result(result)
	}

	w, err := watch.New(watch.Config{
		Root:     s.Folder,
		Files:    []string{s.JSONSchema},
		Debounce: s.Debounce,
	}, rc.log)
	if err != nil {
		return reportFailure(rc.reporter, err)
	}

	run(ctx)
	rc.reporter.Info(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", s.Folder))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Watch(ctx, run)
	})

	if s.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		server := &http.Server{Addr: s.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		g.Go(func() error {
			rc.log.Info("Serving metrics", logger.F("addr", s.MetricsAddr))
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
