package cli

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/arthur-debert/barkeep/pkg/bar"
	"github.com/arthur-debert/barkeep/pkg/config"
	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/logging"
	"github.com/arthur-debert/barkeep/pkg/metrics"
	"github.com/arthur-debert/barkeep/pkg/scheduler"
	"github.com/arthur-debert/barkeep/pkg/ui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newRunCmd(opts *options) *cobra.Command {
	var (
		once        bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:     "run",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Args:    cobra.NoArgs,
		GroupID: "config",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := opts.load()
			if err != nil {
				return err
			}
			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			if once {
				return runOnce(ctx, cfg, r)
			}

			g, ctx := errgroup.WithContext(ctx)
			if metricsAddr != "" {
				g.Go(func() error { return serveMetrics(ctx, metricsAddr) })
			}

			reloads := make(chan *config.Config, 1)
			watchCtx, stopWatch := context.WithCancel(ctx)
			defer stopWatch()
			if cfg.WatchConfig {
				g.Go(func() error {
					return config.Watch(watchCtx, cfg.Path, opts.policy(), config.DefaultDebounce, reloader(reloads))
				})
			}

			g.Go(func() error { return runBars(ctx, cfg, r, reloads, stopWatch) })
			return g.Wait()
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, MsgFlagOnce)
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", MsgFlagMetricsAddr)
	return cmd
}

func runOnce(ctx context.Context, cfg *config.Config, r ui.Renderer) error {
	defer logging.LogDuration(time.Now(), "render bars once")

	bars, err := bar.Build(cfg, nil)
	if err != nil {
		return err
	}

	sched := scheduler.New(nil)
	if err := sched.Add(bar.Instances(bars)...); err != nil {
		return err
	}
	sched.Once(ctx)

	labels := &ui.Labels{}
	for _, b := range bars {
		for _, inst := range b.Instances() {
			labels.Labels = append(labels.Labels, labelOf(b.Name, inst))
		}
	}
	return r.RenderResult(labels)
}

// runBars schedules the bars of cfg and rebuilds them on every reload until
// ctx is done. A reload that turns watch_config off calls stopWatch.
func runBars(ctx context.Context, cfg *config.Config, r ui.Renderer, reloads <-chan *config.Config, stopWatch func()) error {
	logger := logging.GetLogger("cli.run")

	for {
		bars, err := bar.Build(cfg, nil)
		if err != nil {
			return err
		}

		sched := scheduler.New(labelSink(bars, r))
		if err := sched.Add(bar.Instances(bars)...); err != nil {
			return err
		}
		if err := sched.Start(ctx); err != nil {
			return err
		}
		logger.Info().Strs("bars", cfg.BarNames()).Msg("Bars running")

		select {
		case <-ctx.Done():
			return sched.Stop()
		case next := <-reloads:
			if err := sched.Stop(); err != nil {
				return err
			}
			cfg = next
			logger.Info().Str("path", cfg.Path).Msg(MsgReloaded)
			if !cfg.WatchConfig {
				stopWatch()
				logger.Info().Msg(MsgWatchStopped)
			}
		}
	}
}

// labelSink prints every update. Renderers are not safe for concurrent use.
func labelSink(bars []*bar.Bar, r ui.Renderer) scheduler.Sink {
	owner := make(map[string]string)
	for _, b := range bars {
		for _, inst := range b.Instances() {
			owner[inst.ID()] = b.Name
		}
	}

	var mu sync.Mutex
	logger := logging.GetLogger("cli.run")
	return func(u scheduler.Update) {
		mu.Lock()
		defer mu.Unlock()
		err := r.RenderResult(&ui.Label{
			Bar:     owner[u.ID],
			Widget:  u.Widget,
			Label:   u.Label,
			Parts:   labelParts(u.Parts),
			Visible: u.Visible,
		})
		if err != nil {
			logger.Error().Err(err).Str("widget", u.Widget).Msg("Failed to print label")
		}
	}
}

// reloader forwards good configurations, keeping only the newest pending one.
func reloader(reloads chan *config.Config) config.ReloadFunc {
	logger := logging.GetLogger("cli.run")
	return func(cfg *config.Config, err error) {
		if err != nil {
			logger.Warn().Err(err).Msg("Configuration change rejected, keeping the running bars")
			return
		}
		for {
			select {
			case reloads <- cfg:
				return
			default:
				select {
				case <-reloads:
				default:
				}
			}
		}
	}
}

func serveMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger := logging.GetLogger("cli.run")
	logger.Info().Str("addr", addr).Msg("Serving metrics")
	if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return errors.Wrapf(err, errors.ErrInternal, "metrics server on %s failed", addr)
	}
	return nil
}
