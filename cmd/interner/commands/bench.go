package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/interner/pkg/bench"
	"github.com/Sumatoshi-tech/interner/pkg/observability"
	"github.com/Sumatoshi-tech/interner/pkg/symbol"
)

const (
	benchUse   = "bench"
	benchShort = "Measure interner throughput"
	benchLong  = `Run the throughput scenarios over a deterministic word set:
filling a new interner, filling a presized one, interning into a filled
one, get, resolve, resolve without checks and iteration.

Examples:
  interner bench
  interner bench --strings 1000000 --html bench.html
  interner bench --metrics-addr :9464 --linger 30s`

	flagStrings     = "strings"
	flagStringLen   = "string-len"
	flagRounds      = "rounds"
	flagHTML        = "html"
	flagMetricsAddr = "metrics-addr"
	flagLinger      = "linger"
	flagBaseline    = "baseline-dir"
	flagSave        = "save-baseline"

	metricsPath = "/metrics"

	serverReadHeaderTimeout = 5 * time.Second
	serverShutdownTimeout   = 5 * time.Second
)

type benchCommand struct {
	app         *app
	strings     int
	stringLen   int
	rounds      int
	html        string
	metricsAddr string
	linger      time.Duration
	baseline    string
	save        bool
}

func newBenchCommand(a *app) *cobra.Command {
	bc := &benchCommand{app: a}

	cmd := &cobra.Command{
		Use:   benchUse,
		Short: benchShort,
		Long:  benchLong,
		Args:  cobra.NoArgs,
		RunE:  bc.run,
	}

	cmd.Flags().IntVar(&bc.strings, flagStrings, 0, "number of distinct words (default: bench.strings)")
	cmd.Flags().IntVar(&bc.stringLen, flagStringLen, 0, "length of every word (default: bench.string_len)")
	cmd.Flags().IntVar(&bc.rounds, flagRounds, bench.DefaultRounds, "rounds per scenario; the fastest is reported")
	cmd.Flags().StringVar(&bc.html, flagHTML, "", "write an HTML throughput chart to this path")
	cmd.Flags().StringVar(&bc.metricsAddr, flagMetricsAddr, "", "serve Prometheus metrics on this address (default: observability.metrics_addr)")
	cmd.Flags().DurationVar(&bc.linger, flagLinger, 0, "keep serving metrics this long after the run")
	cmd.Flags().StringVar(&bc.baseline, flagBaseline, "", "compare with the baseline saved in this directory")
	cmd.Flags().BoolVar(&bc.save, flagSave, false, "save this run as the baseline in --baseline-dir")

	return cmd
}

func (bc *benchCommand) config() bench.Config {
	cfg := bench.Config{
		Strings:   bc.app.cfg.Bench.Strings,
		StringLen: bc.app.cfg.Bench.StringLen,
		Rounds:    bc.rounds,
	}

	if bc.strings > 0 {
		cfg.Strings = bc.strings
	}

	if bc.stringLen > 0 {
		cfg.StringLen = bc.stringLen
	}

	return cfg
}

func (bc *benchCommand) run(cmd *cobra.Command, _ []string) (err error) {
	addr := bc.metricsAddr
	if addr == "" {
		addr = bc.app.cfg.Observability.MetricsAddr
	}

	s, err := bc.app.begin(cmd, "bench", observability.ModeBench, addr != "")
	if err != nil {
		return err
	}

	defer func() { err = s.end(err) }()

	if addr != "" {
		stop, serveErr := serveMetrics(s, addr)
		if serveErr != nil {
			return serveErr
		}

		defer stop()
	}

	cfg := bc.config()
	cfg.Logger = s.logger

	cfg.Hasher, err = bc.app.cfg.Interner.NewHasher()
	if err != nil {
		return err
	}

	var results []bench.Result

	err = byWidth(bc.app.cfg.Interner.Symbol,
		func() (runErr error) {
			results, runErr = bench.Run[symbol.U16](s.ctx, cfg, s.metrics)

			return runErr
		},
		func() (runErr error) {
			results, runErr = bench.Run[symbol.U32](s.ctx, cfg, s.metrics)

			return runErr
		},
		func() (runErr error) {
			results, runErr = bench.Run[symbol.Uint](s.ctx, cfg, s.metrics)

			return runErr
		},
	)
	if err != nil {
		return err
	}

	err = bench.RenderTable(cmd.OutOrStdout(), results)
	if err != nil {
		return err
	}

	if bc.baseline != "" {
		err = bc.compareBaseline(s, cmd, cfg, results)
		if err != nil {
			return err
		}
	}

	if bc.html != "" {
		err = writeChart(bc.html, results)
		if err != nil {
			return err
		}

		s.logger.InfoContext(s.ctx, "chart written", "path", bc.html)
	}

	if addr != "" && bc.linger > 0 {
		s.logger.InfoContext(s.ctx, "serving metrics", "addr", addr, "linger", bc.linger)

		select {
		case <-s.ctx.Done():
		case <-time.After(bc.linger):
		}
	}

	return nil
}

func (bc *benchCommand) compareBaseline(s *session, cmd *cobra.Command, cfg bench.Config, results []bench.Result) error {
	store := bench.NewBaselineStore()

	base, ok, err := store.Load(bc.baseline)
	if err != nil {
		return err
	}

	width := bc.app.cfg.Interner.Symbol

	switch {
	case !ok:
		s.logger.InfoContext(s.ctx, "no baseline found", "path", store.Path(bc.baseline))
	case base.Strings != cfg.Strings || base.StringLen != cfg.StringLen || base.Symbol != width:
		s.logger.WarnContext(s.ctx, "baseline workload differs; skipping comparison",
			"baseline_strings", base.Strings, "baseline_string_len", base.StringLen, "baseline_symbol", base.Symbol)
	default:
		err = bench.RenderComparison(cmd.OutOrStdout(), bench.Compare(base.Results, results))
		if err != nil {
			return err
		}
	}

	if !bc.save {
		return nil
	}

	err = store.Save(bc.baseline, bench.Baseline{
		Strings:   cfg.Strings,
		StringLen: cfg.StringLen,
		Symbol:    width,
		Results:   results,
	})
	if err != nil {
		return fmt.Errorf("save baseline: %w", err)
	}

	s.logger.InfoContext(s.ctx, "baseline saved", "path", store.Path(bc.baseline))

	return nil
}

func writeChart(path string, results []bench.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}

	defer func() {
		closeErr := f.Close()
		if closeErr != nil && err == nil {
			err = fmt.Errorf("close chart: %w", closeErr)
		}
	}()

	return bench.RenderChart(f, results)
}

// serveMetrics exposes the Prometheus handler of s on addr until stop is
// called.
func serveMetrics(s *session, addr string) (stop func(), err error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(metricsPath, s.providers.MetricsHandler)

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: serverReadHeaderTimeout,
	}

	go func() {
		serveErr := server.Serve(ln)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			s.logger.Error("metrics server failed", "error", serveErr)
		}
	}()

	s.logger.InfoContext(s.ctx, "metrics endpoint ready", "url", "http://"+ln.Addr().String()+metricsPath)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer cancel()

		_ = server.Shutdown(ctx)
	}, nil
}
