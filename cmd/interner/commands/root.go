// Package commands implements CLI command handlers for interner.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/interner/pkg/config"
	"github.com/Sumatoshi-tech/interner/pkg/interner"
	"github.com/Sumatoshi-tech/interner/pkg/observability"
	"github.com/Sumatoshi-tech/interner/pkg/persist"
	"github.com/Sumatoshi-tech/interner/pkg/version"
)

// Root command and persistent flags.
const (
	rootUse   = "interner"
	rootShort = "Intern strings into compact symbols"
	rootLong  = `interner deduplicates strings into small integer symbols.

Commands:
  intern    Intern newline-separated values and write a snapshot
  lookup    Resolve values and symbols against a snapshot
  dump      Print every entry of a snapshot
  bench     Measure interner throughput
  profile   Measure allocations and memory overhead
  validate  Check JSON snapshots against the snapshot schema`

	flagConfig  = "config"
	flagVerbose = "verbose"
	flagLogJSON = "log-json"
)

// ErrSymbolSpace is returned when the input holds more distinct values than
// the configured symbol width can represent.
var ErrSymbolSpace = errors.New("symbol space exhausted")

// app holds state shared by every command.
type app struct {
	configPath string
	verbose    bool
	logJSON    bool

	cfg *config.Config
}

// NewRootCommand creates the interner command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:               rootUse,
		Short:             rootShort,
		Long:              rootLong,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
	}

	root.PersistentFlags().StringVar(&a.configPath, flagConfig, "", "config file (default: .interner.yaml in CWD or $HOME)")
	root.PersistentFlags().BoolVarP(&a.verbose, flagVerbose, "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&a.logJSON, flagLogJSON, false, "JSON log output")

	root.AddCommand(
		newInternCommand(a),
		newLookupCommand(a),
		newDumpCommand(a),
		newBenchCommand(a),
		newProfileCommand(a),
		newValidateCommand(a),
		newVersionCommand(),
	)

	return root
}

func (a *app) loadConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	if a.verbose {
		cfg.Logging.Level = slog.LevelDebug.String()
	}

	if a.logJSON {
		cfg.Logging.JSON = true
	}

	a.cfg = cfg

	return nil
}

// internerOptions returns the construction options selected by config.
func (a *app) internerOptions() ([]interner.Option, error) {
	hasher, err := a.cfg.Interner.NewHasher()
	if err != nil {
		return nil, err
	}

	return []interner.Option{
		interner.WithCapacity(a.cfg.Interner.Capacity),
		interner.WithHasher(hasher),
	}, nil
}

// codecFor picks the snapshot codec from the file extension of path and
// falls back to the configured codec.
func (a *app) codecFor(path string) (persist.Codec, error) {
	codec, err := persist.CodecForPath(path)
	if err == nil {
		return codec, nil
	}

	return a.cfg.Snapshot.NewCodec()
}

// session is one traced and measured command execution.
type session struct {
	ctx       context.Context //nolint:containedctx // scoped to one command run.
	op        string
	start     time.Time
	span      trace.Span
	logger    *slog.Logger
	metrics   *observability.InternerMetrics
	providers observability.Providers
}

// begin initializes observability for one command run.
func (a *app) begin(cmd *cobra.Command, op string, mode observability.AppMode, prometheus bool) (*session, error) {
	level, err := a.cfg.Logging.SlogLevel()
	if err != nil {
		return nil, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Mode = mode
	obsCfg.OTLPEndpoint = a.cfg.Observability.OTLPEndpoint
	obsCfg.OTLPInsecure = a.cfg.Observability.OTLPInsecure
	obsCfg.SampleRatio = a.cfg.Observability.SampleRatio
	obsCfg.Prometheus = prometheus
	obsCfg.LogLevel = level
	obsCfg.LogJSON = a.cfg.Logging.JSON
	obsCfg.LogOutput = cmd.ErrOrStderr()

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	metrics, err := observability.NewInternerMetrics(providers.Meter)
	if err != nil {
		return nil, errors.Join(err, providers.Shutdown(context.Background()))
	}

	ctx, span := providers.Tracer.Start(cmd.Context(), rootUse+"."+op)

	return &session{
		ctx:       ctx,
		op:        op,
		start:     time.Now(),
		span:      span,
		logger:    observability.ForCommand(providers.Logger, op),
		metrics:   metrics,
		providers: providers,
	}, nil
}

// end records the outcome of the run and flushes telemetry. It returns err.
func (s *session) end(err error) error {
	status := observability.StatusOK
	if err != nil {
		status = observability.StatusError

		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}

	s.metrics.RecordOp(s.ctx, s.op, status, time.Since(s.start))
	s.span.End()

	shutdownErr := s.providers.Shutdown(context.Background())
	if shutdownErr != nil {
		s.logger.Warn("observability shutdown failed", "error", shutdownErr)
	}

	return err
}

// byWidth runs the task matching the configured symbol width.
func byWidth(width string, u16, u32, uintTask func() error) error {
	switch width {
	case persist.WidthU16:
		return u16()
	case persist.WidthUint:
		return uintTask()
	default:
		return u32()
	}
}
