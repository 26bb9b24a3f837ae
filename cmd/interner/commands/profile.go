package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/interner/pkg/observability"
	"github.com/Sumatoshi-tech/interner/pkg/profile"
	"github.com/Sumatoshi-tech/interner/pkg/symbol"
)

const (
	profileUse   = "profile"
	profileShort = "Measure allocations and memory overhead"
	profileLong  = `Build interners of growing size, shrink them and report heap allocations,
frees and retained memory relative to the raw content size. Step i
interns words*(i+1) values of word-len characters.

Thresholds fail the command when exceeded:
  interner profile --max-overhead 2.5 --max-memory 64MiB`

	flagWords       = "words"
	flagSteps       = "steps"
	flagWordLen     = "word-len"
	flagMaxOverhead = "max-overhead"
	flagMaxMemory   = "max-memory"
)

type profileCommand struct {
	app         *app
	words       int
	steps       int
	wordLen     int
	maxOverhead float64
	maxMemory   string
}

func newProfileCommand(a *app) *cobra.Command {
	pc := &profileCommand{app: a}

	cmd := &cobra.Command{
		Use:   profileUse,
		Short: profileShort,
		Long:  profileLong,
		Args:  cobra.NoArgs,
		RunE:  pc.run,
	}

	cmd.Flags().IntVar(&pc.words, flagWords, 0, "words added per step (default: profile.words)")
	cmd.Flags().IntVar(&pc.steps, flagSteps, 0, "number of steps (default: profile.steps)")
	cmd.Flags().IntVar(&pc.wordLen, flagWordLen, 0, "characters per word (default: profile.word_len)")
	cmd.Flags().Float64Var(&pc.maxOverhead, flagMaxOverhead, 0, "fail above this overhead factor (default: profile.max_overhead)")
	cmd.Flags().StringVar(&pc.maxMemory, flagMaxMemory, "", "fail above this retained size, e.g. 64MiB (default: profile.max_memory)")

	return cmd
}

func (pc *profileCommand) applyFlags(cmd *cobra.Command) {
	cfg := &pc.app.cfg.Profile

	if pc.words > 0 {
		cfg.Words = pc.words
	}

	if pc.steps > 0 {
		cfg.Steps = pc.steps
	}

	if pc.wordLen > 0 {
		cfg.WordLen = pc.wordLen
	}

	if cmd.Flags().Changed(flagMaxOverhead) {
		cfg.MaxOverhead = pc.maxOverhead
	}

	if cmd.Flags().Changed(flagMaxMemory) {
		cfg.MaxMemory = pc.maxMemory
	}
}

func (pc *profileCommand) run(cmd *cobra.Command, _ []string) (err error) {
	pc.applyFlags(cmd)

	s, err := pc.app.begin(cmd, "profile", observability.ModeBench, false)
	if err != nil {
		return err
	}

	defer func() { err = s.end(err) }()

	settings := pc.app.cfg.Profile

	maxMemory, err := settings.MaxMemoryBytes()
	if err != nil {
		return err
	}

	hasher, err := pc.app.cfg.Interner.NewHasher()
	if err != nil {
		return err
	}

	cfg := profile.Config{
		Words:   settings.Words,
		Steps:   settings.Steps,
		WordLen: settings.WordLen,
		Hasher:  hasher,
		Logger:  s.logger,
	}

	var report profile.Report

	err = byWidth(pc.app.cfg.Interner.Symbol,
		func() (runErr error) {
			report, runErr = profile.Run[symbol.U16](s.ctx, cfg)

			return runErr
		},
		func() (runErr error) {
			report, runErr = profile.Run[symbol.U32](s.ctx, cfg)

			return runErr
		},
		func() (runErr error) {
			report, runErr = profile.Run[symbol.Uint](s.ctx, cfg)

			return runErr
		},
	)
	if err != nil {
		return err
	}

	err = profile.RenderTable(cmd.OutOrStdout(), report)
	if err != nil {
		return err
	}

	s.logger.InfoContext(s.ctx, "profile finished",
		"steps", len(report.Samples),
		"min_overhead", report.MinOverhead(),
		"max_overhead", report.MaxOverhead(),
		"peak_retained", humanize.IBytes(uint64(report.PeakRetained())),
	)

	err = report.Check(settings.MaxOverhead, maxMemory)
	if err != nil {
		return fmt.Errorf("profile thresholds: %w", err)
	}

	return nil
}
