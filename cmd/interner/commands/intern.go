package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/interner/pkg/interner"
	"github.com/Sumatoshi-tech/interner/pkg/observability"
	"github.com/Sumatoshi-tech/interner/pkg/persist"
	"github.com/Sumatoshi-tech/interner/pkg/symbol"
)

const (
	internUse   = "intern [file|-]"
	internShort = "Intern newline-separated values"
	internLong  = `Read one value per line from a file or stdin, intern every value and
report how many were distinct. With --out the interner is written as a
snapshot whose format follows the file extension (.json, .gob, .yaml,
optionally suffixed with .lz4) or the snapshot config.

Examples:
  interner intern words.txt --out words.json
  cat words.txt | interner intern --out words.gob.lz4`

	flagOut      = "out"
	flagCodec    = "codec"
	flagCompress = "compress"

	stdinArg = "-"

	// maxLineBytes bounds a single input value.
	maxLineBytes = 16 << 20
	lineBufBytes = 64 << 10
)

type internCommand struct {
	app      *app
	out      string
	codec    string
	compress bool
}

func newInternCommand(a *app) *cobra.Command {
	ic := &internCommand{app: a}

	cmd := &cobra.Command{
		Use:   internUse,
		Short: internShort,
		Long:  internLong,
		Args:  cobra.MaximumNArgs(1),
		RunE:  ic.run,
	}

	cmd.Flags().StringVarP(&ic.out, flagOut, "o", "", "write a snapshot to this path")
	cmd.Flags().StringVar(&ic.codec, flagCodec, "", "snapshot codec: json, gob, yaml (overrides extension and config)")
	cmd.Flags().BoolVar(&ic.compress, flagCompress, false, "compress the snapshot with lz4")

	return cmd
}

func (ic *internCommand) run(cmd *cobra.Command, args []string) (err error) {
	s, err := ic.app.begin(cmd, "intern", observability.ModeCLI, false)
	if err != nil {
		return err
	}

	defer func() { err = s.end(err) }()

	var codec persist.Codec

	if ic.out != "" {
		codec, err = ic.snapshotCodec(cmd)
		if err != nil {
			return err
		}
	}

	input, closeInput, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeInput()

	opts, err := ic.app.internerOptions()
	if err != nil {
		return err
	}

	run := internRun{
		session: s,
		opts:    opts,
		input:   input,
		out:     cmd.OutOrStdout(),
		path:    ic.out,
		codec:   codec,
	}

	return byWidth(ic.app.cfg.Interner.Symbol,
		func() error { return internInput[symbol.U16](run) },
		func() error { return internInput[symbol.U32](run) },
		func() error { return internInput[symbol.Uint](run) },
	)
}

func (ic *internCommand) snapshotCodec(cmd *cobra.Command) (persist.Codec, error) {
	if cmd.Flags().Changed(flagCodec) || cmd.Flags().Changed(flagCompress) {
		name := ic.codec
		if name == "" {
			name = ic.app.cfg.Snapshot.Codec
		}

		return persist.CodecByName(name, ic.compress)
	}

	return ic.app.codecFor(ic.out)
}

// internRun carries the inputs of one intern run.
type internRun struct {
	session *session
	opts    []interner.Option
	input   io.Reader
	out     io.Writer
	path    string
	codec   persist.Codec
}

func internInput[S symbol.Symbol[S]](run internRun) error {
	s := run.session
	in := interner.NewString[S](run.opts...)
	limit := symbol.Capacity[S]()

	scanner := bufio.NewScanner(run.input)
	scanner.Buffer(make([]byte, 0, lineBufBytes), maxLineBytes)

	var total int

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if in.Len() == limit {
			if _, ok := in.Get(line); !ok {
				return fmt.Errorf("%w: more than %d distinct values for %s symbols",
					ErrSymbolSpace, limit, persist.WidthName[S]())
			}
		}

		in.Intern(line)

		total++
	}

	err := scanner.Err()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	s.metrics.RecordIntern(s.ctx, int64(total), int64(in.Len()))

	in.ShrinkToFit()

	unregister, err := s.metrics.ObserveFootprint(func() observability.Footprint {
		stats := in.Stats()

		return observability.Footprint{
			Entries:        int64(stats.Entries),
			ContentBytes:   int64(stats.ContentBytes()),
			AllocatedBytes: int64(stats.AllocatedBytes()),
		}
	})
	if err != nil {
		return err
	}

	defer func() {
		unregisterErr := unregister()
		if unregisterErr != nil {
			s.logger.Warn("footprint unregister failed", "error", unregisterErr)
		}
	}()

	s.logger.InfoContext(s.ctx, "interned values",
		"total", total,
		"distinct", in.Len(),
		"symbol", persist.WidthName[S](),
		"hasher", in.Hasher().Name(),
	)

	fmt.Fprintf(run.out, "%d values, %d distinct\n", total, in.Len())

	if run.path == "" {
		return nil
	}

	err = persist.SaveSnapshot(run.path, run.codec, in)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	s.logger.InfoContext(s.ctx, "snapshot written", "path", run.path, "format", run.codec.Extension())

	return nil
}

// openInput opens the file named by args, or stdin for none or "-".
func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == stdinArg {
		return cmd.InOrStdin(), func() {}, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}

	return f, func() { _ = f.Close() }, nil
}
