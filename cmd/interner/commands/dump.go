package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/interner/pkg/observability"
	"github.com/Sumatoshi-tech/interner/pkg/symbol"
)

const (
	dumpUse   = "dump <snapshot>"
	dumpShort = "Print every entry of a snapshot"

	flagLimit = "limit"
)

func newDumpCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   dumpUse,
		Short: dumpShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := a.begin(cmd, "dump", observability.ModeCLI, false)
			if err != nil {
				return err
			}

			defer func() { err = s.end(err) }()

			out := cmd.OutOrStdout()

			return byWidth(a.cfg.Interner.Symbol,
				func() error { return dump[symbol.U16](s, a, args[0], limit, out) },
				func() error { return dump[symbol.U32](s, a, args[0], limit, out) },
				func() error { return dump[symbol.Uint](s, a, args[0], limit, out) },
			)
		},
	}

	cmd.Flags().IntVar(&limit, flagLimit, 0, "print at most this many entries (0 = all)")

	return cmd
}

func dump[S symbol.Symbol[S]](s *session, a *app, path string, limit int, out io.Writer) error {
	in, err := loadStrings[S](s, a, path)
	if err != nil {
		return err
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Symbol", "Value", "Hash"})

	var shown int

	for entry := range in.AllWithHashes() {
		if limit > 0 && shown == limit {
			break
		}

		tbl.AppendRow(table.Row{entry.Symbol.Index(), fmt.Sprintf("%q", entry.Value), fmt.Sprintf("%016x", entry.Hash)})

		shown++
	}

	stats := in.Stats()
	tbl.AppendFooter(table.Row{
		fmt.Sprintf("Total: %d", in.Len()),
		humanize.IBytes(uint64(stats.ContentBytes())) + " content",
		humanize.IBytes(uint64(stats.AllocatedBytes())) + " allocated",
	})

	_, err = fmt.Fprintln(out, tbl.Render())
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}
