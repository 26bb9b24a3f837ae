package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/interner/pkg/observability"
	"github.com/Sumatoshi-tech/interner/pkg/symbol"
)

const (
	lookupUse   = "lookup <snapshot> <value|#index>..."
	lookupShort = "Resolve values and symbols against a snapshot"
	lookupLong  = `Print the symbol of every value, or the value of every #index, found in a
snapshot. Misses are reported and make the command fail.

Examples:
  interner lookup words.json hello world
  interner lookup words.json '#0' '#42'`

	lookupMinArgs = 2
	indexPrefix   = "#"
	missText      = "<not found>"
)

// ErrNotFound is returned when at least one lookup missed.
var ErrNotFound = errors.New("not found")

func newLookupCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   lookupUse,
		Short: lookupShort,
		Long:  lookupLong,
		Args:  cobra.MinimumNArgs(lookupMinArgs),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := a.begin(cmd, "lookup", observability.ModeCLI, false)
			if err != nil {
				return err
			}

			defer func() { err = s.end(err) }()

			path, queries := args[0], args[1:]
			out := cmd.OutOrStdout()

			return byWidth(a.cfg.Interner.Symbol,
				func() error { return lookup[symbol.U16](s, a, path, queries, out) },
				func() error { return lookup[symbol.U32](s, a, path, queries, out) },
				func() error { return lookup[symbol.Uint](s, a, path, queries, out) },
			)
		},
	}
}

func lookup[S symbol.Symbol[S]](s *session, a *app, path string, queries []string, out io.Writer) error {
	in, err := loadStrings[S](s, a, path)
	if err != nil {
		return err
	}

	var misses int

	for _, q := range queries {
		raw, isIndex := strings.CutPrefix(q, indexPrefix)
		if !isIndex {
			sym, ok := in.Get(q)
			if !ok {
				misses++

				fmt.Fprintf(out, "%s\t%s\n", q, missText)

				continue
			}

			fmt.Fprintf(out, "%s\t%d\n", q, sym.Index())

			continue
		}

		value, ok := resolveIndex(in.Resolve, raw)
		if !ok {
			misses++

			fmt.Fprintf(out, "%s\t%s\n", q, missText)

			continue
		}

		fmt.Fprintf(out, "%s\t%s\n", q, value)
	}

	s.logger.DebugContext(s.ctx, "lookup finished", "queries", len(queries), "misses", misses)

	if misses > 0 {
		return fmt.Errorf("%w: %d of %d lookups", ErrNotFound, misses, len(queries))
	}

	return nil
}

// resolveIndex parses raw as a symbol index and resolves it.
func resolveIndex[S symbol.Symbol[S]](resolve func(S) (string, bool), raw string) (string, bool) {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return "", false
	}

	sym, ok := symbol.New[S](index)
	if !ok {
		return "", false
	}

	return resolve(sym)
}
