package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/interner/pkg/observability"
	"github.com/Sumatoshi-tech/interner/pkg/persist"
)

const (
	validateUse   = "validate <snapshot.json>..."
	validateShort = "Check JSON snapshots against the snapshot schema"

	flagNoColor = "no-color"
)

type validateCommand struct {
	app     *app
	noColor bool
}

func newValidateCommand(a *app) *cobra.Command {
	vc := &validateCommand{app: a}

	cmd := &cobra.Command{
		Use:   validateUse,
		Short: validateShort,
		Args:  cobra.MinimumNArgs(1),
		RunE:  vc.run,
	}

	cmd.Flags().BoolVar(&vc.noColor, flagNoColor, false, "disable colored output")

	return cmd
}

func (vc *validateCommand) run(cmd *cobra.Command, args []string) (err error) {
	s, err := vc.app.begin(cmd, "validate", observability.ModeCLI, false)
	if err != nil {
		return err
	}

	defer func() { err = s.end(err) }()

	out := cmd.OutOrStdout()

	var invalid int

	for _, path := range args {
		ok, checkErr := vc.check(out, path)
		if checkErr != nil {
			return checkErr
		}

		if !ok {
			invalid++
		}
	}

	s.logger.DebugContext(s.ctx, "validation finished", "files", len(args), "invalid", invalid)

	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d files", persist.ErrInvalidSnapshot, invalid, len(args))
	}

	return nil
}

func (vc *validateCommand) paint(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if vc.noColor {
		c.DisableColor()
	}

	return c
}

// check validates one file and reports whether it matched the schema.
func (vc *validateCommand) check(out io.Writer, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read snapshot: %w", err)
	}

	result, err := persist.ValidateSnapshot(data)
	if err == nil {
		vc.paint(color.FgGreen).Fprintf(out, "%s: valid\n", path)

		return true, nil
	}

	if !errors.Is(err, persist.ErrInvalidSnapshot) {
		vc.paint(color.FgRed).Fprintf(out, "%s: %v\n", path, err)

		return false, nil
	}

	vc.paint(color.FgRed).Fprintf(out, "%s: invalid\n", path)

	for _, verr := range result.Errors() {
		vc.paint(color.FgYellow).Fprintf(out, "  - %s: %s\n", verr.Field(), verr.Description())
	}

	return false, nil
}
