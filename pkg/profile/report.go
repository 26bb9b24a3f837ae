package profile

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable writes the samples of r as a text table.
func RenderTable(w io.Writer, r Report) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(fmt.Sprintf("Memory profile (%s symbols)", r.Symbol))
	tbl.AppendHeader(table.Row{"Words", "Allocs", "Frees", "Requested", "Retained", "Ideal", "Overhead"})

	for _, s := range r.Samples {
		tbl.AppendRow(table.Row{
			humanize.Comma(int64(s.Words)),
			s.Allocations,
			s.Frees,
			humanize.IBytes(s.AllocatedBytes),
			humanize.IBytes(uint64(s.RetainedBytes)),
			humanize.IBytes(uint64(s.IdealBytes)),
			fmt.Sprintf("%.2fx", s.Overhead()),
		})
	}

	tbl.AppendFooter(table.Row{
		"", r.MaxAllocations(), r.MaxFrees(), "", "", "",
		fmt.Sprintf("%.2fx-%.2fx", r.MinOverhead(), r.MaxOverhead()),
	})

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}
