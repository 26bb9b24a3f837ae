package bench

import (
	"fmt"
	"io"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	chartWidth  = "100%"
	chartHeight = "500px"
	xAxisRotate = 30
	chartTitle  = "Interner throughput"
	seriesName  = "ops/s"
)

// RenderTable writes results as a text table.
func RenderTable(w io.Writer, results []Result) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Scenario", "Ops", "Best", "Median", "Stddev", "ns/op", "ops/s"})

	for _, r := range results {
		tbl.AppendRow(table.Row{
			r.Scenario,
			humanize.Comma(int64(r.Ops)),
			r.Best.String(),
			r.Median().String(),
			r.StdDev().String(),
			fmt.Sprintf("%.1f", r.NsPerOp()),
			humanize.Comma(int64(r.OpsPerSec())),
		})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d scenarios", len(results))})

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}

// RenderChart writes results as an HTML bar chart of operations per second.
func RenderChart(w io.Writer, results []Result) error {
	labels := make([]string, len(results))
	values := make([]opts.BarData, len(results))

	for i, r := range results {
		labels[i] = r.Scenario
		values[i] = opts.BarData{Value: math.Round(r.OpsPerSec())}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: chartTitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: xAxisRotate, Interval: "0"},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: seriesName}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries(seriesName, values)

	err := bar.Render(w)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	return nil
}
