package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/olekukonko/tablewriter"
)

func render(w io.Writer, format string, results []caseResult) {
	if format == "ascii" {
		renderASCII(w, results)
		return
	}
	renderPretty(w, results)
}

func renderPretty(w io.Writer, results []caseResult) {
	tbl := table.NewWriter()
	tbl.SetTitle("ripple propagation")
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{
		"case", "size", "sources", "read%", "static%",
		"iterations", "updates/ms", "best", "avg", "p75", "p99", "max",
	})

	for _, r := range results {
		tbl.AppendRows([]table.Row{
			{
				r.c.Name,
				fmt.Sprintf("%dx%d", r.c.Width, r.c.Layers),
				r.c.NSources,
				r.c.ReadFraction,
				r.c.StaticFraction,
				humanize.Comma(int64(r.c.Iterations)),
				humanize.Comma(int64(updateRate(r))),
				r.duration,
				r.metrics.Time.Avg,
				r.metrics.Time.P75,
				r.metrics.Time.P99,
				r.metrics.Time.Max,
			},
		})
	}
	tbl.Render()
}

func renderASCII(w io.Writer, results []caseResult) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{
		"case", "size", "sources", "read%", "static%",
		"iterations", "updates/ms", "best", "title",
	})

	for _, r := range results {
		tbl.Append([]string{
			r.c.Name,
			fmt.Sprintf("%dx%d", r.c.Width, r.c.Layers),
			fmt.Sprint(r.c.NSources),
			fmt.Sprint(r.c.ReadFraction),
			fmt.Sprint(r.c.StaticFraction),
			humanize.Comma(int64(r.c.Iterations)),
			humanize.Comma(int64(updateRate(r))),
			fmt.Sprint(r.duration),
			title(r.c),
		})
	}
	tbl.Render()
}

func updateRate(r caseResult) float64 {
	ms := float64(r.duration.Milliseconds())
	if ms == 0 {
		return 0
	}
	return float64(r.count) / ms
}

func title(c benchCase) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", c.Width, c.Layers, c.NSources))
	if c.StaticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if c.ReadFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.f%%", 100*c.ReadFraction))
	}
	return sb.String()
}
