package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/mauv0809/crease/internal/analytics"
)

const chartHeight = "420px"

// WriteCharts renders the Manhattan and worm charts of sum as a standalone HTML page.
func WriteCharts(w io.Writer, sum analytics.Summary) error {
	page := components.NewPage()
	page.PageTitle = "Match " + sum.MatchID
	page.AddCharts(Manhattan(sum.Tracks), Worm(sum.Tracks))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return nil
}

// Manhattan is a bar chart of runs per over, one series per innings.
func Manhattan(tracks []analytics.Track) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Manhattan", Subtitle: "Runs per over"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Over"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Runs"}),
	)

	overs := 0
	for _, t := range tracks {
		overs = max(overs, len(t.Manhattan))
	}
	labels := make([]string, overs)
	for i := range labels {
		labels[i] = fmt.Sprint(i + 1)
	}
	bar.SetXAxis(labels)

	for _, t := range tracks {
		data := make([]opts.BarData, 0, len(t.Manhattan))
		for _, o := range t.Manhattan {
			d := opts.BarData{Value: o.Runs}
			if o.Wickets > 0 {
				d.Name = fmt.Sprintf("%d wkt", o.Wickets)
			}
			data = append(data, d)
		}
		bar.AddSeries(t.TeamName, data)
	}
	return bar
}

// Worm is a line chart of the cumulative score at each over, one series per innings.
func Worm(tracks []analytics.Track) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Worm", Subtitle: "Cumulative score"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Overs"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score"}),
	)

	var longest []analytics.WormPoint
	for _, t := range tracks {
		if len(t.Worm) > len(longest) {
			longest = t.Worm
		}
	}
	labels := make([]string, 0, len(longest))
	for _, p := range longest {
		labels = append(labels, p.Overs)
	}
	line.SetXAxis(labels)

	for _, t := range tracks {
		data := make([]opts.LineData, 0, len(t.Worm))
		for _, p := range t.Worm {
			data = append(data, opts.LineData{Value: p.Score})
		}
		line.AddSeries(t.TeamName, data, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	}
	return line
}
