// Package render turns scorecards and chart tracks into text tables and HTML charts.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mauv0809/crease/internal/analytics"
)

// ScorecardText renders every innings of sc as plain text tables.
func ScorecardText(sc analytics.Scorecard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", sc.Title)
	for _, in := range sc.Innings {
		b.WriteString("\n")
		writeInnings(&b, in)
	}
	if sc.Result != "" {
		fmt.Fprintf(&b, "\n%s\n", sc.Result)
	}
	if sc.MOM != "" {
		fmt.Fprintf(&b, "Player of the match: %s\n", sc.MOM)
	}
	return b.String()
}

// WriteScorecard writes ScorecardText to w.
func WriteScorecard(w io.Writer, sc analytics.Scorecard) error {
	_, err := io.WriteString(w, ScorecardText(sc))
	return err
}

func writeInnings(w io.Writer, in analytics.InningsCard) {
	fmt.Fprintf(w, "%s  %s\n", in.TeamName, in.Total())

	bat := newTable()
	bat.AppendHeader(table.Row{"Batter", "", "R", "B", "4s", "6s", "SR"})
	for _, l := range in.Batters {
		name := l.Name
		if l.OnStrike {
			name += "*"
		}
		bat.AppendRow(table.Row{name, l.Dismissal, l.Runs, l.Balls, l.Fours, l.Sixes, fmt.Sprintf("%.2f", l.StrikeRate)})
	}
	bat.AppendFooter(table.Row{"Extras", "", in.Extras})
	bat.AppendFooter(table.Row{"Total", fmt.Sprintf("RR %.2f", in.RunRate), in.Total()})
	fmt.Fprintln(w, bat.Render())

	if len(in.Remaining) > 0 {
		fmt.Fprintf(w, "%s: %s\n", in.RemainingLabel, strings.Join(in.Remaining, ", "))
	}
	if len(in.FallOfWickets) > 0 {
		fow := make([]string, 0, len(in.FallOfWickets))
		for _, f := range in.FallOfWickets {
			fow = append(fow, fmt.Sprintf("%d-%d (%s, %s)", f.Wicket, f.Score, f.Batter, f.Over))
		}
		fmt.Fprintf(w, "Fall of wickets: %s\n", strings.Join(fow, ", "))
	}

	bowl := newTable()
	bowl.AppendHeader(table.Row{"Bowler", "O", "R", "W", "Econ"})
	for _, l := range in.Bowlers {
		name := l.Name
		if l.Current {
			name += "*"
		}
		bowl.AppendRow(table.Row{name, l.Overs, l.Runs, l.Wickets, fmt.Sprintf("%.2f", l.Economy)})
	}
	fmt.Fprintln(w, bowl.Render())
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Format.Header = text.FormatDefault
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	return tbl
}
