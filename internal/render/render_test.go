package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/mauv0809/crease/internal/analytics"
	"github.com/mauv0809/crease/internal/roster"
	"github.com/mauv0809/crease/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squad(id, name, prefix string) roster.Team {
	t := roster.Team{ID: id, Name: name}
	for i := 1; i <= 11; i++ {
		t.Players = append(t.Players, roster.Player{Name: fmt.Sprintf("%s%d", prefix, i)})
	}
	return t
}

func liveMatch(t *testing.T) *scoring.State {
	t.Helper()
	s, err := scoring.NewMatch(scoring.Setup{ID: "m1", TeamA: squad("a", "Ashfield", "A"), TeamB: squad("b", "Brookside", "B"), TotalOvers: 2})
	require.NoError(t, err)
	e := scoring.NewEngine()
	for _, cmd := range []scoring.Command{
		scoring.StartMatch{},
		scoring.StartInnings{Striker: "A1", NonStriker: "A2", Bowler: "B1"},
		scoring.RecordDelivery{Runs: 4, Kind: scoring.KindLegal},
		scoring.RecordDelivery{Runs: 1, Kind: scoring.KindLegal},
		scoring.RecordDelivery{Kind: scoring.KindLegal, IsWicket: true, Dismissal: &scoring.Dismissal{Type: scoring.Bowled}},
		scoring.SelectNewBatsman{Player: "A3"},
		scoring.RecordDelivery{Runs: 6, Kind: scoring.KindLegal},
		scoring.RecordDelivery{Kind: scoring.KindWide},
		scoring.RecordDelivery{Runs: 2, Kind: scoring.KindLegal},
		scoring.RecordDelivery{Runs: 0, Kind: scoring.KindLegal},
	} {
		s, _, err = e.Apply(s, cmd)
		require.NoError(t, err, cmd.Name())
	}
	return s
}

func TestScorecardText(t *testing.T) {
	out := ScorecardText(analytics.BuildScorecard(liveMatch(t)))

	assert.Contains(t, out, "Ashfield  14/1 (1.0)")
	assert.Contains(t, out, "b B1")
	assert.Contains(t, out, "A3")
	assert.Contains(t, out, "Extras")
	assert.Contains(t, out, "Fall of wickets: 1-5 (A2, 0.3)")
	assert.Contains(t, out, "Yet to Bat: A4")
	assert.Contains(t, out, "Bowler")
	assert.NotContains(t, out, "Player of the match")
}

func TestWriteScorecard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScorecard(&buf, analytics.BuildScorecard(liveMatch(t))))
	assert.True(t, strings.HasPrefix(buf.String(), "Ashfield"))
}

func TestWriteCharts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCharts(&buf, analytics.Summarize(liveMatch(t))))

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "Manhattan")
	assert.Contains(t, html, "Worm")
	assert.Contains(t, html, "Ashfield")
}

func TestManhattanSeries(t *testing.T) {
	sum := analytics.Summarize(liveMatch(t))
	bar := Manhattan(sum.Tracks)
	require.Len(t, bar.MultiSeries, 1)
	assert.Equal(t, "Ashfield", bar.MultiSeries[0].Name)
}
