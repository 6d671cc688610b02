package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncCommands("record_delivery")
	s.IncCommands("record_delivery")
	s.IncCommandsRejected("undo_last", "illegal_operation")
	s.IncDeliveries("wide")
	s.IncWickets()
	s.IncUndos()
	s.IncMatchesCompleted()
	s.IncNotifSent()
	s.IncNotifFailed()
	s.ObserveCommandDuration(0.002)
	s.SetStartupTime(1.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.Commands.WithLabelValues("record_delivery")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.CommandsRejected.WithLabelValues("undo_last", "illegal_operation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Deliveries.WithLabelValues("wide")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Wickets))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Undos))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.MatchesCompleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.NotifSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.NotifFailed))
	assert.Equal(t, 1.5, testutil.ToFloat64(s.StartupTimeSeconds))
	assert.Equal(t, 1, testutil.CollectAndCount(s.CommandDuration))
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)
	s.IncWickets()

	rr := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "crease_wickets_total 1")
}
