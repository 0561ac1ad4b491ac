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

func TestService(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncMatchesSettled()
	s.IncMatchesSettled()
	s.IncSettlementFailures("duplicate")
	s.IncRatingsSubmitted()
	s.IncEventsPublished("match-settled")
	s.ObserveSettlementDuration(0.02)
	s.SetStartupTime(1.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.MatchesSettled))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.SettlementFailures.WithLabelValues("duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.RatingsSubmitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.EventsPublished.WithLabelValues("match-settled")))
	assert.Equal(t, 1.5, testutil.ToFloat64(s.StartupTimeSeconds))

	t.Run("handler exposes registered metrics", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewMetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		body, err := io.ReadAll(rr.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "gleague_matches_settled_total 2")
		assert.Contains(t, string(body), `gleague_settlement_failures_total{reason="duplicate"} 1`)
	})
}

func TestMock(t *testing.T) {
	m := NewMock()
	m.IncMatchesSettled()
	m.IncSettlementFailures("invalid")
	m.IncSettlementFailures("invalid")
	m.IncSlackNotifFailed()

	assert.Equal(t, 1, m.MatchesSettled())
	assert.Equal(t, 2, m.SettlementFailures("invalid"))
	assert.Zero(t, m.SettlementFailures("duplicate"))
	assert.Equal(t, 1, m.SlackNotifFailed())
}
