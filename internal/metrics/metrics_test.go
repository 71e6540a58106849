package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDomainCounters(t *testing.T) {
	m := New()
	m.Follow("follow")
	m.Follow("follow")
	m.Join("join")
	m.NotificationsSent("event", 3)
	m.NotificationsSent("event", 0)
	m.CacheLookup("clubs", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ClubFollows.WithLabelValues("follow")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventJoins.WithLabelValues("join")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.NotificationsOut.WithLabelValues("event")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("clubs", "hit")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Follow("follow")
		m.Join("join")
		m.NotificationsSent("event", 1)
		m.CacheLookup("clubs", false)
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.HTTPRequests.WithLabelValues("GET", "/clubs", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/clubs",status="200"} 1`)
}

func TestTrackConnections(t *testing.T) {
	m := New()
	open := 3
	m.TrackConnections(func() int { return open })

	n, err := testutil.GatherAndCount(m.Registry(), "websocket_connections")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "websocket_connections 3")
}
