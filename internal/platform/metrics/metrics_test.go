package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordTransitionCountsByOutcome(t *testing.T) {
	c := New()
	c.RecordTransition("contract", "submit", "ok")
	c.RecordTransition("contract", "submit", "ok")
	c.RecordTransition("contract", "submit", "validation_error")

	require.Equal(t, 2.0, testutil.ToFloat64(c.transitions.WithLabelValues("contract", "submit", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.transitions.WithLabelValues("contract", "submit", "validation_error")))
}

func TestRecordCountsRateLimited(t *testing.T) {
	c := New()
	c.Record(http.MethodGet, "/api/v1/contracts", http.StatusOK, 10*time.Millisecond)
	c.Record(http.MethodGet, "/api/v1/contracts", http.StatusTooManyRequests, time.Millisecond)
	c.Record(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	require.Equal(t, 1.0, testutil.ToFloat64(c.rateLimited))
	require.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues(http.MethodGet, "/api/v1/contracts", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := New()
	c.RecordTransition("appraisal", "ctoReview", "ok")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), `pms_transitions_total{action="ctoReview",entity="appraisal",outcome="ok"} 1`))
}
