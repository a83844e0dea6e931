package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"pms/internal/domain/performance"
	"pms/internal/platform/config"
	"pms/internal/platform/metrics"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:          "server-test-secret",
		Environment:        "test",
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 100,
		TokenTTL:           time.Hour,
		MetricsEnabled:     true,
	}
}

func newTestRouter(t *testing.T) (http.Handler, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	bands, err := performance.NewRatingBands(performance.DefaultRatingBands)
	require.NoError(t, err)
	return NewRouter(testConfig(), mock, bands, metrics.New(), nil, nil), mock
}

func TestHealthAndReadiness(t *testing.T) {
	router, mock := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	mock.ExpectPing()
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionThenAuthenticatedRequest(t *testing.T) {
	router, mock := newTestRouter(t)

	created := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("emp-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "role", "department", "designation", "created_at"}).
			AddRow("emp-1", "Lena Ortiz", "lena@example.com", "EMPLOYEE", "Engineering", "Software Engineer", created))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", bytes.NewBufferString(`{"userId":"emp-1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.Token)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/rating-bands", nil)
	req.Header.Set("Authorization", "Bearer "+body.Data.Token)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Outstanding")
	require.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAPIRejectsAnonymousAndExposesMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/api/v1/contracts", "/api/v1/appraisals", "/api/v1/notifications", "/api/v1/audit"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "pms_http_requests_total")
}

func TestMetricsEndpointDisabled(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cfg := testConfig()
	cfg.MetricsEnabled = false
	bands, err := performance.NewRatingBands(performance.DefaultRatingBands)
	require.NoError(t, err)
	router := NewRouter(cfg, mock, bands, metrics.New(), nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(t.Context(), config.Config{}, nil)
	require.Error(t, err)
}
