package reportshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"pms/internal/domain/auth"
	"pms/internal/domain/reports"
	"pms/internal/transport/http/middleware"
)

const secret = "reports-test-secret"

func summaryRequest(t *testing.T, userID, role, path string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	token, err := auth.GenerateToken(secret, auth.Claims{UserID: userID, Role: role}, time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func newRouter(mock pgxmock.PgxPoolIface) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Auth(secret))
	NewHandler(reports.NewService(reports.NewStore(mock))).RegisterRoutes(r)
	return r
}

func TestSummaryScopesEmployeeToThemselves(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	for _, table := range []string{"contracts", "monthly_reviews", "appraisals"} {
		rows := pgxmock.NewRows([]string{"status", "count"})
		if table == "appraisals" {
			rows.AddRow("CERTIFIED", 1).AddRow("DRAFT", 1)
		}
		mock.ExpectQuery(regexp.QuoteMeta("FROM " + table + " r")).
			WithArgs("emp-1").
			WillReturnRows(rows)
	}
	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.is_active AND c.employee_id = $1")).
		WithArgs("emp-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.status = $1 AND a.employee_id = $2")).
		WithArgs("CERTIFIED", "emp-1").
		WillReturnRows(pgxmock.NewRows([]string{"final_rating", "total_score"}).AddRow("Very Good", 80.0))

	rec := httptest.NewRecorder()
	newRouter(mock).ServeHTTP(rec, summaryRequest(t, "emp-1", "EMPLOYEE", "/reports/summary?department=Sales"))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data reports.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Data.ActiveContracts)
	require.Equal(t, 1, body.Data.CertifiedCount)
	require.Equal(t, 0.5, body.Data.CompletionRate)
	require.Equal(t, map[string]int{"Very Good": 1}, body.Data.RatingDistribution)
	require.Empty(t, body.Data.Department)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryFailureIsInternalError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM contracts r")).
		WithArgs("Engineering").
		WillReturnError(errConnection)

	rec := httptest.NewRecorder()
	newRouter(mock).ServeHTTP(rec, summaryRequest(t, "cto-1", "CTO", "/reports/summary?department=Engineering"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "report_failed")
	require.NoError(t, mock.ExpectationsWereMet())
}

var errConnection = errors.New("connection refused")
