package audithandler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"pms/internal/domain/audit"
	"pms/internal/domain/auth"
	"pms/internal/transport/http/middleware"
)

const secret = "audit-test-secret"

func request(t *testing.T, role, path string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	token, err := auth.GenerateToken(secret, auth.Claims{UserID: "u-" + role, Role: role}, time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func router(svc *audit.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Auth(secret))
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func TestAuditRequiresReviewerRole(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rec := httptest.NewRecorder()
	router(audit.New(mock)).ServeHTTP(rec, request(t, "EMPLOYEE", "/audit"))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	router(audit.New(mock)).ServeHTTP(rec, request(t, "PM", "/audit"))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditListFiltersAndPages(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM audit_events WHERE 1=1 AND entity_type = $1")).
		WithArgs("appraisal").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM audit_events WHERE 1=1 AND entity_type = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3")).
		WithArgs("appraisal", 10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "actor_user_id", "action", "entity_type", "entity_id", "from_status", "to_status", "request_id", "created_at"}).
			AddRow("e1", "cto-1", "ctoReview", "appraisal", "a1", "APPROVED_BY_PM", "CERTIFIED", "req-1", at))

	rec := httptest.NewRecorder()
	router(audit.New(mock)).ServeHTTP(rec, request(t, "CTO", "/audit?entityType=appraisal&limit=10"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "1", rec.Header().Get("X-Total-Count"))
	require.Contains(t, rec.Body.String(), `"toStatus":"CERTIFIED"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditExportWritesCSV(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM audit_events WHERE 1=1 ORDER BY created_at DESC")).
		WithArgs(exportLimit, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "actor_user_id", "action", "entity_type", "entity_id", "from_status", "to_status", "request_id", "created_at"}).
			AddRow("e1", "emp-1", "submit", "contract", "c1", "DRAFT", "SUBMITTED", "req-9", at))

	rec := httptest.NewRecorder()
	router(audit.New(mock)).ServeHTTP(rec, request(t, "ADMIN", "/audit/export"))
	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "e1,emp-1,submit,contract,c1,DRAFT,SUBMITTED,req-9,2026-03-01T10:00:00Z", lines[1])
	require.NoError(t, mock.ExpectationsWereMet())
}
