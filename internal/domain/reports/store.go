package reports

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"pms/internal/platform/db"
)

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

var summaryTables = map[string]struct{}{"contracts": {}, "monthly_reviews": {}, "appraisals": {}}

func scopeClause(scope Scope, alias string, args []any) (string, []any) {
	clause := ""
	if scope.EmployeeID != "" {
		args = append(args, scope.EmployeeID)
		clause += fmt.Sprintf(" AND %s.employee_id = $%d", alias, len(args))
	}
	if scope.Department != "" {
		args = append(args, scope.Department)
		clause += fmt.Sprintf(" AND u.department = $%d", len(args))
	}
	return clause, args
}

func (s *Store) StatusCounts(ctx context.Context, table string, scope Scope) ([]statusCount, error) {
	if _, ok := summaryTables[table]; !ok {
		return nil, fmt.Errorf("reports: unknown table %q", table)
	}
	clause, args := scopeClause(scope, "r", nil)
	rows, err := s.DB.Query(ctx, `
    SELECT r.status, COUNT(1)
    FROM `+table+` r
    JOIN users u ON u.id = r.employee_id
    WHERE 1=1`+clause+`
    GROUP BY r.status
    ORDER BY r.status
  `, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "count %s by status", table)
	}
	defer rows.Close()

	var out []statusCount
	for rows.Next() {
		var row statusCount
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, errors.Wrap(err, "scan status count")
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) ActiveContracts(ctx context.Context, scope Scope) (int, error) {
	clause, args := scopeClause(scope, "c", nil)
	var total int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM contracts c
    JOIN users u ON u.id = c.employee_id
    WHERE c.is_active`+clause, args...).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "count active contracts")
	}
	return total, nil
}

func (s *Store) CertifiedAppraisals(ctx context.Context, scope Scope) ([]ratedAppraisal, error) {
	clause, args := scopeClause(scope, "a", []any{"CERTIFIED"})
	rows, err := s.DB.Query(ctx, `
    SELECT a.final_rating, a.total_score
    FROM appraisals a
    JOIN users u ON u.id = a.employee_id
    WHERE a.status = $1`+clause, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list certified appraisals")
	}
	defer rows.Close()

	var out []ratedAppraisal
	for rows.Next() {
		var row ratedAppraisal
		if err := rows.Scan(&row.Rating, &row.Score); err != nil {
			return nil, errors.Wrap(err, "scan certified appraisal")
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
