package performance

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
)

func (s *Store) GetContract(ctx context.Context, id string) (Contract, error) {
	var raw []byte
	err := s.queryer(ctx).QueryRow(ctx, "SELECT record FROM contracts WHERE id = $1"+lockClause(ctx), id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return Contract{}, notFound(EntityContract, id)
	}
	if err != nil {
		return Contract{}, errors.Wrap(err, "get contract")
	}
	return decodeRecord[Contract](raw)
}

func (s *Store) ListContracts(ctx context.Context, filter ContractFilter) ([]Contract, error) {
	where := whereBuilder{}
	if filter.EmployeeID != "" {
		where.add("employee_id", filter.EmployeeID)
	}
	if filter.Status != "" {
		where.add("status", string(filter.Status))
	}
	if filter.ActiveOnly {
		where.add("is_active", true)
	}
	query := "SELECT record FROM contracts WHERE 1=1" + where.clauses + " ORDER BY created_at DESC, id" + lockClause(ctx)
	rows, err := s.queryer(ctx).Query(ctx, query, where.args...)
	if err != nil {
		return nil, errors.Wrap(err, "list contracts")
	}
	return scanRecords[Contract](rows)
}

// PutContracts upserts contracts in the order given, so activation changes
// must clear old flags before setting the new one.
func (s *Store) PutContracts(ctx context.Context, contracts ...Contract) error {
	for _, contract := range contracts {
		raw, err := json.Marshal(contract)
		if err != nil {
			return errors.Wrap(err, "encode contract")
		}
		_, err = s.queryer(ctx).Exec(ctx, `
    INSERT INTO contracts (id, employee_id, status, is_active, record, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    ON CONFLICT (id) DO UPDATE SET
      status = EXCLUDED.status,
      is_active = EXCLUDED.is_active,
      record = EXCLUDED.record,
      updated_at = EXCLUDED.updated_at
  `, contract.ID, contract.EmployeeID, string(contract.Status), contract.IsActive, raw, contract.CreatedAt, contract.UpdatedAt)
		if err != nil {
			return errors.Wrap(translatePgError(err), "put contract")
		}
	}
	return nil
}

func (s *Store) GetMonthlyReview(ctx context.Context, id string) (MonthlyReview, error) {
	var raw []byte
	err := s.queryer(ctx).QueryRow(ctx, "SELECT record FROM monthly_reviews WHERE id = $1"+lockClause(ctx), id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return MonthlyReview{}, notFound(EntityMonthlyReview, id)
	}
	if err != nil {
		return MonthlyReview{}, errors.Wrap(err, "get monthly review")
	}
	return decodeRecord[MonthlyReview](raw)
}

func (s *Store) ListMonthlyReviews(ctx context.Context, filter MonthlyReviewFilter) ([]MonthlyReview, error) {
	where := whereBuilder{}
	if filter.EmployeeID != "" {
		where.add("employee_id", filter.EmployeeID)
	}
	if filter.Status != "" {
		where.add("status", string(filter.Status))
	}
	query := "SELECT record FROM monthly_reviews WHERE 1=1" + where.clauses + " ORDER BY created_at DESC, id"
	rows, err := s.queryer(ctx).Query(ctx, query, where.args...)
	if err != nil {
		return nil, errors.Wrap(err, "list monthly reviews")
	}
	return scanRecords[MonthlyReview](rows)
}

func (s *Store) PutMonthlyReview(ctx context.Context, review MonthlyReview) error {
	raw, err := json.Marshal(review)
	if err != nil {
		return errors.Wrap(err, "encode monthly review")
	}
	_, err = s.queryer(ctx).Exec(ctx, `
    INSERT INTO monthly_reviews (id, employee_id, status, record, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (id) DO UPDATE SET
      status = EXCLUDED.status,
      record = EXCLUDED.record,
      updated_at = EXCLUDED.updated_at
  `, review.ID, review.EmployeeID, string(review.Status), raw, review.CreatedAt, review.UpdatedAt)
	if err != nil {
		return errors.Wrap(translatePgError(err), "put monthly review")
	}
	return nil
}

func (s *Store) DeleteMonthlyReview(ctx context.Context, id string) error {
	tag, err := s.queryer(ctx).Exec(ctx, "DELETE FROM monthly_reviews WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "delete monthly review")
	}
	if tag.RowsAffected() == 0 {
		return notFound(EntityMonthlyReview, id)
	}
	return nil
}

func (s *Store) GetAppraisal(ctx context.Context, id string) (Appraisal, error) {
	var raw []byte
	err := s.queryer(ctx).QueryRow(ctx, "SELECT record FROM appraisals WHERE id = $1"+lockClause(ctx), id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return Appraisal{}, notFound(EntityAppraisal, id)
	}
	if err != nil {
		return Appraisal{}, errors.Wrap(err, "get appraisal")
	}
	return decodeRecord[Appraisal](raw)
}

func (s *Store) ListAppraisals(ctx context.Context, filter AppraisalFilter) ([]Appraisal, error) {
	where := whereBuilder{}
	if filter.EmployeeID != "" {
		where.add("employee_id", filter.EmployeeID)
	}
	if filter.ContractID != "" {
		where.add("contract_id", filter.ContractID)
	}
	if filter.Status != "" {
		where.add("status", string(filter.Status))
	}
	query := "SELECT record FROM appraisals WHERE 1=1" + where.clauses + " ORDER BY created_at DESC, id"
	rows, err := s.queryer(ctx).Query(ctx, query, where.args...)
	if err != nil {
		return nil, errors.Wrap(err, "list appraisals")
	}
	return scanRecords[Appraisal](rows)
}

func (s *Store) PutAppraisal(ctx context.Context, appraisal Appraisal) error {
	raw, err := json.Marshal(appraisal)
	if err != nil {
		return errors.Wrap(err, "encode appraisal")
	}
	_, err = s.queryer(ctx).Exec(ctx, `
    INSERT INTO appraisals (id, employee_id, contract_id, status, total_score, final_rating, record, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    ON CONFLICT (id) DO UPDATE SET
      status = EXCLUDED.status,
      total_score = EXCLUDED.total_score,
      final_rating = EXCLUDED.final_rating,
      record = EXCLUDED.record,
      updated_at = EXCLUDED.updated_at
  `, appraisal.ID, appraisal.EmployeeID, appraisal.ContractID, string(appraisal.Status),
		appraisal.TotalScore, appraisal.FinalRating, raw, appraisal.CreatedAt, appraisal.UpdatedAt)
	if err != nil {
		return errors.Wrap(translatePgError(err), "put appraisal")
	}
	return nil
}

func (s *Store) DeleteAppraisal(ctx context.Context, id string) error {
	tag, err := s.queryer(ctx).Exec(ctx, "DELETE FROM appraisals WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "delete appraisal")
	}
	if tag.RowsAffected() == 0 {
		return notFound(EntityAppraisal, id)
	}
	return nil
}
