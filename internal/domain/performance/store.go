package performance

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"pms/internal/platform/db"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	constraintOneActiveContract = "contracts_one_active_per_employee"
	constraintOneAppraisal      = "appraisals_contract_id_key"
)

// Store keeps every record as a JSONB document next to the columns used for
// filtering.
type Store struct {
	DB db.Pool
	tx *db.TransactionManager
}

func NewStore(pool db.Pool) *Store {
	return &Store{DB: pool, tx: db.NewTransactionManager(pool)}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.tx.WithinReadWrite(ctx, fn)
}

func (s *Store) queryer(ctx context.Context) db.Queryer {
	return db.QueryerFromContext(ctx, s.DB)
}

func decodeRecord[T any](raw []byte) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, errors.Wrap(err, "decode record")
	}
	return out, nil
}

func scanRecords[T any](rows pgx.Rows) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.Wrap(err, "scan record")
		}
		record, err := decodeRecord[T](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate records")
	}
	return out, nil
}

type whereBuilder struct {
	clauses string
	args    []any
}

func (w *whereBuilder) add(column string, value any) {
	w.args = append(w.args, value)
	w.clauses += fmt.Sprintf(" AND %s = $%d", column, len(w.args))
}

func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case constraintOneActiveContract:
			return &Error{Kind: ErrInvalidTransition, Message: "employee already has an active contract"}
		case constraintOneAppraisal:
			return validationError("an appraisal already exists for this contract")
		}
	case pgForeignKeyViolation:
		return validationError("referenced employee or contract does not exist")
	}
	return err
}

func lockClause(ctx context.Context) string {
	return db.LockClause(ctx)
}
