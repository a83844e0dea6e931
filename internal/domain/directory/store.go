package directory

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"pms/internal/domain/performance"
	"pms/internal/platform/db"
)

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

const userColumns = "id, name, email, role, department, designation, created_at"

func scanUser(row pgx.Row) (User, error) {
	var user User
	var role string
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &role, &user.Department, &user.Designation, &user.CreatedAt); err != nil {
		return User{}, err
	}
	user.Role = performance.Role(role)
	return user, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (User, error) {
	user, err := scanUser(s.DB.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, errors.Wrap(err, "get user")
	}
	return user, nil
}

func (s *Store) ListUsers(ctx context.Context, filter Filter) ([]User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE 1=1"
	args := []any{}
	if filter.Role != "" {
		args = append(args, string(filter.Role))
		query += fmt.Sprintf(" AND role = $%d", len(args))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		query += fmt.Sprintf(" AND department = $%d", len(args))
	}
	query += " ORDER BY name, id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan user")
		}
		out = append(out, user)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate users")
	}
	return out, nil
}
