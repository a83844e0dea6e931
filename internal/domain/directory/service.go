package directory

import (
	"context"
	"strings"

	"pms/internal/domain/performance"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrUserNotFound
	}
	return s.store.GetUser(ctx, id)
}

func (s *Service) List(ctx context.Context, filter Filter) ([]User, error) {
	return s.store.ListUsers(ctx, filter)
}

// Reviewers returns the PMs and CTOs of a department, the people who act on
// submitted records of its employees.
func (s *Service) Reviewers(ctx context.Context, department string) ([]User, error) {
	var out []User
	for _, role := range []performance.Role{performance.RolePM, performance.RoleCTO} {
		users, err := s.store.ListUsers(ctx, Filter{Role: role, Department: department})
		if err != nil {
			return nil, err
		}
		out = append(out, users...)
	}
	return out, nil
}
