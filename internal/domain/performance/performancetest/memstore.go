// Package performancetest provides an in-memory Record Store for tests of
// code built on performance.Service.
package performancetest

import (
	"context"
	"sort"
	"sync"

	"pms/internal/domain/performance"
)

type txKey struct{}

// MemoryStore implements performance.StoreAPI over maps. WithinTx serialises
// transactions and restores the previous state when fn fails, which is enough
// to observe the all-or-nothing behaviour of the Postgres store.
type MemoryStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	contracts  map[string]performance.Contract
	reviews    map[string]performance.MonthlyReview
	appraisals map[string]performance.Appraisal

	// FailPut makes every Put* call return this error when set.
	FailPut error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		contracts:  map[string]performance.Contract{},
		reviews:    map[string]performance.MonthlyReview{},
		appraisals: map[string]performance.Appraisal{},
	}
}

func (s *MemoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	contracts := copyMap(s.contracts)
	reviews := copyMap(s.reviews)
	appraisals := copyMap(s.appraisals)
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.contracts, s.reviews, s.appraisals = contracts, reviews, appraisals
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *MemoryStore) GetContract(_ context.Context, id string) (performance.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contract, ok := s.contracts[id]
	if !ok {
		return performance.Contract{}, notFound(performance.EntityContract, id)
	}
	return contract, nil
}

func (s *MemoryStore) ListContracts(_ context.Context, filter performance.ContractFilter) ([]performance.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []performance.Contract{}
	for _, contract := range s.contracts {
		if filter.EmployeeID != "" && contract.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && contract.Status != filter.Status {
			continue
		}
		if filter.ActiveOnly && !contract.IsActive {
			continue
		}
		out = append(out, contract)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// PutContracts rejects a write that would leave an employee with two active
// contracts, like the partial unique index does.
func (s *MemoryStore) PutContracts(_ context.Context, contracts ...performance.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPut != nil {
		return s.FailPut
	}
	for _, contract := range contracts {
		if contract.IsActive {
			for id, other := range s.contracts {
				if id != contract.ID && other.EmployeeID == contract.EmployeeID && other.IsActive {
					return &performance.Error{Kind: performance.ErrInvalidTransition, Message: "employee already has an active contract"}
				}
			}
		}
		s.contracts[contract.ID] = contract
	}
	return nil
}

func (s *MemoryStore) GetMonthlyReview(_ context.Context, id string) (performance.MonthlyReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	review, ok := s.reviews[id]
	if !ok {
		return performance.MonthlyReview{}, notFound(performance.EntityMonthlyReview, id)
	}
	return review, nil
}

func (s *MemoryStore) ListMonthlyReviews(_ context.Context, filter performance.MonthlyReviewFilter) ([]performance.MonthlyReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []performance.MonthlyReview{}
	for _, review := range s.reviews {
		if filter.EmployeeID != "" && review.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && review.Status != filter.Status {
			continue
		}
		out = append(out, review)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) PutMonthlyReview(_ context.Context, review performance.MonthlyReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPut != nil {
		return s.FailPut
	}
	s.reviews[review.ID] = review
	return nil
}

func (s *MemoryStore) DeleteMonthlyReview(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[id]; !ok {
		return notFound(performance.EntityMonthlyReview, id)
	}
	delete(s.reviews, id)
	return nil
}

func (s *MemoryStore) GetAppraisal(_ context.Context, id string) (performance.Appraisal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	appraisal, ok := s.appraisals[id]
	if !ok {
		return performance.Appraisal{}, notFound(performance.EntityAppraisal, id)
	}
	return appraisal, nil
}

func (s *MemoryStore) ListAppraisals(_ context.Context, filter performance.AppraisalFilter) ([]performance.Appraisal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []performance.Appraisal{}
	for _, appraisal := range s.appraisals {
		if filter.EmployeeID != "" && appraisal.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.ContractID != "" && appraisal.ContractID != filter.ContractID {
			continue
		}
		if filter.Status != "" && appraisal.Status != filter.Status {
			continue
		}
		out = append(out, appraisal)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) PutAppraisal(_ context.Context, appraisal performance.Appraisal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPut != nil {
		return s.FailPut
	}
	s.appraisals[appraisal.ID] = appraisal
	return nil
}

func (s *MemoryStore) DeleteAppraisal(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appraisals[id]; !ok {
		return notFound(performance.EntityAppraisal, id)
	}
	delete(s.appraisals, id)
	return nil
}

func notFound(entity performance.Entity, id string) error {
	return &performance.Error{Kind: performance.ErrNotFound, Message: string(entity) + " " + id + " not found"}
}

func copyMap[T any](in map[string]T) map[string]T {
	out := make(map[string]T, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
