package reports

import (
	"context"

	"pms/internal/domain/performance"
)

type StoreAPI interface {
	StatusCounts(ctx context.Context, table string, scope Scope) ([]statusCount, error)
	ActiveContracts(ctx context.Context, scope Scope) (int, error)
	CertifiedAppraisals(ctx context.Context, scope Scope) ([]ratedAppraisal, error)
}

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// Summary builds the overview for actor. Employees only ever see their own
// records; reviewers may narrow by department.
func (s *Service) Summary(ctx context.Context, actor performance.Actor, department string) (Summary, error) {
	scope := Scope{Department: department}
	if actor.Role == performance.RoleEmployee {
		scope = Scope{EmployeeID: actor.ID}
	}

	contracts, err := s.store.StatusCounts(ctx, "contracts", scope)
	if err != nil {
		return Summary{}, err
	}
	monthly, err := s.store.StatusCounts(ctx, "monthly_reviews", scope)
	if err != nil {
		return Summary{}, err
	}
	appraisals, err := s.store.StatusCounts(ctx, "appraisals", scope)
	if err != nil {
		return Summary{}, err
	}
	active, err := s.store.ActiveContracts(ctx, scope)
	if err != nil {
		return Summary{}, err
	}
	certified, err := s.store.CertifiedAppraisals(ctx, scope)
	if err != nil {
		return Summary{}, err
	}

	summary := buildSummary(contracts, monthly, appraisals, certified)
	summary.ActiveContracts = active
	summary.Department = scope.Department
	return summary, nil
}

func buildSummary(contracts, monthly, appraisals []statusCount, certified []ratedAppraisal) Summary {
	summary := Summary{
		Contracts:          countMap(contracts),
		MonthlyReviews:     countMap(monthly),
		Appraisals:         countMap(appraisals),
		RatingDistribution: map[string]int{},
		CertifiedCount:     len(certified),
	}
	total := 0.0
	for _, appraisal := range certified {
		summary.RatingDistribution[appraisal.Rating]++
		total += appraisal.Score
	}
	if len(certified) > 0 {
		summary.AverageTotalScore = total / float64(len(certified))
	}
	all := 0
	for _, count := range summary.Appraisals {
		all += count
	}
	if all > 0 {
		summary.CompletionRate = float64(len(certified)) / float64(all)
	}
	return summary
}

func countMap(rows []statusCount) map[string]int {
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Status] += row.Count
	}
	return out
}
