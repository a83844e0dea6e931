package performance

import "context"

type ContractFilter struct {
	EmployeeID string
	Status     ContractStatus
	ActiveOnly bool
}

type MonthlyReviewFilter struct {
	EmployeeID string
	Status     MonthlyReviewStatus
}

type AppraisalFilter struct {
	EmployeeID string
	ContractID string
	Status     AppraisalStatus
}

// StoreAPI is the Record Store: one keyed collection per entity type. Reads
// made inside WithinTx hold their rows until the transaction ends, and
// writes inside it become visible together or not at all.
type StoreAPI interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error

	GetContract(ctx context.Context, id string) (Contract, error)
	ListContracts(ctx context.Context, filter ContractFilter) ([]Contract, error)
	PutContracts(ctx context.Context, contracts ...Contract) error

	GetMonthlyReview(ctx context.Context, id string) (MonthlyReview, error)
	ListMonthlyReviews(ctx context.Context, filter MonthlyReviewFilter) ([]MonthlyReview, error)
	PutMonthlyReview(ctx context.Context, review MonthlyReview) error
	DeleteMonthlyReview(ctx context.Context, id string) error

	GetAppraisal(ctx context.Context, id string) (Appraisal, error)
	ListAppraisals(ctx context.Context, filter AppraisalFilter) ([]Appraisal, error)
	PutAppraisal(ctx context.Context, appraisal Appraisal) error
	DeleteAppraisal(ctx context.Context, id string) error
}
