package performance

import "time"

// ContractPayload is the closed set of requests ApplyContract accepts.
type ContractPayload interface {
	contractAction() Action
}

type EditContract struct {
	PeriodFrom        time.Time
	PeriodTo          time.Time
	KRAEntries        []KRAEntry
	CompetencyEntries []CompetencyEntry
}

type SignContract struct{}

type SubmitContract struct{}

type ApproveContract struct {
	Comment string
}

type ReturnContract struct {
	Reason string
}

type ReopenContract struct{}

func (EditContract) contractAction() Action    { return ActionEditFields }
func (SignContract) contractAction() Action    { return ActionSign }
func (SubmitContract) contractAction() Action  { return ActionSubmit }
func (ApproveContract) contractAction() Action { return ActionApprove }
func (ReturnContract) contractAction() Action  { return ActionReturn }
func (ReopenContract) contractAction() Action  { return ActionReopen }

// MonthlyReviewPayload is the closed set of requests ApplyMonthlyReview accepts.
type MonthlyReviewPayload interface {
	monthlyReviewAction() Action
}

type EditMonthlyReview struct {
	LastReviewDate time.Time
	TodayDate      time.Time
	Tasks          []MonthlyTask
}

type SubmitMonthlyReview struct{}

type DeleteMonthlyReview struct{}

func (EditMonthlyReview) monthlyReviewAction() Action   { return ActionEditFields }
func (SubmitMonthlyReview) monthlyReviewAction() Action { return ActionSubmit }
func (DeleteMonthlyReview) monthlyReviewAction() Action { return ActionDelete }

// AppraisalPayload is the closed set of requests ApplyAppraisal accepts.
type AppraisalPayload interface {
	appraisalAction() Action
}

// EditAppraisal sets achievements keyed by KRA row id. A nil
// EmployeeComments leaves the comments untouched.
type EditAppraisal struct {
	Achievements     map[string]float64
	EmployeeComments *string
}

// SubmitAppraisal carries the contract the appraisal was created from, as
// currently stored.
type SubmitAppraisal struct {
	Contract Contract
}

type PMReview struct {
	Decision Decision
	Comment  string
}

type CTOReview struct {
	Decision Decision
	Comment  string
}

type CommentAppraisal struct {
	Text string
}

type ReopenAppraisal struct{}

type DeleteAppraisal struct{}

func (EditAppraisal) appraisalAction() Action    { return ActionEditFields }
func (SubmitAppraisal) appraisalAction() Action  { return ActionSubmit }
func (PMReview) appraisalAction() Action         { return ActionPMReview }
func (CTOReview) appraisalAction() Action        { return ActionCTOReview }
func (CommentAppraisal) appraisalAction() Action { return ActionComment }
func (ReopenAppraisal) appraisalAction() Action  { return ActionReopen }
func (DeleteAppraisal) appraisalAction() Action  { return ActionDelete }

// Seeds for the create operations.

type ContractSeed struct {
	PeriodFrom        time.Time
	PeriodTo          time.Time
	KRAEntries        []KRAEntry
	CompetencyEntries []CompetencyEntry
}

type MonthlyReviewSeed struct {
	LastReviewDate time.Time
	TodayDate      time.Time
	Tasks          []MonthlyTask
}
