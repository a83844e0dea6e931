package performance

type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RolePM       Role = "PM"
	RoleCTO      Role = "CTO"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RolePM, RoleCTO, RoleAdmin:
		return true
	}
	return false
}

type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "DRAFT"
	ContractStatusSubmitted ContractStatus = "SUBMITTED"
	ContractStatusApproved  ContractStatus = "APPROVED"
	ContractStatusReturned  ContractStatus = "RETURNED"
)

type MonthlyReviewStatus string

const (
	MonthlyReviewStatusDraft     MonthlyReviewStatus = "DRAFT"
	MonthlyReviewStatusSubmitted MonthlyReviewStatus = "SUBMITTED"
)

// AppraisalStatus covers the whole appraisal lifecycle. SUBMITTED is the
// PM review stage and APPROVED_BY_PM is the CTO review stage.
type AppraisalStatus string

const (
	AppraisalStatusDraft         AppraisalStatus = "DRAFT"
	AppraisalStatusSubmitted     AppraisalStatus = "SUBMITTED"
	AppraisalStatusApprovedByPM  AppraisalStatus = "APPROVED_BY_PM"
	AppraisalStatusApprovedByCTO AppraisalStatus = "APPROVED_BY_CTO"
	AppraisalStatusReturned      AppraisalStatus = "RETURNED"
	AppraisalStatusCertified     AppraisalStatus = "CERTIFIED"
)

type TaskStatus string

const (
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDelayed    TaskStatus = "Delayed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusCompleted, TaskStatusInProgress, TaskStatusDelayed:
		return true
	}
	return false
}

type Entity string

const (
	EntityContract      Entity = "contract"
	EntityMonthlyReview Entity = "monthly_review"
	EntityAppraisal     Entity = "appraisal"
)

type Action string

const (
	ActionCreate     Action = "create"
	ActionEditFields Action = "editFields"
	ActionSign       Action = "signAsEmployee"
	ActionSubmit     Action = "submit"
	ActionApprove    Action = "approve"
	ActionReturn     Action = "return"
	ActionReopen     Action = "reopen"
	ActionActivate   Action = "activate"
	ActionPMReview   Action = "pmReview"
	ActionCTOReview  Action = "ctoReview"
	ActionComment    Action = "comment"
	ActionDelete     Action = "delete"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReturn  Decision = "return"
)

func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReturn
}

// weightEpsilon absorbs float rounding when comparing KRA weight sums.
const weightEpsilon = 1e-6

const requiredWeightTotal = 100.0
