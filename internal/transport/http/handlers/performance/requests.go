package performancehandler

import (
	"strings"
	"time"

	"pms/internal/domain/performance"
	"pms/internal/transport/http/shared"
)

type kraRequest struct {
	ID       string                    `json:"id"`
	Area     string                    `json:"area" validate:"required,max=200"`
	Weight   float64                   `json:"weight"`
	Target   float64                   `json:"target"`
	Criteria performance.CriteriaBands `json:"criteria"`
}

type competencyRequest struct {
	ID          string  `json:"id"`
	Competency  string  `json:"competency" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Weight      float64 `json:"weight"`
}

type contractRequest struct {
	EmployeeID        string              `json:"employeeId"`
	PeriodFrom        string              `json:"periodFrom" validate:"omitempty,date"`
	PeriodTo          string              `json:"periodTo" validate:"omitempty,date"`
	KRAEntries        []kraRequest        `json:"kraEntries" validate:"max=50,dive"`
	CompetencyEntries []competencyRequest `json:"competencyEntries" validate:"max=50,dive"`
}

func (req contractRequest) fields() (from, to time.Time, kras []performance.KRAEntry, competencies []performance.CompetencyEntry) {
	from, _ = shared.ParseDate(strings.TrimSpace(req.PeriodFrom))
	to, _ = shared.ParseDate(strings.TrimSpace(req.PeriodTo))
	kras = make([]performance.KRAEntry, 0, len(req.KRAEntries))
	for _, entry := range req.KRAEntries {
		kras = append(kras, performance.KRAEntry{
			ID:       entry.ID,
			Area:     entry.Area,
			Weight:   entry.Weight,
			Target:   entry.Target,
			Criteria: entry.Criteria,
		})
	}
	competencies = make([]performance.CompetencyEntry, 0, len(req.CompetencyEntries))
	for _, entry := range req.CompetencyEntries {
		competencies = append(competencies, performance.CompetencyEntry{
			ID:          entry.ID,
			Competency:  entry.Competency,
			Description: entry.Description,
			Weight:      entry.Weight,
		})
	}
	return from, to, kras, competencies
}

func (req contractRequest) seed() performance.ContractSeed {
	from, to, kras, competencies := req.fields()
	return performance.ContractSeed{PeriodFrom: from, PeriodTo: to, KRAEntries: kras, CompetencyEntries: competencies}
}

func (req contractRequest) edit() performance.EditContract {
	from, to, kras, competencies := req.fields()
	return performance.EditContract{PeriodFrom: from, PeriodTo: to, KRAEntries: kras, CompetencyEntries: competencies}
}

type approveRequest struct {
	Comment string `json:"comment" validate:"max=2000"`
}

type returnRequest struct {
	Reason string `json:"reason" validate:"max=2000"`
}

type activateRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type taskRequest struct {
	ID          string  `json:"id"`
	Description string  `json:"description" validate:"required,max=500"`
	Expectation string  `json:"expectation" validate:"max=2000"`
	Weight      float64 `json:"weight"`
	Status      string  `json:"status" validate:"required,oneof=Completed 'In Progress' Delayed"`
}

type monthlyReviewRequest struct {
	EmployeeID     string        `json:"employeeId"`
	LastReviewDate string        `json:"lastReviewDate" validate:"omitempty,date"`
	TodayDate      string        `json:"todayDate" validate:"omitempty,date"`
	Tasks          []taskRequest `json:"tasks" validate:"max=100,dive"`
}

func (req monthlyReviewRequest) fields() (last, today time.Time, tasks []performance.MonthlyTask) {
	last, _ = shared.ParseDate(strings.TrimSpace(req.LastReviewDate))
	today, _ = shared.ParseDate(strings.TrimSpace(req.TodayDate))
	tasks = make([]performance.MonthlyTask, 0, len(req.Tasks))
	for _, task := range req.Tasks {
		tasks = append(tasks, performance.MonthlyTask{
			ID:          task.ID,
			Description: task.Description,
			Expectation: task.Expectation,
			Weight:      task.Weight,
			Status:      performance.TaskStatus(task.Status),
		})
	}
	return last, today, tasks
}

type createAppraisalRequest struct {
	ContractID string `json:"contractId" validate:"required"`
}

type editAppraisalRequest struct {
	Achievements     map[string]float64 `json:"achievements"`
	EmployeeComments *string            `json:"employeeComments" validate:"omitempty,max=5000"`
}

type reviewRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve return"`
	Comment  string `json:"comment" validate:"max=2000"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type scorePreviewRequest struct {
	Rows []performance.AppraisalKRAScore `json:"rows" validate:"required,max=50"`
}
