package performance

import "time"

// Actor is the resolved identity of whoever invokes a core operation.
type Actor struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
}

type CriteriaBands struct {
	Outstanding string `json:"O"`
	Excellent   string `json:"E"`
	VeryGood    string `json:"VG"`
	Good        string `json:"G"`
	Fair        string `json:"F"`
	Poor        string `json:"P"`
}

type KRAEntry struct {
	ID       string        `json:"id"`
	Area     string        `json:"area"`
	Weight   float64       `json:"weight"`
	Target   float64       `json:"target"`
	Criteria CriteriaBands `json:"criteria"`
}

type CompetencyEntry struct {
	ID          string  `json:"id"`
	Competency  string  `json:"competency"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}

type ReviewComment struct {
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	AuthorRole Role      `json:"authorRole"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
}

type Contract struct {
	ID                 string            `json:"id"`
	EmployeeID         string            `json:"employeeId"`
	PeriodFrom         time.Time         `json:"periodFrom"`
	PeriodTo           time.Time         `json:"periodTo"`
	KRAEntries         []KRAEntry        `json:"kraEntries"`
	CompetencyEntries  []CompetencyEntry `json:"competencyEntries"`
	Status             ContractStatus    `json:"status"`
	IsActive           bool              `json:"isActive"`
	EmployeeSigned     bool              `json:"employeeSigned"`
	EmployeeSignedDate *time.Time        `json:"employeeSignedDate,omitempty"`
	Comments           []ReviewComment   `json:"comments"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

type MonthlyTask struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Expectation string     `json:"expectation"`
	Weight      float64    `json:"weight"`
	Status      TaskStatus `json:"status"`
}

type MonthlyReview struct {
	ID             string              `json:"id"`
	EmployeeID     string              `json:"employeeId"`
	LastReviewDate time.Time           `json:"lastReviewDate"`
	TodayDate      time.Time           `json:"todayDate"`
	Tasks          []MonthlyTask       `json:"tasks"`
	Status         MonthlyReviewStatus `json:"status"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

type AppraisalKRAScore struct {
	ID               string  `json:"id"`
	Area             string  `json:"area"`
	Weight           float64 `json:"weight"`
	Target           float64 `json:"target"`
	Achievement      float64 `json:"achievement"`
	RawScore         float64 `json:"rawScore"`
	WeightedRawScore float64 `json:"weightedRawScore"`
}

type Appraisal struct {
	ID               string              `json:"id"`
	EmployeeID       string              `json:"employeeId"`
	ContractID       string              `json:"contractId"`
	KRAScoring       []AppraisalKRAScore `json:"kraScoring"`
	TotalScore       float64             `json:"totalScore"`
	FinalRating      string              `json:"finalRating"`
	EmployeeComments string              `json:"employeeComments"`
	PMComments       []ReviewComment     `json:"pmComments"`
	CTOComments      []ReviewComment     `json:"ctoComments"`
	Status           AppraisalStatus     `json:"status"`
	CertifiedAt      *time.Time          `json:"certifiedAt,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

type ScoreResult struct {
	Rows        []AppraisalKRAScore `json:"rows"`
	TotalScore  float64             `json:"totalScore"`
	FinalRating string              `json:"finalRating"`
}

type ValidationResult struct {
	TotalWeight float64  `json:"totalWeight"`
	Valid       bool     `json:"valid"`
	Issues      []string `json:"issues,omitempty"`
}

// The clone helpers keep transitions from aliasing slices of their input.

func (c Contract) clone() Contract {
	out := c
	out.KRAEntries = append([]KRAEntry(nil), c.KRAEntries...)
	out.CompetencyEntries = append([]CompetencyEntry(nil), c.CompetencyEntries...)
	out.Comments = append([]ReviewComment(nil), c.Comments...)
	if c.EmployeeSignedDate != nil {
		signed := *c.EmployeeSignedDate
		out.EmployeeSignedDate = &signed
	}
	return out
}

func (m MonthlyReview) clone() MonthlyReview {
	out := m
	out.Tasks = append([]MonthlyTask(nil), m.Tasks...)
	return out
}

func (a Appraisal) clone() Appraisal {
	out := a
	out.KRAScoring = append([]AppraisalKRAScore(nil), a.KRAScoring...)
	out.PMComments = append([]ReviewComment(nil), a.PMComments...)
	out.CTOComments = append([]ReviewComment(nil), a.CTOComments...)
	if a.CertifiedAt != nil {
		certified := *a.CertifiedAt
		out.CertifiedAt = &certified
	}
	return out
}
