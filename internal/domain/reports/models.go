package reports

// Summary is the cycle overview shown to reviewers: record counts per status
// and how certified appraisals are rated.
type Summary struct {
	Department         string         `json:"department,omitempty"`
	Contracts          map[string]int `json:"contracts"`
	ActiveContracts    int            `json:"activeContracts"`
	MonthlyReviews     map[string]int `json:"monthlyReviews"`
	Appraisals         map[string]int `json:"appraisals"`
	CertifiedCount     int            `json:"certifiedCount"`
	AverageTotalScore  float64        `json:"averageTotalScore"`
	RatingDistribution map[string]int `json:"ratingDistribution"`
	CompletionRate     float64        `json:"completionRate"`
}

// Scope limits a summary to one employee or one department. Empty fields
// mean no limit.
type Scope struct {
	EmployeeID string
	Department string
}

type statusCount struct {
	Status string
	Count  int
}

type ratedAppraisal struct {
	Rating string
	Score  float64
}
