package notifications

const (
	TypeContractSubmitted      = "contract_submitted"
	TypeContractApproved       = "contract_approved"
	TypeContractReturned       = "contract_returned"
	TypeMonthlyReviewSubmitted = "monthly_review_submitted"
	TypeAppraisalSubmitted     = "appraisal_submitted"
	TypeAppraisalApprovedByPM  = "appraisal_approved_by_pm"
	TypeAppraisalReturned      = "appraisal_returned"
	TypeAppraisalCertified     = "appraisal_certified"
)

const jobSendEmail = "notification_email"

const (
	defaultListLimit = 50
	maxListLimit     = 200
)
