package performance

import (
	"math"
	"strings"
	"time"
)

// Review decisions are resolved in ApplyAppraisal; the map only records which
// actions each status accepts. CERTIFIED accepts none.
var appraisalTransitions = map[AppraisalStatus]map[Action]AppraisalStatus{
	AppraisalStatusDraft: {
		ActionEditFields: AppraisalStatusDraft,
		ActionSubmit:     AppraisalStatusSubmitted,
		ActionDelete:     AppraisalStatusDraft,
	},
	AppraisalStatusReturned: {
		ActionEditFields: AppraisalStatusDraft,
		ActionReopen:     AppraisalStatusDraft,
	},
	AppraisalStatusSubmitted: {
		ActionPMReview: AppraisalStatusApprovedByPM,
		ActionComment:  AppraisalStatusSubmitted,
	},
	AppraisalStatusApprovedByPM: {
		ActionCTOReview: AppraisalStatusCertified,
		ActionComment:   AppraisalStatusApprovedByPM,
	},
	AppraisalStatusCertified: {},
}

// NewAppraisal starts a DRAFT appraisal from an approved contract, with one
// scoring row per KRA entry and every achievement at zero.
func (e *Engine) NewAppraisal(actor Actor, contract Contract) (Appraisal, error) {
	if err := e.Policy.Check(EntityAppraisal, actor, contract.EmployeeID, statusNew, ActionCreate); err != nil {
		return Appraisal{}, err
	}
	if contract.Status != ContractStatusApproved {
		return Appraisal{}, validationError("contract must be approved")
	}

	now := e.now()
	appraisal := Appraisal{
		ID:          e.newID(),
		EmployeeID:  contract.EmployeeID,
		ContractID:  contract.ID,
		KRAScoring:  make([]AppraisalKRAScore, 0, len(contract.KRAEntries)),
		PMComments:  []ReviewComment{},
		CTOComments: []ReviewComment{},
		Status:      AppraisalStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, entry := range contract.KRAEntries {
		appraisal.KRAScoring = append(appraisal.KRAScoring, AppraisalKRAScore{
			ID:     entry.ID,
			Area:   entry.Area,
			Weight: entry.Weight,
			Target: entry.Target,
		})
	}
	applyScore(&appraisal, e.Bands)
	return appraisal, nil
}

// ApplyAppraisal computes the appraisal that results from payload, or the
// reason it cannot be applied. The input is never modified.
func (e *Engine) ApplyAppraisal(appraisal Appraisal, actor Actor, payload AppraisalPayload) (Appraisal, error) {
	if payload == nil {
		return Appraisal{}, validationError("unsupported appraisal request")
	}
	action := payload.appraisalAction()
	next, ok := appraisalTransitions[appraisal.Status][action]
	if !ok {
		return Appraisal{}, invalidTransition(EntityAppraisal, action, string(appraisal.Status))
	}
	if err := e.Policy.Check(EntityAppraisal, actor, appraisal.EmployeeID, string(appraisal.Status), action); err != nil {
		return Appraisal{}, err
	}

	now := e.now()
	out := appraisal.clone()
	switch p := payload.(type) {
	case EditAppraisal:
		if err := editAppraisal(&out, p); err != nil {
			return Appraisal{}, err
		}
		applyScore(&out, e.Bands)
	case SubmitAppraisal:
		if p.Contract.ID != out.ContractID {
			return Appraisal{}, validationError("appraisal contract mismatch")
		}
		if p.Contract.Status != ContractStatusApproved {
			return Appraisal{}, validationError("contract must be approved")
		}
		applyScore(&out, e.Bands)
	case PMReview:
		if !p.Decision.Valid() {
			return Appraisal{}, validationError("decision must be approve or return")
		}
		out.PMComments = append(out.PMComments, e.comment(actor, p.Comment, now))
		if p.Decision == DecisionReturn {
			next = AppraisalStatusReturned
		}
	case CTOReview:
		if !p.Decision.Valid() {
			return Appraisal{}, validationError("decision must be approve or return")
		}
		out.CTOComments = append(out.CTOComments, e.comment(actor, p.Comment, now))
		if p.Decision == DecisionReturn {
			next = AppraisalStatusReturned
			break
		}
		out.Status = AppraisalStatusApprovedByCTO
		certify(&out, now)
		next = out.Status
	case CommentAppraisal:
		if strings.TrimSpace(p.Text) == "" {
			return Appraisal{}, validationError("comment text is required")
		}
		switch actor.Role {
		case RolePM:
			out.PMComments = append(out.PMComments, e.comment(actor, p.Text, now))
		case RoleCTO:
			out.CTOComments = append(out.CTOComments, e.comment(actor, p.Text, now))
		default:
			return Appraisal{}, validationError("comments are recorded on the PM or CTO thread")
		}
	case ReopenAppraisal, DeleteAppraisal:
	default:
		return Appraisal{}, validationError("unsupported appraisal request")
	}

	out.Status = next
	out.UpdatedAt = now
	return out, nil
}

// certify seals a CTO-approved appraisal. certifiedAt is only ever written here.
func certify(appraisal *Appraisal, at time.Time) {
	if appraisal.Status != AppraisalStatusApprovedByCTO || appraisal.CertifiedAt != nil {
		return
	}
	appraisal.Status = AppraisalStatusCertified
	appraisal.CertifiedAt = &at
}

func editAppraisal(appraisal *Appraisal, edit EditAppraisal) error {
	index := make(map[string]int, len(appraisal.KRAScoring))
	for i, row := range appraisal.KRAScoring {
		index[row.ID] = i
	}
	for id, achievement := range edit.Achievements {
		i, ok := index[id]
		if !ok {
			return validationError("unknown KRA row " + id)
		}
		if math.IsNaN(achievement) || math.IsInf(achievement, 0) || achievement < 0 {
			return validationError("achievement must be a non-negative number")
		}
		appraisal.KRAScoring[i].Achievement = achievement
	}
	if edit.EmployeeComments != nil {
		appraisal.EmployeeComments = strings.TrimSpace(*edit.EmployeeComments)
	}
	return nil
}
