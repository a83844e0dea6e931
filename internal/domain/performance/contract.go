package performance

import (
	"math"
	"strings"
)

var contractTransitions = map[ContractStatus]map[Action]ContractStatus{
	ContractStatusDraft: {
		ActionEditFields: ContractStatusDraft,
		ActionSign:       ContractStatusDraft,
		ActionSubmit:     ContractStatusSubmitted,
	},
	ContractStatusSubmitted: {
		ActionApprove: ContractStatusApproved,
		ActionReturn:  ContractStatusReturned,
	},
	ContractStatusReturned: {
		ActionEditFields: ContractStatusDraft,
		ActionReopen:     ContractStatusDraft,
	},
	ContractStatusApproved: {},
}

// NewContract creates a DRAFT contract for ownerID.
func (e *Engine) NewContract(actor Actor, ownerID string, seed ContractSeed) (Contract, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return Contract{}, validationError("employee id is required")
	}
	if err := e.Policy.Check(EntityContract, actor, ownerID, statusNew, ActionCreate); err != nil {
		return Contract{}, err
	}

	now := e.now()
	contract := Contract{
		ID:                e.newID(),
		EmployeeID:        ownerID,
		Status:            ContractStatusDraft,
		KRAEntries:        []KRAEntry{},
		CompetencyEntries: []CompetencyEntry{},
		Comments:          []ReviewComment{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	edit := EditContract{
		PeriodFrom:        seed.PeriodFrom,
		PeriodTo:          seed.PeriodTo,
		KRAEntries:        seed.KRAEntries,
		CompetencyEntries: seed.CompetencyEntries,
	}
	if err := e.editContract(&contract, edit); err != nil {
		return Contract{}, err
	}
	return contract, nil
}

// ApplyContract computes the contract that results from payload, or the
// reason it cannot be applied. The input is never modified.
func (e *Engine) ApplyContract(contract Contract, actor Actor, payload ContractPayload) (Contract, error) {
	if payload == nil {
		return Contract{}, validationError("unsupported contract request")
	}
	action := payload.contractAction()
	next, ok := contractTransitions[contract.Status][action]
	if !ok {
		return Contract{}, invalidTransition(EntityContract, action, string(contract.Status))
	}
	if err := e.Policy.Check(EntityContract, actor, contract.EmployeeID, string(contract.Status), action); err != nil {
		return Contract{}, err
	}

	now := e.now()
	out := contract.clone()
	switch p := payload.(type) {
	case EditContract:
		if err := e.editContract(&out, p); err != nil {
			return Contract{}, err
		}
	case SignContract:
		out.EmployeeSigned = true
		out.EmployeeSignedDate = &now
	case SubmitContract:
		if !ValidateWeights(out.KRAEntries).Valid {
			return Contract{}, validationError("weights must total 100")
		}
		if !out.EmployeeSigned {
			return Contract{}, validationError("signature required")
		}
		out.EmployeeSignedDate = &now
	case ApproveContract:
		if strings.TrimSpace(p.Comment) != "" {
			out.Comments = append(out.Comments, e.comment(actor, p.Comment, now))
		}
	case ReturnContract:
		if strings.TrimSpace(p.Reason) != "" {
			out.Comments = append(out.Comments, e.comment(actor, p.Reason, now))
		}
	case ReopenContract:
	default:
		return Contract{}, validationError("unsupported contract request")
	}

	out.Status = next
	out.UpdatedAt = now
	return out, nil
}

// Activation is the outcome of ActivateContract: the target plus every
// sibling whose flag had to be cleared.
type Activation struct {
	Target  Contract
	Cleared []Contract
}

// Changes lists the records to persist, clears first.
func (a Activation) Changes() []Contract {
	out := make([]Contract, 0, len(a.Cleared)+1)
	out = append(out, a.Cleared...)
	return append(out, a.Target)
}

// ActivateContract sets the active flag on target. Activating clears the
// flag on every other contract of the same employee found in siblings, so
// the employee never has more than one active contract.
func (e *Engine) ActivateContract(target Contract, siblings []Contract, actor Actor, active bool) (Activation, error) {
	if err := e.Policy.Check(EntityContract, actor, target.EmployeeID, string(target.Status), ActionActivate); err != nil {
		return Activation{}, err
	}

	now := e.now()
	result := Activation{Target: target.clone()}
	if active {
		for _, sibling := range siblings {
			if sibling.ID == target.ID || sibling.EmployeeID != target.EmployeeID || !sibling.IsActive {
				continue
			}
			cleared := sibling.clone()
			cleared.IsActive = false
			cleared.UpdatedAt = now
			result.Cleared = append(result.Cleared, cleared)
		}
	}
	result.Target.IsActive = active
	result.Target.UpdatedAt = now
	return result, nil
}

func (e *Engine) editContract(contract *Contract, edit EditContract) error {
	if !edit.PeriodFrom.IsZero() && !edit.PeriodTo.IsZero() && edit.PeriodTo.Before(edit.PeriodFrom) {
		return validationError("period end must not precede period start")
	}

	entries := make([]KRAEntry, 0, len(edit.KRAEntries))
	for _, entry := range edit.KRAEntries {
		entry.Area = strings.TrimSpace(entry.Area)
		if entry.Area == "" {
			return validationError("KRA area is required")
		}
		if math.IsNaN(entry.Weight) || entry.Weight < 0 || entry.Weight > 100 {
			return validationError("KRA weight must be between 0 and 100")
		}
		if math.IsNaN(entry.Target) || entry.Target < 0 {
			return validationError("KRA target must not be negative")
		}
		if entry.ID == "" {
			entry.ID = e.newID()
		}
		entries = append(entries, entry)
	}

	competencies := make([]CompetencyEntry, 0, len(edit.CompetencyEntries))
	for _, entry := range edit.CompetencyEntries {
		entry.Competency = strings.TrimSpace(entry.Competency)
		if entry.Competency == "" {
			return validationError("competency name is required")
		}
		if entry.ID == "" {
			entry.ID = e.newID()
		}
		competencies = append(competencies, entry)
	}

	contract.PeriodFrom = edit.PeriodFrom
	contract.PeriodTo = edit.PeriodTo
	contract.KRAEntries = entries
	contract.CompetencyEntries = competencies
	return nil
}
