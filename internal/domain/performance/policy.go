package performance

// StatusAny matches every status of an entity in a Rule.
const StatusAny = "*"

// statusNew is the pseudo status of a record that does not exist yet.
const statusNew = ""

// Rule allows Role to perform Action on Entity while it is in Status.
// OwnerOnly further restricts the rule to the record's own employee.
type Rule struct {
	Entity    Entity
	Role      Role
	Status    string
	Action    Action
	OwnerOnly bool
}

type ruleKey struct {
	entity Entity
	role   Role
	status string
	action Action
}

// Policy is the (role, status, action) allow table. Anything without a rule
// is denied; ADMIN is never checked.
type Policy struct {
	rules map[ruleKey]bool
}

func NewPolicy(rules []Rule) Policy {
	p := Policy{rules: make(map[ruleKey]bool, len(rules))}
	for _, rule := range rules {
		key := ruleKey{entity: rule.Entity, role: rule.Role, status: rule.Status, action: rule.Action}
		ownerOnly, exists := p.rules[key]
		// Two rules for the same key: the less restrictive wins.
		if exists {
			p.rules[key] = ownerOnly && rule.OwnerOnly
			continue
		}
		p.rules[key] = rule.OwnerOnly
	}
	return p
}

func DefaultPolicy() Policy {
	return NewPolicy(DefaultRules)
}

// Allowed reports whether actor may perform action on a record of entity that
// belongs to ownerID and currently has status.
func (p Policy) Allowed(entity Entity, actor Actor, ownerID, status string, action Action) bool {
	if actor.Role == RoleAdmin {
		return true
	}
	if actor.ID == "" {
		return false
	}
	for _, candidate := range []string{status, StatusAny} {
		ownerOnly, ok := p.rules[ruleKey{entity: entity, role: actor.Role, status: candidate, action: action}]
		if !ok {
			continue
		}
		if ownerOnly && actor.ID != ownerID {
			continue
		}
		return true
	}
	return false
}

// Check is Allowed returning a Forbidden error on denial.
func (p Policy) Check(entity Entity, actor Actor, ownerID, status string, action Action) error {
	if !p.Allowed(entity, actor, ownerID, status, action) {
		return forbidden(action)
	}
	return nil
}

var DefaultRules = []Rule{
	// Contracts
	{Entity: EntityContract, Role: RoleEmployee, Status: statusNew, Action: ActionCreate, OwnerOnly: true},
	{Entity: EntityContract, Role: RoleEmployee, Status: string(ContractStatusDraft), Action: ActionEditFields, OwnerOnly: true},
	{Entity: EntityContract, Role: RoleEmployee, Status: string(ContractStatusReturned), Action: ActionEditFields, OwnerOnly: true},
	{Entity: EntityContract, Role: RoleEmployee, Status: string(ContractStatusDraft), Action: ActionSign, OwnerOnly: true},
	{Entity: EntityContract, Role: RoleEmployee, Status: string(ContractStatusDraft), Action: ActionSubmit, OwnerOnly: true},
	{Entity: EntityContract, Role: RoleEmployee, Status: string(ContractStatusReturned), Action: ActionReopen, OwnerOnly: true},
	{Entity: EntityContract, Role: RoleEmployee, Status: StatusAny, Action: ActionActivate, OwnerOnly: true},
	{Entity: EntityContract, Role: RolePM, Status: string(ContractStatusSubmitted), Action: ActionApprove},
	{Entity: EntityContract, Role: RolePM, Status: string(ContractStatusSubmitted), Action: ActionReturn},
	{Entity: EntityContract, Role: RolePM, Status: StatusAny, Action: ActionActivate},
	{Entity: EntityContract, Role: RoleCTO, Status: string(ContractStatusSubmitted), Action: ActionApprove},
	{Entity: EntityContract, Role: RoleCTO, Status: string(ContractStatusSubmitted), Action: ActionReturn},
	{Entity: EntityContract, Role: RoleCTO, Status: StatusAny, Action: ActionActivate},

	// Monthly reviews
	{Entity: EntityMonthlyReview, Role: RoleEmployee, Status: statusNew, Action: ActionCreate, OwnerOnly: true},
	{Entity: EntityMonthlyReview, Role: RoleEmployee, Status: string(MonthlyReviewStatusDraft), Action: ActionEditFields, OwnerOnly: true},
	{Entity: EntityMonthlyReview, Role: RoleEmployee, Status: string(MonthlyReviewStatusDraft), Action: ActionSubmit, OwnerOnly: true},
	{Entity: EntityMonthlyReview, Role: RoleEmployee, Status: string(MonthlyReviewStatusDraft), Action: ActionDelete, OwnerOnly: true},

	// Appraisals
	{Entity: EntityAppraisal, Role: RoleEmployee, Status: statusNew, Action: ActionCreate, OwnerOnly: true},
	{Entity: EntityAppraisal, Role: RoleEmployee, Status: string(AppraisalStatusDraft), Action: ActionEditFields, OwnerOnly: true},
	{Entity: EntityAppraisal, Role: RoleEmployee, Status: string(AppraisalStatusReturned), Action: ActionEditFields, OwnerOnly: true},
	{Entity: EntityAppraisal, Role: RoleEmployee, Status: string(AppraisalStatusDraft), Action: ActionSubmit, OwnerOnly: true},
	{Entity: EntityAppraisal, Role: RoleEmployee, Status: string(AppraisalStatusDraft), Action: ActionDelete, OwnerOnly: true},
	{Entity: EntityAppraisal, Role: RoleEmployee, Status: string(AppraisalStatusReturned), Action: ActionReopen, OwnerOnly: true},
	{Entity: EntityAppraisal, Role: RolePM, Status: string(AppraisalStatusSubmitted), Action: ActionPMReview},
	{Entity: EntityAppraisal, Role: RolePM, Status: string(AppraisalStatusSubmitted), Action: ActionComment},
	{Entity: EntityAppraisal, Role: RolePM, Status: string(AppraisalStatusApprovedByPM), Action: ActionComment},
	{Entity: EntityAppraisal, Role: RoleCTO, Status: string(AppraisalStatusApprovedByPM), Action: ActionCTOReview},
	{Entity: EntityAppraisal, Role: RoleCTO, Status: string(AppraisalStatusSubmitted), Action: ActionComment},
	{Entity: EntityAppraisal, Role: RoleCTO, Status: string(AppraisalStatusApprovedByPM), Action: ActionComment},
}

// CanRead reports whether actor may see a record owned by ownerID. Owners
// always can; reviewers and admins see everything.
func CanRead(actor Actor, ownerID string) bool {
	switch actor.Role {
	case RoleAdmin, RolePM, RoleCTO:
		return true
	case RoleEmployee:
		return actor.ID != "" && actor.ID == ownerID
	}
	return false
}
