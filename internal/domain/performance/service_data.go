package performance

import "context"

func (s *Service) CreateContract(ctx context.Context, actor Actor, ownerID string, seed ContractSeed) (Contract, error) {
	contract, err := s.engine.NewContract(actor, ownerID, seed)
	if err == nil {
		err = s.store.PutContracts(ctx, contract)
	}
	s.finish(ctx, EntityContract, ActionCreate, contract.ID, actor, err)
	if err != nil {
		return Contract{}, err
	}
	s.publish(ctx, s.event(EntityContract, ActionCreate, actor, contract.ID, contract.EmployeeID, "", string(contract.Status), nil, contract))
	return contract, nil
}

func (s *Service) GetContract(ctx context.Context, actor Actor, id string) (Contract, error) {
	contract, err := s.store.GetContract(ctx, id)
	if err != nil {
		return Contract{}, err
	}
	if err := readable(EntityContract, actor, contract.EmployeeID); err != nil {
		return Contract{}, err
	}
	return contract, nil
}

func (s *Service) ListContracts(ctx context.Context, actor Actor, filter ContractFilter) ([]Contract, error) {
	employeeID, err := listScope(EntityContract, actor, filter.EmployeeID)
	if err != nil {
		return nil, err
	}
	filter.EmployeeID = employeeID
	return s.store.ListContracts(ctx, filter)
}

// ApplyContract loads the contract under lock, applies payload and stores the
// result in one transaction.
func (s *Service) ApplyContract(ctx context.Context, actor Actor, id string, payload ContractPayload) (Contract, error) {
	action := ActionEditFields
	if payload != nil {
		action = payload.contractAction()
	}

	var before, after Contract
	err := s.store.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.store.GetContract(ctx, id)
		if err != nil {
			return err
		}
		if err := readable(EntityContract, actor, current.EmployeeID); err != nil {
			return err
		}
		next, err := s.engine.ApplyContract(current, actor, payload)
		if err != nil {
			return err
		}
		if err := s.store.PutContracts(ctx, next); err != nil {
			return err
		}
		before, after = current, next
		return nil
	})
	s.finish(ctx, EntityContract, action, id, actor, err)
	if err != nil {
		return Contract{}, err
	}
	s.publish(ctx, s.event(EntityContract, action, actor, after.ID, after.EmployeeID, string(before.Status), string(after.Status), before, after))
	return after, nil
}

// SetContractActive flips the active flag of a contract. Activating clears
// every other active contract of the same employee in the same transaction.
func (s *Service) SetContractActive(ctx context.Context, actor Actor, id string, active bool) (Contract, error) {
	var activation Activation
	var previous map[string]Contract
	err := s.store.WithinTx(ctx, func(ctx context.Context) error {
		target, err := s.store.GetContract(ctx, id)
		if err != nil {
			return err
		}
		if err := readable(EntityContract, actor, target.EmployeeID); err != nil {
			return err
		}
		siblings, err := s.store.ListContracts(ctx, ContractFilter{EmployeeID: target.EmployeeID, ActiveOnly: true})
		if err != nil {
			return err
		}
		result, err := s.engine.ActivateContract(target, siblings, actor, active)
		if err != nil {
			return err
		}
		if err := s.store.PutContracts(ctx, result.Changes()...); err != nil {
			return err
		}
		previous = map[string]Contract{target.ID: target}
		for _, sibling := range siblings {
			previous[sibling.ID] = sibling
		}
		activation = result
		return nil
	})
	s.finish(ctx, EntityContract, ActionActivate, id, actor, err)
	if err != nil {
		return Contract{}, err
	}

	events := make([]TransitionEvent, 0, len(activation.Cleared)+1)
	for _, changed := range activation.Changes() {
		before := previous[changed.ID]
		events = append(events, s.event(EntityContract, ActionActivate, actor, changed.ID, changed.EmployeeID, string(before.Status), string(changed.Status), before, changed))
	}
	s.publish(ctx, events...)
	return activation.Target, nil
}

// ValidateContract reports what still blocks submitting a contract.
func (s *Service) ValidateContract(ctx context.Context, actor Actor, id string) (ValidationResult, error) {
	contract, err := s.GetContract(ctx, actor, id)
	if err != nil {
		return ValidationResult{}, err
	}
	return ValidateContract(contract), nil
}

func (s *Service) CreateMonthlyReview(ctx context.Context, actor Actor, ownerID string, seed MonthlyReviewSeed) (MonthlyReview, error) {
	review, err := s.engine.NewMonthlyReview(actor, ownerID, seed)
	if err == nil {
		err = s.store.PutMonthlyReview(ctx, review)
	}
	s.finish(ctx, EntityMonthlyReview, ActionCreate, review.ID, actor, err)
	if err != nil {
		return MonthlyReview{}, err
	}
	s.publish(ctx, s.event(EntityMonthlyReview, ActionCreate, actor, review.ID, review.EmployeeID, "", string(review.Status), nil, review))
	return review, nil
}

func (s *Service) GetMonthlyReview(ctx context.Context, actor Actor, id string) (MonthlyReview, error) {
	review, err := s.store.GetMonthlyReview(ctx, id)
	if err != nil {
		return MonthlyReview{}, err
	}
	if err := readable(EntityMonthlyReview, actor, review.EmployeeID); err != nil {
		return MonthlyReview{}, err
	}
	return review, nil
}

func (s *Service) ListMonthlyReviews(ctx context.Context, actor Actor, filter MonthlyReviewFilter) ([]MonthlyReview, error) {
	employeeID, err := listScope(EntityMonthlyReview, actor, filter.EmployeeID)
	if err != nil {
		return nil, err
	}
	filter.EmployeeID = employeeID
	return s.store.ListMonthlyReviews(ctx, filter)
}

// ApplyMonthlyReview applies payload in one transaction. A delete removes the
// record and returns it as it was.
func (s *Service) ApplyMonthlyReview(ctx context.Context, actor Actor, id string, payload MonthlyReviewPayload) (MonthlyReview, error) {
	action := ActionEditFields
	if payload != nil {
		action = payload.monthlyReviewAction()
	}

	var before, after MonthlyReview
	err := s.store.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.store.GetMonthlyReview(ctx, id)
		if err != nil {
			return err
		}
		if err := readable(EntityMonthlyReview, actor, current.EmployeeID); err != nil {
			return err
		}
		next, err := s.engine.ApplyMonthlyReview(current, actor, payload)
		if err != nil {
			return err
		}
		if action == ActionDelete {
			err = s.store.DeleteMonthlyReview(ctx, id)
		} else {
			err = s.store.PutMonthlyReview(ctx, next)
		}
		if err != nil {
			return err
		}
		before, after = current, next
		return nil
	})
	s.finish(ctx, EntityMonthlyReview, action, id, actor, err)
	if err != nil {
		return MonthlyReview{}, err
	}

	if action == ActionDelete {
		s.publish(ctx, s.event(EntityMonthlyReview, action, actor, before.ID, before.EmployeeID, string(before.Status), "", before, nil))
		return before, nil
	}
	s.publish(ctx, s.event(EntityMonthlyReview, action, actor, after.ID, after.EmployeeID, string(before.Status), string(after.Status), before, after))
	return after, nil
}

// CreateAppraisal starts the appraisal of an approved contract. A contract
// has at most one appraisal.
func (s *Service) CreateAppraisal(ctx context.Context, actor Actor, contractID string) (Appraisal, error) {
	var appraisal Appraisal
	err := s.store.WithinTx(ctx, func(ctx context.Context) error {
		contract, err := s.store.GetContract(ctx, contractID)
		if err != nil {
			return err
		}
		created, err := s.engine.NewAppraisal(actor, contract)
		if err != nil {
			return err
		}
		existing, err := s.store.ListAppraisals(ctx, AppraisalFilter{ContractID: contract.ID})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return validationError("an appraisal already exists for this contract")
		}
		if err := s.store.PutAppraisal(ctx, created); err != nil {
			return err
		}
		appraisal = created
		return nil
	})
	s.finish(ctx, EntityAppraisal, ActionCreate, appraisal.ID, actor, err)
	if err != nil {
		return Appraisal{}, err
	}
	s.publish(ctx, s.event(EntityAppraisal, ActionCreate, actor, appraisal.ID, appraisal.EmployeeID, "", string(appraisal.Status), nil, appraisal))
	return appraisal, nil
}

func (s *Service) GetAppraisal(ctx context.Context, actor Actor, id string) (Appraisal, error) {
	appraisal, err := s.store.GetAppraisal(ctx, id)
	if err != nil {
		return Appraisal{}, err
	}
	if err := readable(EntityAppraisal, actor, appraisal.EmployeeID); err != nil {
		return Appraisal{}, err
	}
	return appraisal, nil
}

func (s *Service) ListAppraisals(ctx context.Context, actor Actor, filter AppraisalFilter) ([]Appraisal, error) {
	employeeID, err := listScope(EntityAppraisal, actor, filter.EmployeeID)
	if err != nil {
		return nil, err
	}
	filter.EmployeeID = employeeID
	return s.store.ListAppraisals(ctx, filter)
}

// ApplyAppraisal applies payload in one transaction. Submitting reads the
// source contract as stored; a delete removes the record and returns it as
// it was.
func (s *Service) ApplyAppraisal(ctx context.Context, actor Actor, id string, payload AppraisalPayload) (Appraisal, error) {
	action := ActionEditFields
	if payload != nil {
		action = payload.appraisalAction()
	}

	var before, after Appraisal
	err := s.store.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.store.GetAppraisal(ctx, id)
		if err != nil {
			return err
		}
		if err := readable(EntityAppraisal, actor, current.EmployeeID); err != nil {
			return err
		}
		if submit, ok := payload.(SubmitAppraisal); ok {
			contract, err := s.store.GetContract(ctx, current.ContractID)
			if err != nil {
				return err
			}
			submit.Contract = contract
			payload = submit
		}
		next, err := s.engine.ApplyAppraisal(current, actor, payload)
		if err != nil {
			return err
		}
		if action == ActionDelete {
			err = s.store.DeleteAppraisal(ctx, id)
		} else {
			err = s.store.PutAppraisal(ctx, next)
		}
		if err != nil {
			return err
		}
		before, after = current, next
		return nil
	})
	s.finish(ctx, EntityAppraisal, action, id, actor, err)
	if err != nil {
		return Appraisal{}, err
	}

	if action == ActionDelete {
		s.publish(ctx, s.event(EntityAppraisal, action, actor, before.ID, before.EmployeeID, string(before.Status), "", before, nil))
		return before, nil
	}
	s.publish(ctx, s.event(EntityAppraisal, action, actor, after.ID, after.EmployeeID, string(before.Status), string(after.Status), before, after))
	return after, nil
}

// AppraisalScore recomputes the score breakdown of a stored appraisal with
// the current band table.
func (s *Service) AppraisalScore(ctx context.Context, actor Actor, id string) (ScoreResult, error) {
	appraisal, err := s.GetAppraisal(ctx, actor, id)
	if err != nil {
		return ScoreResult{}, err
	}
	return ScoreAppraisal(appraisal, s.engine.Bands), nil
}

// ComputeScore scores rows that are not stored anywhere, e.g. a preview.
func (s *Service) ComputeScore(rows []AppraisalKRAScore) ScoreResult {
	return ComputeScore(rows, s.engine.Bands)
}
