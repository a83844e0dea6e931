package performance

import (
	"math"
	"strings"
)

// Monthly reviews have no reviewer stage: SUBMITTED is final.
var monthlyReviewTransitions = map[MonthlyReviewStatus]map[Action]MonthlyReviewStatus{
	MonthlyReviewStatusDraft: {
		ActionEditFields: MonthlyReviewStatusDraft,
		ActionSubmit:     MonthlyReviewStatusSubmitted,
		ActionDelete:     MonthlyReviewStatusDraft,
	},
	MonthlyReviewStatusSubmitted: {},
}

func (e *Engine) NewMonthlyReview(actor Actor, ownerID string, seed MonthlyReviewSeed) (MonthlyReview, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return MonthlyReview{}, validationError("employee id is required")
	}
	if err := e.Policy.Check(EntityMonthlyReview, actor, ownerID, statusNew, ActionCreate); err != nil {
		return MonthlyReview{}, err
	}

	now := e.now()
	review := MonthlyReview{
		ID:         e.newID(),
		EmployeeID: ownerID,
		Tasks:      []MonthlyTask{},
		Status:     MonthlyReviewStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	edit := EditMonthlyReview{
		LastReviewDate: seed.LastReviewDate,
		TodayDate:      seed.TodayDate,
		Tasks:          seed.Tasks,
	}
	if err := e.editMonthlyReview(&review, edit); err != nil {
		return MonthlyReview{}, err
	}
	return review, nil
}

func (e *Engine) ApplyMonthlyReview(review MonthlyReview, actor Actor, payload MonthlyReviewPayload) (MonthlyReview, error) {
	if payload == nil {
		return MonthlyReview{}, validationError("unsupported monthly review request")
	}
	action := payload.monthlyReviewAction()
	next, ok := monthlyReviewTransitions[review.Status][action]
	if !ok {
		return MonthlyReview{}, invalidTransition(EntityMonthlyReview, action, string(review.Status))
	}
	if err := e.Policy.Check(EntityMonthlyReview, actor, review.EmployeeID, string(review.Status), action); err != nil {
		return MonthlyReview{}, err
	}

	out := review.clone()
	switch p := payload.(type) {
	case EditMonthlyReview:
		if err := e.editMonthlyReview(&out, p); err != nil {
			return MonthlyReview{}, err
		}
	case SubmitMonthlyReview, DeleteMonthlyReview:
	default:
		return MonthlyReview{}, validationError("unsupported monthly review request")
	}

	out.Status = next
	out.UpdatedAt = e.now()
	return out, nil
}

func (e *Engine) editMonthlyReview(review *MonthlyReview, edit EditMonthlyReview) error {
	if !edit.LastReviewDate.IsZero() && !edit.TodayDate.IsZero() && edit.TodayDate.Before(edit.LastReviewDate) {
		return validationError("last review date must not be after today's date")
	}

	tasks := make([]MonthlyTask, 0, len(edit.Tasks))
	for _, task := range edit.Tasks {
		task.Description = strings.TrimSpace(task.Description)
		if task.Description == "" {
			return validationError("task description is required")
		}
		if !task.Status.Valid() {
			return validationError("task status must be one of Completed, In Progress, Delayed")
		}
		if math.IsNaN(task.Weight) || task.Weight < 0 {
			return validationError("task weight must not be negative")
		}
		if task.ID == "" {
			task.ID = e.newID()
		}
		tasks = append(tasks, task)
	}

	review.LastReviewDate = edit.LastReviewDate
	review.TodayDate = edit.TodayDate
	review.Tasks = tasks
	return nil
}
