package performance_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pms/internal/domain/performance"
	"pms/internal/domain/performance/performancetest"
)

var (
	asha  = performance.Actor{ID: "emp-1", Name: "Asha", Role: performance.RoleEmployee, Department: "Engineering"}
	bilal = performance.Actor{ID: "emp-2", Name: "Bilal", Role: performance.RoleEmployee, Department: "Engineering"}
	ravi  = performance.Actor{ID: "pm-1", Name: "Ravi", Role: performance.RolePM, Department: "Engineering"}
	meera = performance.Actor{ID: "cto-1", Name: "Meera", Role: performance.RoleCTO}
)

type eventLog struct {
	mu     sync.Mutex
	events []performance.TransitionEvent
}

func (l *eventLog) OnTransition(_ context.Context, event performance.TransitionEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

func (l *eventLog) actions() []performance.Action {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]performance.Action, 0, len(l.events))
	for _, event := range l.events {
		out = append(out, event.Action)
	}
	return out
}

type outcomeCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *outcomeCounter) RecordTransition(entity, action, outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[entity+"/"+action+"/"+outcome]++
}

func newService(t *testing.T) (*performance.Service, *performancetest.MemoryStore, *eventLog, *outcomeCounter) {
	t.Helper()
	store := performancetest.NewMemoryStore()
	svc := performance.NewService(store, performance.NewEngine(performance.DefaultPolicy(), performance.MustRatingBands(performance.DefaultRatingBands)))
	events := &eventLog{}
	counter := &outcomeCounter{}
	svc.Subscribe(events)
	svc.SetRecorder(counter)
	return svc, store, events, counter
}

func seed(weights ...float64) performance.ContractSeed {
	entries := make([]performance.KRAEntry, 0, len(weights))
	for _, w := range weights {
		entries = append(entries, performance.KRAEntry{Area: "Delivery", Weight: w, Target: 10})
	}
	return performance.ContractSeed{
		PeriodFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodTo:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		KRAEntries: entries,
	}
}

func approved(t *testing.T, svc *performance.Service, weights ...float64) performance.Contract {
	t.Helper()
	ctx := context.Background()
	c, err := svc.CreateContract(ctx, asha, asha.ID, seed(weights...))
	require.NoError(t, err)
	_, err = svc.ApplyContract(ctx, asha, c.ID, performance.SignContract{})
	require.NoError(t, err)
	_, err = svc.ApplyContract(ctx, asha, c.ID, performance.SubmitContract{})
	require.NoError(t, err)
	c, err = svc.ApplyContract(ctx, ravi, c.ID, performance.ApproveContract{})
	require.NoError(t, err)
	require.Equal(t, performance.ContractStatusApproved, c.Status)
	return c
}

func TestServiceContractFlowPersistsAndPublishes(t *testing.T) {
	svc, store, events, counter := newService(t)
	ctx := context.Background()

	c := approved(t, svc, 40, 30, 30)

	stored, err := store.GetContract(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, performance.ContractStatusApproved, stored.Status)
	require.Equal(t, []performance.Action{
		performance.ActionCreate, performance.ActionSign, performance.ActionSubmit, performance.ActionApprove,
	}, events.actions())
	require.Equal(t, 1, counter.counts["contract/approve/ok"])

	last := events.events[len(events.events)-1]
	require.Equal(t, "SUBMITTED", last.From)
	require.Equal(t, "APPROVED", last.To)
	require.Equal(t, asha.ID, last.OwnerID)
}

func TestServiceRejectedTransitionWritesNothing(t *testing.T) {
	svc, store, events, counter := newService(t)
	ctx := context.Background()

	c, err := svc.CreateContract(ctx, asha, asha.ID, seed(40, 30, 20))
	require.NoError(t, err)
	_, err = svc.ApplyContract(ctx, asha, c.ID, performance.SignContract{})
	require.NoError(t, err)

	_, err = svc.ApplyContract(ctx, asha, c.ID, performance.SubmitContract{})
	require.ErrorIs(t, err, performance.ErrValidation)
	require.Equal(t, "weights must total 100", performance.Message(err))

	stored, err := store.GetContract(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, performance.ContractStatusDraft, stored.Status)
	require.Len(t, events.actions(), 2)
	require.Equal(t, 1, counter.counts["contract/submit/validation_error"])
}

func TestServiceFailedPersistenceRollsBack(t *testing.T) {
	svc, store, events, counter := newService(t)
	ctx := context.Background()
	c, err := svc.CreateContract(ctx, asha, asha.ID, seed(100))
	require.NoError(t, err)

	store.FailPut = errors.New("disk full")
	_, err = svc.ApplyContract(ctx, asha, c.ID, performance.SignContract{})
	require.Error(t, err)
	store.FailPut = nil

	stored, err := store.GetContract(ctx, c.ID)
	require.NoError(t, err)
	require.False(t, stored.EmployeeSigned)
	require.Len(t, events.actions(), 1)
	require.Equal(t, 1, counter.counts["contract/signAsEmployee/error"])
}

func TestServiceReadAccess(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()
	c, err := svc.CreateContract(ctx, asha, asha.ID, seed(100))
	require.NoError(t, err)

	_, err = svc.GetContract(ctx, bilal, c.ID)
	require.ErrorIs(t, err, performance.ErrForbidden)
	_, err = svc.ApplyContract(ctx, bilal, c.ID, performance.SignContract{})
	require.ErrorIs(t, err, performance.ErrForbidden)

	got, err := svc.GetContract(ctx, ravi, c.ID)
	require.NoError(t, err)
	require.Equal(t, c.ID, got.ID)

	_, err = svc.GetContract(ctx, asha, "missing")
	require.ErrorIs(t, err, performance.ErrNotFound)

	list, err := svc.ListContracts(ctx, bilal, performance.ContractFilter{})
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = svc.ListContracts(ctx, bilal, performance.ContractFilter{EmployeeID: asha.ID})
	require.ErrorIs(t, err, performance.ErrForbidden)

	list, err = svc.ListContracts(ctx, ravi, performance.ContractFilter{EmployeeID: asha.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestServiceActivationKeepsOneActive(t *testing.T) {
	svc, store, events, _ := newService(t)
	ctx := context.Background()
	first, err := svc.CreateContract(ctx, asha, asha.ID, seed(100))
	require.NoError(t, err)
	second, err := svc.CreateContract(ctx, asha, asha.ID, seed(100))
	require.NoError(t, err)

	_, err = svc.SetContractActive(ctx, asha, first.ID, true)
	require.NoError(t, err)
	active, err := svc.SetContractActive(ctx, ravi, second.ID, true)
	require.NoError(t, err)
	require.True(t, active.IsActive)

	list, err := store.ListContracts(ctx, performance.ContractFilter{EmployeeID: asha.ID, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, second.ID, list[0].ID)

	// one event for the first activation, two for the switch
	activations := 0
	for _, action := range events.actions() {
		if action == performance.ActionActivate {
			activations++
		}
	}
	require.Equal(t, 3, activations)

	_, err = svc.SetContractActive(ctx, bilal, first.ID, true)
	require.ErrorIs(t, err, performance.ErrForbidden)
}

func TestServiceAppraisalToCertification(t *testing.T) {
	svc, store, _, counter := newService(t)
	ctx := context.Background()
	c := approved(t, svc, 60, 40)

	a, err := svc.CreateAppraisal(ctx, asha, c.ID)
	require.NoError(t, err)
	_, err = svc.CreateAppraisal(ctx, asha, c.ID)
	require.ErrorIs(t, err, performance.ErrValidation)

	achievements := map[string]float64{a.KRAScoring[0].ID: 10, a.KRAScoring[1].ID: 5}
	a, err = svc.ApplyAppraisal(ctx, asha, a.ID, performance.EditAppraisal{Achievements: achievements})
	require.NoError(t, err)
	require.InDelta(t, 80, a.TotalScore, 1e-9)

	a, err = svc.ApplyAppraisal(ctx, asha, a.ID, performance.SubmitAppraisal{})
	require.NoError(t, err)
	require.Equal(t, performance.AppraisalStatusSubmitted, a.Status)

	_, err = svc.ApplyAppraisal(ctx, meera, a.ID, performance.PMReview{Decision: performance.DecisionApprove})
	require.ErrorIs(t, err, performance.ErrForbidden)

	a, err = svc.ApplyAppraisal(ctx, ravi, a.ID, performance.PMReview{Decision: performance.DecisionApprove})
	require.NoError(t, err)
	a, err = svc.ApplyAppraisal(ctx, meera, a.ID, performance.CTOReview{Decision: performance.DecisionApprove, Comment: "certified"})
	require.NoError(t, err)
	require.Equal(t, performance.AppraisalStatusCertified, a.Status)
	require.NotNil(t, a.CertifiedAt)

	_, err = svc.ApplyAppraisal(ctx, asha, a.ID, performance.EditAppraisal{})
	require.ErrorIs(t, err, performance.ErrInvalidTransition)
	require.Equal(t, 1, counter.counts["appraisal/editFields/invalid_transition"])

	stored, err := store.GetAppraisal(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, *a.CertifiedAt, *stored.CertifiedAt)

	score, err := svc.AppraisalScore(ctx, ravi, a.ID)
	require.NoError(t, err)
	require.InDelta(t, 80, score.TotalScore, 1e-9)
	require.Equal(t, "Very Good", score.FinalRating)
}

func TestServiceSubmitAppraisalReadsStoredContract(t *testing.T) {
	svc, store, _, _ := newService(t)
	ctx := context.Background()
	c := approved(t, svc, 100)
	a, err := svc.CreateAppraisal(ctx, asha, c.ID)
	require.NoError(t, err)

	c.Status = performance.ContractStatusReturned
	require.NoError(t, store.PutContracts(ctx, c))

	_, err = svc.ApplyAppraisal(ctx, asha, a.ID, performance.SubmitAppraisal{})
	require.ErrorIs(t, err, performance.ErrValidation)
}

func TestServiceDeleteDrafts(t *testing.T) {
	svc, store, events, _ := newService(t)
	ctx := context.Background()

	review, err := svc.CreateMonthlyReview(ctx, asha, asha.ID, performance.MonthlyReviewSeed{
		Tasks: []performance.MonthlyTask{{Description: "On-call rota", Status: performance.TaskStatusCompleted}},
	})
	require.NoError(t, err)
	deleted, err := svc.ApplyMonthlyReview(ctx, asha, review.ID, performance.DeleteMonthlyReview{})
	require.NoError(t, err)
	require.Equal(t, review.ID, deleted.ID)
	_, err = store.GetMonthlyReview(ctx, review.ID)
	require.ErrorIs(t, err, performance.ErrNotFound)

	last := events.events[len(events.events)-1]
	require.Equal(t, performance.ActionDelete, last.Action)
	require.Equal(t, "", last.To)

	review, err = svc.CreateMonthlyReview(ctx, asha, asha.ID, performance.MonthlyReviewSeed{})
	require.NoError(t, err)
	_, err = svc.ApplyMonthlyReview(ctx, asha, review.ID, performance.SubmitMonthlyReview{})
	require.NoError(t, err)
	_, err = svc.ApplyMonthlyReview(ctx, asha, review.ID, performance.DeleteMonthlyReview{})
	require.ErrorIs(t, err, performance.ErrInvalidTransition)
}

func TestServiceListenerFailureDoesNotUndo(t *testing.T) {
	svc, store, _, _ := newService(t)
	svc.Subscribe(performance.ListenerFunc(func(context.Context, performance.TransitionEvent) error {
		return errors.New("mail server down")
	}))
	ctx := context.Background()

	c, err := svc.CreateContract(ctx, asha, asha.ID, seed(100))
	require.NoError(t, err)
	_, err = store.GetContract(ctx, c.ID)
	require.NoError(t, err)
}

func TestServiceComputeScoreAndValidate(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()

	result := svc.ComputeScore([]performance.AppraisalKRAScore{{Target: 50, Weight: 20, Achievement: 25}})
	require.Equal(t, 10.0, result.TotalScore)
	require.Equal(t, 50.0, result.Rows[0].RawScore)

	c, err := svc.CreateContract(ctx, asha, asha.ID, seed(40, 30, 20))
	require.NoError(t, err)
	validation, err := svc.ValidateContract(ctx, asha, c.ID)
	require.NoError(t, err)
	require.False(t, validation.Valid)
	require.Equal(t, 90.0, validation.TotalWeight)
	require.Len(t, validation.Issues, 2)
}

func TestOutcome(t *testing.T) {
	require.Equal(t, "ok", performance.Outcome(nil))
	require.Equal(t, "error", performance.Outcome(errors.New("boom")))
	require.Equal(t, "not_found", performance.Outcome(&performance.Error{Kind: performance.ErrNotFound}))
}
