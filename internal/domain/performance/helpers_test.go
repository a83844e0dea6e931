package performance

import (
	"errors"
	"strconv"
	"testing"
	"time"
)

var (
	employee      = Actor{ID: "emp-1", Name: "Asha", Role: RoleEmployee, Department: "Engineering"}
	otherEmployee = Actor{ID: "emp-2", Name: "Bilal", Role: RoleEmployee, Department: "Engineering"}
	pm            = Actor{ID: "pm-1", Name: "Ravi", Role: RolePM, Department: "Engineering"}
	cto           = Actor{ID: "cto-1", Name: "Meera", Role: RoleCTO}
	admin         = Actor{ID: "admin", Name: "Administrator", Role: RoleAdmin}
)

func testEngine() *Engine {
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seq := 0
	return &Engine{
		Policy: DefaultPolicy(),
		Bands:  MustRatingBands(DefaultRatingBands),
		Now: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
		NewID: func() string {
			seq++
			return "id-" + strconv.Itoa(seq)
		},
	}
}

func kras(weights ...float64) []KRAEntry {
	out := make([]KRAEntry, 0, len(weights))
	for i, w := range weights {
		out = append(out, KRAEntry{Area: "Area " + strconv.Itoa(i+1), Weight: w, Target: 100})
	}
	return out
}

func mustContract(t *testing.T, e *Engine, weights ...float64) Contract {
	t.Helper()
	contract, err := e.NewContract(employee, employee.ID, ContractSeed{
		PeriodFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodTo:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		KRAEntries: kras(weights...),
	})
	if err != nil {
		t.Fatalf("create contract: %v", err)
	}
	return contract
}

func mustApplyContract(t *testing.T, e *Engine, c Contract, actor Actor, payload ContractPayload) Contract {
	t.Helper()
	out, err := e.ApplyContract(c, actor, payload)
	if err != nil {
		t.Fatalf("%T by %s: %v", payload, actor.Role, err)
	}
	return out
}

func approvedContract(t *testing.T, e *Engine, weights ...float64) Contract {
	t.Helper()
	c := mustContract(t, e, weights...)
	c = mustApplyContract(t, e, c, employee, SignContract{})
	c = mustApplyContract(t, e, c, employee, SubmitContract{})
	return mustApplyContract(t, e, c, pm, ApproveContract{Comment: "looks good"})
}

func mustApplyAppraisal(t *testing.T, e *Engine, a Appraisal, actor Actor, payload AppraisalPayload) Appraisal {
	t.Helper()
	out, err := e.ApplyAppraisal(a, actor, payload)
	if err != nil {
		t.Fatalf("%T by %s: %v", payload, actor.Role, err)
	}
	return out
}

func expectKind(t *testing.T, err, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
}
