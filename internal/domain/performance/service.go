package performance

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-faster/errors"
)

// TransitionEvent describes one record change that was persisted.
type TransitionEvent struct {
	Entity   Entity    `json:"entity"`
	Action   Action    `json:"action"`
	RecordID string    `json:"recordId"`
	OwnerID  string    `json:"ownerId"`
	Actor    Actor     `json:"actor"`
	From     string    `json:"from"`
	To       string    `json:"to"`
	Before   any       `json:"before,omitempty"`
	After    any       `json:"after,omitempty"`
	At       time.Time `json:"at"`
}

// Listener is told about every persisted change after its transaction
// commits. Errors are logged and never undo the change.
type Listener interface {
	OnTransition(ctx context.Context, event TransitionEvent) error
}

type ListenerFunc func(ctx context.Context, event TransitionEvent) error

func (f ListenerFunc) OnTransition(ctx context.Context, event TransitionEvent) error {
	return f(ctx, event)
}

// TransitionRecorder counts operation outcomes, see Outcome.
type TransitionRecorder interface {
	RecordTransition(entity, action, outcome string)
}

type Service struct {
	store     StoreAPI
	engine    *Engine
	listeners []Listener
	recorder  TransitionRecorder
	logger    *slog.Logger
}

func NewService(store StoreAPI, engine *Engine) *Service {
	return &Service{store: store, engine: engine, logger: slog.Default()}
}

func (s *Service) Subscribe(listener Listener) {
	if listener != nil {
		s.listeners = append(s.listeners, listener)
	}
}

func (s *Service) SetRecorder(recorder TransitionRecorder) {
	s.recorder = recorder
}

func (s *Service) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

func (s *Service) Bands() RatingBands {
	return s.engine.Bands
}

// Outcome classifies an operation result for metrics labels.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func (s *Service) finish(ctx context.Context, entity Entity, action Action, recordID string, actor Actor, err error) {
	if s.recorder != nil {
		s.recorder.RecordTransition(string(entity), string(action), Outcome(err))
	}
	if errors.Is(err, ErrInvalidTransition) {
		s.logger.WarnContext(ctx, "policy violation",
			"entity", entity,
			"action", action,
			"recordId", recordID,
			"actorId", actor.ID,
			"role", actor.Role,
			"err", err,
		)
	}
}

func (s *Service) publish(ctx context.Context, events ...TransitionEvent) {
	for _, event := range events {
		for _, listener := range s.listeners {
			if err := listener.OnTransition(ctx, event); err != nil {
				s.logger.WarnContext(ctx, "transition listener failed",
					"entity", event.Entity,
					"action", event.Action,
					"recordId", event.RecordID,
					"err", err,
				)
			}
		}
	}
}

func (s *Service) event(entity Entity, action Action, actor Actor, recordID, ownerID, from, to string, before, after any) TransitionEvent {
	return TransitionEvent{
		Entity:   entity,
		Action:   action,
		RecordID: recordID,
		OwnerID:  ownerID,
		Actor:    actor,
		From:     from,
		To:       to,
		Before:   before,
		After:    after,
		At:       s.engine.now(),
	}
}

// readable fails with Forbidden when actor may not see records of ownerID.
func readable(entity Entity, actor Actor, ownerID string) error {
	if !CanRead(actor, ownerID) {
		return &Error{Kind: ErrForbidden, Message: "not allowed to read " + string(entity)}
	}
	return nil
}

// listScope narrows a list request to the actor's own records when the actor
// may only read those.
func listScope(entity Entity, actor Actor, employeeID string) (string, error) {
	switch actor.Role {
	case RoleAdmin, RolePM, RoleCTO:
		return employeeID, nil
	case RoleEmployee:
		if actor.ID == "" || (employeeID != "" && employeeID != actor.ID) {
			return "", readable(entity, actor, employeeID)
		}
		return actor.ID, nil
	}
	return "", readable(entity, actor, employeeID)
}
