package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-faster/errors"

	"pms/internal/domain/performance"
	"pms/internal/platform/db"
	"pms/internal/requestctx"
)

type Event struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actorId"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	FromStatus string          `json:"fromStatus"`
	ToStatus   string          `json:"toStatus"`
	RequestID  string          `json:"requestId"`
	CreatedAt  time.Time       `json:"createdAt"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
}

type Filter struct {
	Action     string
	EntityType string
	EntityID   string
	ActorUser  string
}

type Service struct {
	DB db.Queryer
}

func New(q db.Queryer) *Service {
	return &Service{DB: q}
}

func (s *Service) Record(ctx context.Context, actorID, action, entityType, entityID, fromStatus, toStatus, requestID string, before, after any) error {
	var beforeJSON, afterJSON []byte
	if before != nil {
		payload, err := json.Marshal(before)
		if err != nil {
			return err
		}
		beforeJSON = payload
	}
	if after != nil {
		payload, err := json.Marshal(after)
		if err != nil {
			return err
		}
		afterJSON = payload
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (actor_user_id, action, entity_type, entity_id, from_status, to_status, before_json, after_json, request_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
  `, actorID, action, entityType, entityID, fromStatus, toStatus, beforeJSON, afterJSON, requestID)
	return errors.Wrap(err, "record audit event")
}

// OnTransition records every persisted performance change.
func (s *Service) OnTransition(ctx context.Context, event performance.TransitionEvent) error {
	return s.Record(ctx, event.Actor.ID, string(event.Action), string(event.Entity), event.RecordID,
		event.From, event.To, requestctx.GetRequestID(ctx), event.Before, event.After)
}

func (s *Service) Count(ctx context.Context, filter Filter) (int, error) {
	query, args := s.buildBaseQuery("SELECT COUNT(1)", filter)
	var total int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "count audit events")
	}
	return total, nil
}

func (s *Service) List(ctx context.Context, filter Filter, includeDetails bool, limit, offset int) ([]Event, error) {
	selectCols := "id::text, actor_user_id, action, entity_type, entity_id, from_status, to_status, request_id, created_at"
	if includeDetails {
		selectCols += ", before_json, after_json"
	}
	query, args := s.buildBaseQuery("SELECT "+selectCols, filter)
	limitPos := len(args) + 1
	offsetPos := len(args) + 2
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", limitPos, offsetPos)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list audit events")
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var evt Event
		dest := []any{&evt.ID, &evt.ActorID, &evt.Action, &evt.EntityType, &evt.EntityID, &evt.FromStatus, &evt.ToStatus, &evt.RequestID, &evt.CreatedAt}
		if includeDetails {
			dest = append(dest, &evt.Before, &evt.After)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrap(err, "scan audit event")
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}

func (s *Service) buildBaseQuery(prefix string, filter Filter) (string, []any) {
	query := prefix + " FROM audit_events WHERE 1=1"
	args := []any{}
	if filter.Action != "" {
		query += fmt.Sprintf(" AND action = $%d", len(args)+1)
		args = append(args, filter.Action)
	}
	if filter.EntityType != "" {
		query += fmt.Sprintf(" AND entity_type = $%d", len(args)+1)
		args = append(args, filter.EntityType)
	}
	if filter.EntityID != "" {
		query += fmt.Sprintf(" AND entity_id = $%d", len(args)+1)
		args = append(args, filter.EntityID)
	}
	if filter.ActorUser != "" {
		query += fmt.Sprintf(" AND actor_user_id = $%d", len(args)+1)
		args = append(args, filter.ActorUser)
	}
	return query, args
}
