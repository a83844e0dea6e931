package requestctx

import (
	"context"

	"pms/internal/domain/performance"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	actorKey     ctxKey = "actor"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}

func WithActor(ctx context.Context, actor performance.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func GetActor(ctx context.Context) (performance.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(performance.Actor)
	return actor, ok && actor.ID != ""
}
