package middleware

import (
	"context"
	"net/http"
	"strings"

	"pms/internal/domain/auth"
	"pms/internal/domain/performance"
	"pms/internal/requestctx"
)

// Auth resolves the bearer token into an Actor on the request context.
// Requests without a valid token pass through anonymous.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := requestctx.WithActor(r.Context(), claims.Actor())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetActor(ctx context.Context) (performance.Actor, bool) {
	return requestctx.GetActor(ctx)
}
