package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const actorIDKey contextKey = "actor_id"

// ActorID extracts the authenticated user id set by the upstream auth
// layer. Session/token mechanics live there; this service only receives
// the resolved identity and re-checks the role against the store before
// any mutation.
func ActorID(ctx context.Context) string {
	id, _ := ctx.Value(actorIDKey).(string)
	return id
}

// RequireActor rejects requests that carry no identity header. Role
// checks happen in the usecases, against the profiles table.
func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actorID := r.Header.Get("X-User-ID")
		if actorID == "" {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), actorIDKey, actorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
