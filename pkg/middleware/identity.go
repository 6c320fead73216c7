package middleware

import (
	"context"
	"net/http"

	"roombook/pkg/model"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	actorKey contextKey = "actor"
)

// Identity lifts the caller identity headers into the request context.
// The headers are trusted input from the identity boundary; this service
// performs no authentication of its own.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := model.Actor{
				ID:   r.Header.Get(HeaderUserID),
				Role: r.Header.Get(HeaderUserRole),
			}
			if actor.Role == "" {
				actor.Role = model.RoleLecturer
			}

			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFrom returns the caller identity extracted by Identity. The zero
// Actor (empty ID) means the request carried no identity header.
func ActorFrom(ctx context.Context) model.Actor {
	if a, ok := ctx.Value(actorKey).(model.Actor); ok {
		return a
	}
	return model.Actor{}
}
