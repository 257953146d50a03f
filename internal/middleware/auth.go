package middleware

import (
	"context"
	"net/http"

	"github.com/mroldan747/ai50/internal/config"
)

// Auth parses the split auth cookie pair into player claims and stashes them
// in the request context. Requests without valid claims pass through
// anonymously with their cookies cleared; handlers that require a player
// check for [CtxPlayerClaims] themselves.
func Auth(cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParsePlayerClaims(r)
			if err != nil {
				cookies.Clear(w)
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxPlayerClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
