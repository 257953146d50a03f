package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const RequestIdHeader = "X-Request-ID"

// RequestId returns the request id stored in ctx, or "" outside a request.
func RequestId(ctx context.Context) string {
	id, _ := ctx.Value(CtxRequestId).(string)
	return id
}

// RequestIds tags every request with the incoming X-Request-ID header, or a
// fresh UUID when the caller sent none, and echoes it on the response.
func RequestIds() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIdHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIdHeader, id)
			ctx := context.WithValue(r.Context(), CtxRequestId, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
