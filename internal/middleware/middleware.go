package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

type CtxKey int

const (
	CtxPlayerClaims CtxKey = iota
	CtxRequestId
)

func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}
