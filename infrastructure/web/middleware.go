package web

import (
	"context"
	"net/http"
)

func (wh *WebHandler) buildHandlerChain(handler HandlerFunc, middleware ...Middleware) HandlerFunc {
	allMiddleware := make([]Middleware, 0, len(wh.globalMiddleware)+len(middleware))
	allMiddleware = append(allMiddleware, wh.globalMiddleware...)
	allMiddleware = append(allMiddleware, middleware...)

	final := handler
	for i := len(allMiddleware) - 1; i >= 0; i-- {
		final = allMiddleware[i](final)
	}

	return final
}

func (wh *WebHandler) corsMiddleware() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, r *http.Request) Encoder {
			if w := GetWriter(ctx); w != nil {
				wh.setCORSHeaders(w, r)
			}
			return next(ctx, r)
		}
	}
}

func (wh *WebHandler) setCORSHeaders(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	for _, allowedOrigin := range wh.corsOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			break
		}
	}

	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "86400")
}
