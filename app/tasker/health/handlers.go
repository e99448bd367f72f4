// Package health serves the liveness endpoint.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/jrazmi/tasker/bridge/scaffolding/errs"
	"github.com/jrazmi/tasker/infrastructure/web"
)

// StatusChecker reports whether a dependency is reachable.
type StatusChecker func(ctx context.Context) error

type status struct {
	Status string `json:"status"`
	Build  string `json:"build"`
}

// AddHandlers registers GET /healthz. It answers 503 when check fails.
func AddHandlers(wh *web.WebHandler, build string, check StatusChecker) {
	wh.GET("/healthz", func(ctx context.Context, r *http.Request) web.Encoder {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		if err := check(ctx); err != nil {
			return errs.Newf(errs.Unavailable, "store unreachable")
		}

		return web.NewJSONResponse(status{Status: "ok", Build: build})
	})
}
