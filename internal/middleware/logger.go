package middleware

import (
	"context"
	"time"

	"github.com/mealfeed/backend/pkg/router"
	"github.com/mealfeed/backend/pkg/xcontext"
)

// Logger returns a closer logging one line per request.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return
		}

		elapsed := time.Since(xcontext.StartTime(ctx))
		if err := xcontext.Error(ctx); err != nil {
			xcontext.Logger(ctx).Warnf("%s %s (%s): %v", req.Method, req.URL.Path, elapsed, err)
			return
		}

		xcontext.Logger(ctx).Infof("%s %s (%s)", req.Method, req.URL.Path, elapsed)
	}
}
