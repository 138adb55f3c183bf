package middleware

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/mealfeed/backend/internal/common"
	"github.com/mealfeed/backend/pkg/errorx"
	"github.com/mealfeed/backend/pkg/router"
	"github.com/mealfeed/backend/pkg/xcontext"
)

// Prometheus returns a closer recording request count and duration, labelled
// by path and application error code.
func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return
		}

		code := "0"
		if err := xcontext.Error(ctx); err != nil {
			errx := errorx.Error{}
			if errors.As(err, &errx) {
				code = strconv.Itoa(int(errx.Code))
			} else {
				code = strconv.Itoa(int(errorx.Unknown.Code))
			}
		}

		common.PromCounters[common.HTTPRequestTotal].
			WithLabelValues(req.URL.Path, code).Inc()
		common.PromHistograms[common.HTTPRequestDurationSeconds].
			WithLabelValues(req.URL.Path, code).
			Observe(time.Since(xcontext.StartTime(ctx)).Seconds())
	}
}
