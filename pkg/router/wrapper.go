package router

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mealfeed/backend/pkg/errorx"
	"github.com/mealfeed/backend/pkg/xcontext"

	"github.com/gin-gonic/gin"
)

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		ctx := xcontext.WithDB(gctx.Request.Context(), r.db)
		ctx = xcontext.WithConfigs(ctx, r.cfg)
		ctx = xcontext.WithLogger(ctx, r.logger)
		ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
		ctx = xcontext.WithHTTPRequest(ctx, gctx.Request)
		ctx = xcontext.WithHTTPWriter(ctx, gctx.Writer)
		ctx = xcontext.WithStartTime(ctx, time.Now())

		ctx, err := func() (context.Context, error) {
			for _, before := range r.befores {
				var err error
				ctx, err = before(ctx)
				if err != nil {
					return ctx, err
				}
			}

			var req Request
			var bindErr error
			switch method {
			case http.MethodGet:
				bindErr = gctx.ShouldBindQuery(&req)
			case http.MethodPost:
				bindErr = gctx.ShouldBindJSON(&req)
			default:
				bindErr = errors.New("unsupported method")
			}
			if bindErr != nil {
				return ctx, errorx.New(errorx.BadRequest, "Cannot bind the request")
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return ctx, err
			}

			gctx.JSON(http.StatusOK, newResponse(resp))
			return ctx, nil
		}()

		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			gctx.JSON(http.StatusOK, newErrorResponse(err))
		}

		for _, closer := range r.closers {
			closer(ctx)
		}
	}
}
