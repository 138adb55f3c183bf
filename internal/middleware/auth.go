package middleware

import (
	"context"
	"strings"

	"github.com/mealfeed/backend/internal/model"
	"github.com/mealfeed/backend/pkg/errorx"
	"github.com/mealfeed/backend/pkg/router"
	"github.com/mealfeed/backend/pkg/xcontext"
)

type AuthVerifier struct {
	optional bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

// WithOptional lets a request through without a token; handlers see an empty
// request user id.
func (a *AuthVerifier) WithOptional() *AuthVerifier {
	a.optional = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := extractBearer(xcontext.HTTPRequest(ctx).Header.Get("Authorization"))
		if token == "" {
			if a.optional {
				return ctx, nil
			}

			return ctx, errorx.New(errorx.Unauthenticated, "Not found any token")
		}

		var accessToken model.AccessToken
		if err := xcontext.TokenEngine(ctx).Verify(token, &accessToken); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return ctx, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

func extractBearer(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
