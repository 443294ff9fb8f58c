package middleware

import (
	"context"
	"strings"

	"github.com/thready-lab/backend/internal/model"
	"github.com/thready-lab/backend/pkg/authenticator"
	"github.com/thready-lab/backend/pkg/errorx"
	"github.com/thready-lab/backend/pkg/router"
	"github.com/thready-lab/backend/pkg/xcontext"
)

type AuthVerifier struct {
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

// Middleware rejects requests without a valid bearer app token and records
// the caller identity in the request scope.
func (v *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token, ok := bearerToken(ctx)
		if !ok {
			return ctx, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		var info model.AppToken
		err := xcontext.TokenEngine(ctx).Verify(authenticator.KindApp, token, &info)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify the app token: %v", err)
			return ctx, errorx.New(errorx.Unauthenticated, "Invalid or expired token")
		}

		xcontext.SetRequestUserID(ctx, info.ID)
		return ctx, nil
	}
}

// OptionalMiddleware records the caller identity when a valid token is
// present, but never rejects. Public reads use it to include the viewer's
// votes.
func (v *AuthVerifier) OptionalMiddleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token, ok := bearerToken(ctx)
		if !ok {
			return ctx, nil
		}

		var info model.AppToken
		err := xcontext.TokenEngine(ctx).Verify(authenticator.KindApp, token, &info)
		if err == nil {
			xcontext.SetRequestUserID(ctx, info.ID)
		}

		return ctx, nil
	}
}

func bearerToken(ctx context.Context) (string, bool) {
	authorization := xcontext.HTTPRequest(ctx).Header.Get("Authorization")
	scheme, token, found := strings.Cut(authorization, " ")
	if !found || scheme != "Bearer" || token == "" {
		return "", false
	}

	return token, true
}
