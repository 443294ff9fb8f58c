package middleware

import (
	"context"

	"github.com/thready-lab/backend/internal/common"
	"github.com/thready-lab/backend/pkg/router"
	"github.com/thready-lab/backend/pkg/xcontext"
)

// BodyGuard rejects write requests whose body tries to carry an identity
// field, then strips the remaining owner keys before the body is decoded.
func BodyGuard() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		body := xcontext.RequestBody(ctx)
		if body == nil {
			return ctx, nil
		}

		if err := common.ValidateOwnerFields(body); err != nil {
			xcontext.Logger(ctx).Warnf(
				"security_violation | identity field in body of %s by %s",
				xcontext.HTTPRequest(ctx).URL.Path, xcontext.RequestUserID(ctx))
			return ctx, err
		}

		common.SanitizeOwnerFields(body)
		return ctx, nil
	}
}
