package middleware

import (
	"context"
	"net/http"

	"github.com/thready-lab/backend/pkg/router"
	"github.com/thready-lab/backend/pkg/xcontext"
)

type RedirectResponse interface {
	RedirectInfo() (int, string)
}

func HandleRedirect() router.AfterFunc {
	return func(ctx context.Context) error {
		redirectResp, ok := xcontext.GetResponse(ctx).(RedirectResponse)
		if !ok {
			return nil
		}

		code, uri := redirectResp.RedirectInfo()
		http.Redirect(xcontext.HTTPWriter(ctx), xcontext.HTTPRequest(ctx), uri, code)

		// After rendering redirect response, do not render another
		// response to client.
		xcontext.SetResponse(ctx, nil)

		return nil
	}
}
