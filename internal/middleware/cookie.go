package middleware

import (
	"context"
	"net/http"

	"github.com/thready-lab/backend/pkg/router"
	"github.com/thready-lab/backend/pkg/xcontext"
)

type CookieResponse interface {
	CookieInfo(ctx context.Context) []http.Cookie
}

func HandleSetCookie() router.AfterFunc {
	return func(ctx context.Context) error {
		cookieResp, ok := xcontext.GetResponse(ctx).(CookieResponse)
		if ok {
			for _, cookie := range cookieResp.CookieInfo(ctx) {
				cookie := cookie
				http.SetCookie(xcontext.HTTPWriter(ctx), &cookie)
			}
		}

		return nil
	}
}
