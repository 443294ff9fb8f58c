package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mitchellh/mapstructure"
	"github.com/thready-lab/backend/pkg/errorx"
	"github.com/thready-lab/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = xcontext.WithConfigs(ctx, router.cfg)
		ctx = xcontext.WithLogger(ctx, router.logger)
		ctx = xcontext.WithDB(ctx, router.db)
		ctx = xcontext.WithTokenEngine(ctx, router.tokenEngine)
		ctx = xcontext.WithHTTPRequest(ctx, r)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = xcontext.WithRequestScope(ctx)

		defer func() {
			for _, closer := range router.closers {
				closer(ctx)
			}
		}()

		values, err := bindValues(ctx, method, r)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind the request of %s: %v", r.URL.Path, err)
			writeError(ctx, w, errorx.New(errorx.BadRequest, "Cannot parse the request"))
			return
		}

		for _, before := range router.befores {
			// Keep the current context when a middleware aborts, so the
			// error response and the closers still see the request scope.
			next, err := before(ctx)
			if err != nil {
				writeError(ctx, w, err)
				return
			}

			ctx = next
		}

		// Decode after Before middlewares so body sanitization is
		// reflected in the typed request.
		var req Request
		if err := decodeValues(values, &req); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot decode the request of %s: %v", r.URL.Path, err)
			writeError(ctx, w, errorx.New(errorx.BadRequest, "Cannot parse the request"))
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		xcontext.SetResponse(ctx, resp)
		for _, after := range router.afters {
			if err := after(ctx); err != nil {
				writeError(ctx, w, err)
				return
			}
		}

		// After middlewares unset the response when they already
		// answered the request, e.g. with a redirect.
		if resp := xcontext.GetResponse(ctx); resp != nil {
			writeData(ctx, w, resp)
		}
	}
}

// bindValues merges the json body (or query string) with chi path parameters
// into a single generic map. The body map is also stored in the request scope
// so middlewares can inspect it before decoding.
func bindValues(ctx context.Context, method string, r *http.Request) (map[string]any, error) {
	values := map[string]any{}

	if method == http.MethodGet || method == http.MethodDelete {
		for key, value := range r.URL.Query() {
			if len(value) > 0 {
				values[key] = value[0]
			}
		}
	} else {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}

		if len(body) > 0 {
			if err := json.Unmarshal(body, &values); err != nil {
				return nil, err
			}

			xcontext.SetRequestBody(ctx, values)
		}
	}

	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		for i, key := range routeCtx.URLParams.Keys {
			values[key] = routeCtx.URLParams.Values[i]
		}
	}

	return values, nil
}

func decodeValues(values map[string]any, req any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           req,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(values)
}
