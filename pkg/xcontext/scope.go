package xcontext

import "context"

type scopeKey struct{}

// requestScope carries per-request mutable state. Middlewares run with child
// contexts of the handler context, so values they produce are shared through
// this holder instead of context.WithValue.
type requestScope struct {
	userID      string
	requestBody map[string]any
	response    any
	err         error
}

// WithRequestScope must be called once at the start of every request, before
// any of the setters below.
func WithRequestScope(ctx context.Context) context.Context {
	return context.WithValue(ctx, scopeKey{}, &requestScope{})
}

func scope(ctx context.Context) *requestScope {
	if s, ok := ctx.Value(scopeKey{}).(*requestScope); ok {
		return s
	}

	return &requestScope{}
}

func SetRequestUserID(ctx context.Context, id string) {
	scope(ctx).userID = id
}

func RequestUserID(ctx context.Context) string {
	return scope(ctx).userID
}

func SetRequestBody(ctx context.Context, body map[string]any) {
	scope(ctx).requestBody = body
}

// RequestBody returns the decoded JSON body of the request as a generic map,
// or nil for requests without a JSON object body.
func RequestBody(ctx context.Context) map[string]any {
	return scope(ctx).requestBody
}

func SetResponse(ctx context.Context, resp any) {
	scope(ctx).response = resp
}

func GetResponse(ctx context.Context) any {
	return scope(ctx).response
}

func SetError(ctx context.Context, err error) {
	scope(ctx).err = err
}

func GetError(ctx context.Context) error {
	return scope(ctx).err
}
