package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/thready-lab/backend/config"
	"github.com/thready-lab/backend/pkg/authenticator"
	"github.com/thready-lab/backend/pkg/logger"
	"gorm.io/gorm"
)

// HandlerFunc is the shape of every domain operation.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can extend the context or abort
// the request by returning an error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// AfterFunc runs after a successful handler, before the response is written.
type AfterFunc func(ctx context.Context) error

// CloserFunc runs after the response is written, even on error.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux chi.Router

	cfg         config.Configs
	logger      logger.Logger
	db          *gorm.DB
	tokenEngine authenticator.TokenEngine

	befores []MiddlewareFunc
	afters  []AfterFunc
	closers []CloserFunc
}

func New(cfg config.Configs, logger logger.Logger, db *gorm.DB) *Router {
	return &Router{
		mux:         chi.NewRouter(),
		cfg:         cfg,
		logger:      logger,
		db:          db,
		tokenEngine: authenticator.NewTokenEngine(cfg.Auth.TokenSecret),
	}
}

// Branch returns a router sharing the same mux but with an independent
// middleware chain.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]AfterFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware AfterFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.Get(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.Post(pattern, wrapHandler(r, http.MethodPost, handler))
}

func PUT[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.Put(pattern, wrapHandler(r, http.MethodPut, handler))
}

func DELETE[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.Delete(pattern, wrapHandler(r, http.MethodDelete, handler))
}
