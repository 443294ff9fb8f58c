package main

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"github.com/thready-lab/backend/internal/middleware"
	"github.com/thready-lab/backend/pkg/router"
	"github.com/thready-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadEndpoint()
	s.loadStateStore()
	s.loadPublisher()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.ApiServer.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.ApiServer.Host, cfg.ApiServer.Port),
		Handler: c.Handler(s.router.Handler()),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on port %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	if s.publisher != nil {
		if err := s.publisher.Stop(s.ctx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot stop the publisher: %v", err)
		}
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(xcontext.Configs(s.ctx), xcontext.Logger(s.ctx), xcontext.DB(s.ctx))
	s.router.AddCloser(middleware.Logger())

	// Auth API. Cookies must be set before the redirect is rendered.
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSetCookie())
	authRouter.After(middleware.HandleRedirect())
	{
		router.GET(authRouter, "/auth/shopify/login", s.authDomain.Login)
		router.GET(authRouter, "/auth/shopify/callback", s.authDomain.Callback)
		router.GET(authRouter, "/auth/me", s.authDomain.Me)
		router.POST(authRouter, "/auth/refresh", s.authDomain.Refresh)
		router.POST(authRouter, "/auth/logout", s.authDomain.Logout)
	}

	// Public API. The viewer's votes are included when a token is present.
	authVerifier := middleware.NewAuthVerifier()
	publicRouter := s.router.Branch()
	publicRouter.Before(authVerifier.OptionalMiddleware())
	{
		router.GET(publicRouter, "/posts", s.postDomain.GetList)
		router.GET(publicRouter, "/communities", s.communityDomain.GetList)
		router.GET(publicRouter, "/communities/{id}", s.communityDomain.Get)
	}

	// These following APIs need authentication.
	authedRouter := s.router.Branch()
	authedRouter.Before(authVerifier.Middleware())
	authedRouter.Before(middleware.BodyGuard())
	{
		// User API
		router.GET(authedRouter, "/users/me", s.userDomain.GetMe)
		router.GET(authedRouter, "/users/me/community", s.userDomain.GetMyCommunity)

		// Community API
		router.POST(authedRouter, "/communities", s.communityDomain.Create)

		// Post API
		router.POST(authedRouter, "/posts", s.postDomain.Create)
		router.PUT(authedRouter, "/posts/{id}", s.postDomain.Update)
		router.DELETE(authedRouter, "/posts/{id}", s.postDomain.Delete)
		router.POST(authedRouter, "/posts/{id}/comments", s.postDomain.AddComment)
		router.POST(authedRouter, "/posts/{id}/vote", s.postDomain.Vote)

		// Comment API
		router.PUT(authedRouter, "/comments/{id}", s.commentDomain.Update)
		router.DELETE(authedRouter, "/comments/{id}", s.commentDomain.Delete)
		router.POST(authedRouter, "/comments/{id}/vote", s.commentDomain.Vote)
	}
}
