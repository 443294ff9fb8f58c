package testutil

import (
	"context"
	"time"

	"github.com/thready-lab/backend/config"
	"github.com/thready-lab/backend/internal/repository"
	"github.com/thready-lab/backend/pkg/authenticator"
	"github.com/thready-lab/backend/pkg/logger"
	"github.com/thready-lab/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AppToken: config.TokenConfigs{
				Expiration: config.Duration(7 * 24 * time.Hour),
			},
			SessionToken: config.TokenConfigs{
				Expiration: config.Duration(7 * 24 * time.Hour),
			},
			StateExpiration:    config.Duration(10 * time.Minute),
			StateCleanInterval: config.Duration(5 * time.Minute),
		},
		Session: config.SessionConfigs{
			Name: "community_session",
		},
		Shopify: config.ShopifyConfigs{
			ShopID:       "12345",
			ShopDomain:   "test-shop.myshopify.com",
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURI:  "http://localhost:3001/auth/shopify/callback",
		},
		Frontend: config.FrontendConfigs{
			URL: "http://localhost:3000",
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	ctx = xcontext.WithDB(ctx, db)
	ctx = xcontext.WithRequestScope(ctx)

	if err := repository.Migrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	ctx := MockContext()
	xcontext.SetRequestUserID(ctx, userID)
	return ctx
}
