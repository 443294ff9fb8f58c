package main

import (
	"context"
	"net/http"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/thready-lab/backend/config"
	"github.com/thready-lab/backend/internal/domain"
	"github.com/thready-lab/backend/internal/repository"
	"github.com/thready-lab/backend/pkg/api/shopify"
	"github.com/thready-lab/backend/pkg/kafka"
	"github.com/thready-lab/backend/pkg/logger"
	"github.com/thready-lab/backend/pkg/pubsub"
	"github.com/thready-lab/backend/pkg/router"
	"github.com/thready-lab/backend/pkg/statestore"
	"github.com/thready-lab/backend/pkg/xcontext"
	"github.com/thready-lab/backend/pkg/xredis"

	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo      repository.UserRepository
	communityRepo repository.CommunityRepository
	postRepo      repository.PostRepository
	commentRepo   repository.CommentRepository

	authDomain      domain.AuthDomain
	userDomain      domain.UserDomain
	communityDomain domain.CommunityDomain
	postDomain      domain.PostDomain
	commentDomain   domain.CommentDomain

	shopifyEndpoint shopify.IEndpoint
	stateStore      statestore.Store
	publisher       pubsub.Publisher

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.toml"
	}

	var cfg config.Configs
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		panic(err)
	}

	// Secrets are overridable from the environment so the toml file can be
	// committed without them.
	overrideFromEnv(&cfg.Auth.TokenSecret, "TOKEN_SECRET")
	overrideFromEnv(&cfg.Shopify.ShopID, "SHOPIFY_SHOP_ID")
	overrideFromEnv(&cfg.Shopify.ShopDomain, "SHOPIFY_SHOP_DOMAIN")
	overrideFromEnv(&cfg.Shopify.ClientID, "SHOPIFY_CLIENT_ID")
	overrideFromEnv(&cfg.Shopify.ClientSecret, "SHOPIFY_CLIENT_SECRET")
	overrideFromEnv(&cfg.Shopify.RedirectURI, "SHOPIFY_REDIRECT_URI")
	overrideFromEnv(&cfg.Frontend.URL, "FRONTEND_URL")
	overrideFromEnv(&cfg.Redis.Addr, "REDIS_ADDR")
	overrideFromEnv(&cfg.Kafka.Addr, "KAFKA_ADDR")

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func overrideFromEnv(target *string, name string) {
	if value := os.Getenv(name); value != "" {
		*target = value
	}
}

func (s *srv) loadLogger() {
	level := xcontext.Configs(s.ctx).LogLevel
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx)
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                      cfg.Database.ConnectionString(),
		DefaultStringSize:        256,
		DisableDatetimePrecision: true,
		DontSupportRenameIndex:   true,
		DontSupportRenameColumn:  true,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := repository.Migrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadEndpoint() {
	s.shopifyEndpoint = shopify.New(xcontext.Configs(s.ctx).Shopify)
}

func (s *srv) loadStateStore() {
	cfg := xcontext.Configs(s.ctx)
	if cfg.Redis.Addr != "" {
		redisClient, err := xredis.NewClient(s.ctx)
		if err != nil {
			panic(err)
		}

		s.stateStore = statestore.NewRedisStore(redisClient, cfg.Auth.StateExpiration.Std())
		return
	}

	memoryStore := statestore.NewMemoryStore(cfg.Auth.StateExpiration.Std())
	memoryStore.StartCleaner(s.ctx, cfg.Auth.StateCleanInterval.Std())
	s.stateStore = memoryStore
}

func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx)
	if cfg.Kafka.Addr == "" {
		// Without a broker, security events are only logged.
		return
	}

	publisher, err := kafka.NewPublisher("thready-api", []string{cfg.Kafka.Addr})
	if err != nil {
		panic(err)
	}

	s.publisher = publisher
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.communityRepo = repository.NewCommunityRepository()
	s.postRepo = repository.NewPostRepository()
	s.commentRepo = repository.NewCommentRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.stateStore, s.shopifyEndpoint)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.communityRepo)
	s.communityDomain = domain.NewCommunityDomain(s.communityRepo, s.postRepo, s.commentRepo)
	s.postDomain = domain.NewPostDomain(
		s.postRepo, s.commentRepo, s.communityRepo, s.userRepo, s.publisher)
	s.commentDomain = domain.NewCommentDomain(s.commentRepo, s.publisher)
}
