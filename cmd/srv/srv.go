package main

import (
	"context"
	"net/http"

	"github.com/mealfeed/backend/config"
	"github.com/mealfeed/backend/internal/domain"
	"github.com/mealfeed/backend/internal/domain/feed"
	"github.com/mealfeed/backend/internal/repository"
	"github.com/mealfeed/backend/migration"
	"github.com/mealfeed/backend/pkg/kafka"
	"github.com/mealfeed/backend/pkg/logger"
	"github.com/mealfeed/backend/pkg/pubsub"
	"github.com/mealfeed/backend/pkg/router"
	"github.com/mealfeed/backend/pkg/xcontext"
	"github.com/mealfeed/backend/pkg/xredis"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB

	redisClient xredis.Client
	publisher   pubsub.Publisher
	subscriber  pubsub.Subscriber

	userRepo     repository.UserRepository
	followRepo   repository.FollowRepository
	contentRepo  repository.ContentRepository
	activityRepo repository.ActivityRepository
	feedRepo     repository.FeedRepository

	feedEngine     *feed.Engine
	userDomain     domain.UserDomain
	followDomain   domain.FollowDomain
	activityDomain domain.ActivityDomain
	feedDomain     domain.FeedDomain

	router *router.Router
	server *http.Server
}

// newContext returns the base context carried by everything running outside a
// request handler: migrations, the subscriber, startup checks.
func (s *srv) newContext() context.Context {
	ctx := xcontext.WithDB(context.Background(), s.db)
	ctx = xcontext.WithConfigs(ctx, s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	return ctx
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(s.configs.LogLevel)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

func (s *srv) migrateDB(ctx context.Context) {
	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient(ctx context.Context) {
	var err error
	s.redisClient, err = xredis.NewClient(ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	var err error
	s.publisher, err = kafka.NewPublisher(uuid.NewString(), []string{s.configs.Kafka.Addr})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository(s.redisClient)
	s.followRepo = repository.NewFollowRepository()
	s.contentRepo = repository.NewContentRepository()
	s.activityRepo = repository.NewActivityRepository()
	s.feedRepo = repository.NewFeedRepository()
}

func (s *srv) loadDomains() {
	s.feedEngine = feed.NewEngine(
		s.userRepo, s.followRepo, s.contentRepo, s.activityRepo, s.feedRepo)

	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.followDomain = domain.NewFollowDomain(
		s.userRepo, s.followRepo, s.feedEngine, s.publisher)
	s.activityDomain = domain.NewActivityDomain(
		s.userRepo, s.contentRepo, s.activityRepo, s.feedEngine, s.publisher)
	s.feedDomain = domain.NewFeedDomain(s.feedRepo)
}
