package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mealfeed/backend/internal/middleware"
	"github.com/mealfeed/backend/pkg/prometheus"
	"github.com/mealfeed/backend/pkg/router"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfigs()
	s.loadLogger()
	s.loadDatabase()

	ctx := s.newContext()
	s.migrateDB(ctx)
	s.loadRedisClient(ctx)
	s.loadPublisher()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := s.configs.ApiServer
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting api server on %s", s.server.Addr)

	var err error
	if cfg.Cert != "" && cfg.Key != "" {
		err = s.server.ListenAndServeTLS(cfg.Cert, cfg.Key)
	} else {
		err = s.server.ListenAndServe()
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())
	s.router.Handle("/metrics", prometheus.NewHandler())

	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier().Middleware())
	router.POST(authRouter, "/follow", s.followDomain.Follow)
	router.POST(authRouter, "/unfollow", s.followDomain.Unfollow)
	router.GET(authRouter, "/getFeed", s.feedDomain.GetFeed)

	publicRouter := s.router.Branch()
	publicRouter.Before(middleware.NewAuthVerifier().WithOptional().Middleware())
	router.GET(publicRouter, "/getConnections", s.followDomain.GetConnections)
	router.GET(publicRouter, "/getUser", s.userDomain.GetUser)

	// Internal surface for the content layer; deployments that deliver
	// publishes through kafka instead use the subscriber command.
	internalRouter := s.router.Branch()
	router.POST(internalRouter, "/publishContent", s.activityDomain.PublishContent)
	router.POST(internalRouter, "/deleteContent", s.activityDomain.DeleteContent)
}
