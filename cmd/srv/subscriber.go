package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"
	"time"

	"github.com/mealfeed/backend/internal/domain/event"
	"github.com/mealfeed/backend/internal/model"
	"github.com/mealfeed/backend/pkg/kafka"
	"github.com/mealfeed/backend/pkg/pubsub"
	"github.com/mealfeed/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

const subscriberGroupID = "mealfeed-feed"

// startSubscriber consumes publish and delete events from the content layer
// and feeds them through the same domain path as the internal HTTP surface.
func (s *srv) startSubscriber(*cli.Context) error {
	s.loadConfigs()
	s.loadLogger()
	s.loadDatabase()

	ctx, stop := signal.NotifyContext(s.newContext(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s.migrateDB(ctx)
	s.loadRedisClient(ctx)
	s.loadPublisher()
	s.loadRepos()
	s.loadDomains()

	var err error
	s.subscriber, err = kafka.NewSubscriber(
		subscriberGroupID,
		[]string{s.configs.Kafka.Addr},
		[]string{event.ContentTopic},
		s.handleContentEvent,
	)
	if err != nil {
		return err
	}

	s.logger.Infof("Starting subscriber on topic %s", event.ContentTopic)
	s.subscriber.Subscribe(ctx)

	<-ctx.Done()
	return s.subscriber.Stop(context.Background())
}

func (s *srv) handleContentEvent(ctx context.Context, pack *pubsub.Pack, _ time.Time) {
	op, data, err := event.Parse(pack)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot parse content event: %v", err)
		return
	}

	switch op {
	case event.ContentPublishedEvent{}.Op():
		var ev event.ContentPublishedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot unmarshal %s event: %v", op, err)
			return
		}

		_, err := s.activityDomain.PublishContent(ctx, &model.PublishContentRequest{
			AuthorID:  ev.AuthorID,
			Type:      ev.Type,
			EntityID:  ev.EntityID,
			Title:     ev.Title,
			Body:      ev.Body,
			CreatedAt: ev.CreatedAt,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot handle %s event: %v", op, err)
		}

	case event.ContentDeletedEvent{}.Op():
		var ev event.ContentDeletedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot unmarshal %s event: %v", op, err)
			return
		}

		_, err := s.activityDomain.DeleteContent(ctx, &model.DeleteContentRequest{
			AuthorID: ev.AuthorID,
			Type:     ev.Type,
			EntityID: ev.EntityID,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot handle %s event: %v", op, err)
		}

	default:
		xcontext.Logger(ctx).Debugf("Ignore unknown content event %s", op)
	}
}
