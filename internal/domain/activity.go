package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mealfeed/backend/internal/common"
	"github.com/mealfeed/backend/internal/domain/event"
	"github.com/mealfeed/backend/internal/domain/feed"
	"github.com/mealfeed/backend/internal/entity"
	"github.com/mealfeed/backend/internal/model"
	"github.com/mealfeed/backend/internal/repository"
	"github.com/mealfeed/backend/pkg/errorx"
	"github.com/mealfeed/backend/pkg/pubsub"
	"github.com/mealfeed/backend/pkg/xcontext"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// placeholderTitle is the title the content layer gives unnamed drafts. A
// publish with this title is not announced to followers.
const placeholderTitle = "untitled"

type ActivityDomain interface {
	PublishContent(ctx context.Context, req *model.PublishContentRequest) (*model.PublishContentResponse, error)
	DeleteContent(ctx context.Context, req *model.DeleteContentRequest) (*model.DeleteContentResponse, error)
}

type activityDomain struct {
	userRepo     repository.UserRepository
	contentRepo  repository.ContentRepository
	activityRepo repository.ActivityRepository
	feedEngine   *feed.Engine
	publisher    pubsub.Publisher
}

func NewActivityDomain(
	userRepo repository.UserRepository,
	contentRepo repository.ContentRepository,
	activityRepo repository.ActivityRepository,
	feedEngine *feed.Engine,
	publisher pubsub.Publisher,
) *activityDomain {
	return &activityDomain{
		userRepo:     userRepo,
		contentRepo:  contentRepo,
		activityRepo: activityRepo,
		feedEngine:   feedEngine,
		publisher:    publisher,
	}
}

// PublishContent records a publish of a content entity. The first publish of
// an entity with a real title creates an activity and fans it out to the
// author's followers; every later publish of the same entity only refreshes
// the content mirror.
func (d *activityDomain) PublishContent(
	ctx context.Context, req *model.PublishContentRequest,
) (*model.PublishContentResponse, error) {
	if req.AuthorID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty author id")
	}

	if req.EntityID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty entity id")
	}

	typ, err := activityType(req.Type)
	if err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(time.RFC3339, req.CreatedAt)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid creation time")
	}

	author, err := d.userRepo.GetByID(ctx, req.AuthorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found author")
		}

		xcontext.Logger(ctx).Errorf("Cannot get author: %v", err)
		return nil, errorx.Unknown
	}

	// Keep the mirror fresh even when the gate below rejects the publish,
	// so a later backfill projects the entity as it is now.
	err = d.contentRepo.Upsert(ctx, &entity.Content{
		ID:        req.EntityID,
		Type:      typ,
		CreatedAt: createdAt,
		AuthorID:  req.AuthorID,
		Title:     req.Title,
		Body:      req.Body,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert content mirror: %v", err)
		return nil, errorx.Unknown
	}

	title := strings.TrimSpace(req.Title)
	if title == "" || strings.EqualFold(title, placeholderTitle) {
		return &model.PublishContentResponse{}, nil
	}

	first, err := d.contentRepo.MarkPublished(ctx, typ, req.EntityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark content as published: %v", err)
		return nil, errorx.Unknown
	}

	if !first {
		return &model.PublishContentResponse{}, nil
	}

	activity := &entity.Activity{
		Base:           entity.Base{ID: uuid.NewString(), CreatedAt: createdAt},
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Type:           typ,
		EntityID:       req.EntityID,
		EntityTitle:    title,
		EntitySlug:     common.Slugify(title, req.EntityID),
		Preview:        common.Preview(req.Body, xcontext.Configs(ctx).Feed.PreviewLength),
	}

	d.feedEngine.Async(ctx, "fan out activity", func(ctx context.Context) error {
		return d.feedEngine.FanOut(ctx, activity)
	})

	d.publish(ctx, author.ID, event.ActivityCreatedEvent{
		Activity: model.ConvertActivity(activity),
	})

	return &model.PublishContentResponse{ActivityID: activity.ID}, nil
}

// DeleteContent removes an entity's activity from every follower feed and
// drops the content mirror. The feed cleanup is best effort: a failure there
// never blocks the deletion itself.
func (d *activityDomain) DeleteContent(
	ctx context.Context, req *model.DeleteContentRequest,
) (*model.DeleteContentResponse, error) {
	if req.AuthorID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty author id")
	}

	typ, err := activityType(req.Type)
	if err != nil {
		return nil, err
	}

	activity, err := d.activityRepo.GetByEntity(ctx, req.AuthorID, typ, req.EntityID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get activity of deleted content: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.feedEngine.RemoveFromAllFollowers(ctx, req.AuthorID, typ, req.EntityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot clean up feeds of deleted content: %v", err)
	}

	if err := d.contentRepo.Delete(ctx, typ, req.EntityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete content mirror: %v", err)
		return nil, errorx.Unknown
	}

	if activity != nil {
		d.publish(ctx, req.AuthorID, event.ActivityDeletedEvent{
			ActivityID: activity.ID,
			AuthorID:   req.AuthorID,
		})
	}

	return &model.DeleteContentResponse{}, nil
}

func (d *activityDomain) publish(ctx context.Context, key string, ev event.Event) {
	pack, err := event.New(key, ev)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create %s event: %v", ev.Op(), err)
		return
	}

	if err := d.publisher.Publish(ctx, event.FeedTopic, pack); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish %s event: %v", ev.Op(), err)
	}
}

func activityType(s string) (entity.ActivityType, error) {
	typ := entity.ActivityType(s)
	if !slices.Contains(entity.ActivityTypes, typ) {
		return "", errorx.New(errorx.BadRequest, "Invalid activity type %s", s)
	}

	return typ, nil
}
