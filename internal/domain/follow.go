package domain

import (
	"context"
	"errors"

	"github.com/mealfeed/backend/internal/common"
	"github.com/mealfeed/backend/internal/domain/event"
	"github.com/mealfeed/backend/internal/domain/feed"
	"github.com/mealfeed/backend/internal/entity"
	"github.com/mealfeed/backend/internal/model"
	"github.com/mealfeed/backend/internal/repository"
	"github.com/mealfeed/backend/pkg/errorx"
	"github.com/mealfeed/backend/pkg/pubsub"
	"github.com/mealfeed/backend/pkg/xcontext"

	"gorm.io/gorm"
)

type FollowDomain interface {
	Follow(ctx context.Context, req *model.FollowRequest) (*model.FollowResponse, error)
	Unfollow(ctx context.Context, req *model.UnfollowRequest) (*model.UnfollowResponse, error)
	GetConnections(ctx context.Context, req *model.GetConnectionsRequest) (*model.GetConnectionsResponse, error)
}

type followDomain struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	feedEngine *feed.Engine
	publisher  pubsub.Publisher
}

func NewFollowDomain(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	feedEngine *feed.Engine,
	publisher pubsub.Publisher,
) *followDomain {
	return &followDomain{
		userRepo:   userRepo,
		followRepo: followRepo,
		feedEngine: feedEngine,
		publisher:  publisher,
	}
}

func (d *followDomain) Follow(
	ctx context.Context, req *model.FollowRequest,
) (*model.FollowResponse, error) {
	followerID := xcontext.RequestUserID(ctx)
	if req.FolloweeID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty followee id")
	}

	if req.FolloweeID == followerID {
		return nil, errorx.New(errorx.BadRequest, "Not allow following yourself")
	}

	if _, err := d.userRepo.GetByID(ctx, req.FolloweeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found followee")
		}

		xcontext.Logger(ctx).Errorf("Cannot get followee: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	inserted, err := d.followRepo.Create(ctx, &entity.Follow{
		FollowerID: followerID,
		FolloweeID: req.FolloweeID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follow: %v", err)
		return nil, errorx.Unknown
	}

	if !inserted {
		return &model.FollowResponse{AlreadyFollowing: true}, nil
	}

	if err := d.userRepo.IncreaseFollowing(ctx, followerID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase following count: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.IncreaseFollowers(ctx, req.FolloweeID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase followers count: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	followeeID := req.FolloweeID
	d.feedEngine.Async(ctx, "backfill feed after follow", func(ctx context.Context) error {
		return d.feedEngine.Backfill(ctx, followerID, followeeID)
	})

	d.publish(ctx, followerID, event.FollowedEvent{
		FollowerID: followerID,
		FolloweeID: followeeID,
	})

	return &model.FollowResponse{}, nil
}

func (d *followDomain) Unfollow(
	ctx context.Context, req *model.UnfollowRequest,
) (*model.UnfollowResponse, error) {
	followerID := xcontext.RequestUserID(ctx)
	if req.FolloweeID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty followee id")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	existed, err := d.followRepo.Delete(ctx, followerID, req.FolloweeID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete follow: %v", err)
		return nil, errorx.Unknown
	}

	if !existed {
		return &model.UnfollowResponse{NotFollowing: true}, nil
	}

	if err := d.userRepo.DecreaseFollowing(ctx, followerID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease following count: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.DecreaseFollowers(ctx, req.FolloweeID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease followers count: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	followeeID := req.FolloweeID
	d.feedEngine.Async(ctx, "clean up feed after unfollow", func(ctx context.Context) error {
		return d.feedEngine.RemoveAuthorFromFeed(ctx, followerID, followeeID)
	})

	d.publish(ctx, followerID, event.UnfollowedEvent{
		FollowerID: followerID,
		FolloweeID: followeeID,
	})

	return &model.UnfollowResponse{}, nil
}

func (d *followDomain) GetConnections(
	ctx context.Context, req *model.GetConnectionsRequest,
) (*model.GetConnectionsResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	if _, err := d.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	followingIDs, err := d.followRepo.GetFollowingIDs(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following ids: %v", err)
		return nil, errorx.Unknown
	}

	followerIDs, err := d.followRepo.GetFollowerIDs(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get follower ids: %v", err)
		return nil, errorx.Unknown
	}

	// One lookup for both lists; a mutual connection is fetched once.
	uniqueIDs := map[string]any{}
	for _, id := range append(append([]string{}, followingIDs...), followerIDs...) {
		uniqueIDs[id] = nil
	}

	users, err := d.userRepo.GetByIDs(ctx, common.MapKeys(uniqueIDs))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get connection profiles: %v", err)
		return nil, errorx.Unknown
	}

	usersByID := map[string]*entity.User{}
	for i := range users {
		usersByID[users[i].ID] = &users[i]
	}

	return &model.GetConnectionsResponse{
		Following: projectShortUsers(followingIDs, usersByID),
		Followers: projectShortUsers(followerIDs, usersByID),
	}, nil
}

// projectShortUsers keeps the order of ids. An id with no profile row is
// dropped rather than projected as an empty user.
func projectShortUsers(ids []string, usersByID map[string]*entity.User) []model.ShortUser {
	result := []model.ShortUser{}
	for _, id := range ids {
		if user, ok := usersByID[id]; ok {
			result = append(result, model.ConvertShortUser(user))
		}
	}

	return result
}

func (d *followDomain) publish(ctx context.Context, key string, ev event.Event) {
	pack, err := event.New(key, ev)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create %s event: %v", ev.Op(), err)
		return
	}

	if err := d.publisher.Publish(ctx, event.FeedTopic, pack); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish %s event: %v", ev.Op(), err)
	}
}
