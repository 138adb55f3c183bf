package domain

import (
	"context"

	"github.com/mealfeed/backend/internal/model"
	"github.com/mealfeed/backend/internal/repository"
	"github.com/mealfeed/backend/pkg/errorx"
	"github.com/mealfeed/backend/pkg/xcontext"
)

type FeedDomain interface {
	GetFeed(ctx context.Context, req *model.GetFeedRequest) (*model.GetFeedResponse, error)
}

type feedDomain struct {
	feedRepo repository.FeedRepository
}

func NewFeedDomain(feedRepo repository.FeedRepository) *feedDomain {
	return &feedDomain{feedRepo: feedRepo}
}

// GetFeed returns the newest entries of the requester's own feed partition.
// Reads never touch the follow graph or the canonical activity store.
func (d *feedDomain) GetFeed(
	ctx context.Context, req *model.GetFeedRequest,
) (*model.GetFeedResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	entries, err := d.feedRepo.GetByUserID(ctx, xcontext.RequestUserID(ctx), req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get feed entries: %v", err)
		return nil, errorx.Unknown
	}

	activities := []model.Activity{}
	for i := range entries {
		activities = append(activities, model.ConvertFeedEntry(&entries[i]))
	}

	return &model.GetFeedResponse{Activities: activities}, nil
}
