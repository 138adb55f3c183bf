package migration

import (
	"context"

	"github.com/mealfeed/backend/internal/entity"
	"github.com/mealfeed/backend/pkg/xcontext"
)

func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Follow{},
		&entity.Content{},
		&entity.Activity{},
		&entity.FeedEntry{},
	)
}
