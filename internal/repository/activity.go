package repository

import (
	"context"

	"github.com/mealfeed/backend/internal/entity"
	"github.com/mealfeed/backend/pkg/xcontext"
)

type ActivityRepository interface {
	Create(ctx context.Context, data *entity.Activity) error
	GetByID(ctx context.Context, id string) (*entity.Activity, error)
	GetByEntity(ctx context.Context, authorID string, typ entity.ActivityType, entityID string) (*entity.Activity, error)
	DeleteByID(ctx context.Context, id string) error
}

type activityRepository struct{}

func NewActivityRepository() *activityRepository {
	return &activityRepository{}
}

func (r *activityRepository) Create(ctx context.Context, data *entity.Activity) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *activityRepository) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	var result entity.Activity
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *activityRepository) GetByEntity(
	ctx context.Context, authorID string, typ entity.ActivityType, entityID string,
) (*entity.Activity, error) {
	var result entity.Activity
	err := xcontext.DB(ctx).
		Where("author_id=? AND type=? AND entity_id=?", authorID, typ, entityID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *activityRepository) DeleteByID(ctx context.Context, id string) error {
	// Hard delete: a soft-deleted row would keep holding the unique
	// (author, type, entity) index and block a later republish.
	return xcontext.DB(ctx).Unscoped().Where("id=?", id).Delete(&entity.Activity{}).Error
}
