package repository

import (
	"context"

	"github.com/mealfeed/backend/internal/entity"
	"github.com/mealfeed/backend/pkg/xcontext"

	"gorm.io/gorm/clause"
)

type FollowRepository interface {
	// Create inserts the follow edge. It reports false without error when
	// the edge already exists, so duplicate requests stay idempotent.
	Create(ctx context.Context, data *entity.Follow) (bool, error)

	// Delete removes the follow edge and reports whether it existed.
	Delete(ctx context.Context, followerID, followeeID string) (bool, error)

	Get(ctx context.Context, followerID, followeeID string) (*entity.Follow, error)
	GetFollowingIDs(ctx context.Context, followerID string) ([]string, error)
	GetFollowerIDs(ctx context.Context, followeeID string) ([]string, error)
}

type followRepository struct{}

func NewFollowRepository() *followRepository {
	return &followRepository{}
}

func (r *followRepository) Create(ctx context.Context, data *entity.Follow) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(data)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID string) (bool, error) {
	tx := xcontext.DB(ctx).
		Where("follower_id=? AND followee_id=?", followerID, followeeID).
		Delete(&entity.Follow{})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *followRepository) Get(ctx context.Context, followerID, followeeID string) (*entity.Follow, error) {
	var result entity.Follow
	err := xcontext.DB(ctx).
		Where("follower_id=? AND followee_id=?", followerID, followeeID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *followRepository) GetFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := xcontext.DB(ctx).
		Model(&entity.Follow{}).
		Where("follower_id=?", followerID).
		Order("created_at ASC").
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *followRepository) GetFollowerIDs(ctx context.Context, followeeID string) ([]string, error) {
	var ids []string
	err := xcontext.DB(ctx).
		Model(&entity.Follow{}).
		Where("followee_id=?", followeeID).
		Order("created_at ASC").
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}
