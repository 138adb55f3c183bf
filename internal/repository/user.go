package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mealfeed/backend/internal/common"
	"github.com/mealfeed/backend/internal/entity"
	"github.com/mealfeed/backend/pkg/xcontext"
	"github.com/mealfeed/backend/pkg/xredis"

	"gorm.io/gorm"
)

const userCacheTTL = 30 * time.Minute

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	UpdateByID(ctx context.Context, id string, data *entity.User) error
	IncreaseFollowing(ctx context.Context, id string) error
	DecreaseFollowing(ctx context.Context, id string) error
	IncreaseFollowers(ctx context.Context, id string) error
	DecreaseFollowers(ctx context.Context, id string) error
}

type userRepository struct {
	redisClient xredis.Client
}

func NewUserRepository(redisClient xredis.Client) *userRepository {
	return &userRepository{redisClient: redisClient}
}

func (r *userRepository) cache(ctx context.Context, users ...entity.User) {
	redisKV := map[string]any{}
	for _, record := range users {
		redisKV[common.RedisKeyUser(record.ID)] = record
	}

	if err := r.redisClient.MSet(ctx, redisKV); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot multiple set for user redis: %v", err)
	}
}

func (r *userRepository) fromCache(ctx context.Context, ids ...string) []entity.User {
	keys := []string{}
	for _, id := range ids {
		keys = append(keys, common.RedisKeyUser(id))
	}

	values, err := r.redisClient.MGet(ctx, keys...)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot multiple get user from redis: %v", err)
		return nil
	}

	var records []entity.User
	for i := range keys {
		if values[i] == nil {
			continue
		}

		s, ok := values[i].(string)
		if !ok {
			xcontext.Logger(ctx).Warnf("Invalid type of cached user %T", values[i])
			continue
		}

		var result entity.User
		if err := json.Unmarshal([]byte(s), &result); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot unmarshal cached user: %v", err)
			continue
		}

		records = append(records, result)
	}

	return records
}

func (r *userRepository) invalidateCache(ctx context.Context, id string) {
	if err := r.redisClient.Del(ctx, common.RedisKeyUser(id)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate user cache: %v", err)
	}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if cached := r.fromCache(ctx, id); len(cached) == 1 {
		return &cached[0], nil
	}

	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	r.cache(ctx, record)
	return &record, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "username=?", username).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	records := r.fromCache(ctx, ids...)
	if len(records) == len(ids) {
		return records, nil
	}

	found := map[string]bool{}
	for _, record := range records {
		found[record.ID] = true
	}

	missing := []string{}
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}

	var fromDB []entity.User
	if err := xcontext.DB(ctx).Find(&fromDB, "id IN (?)", missing).Error; err != nil {
		return nil, err
	}

	r.cache(ctx, fromDB...)
	return append(records, fromDB...), nil
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, data *entity.User) error {
	r.invalidateCache(ctx, id)

	updateMap := map[string]any{}
	if data.Username != "" {
		updateMap["username"] = data.Username
	}

	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Updates(updateMap).Error
}

func (r *userRepository) IncreaseFollowing(ctx context.Context, id string) error {
	return r.updateCounter(ctx, id, "following_count", gorm.Expr("following_count+1"))
}

func (r *userRepository) DecreaseFollowing(ctx context.Context, id string) error {
	return r.updateCounter(ctx, id, "following_count", gorm.Expr("following_count-1"))
}

func (r *userRepository) IncreaseFollowers(ctx context.Context, id string) error {
	return r.updateCounter(ctx, id, "followers_count", gorm.Expr("followers_count+1"))
}

func (r *userRepository) DecreaseFollowers(ctx context.Context, id string) error {
	return r.updateCounter(ctx, id, "followers_count", gorm.Expr("followers_count-1"))
}

func (r *userRepository) updateCounter(ctx context.Context, id, column string, expr any) error {
	r.invalidateCache(ctx, id)

	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update(column, expr)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
