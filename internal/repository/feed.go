package repository

import (
	"context"

	"github.com/mealfeed/backend/internal/entity"
	"github.com/mealfeed/backend/pkg/xcontext"

	"gorm.io/gorm/clause"
)

type FeedRepository interface {
	// UpsertBatch writes one chunk of feed entries in a single statement.
	// An existing (user, entry) row is overwritten, which makes re-running
	// fan-out or backfill safe.
	UpsertBatch(ctx context.Context, entries []entity.FeedEntry) error

	// DeleteBatch removes the given entry keys from one chunk of users.
	DeleteBatch(ctx context.Context, userIDs []string, entryIDs []string) (int64, error)

	// DeleteByUserAndAuthor purges every entry of one author from one
	// user's partition.
	DeleteByUserAndAuthor(ctx context.Context, userID, authorID string) (int64, error)

	GetByUserID(ctx context.Context, userID string, limit int) ([]entity.FeedEntry, error)
}

type feedRepository struct{}

func NewFeedRepository() *feedRepository {
	return &feedRepository{}
}

func (r *feedRepository) UpsertBatch(ctx context.Context, entries []entity.FeedEntry) error {
	if len(entries) == 0 {
		return nil
	}

	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entries).Error
}

func (r *feedRepository) DeleteBatch(
	ctx context.Context, userIDs []string, entryIDs []string,
) (int64, error) {
	if len(userIDs) == 0 || len(entryIDs) == 0 {
		return 0, nil
	}

	tx := xcontext.DB(ctx).
		Where("user_id IN (?) AND entry_id IN (?)", userIDs, entryIDs).
		Delete(&entity.FeedEntry{})
	if tx.Error != nil {
		return 0, tx.Error
	}

	return tx.RowsAffected, nil
}

func (r *feedRepository) DeleteByUserAndAuthor(
	ctx context.Context, userID, authorID string,
) (int64, error) {
	tx := xcontext.DB(ctx).
		Where("user_id=? AND author_id=?", userID, authorID).
		Delete(&entity.FeedEntry{})
	if tx.Error != nil {
		return 0, tx.Error
	}

	return tx.RowsAffected, nil
}

func (r *feedRepository) GetByUserID(
	ctx context.Context, userID string, limit int,
) ([]entity.FeedEntry, error) {
	var result []entity.FeedEntry
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC, entry_id DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
